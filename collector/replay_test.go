package collector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appScope/config"
)

func collect(t *testing.T, input string) []*Notification {
	replay := New(config.NewDefault(), strings.NewReader(input))
	notifs, err := replay.Start()
	require.NoError(t, err)

	var out []*Notification
	for n := range notifs {
		out = append(out, n)
	}
	replay.Wait()
	return out
}

func TestReplay_DecodesRecordedStream(t *testing.T) {
	input := `{"kind":"call","qualname":"Account.withdraw","module":"bank.accounts","path":"bank/accounts.py","lineno":21,"defline":20,"frame_id":7,"params":[{"name":"self","value":{"class":"bank.accounts.Account"}},{"name":"amount","value":{"class":"builtins.int","data":50}}]}
{"kind":"return","qualname":"Account.withdraw","module":"bank.accounts","path":"bank/accounts.py","lineno":25,"defline":20,"frame_id":7,"return":{"class":"builtins.int","data":50}}
`

	notifs := collect(t, input)
	require.Len(t, notifs, 2)

	call := notifs[0]
	assert.Equal(t, KindCall, call.Kind)
	assert.Equal(t, "Account.withdraw", call.Qualname)
	assert.Equal(t, "bank.accounts", call.Module)
	assert.Equal(t, 20, call.DefLine)
	assert.Equal(t, uint64(7), call.FrameID)
	require.Len(t, call.Params, 2)
	assert.Equal(t, "self", call.Params[0].Name)
	assert.Equal(t, "bank.accounts.Account", call.Params[0].Value.Class)

	ret := notifs[1]
	assert.Equal(t, KindReturn, ret.Kind)
	require.NotNil(t, ret.Return)
	assert.Equal(t, "builtins.int", ret.Return.Class)
}

func TestReplay_SkipsMalformedLines(t *testing.T) {
	input := `{"kind":"call","qualname":"A.m","module":"pkg","path":"pkg/a.py","defline":1,"frame_id":1}
this is not json
{"kind":"return","qualname":"A.m","module":"pkg","path":"pkg/a.py","defline":1,"frame_id":1}
`

	notifs := collect(t, input)
	require.Len(t, notifs, 2, "malformed lines are skipped, not fatal")
	assert.Equal(t, KindCall, notifs[0].Kind)
	assert.Equal(t, KindReturn, notifs[1].Kind)
}

func TestReplay_SkipsBlankLines(t *testing.T) {
	input := "\n\n{\"kind\":\"call\",\"qualname\":\"A.m\",\"module\":\"pkg\",\"path\":\"pkg/a.py\",\"defline\":1,\"frame_id\":1}\n\n"

	notifs := collect(t, input)
	assert.Len(t, notifs, 1)
}

func TestReplay_EmptyStreamClosesChannel(t *testing.T) {
	notifs := collect(t, "")
	assert.Empty(t, notifs)
}
