package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringerValue struct{ s string }

func (v stringerValue) String() string { return v.s }

type panickyStringer struct{}

func (panickyStringer) String() string { panic("broken String") }

// panickyGoStringer fails both the primary and the debug rendering path
type panickyGoStringer struct{}

func (panickyGoStringer) String() string   { panic("broken String") }
func (panickyGoStringer) GoString() string { panic("broken GoString") }

func TestDisplay_PrimaryPaths(t *testing.T) {
	assert.Equal(t, "None", Display(nil))
	assert.Equal(t, "hello", Display("hello"))
	assert.Equal(t, "42", Display(42))
	assert.Equal(t, "3.5", Display(3.5))
	assert.Equal(t, "true", Display(true))
	assert.Equal(t, "custom", Display(stringerValue{"custom"}))
	assert.Equal(t, "boom", Display(errors.New("boom")))
}

func TestDisplay_FallsBackToDebugRepr(t *testing.T) {
	got := Display(panickyStringer{})
	assert.Contains(t, got, "panickyStringer")
}

func TestDisplay_FinalFallbackIsDiagnostic(t *testing.T) {
	got := Display(panickyGoStringer{})
	assert.True(t, strings.HasPrefix(got, "Failed rendering value as a string,"), got)
	assert.Contains(t, got, "broken GoString")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 100))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "", Truncate("", 3))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0), "non-positive limit disables truncation")
	assert.Equal(t, "héll", Truncate("héllo", 4), "truncation counts runes, not bytes")
}
