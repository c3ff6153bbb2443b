package collector

import (
	"io"
	"time"

	"appScope/config"
)

// Kind identifies the type of a notification coming from the event source.
type Kind string

const (
	KindCall   Kind = "call"
	KindReturn Kind = "return"
)

// Replay reads a recorded notification stream and feeds it to the processor
type Replay struct {
	config  *config.Config
	source  io.Reader
	notifs  chan *Notification
	stopped chan struct{}
}

// Value carries one traced runtime value: the fully qualified class of the
// value in the traced program (e.g. "builtins.int") plus a best-effort
// concrete datum used for display rendering.
type Value struct {
	Class string `json:"class"`
	Data  any    `json:"data,omitempty"`
}

// Param is one declared positional parameter of the invoked function,
// in declaration order, with the value bound to it at call time.
type Param struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// Notification is a single call or return observation from the event source
type Notification struct {
	Kind     Kind      `json:"kind"`
	Qualname string    `json:"qualname"` // qualified name within Module; empty if unknown
	Module   string    `json:"module"`   // owning module, dot separated
	Path     string    `json:"path"`     // source file of the function
	Lineno   int       `json:"lineno"`   // originating line of the notification
	DefLine  int       `json:"defline"`  // first line of the function definition
	FrameID  uint64    `json:"frame_id"` // stable per-activation identity
	Params   []Param   `json:"params,omitempty"`
	Return   *Value    `json:"return,omitempty"` // present on return notifications with a value
	Time     time.Time `json:"time,omitempty"`
}

// TestItem identifies the test being traced, used for output naming and metadata
type TestItem struct {
	Name   string // e.g. "test_withdraw_insufficient_funds"
	Module string // e.g. "tests.test_account"
}
