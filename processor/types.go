package processor

import (
	"time"

	"appScope/appmap"
	"appScope/classmap"
	"appScope/config"
	"appScope/converter"
)

// Debug controls global debug logging
var Debug bool

// Name conventionally given to the bound-instance parameter in the traced
// program; detecting it marks a call non-static.
const receiverName = "self"

// activation is one accepted call awaiting its return, kept on an explicit
// stack so completed calls can be turned into profile samples
type activation struct {
	id    int
	frame converter.StackFrame
	start time.Time
}

// Processor translates call/return notifications into AppMap trace entries.
// It correlates each return with its originating call through a per-frame
// token table, maintains the classmap, and streams accepted entries to the
// document writer as they are produced.
type Processor struct {
	config   *config.Config
	writer   *appmap.Writer
	classmap *classmap.Classmap

	eventID int            // next entry id; incremented per accepted entry
	tokens  map[uint64]int // frame id -> call entry id, consumed at return
	active  []activation   // accepted calls awaiting return, innermost last
	records []converter.CallRecord
}
