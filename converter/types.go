package converter

import "time"

// StackFrame represents a single frame in a traced call stack
type StackFrame struct {
	Method    string // fully qualified method name
	File      string // source file path
	StartLine int    // first line of the method definition
}

// CallRecord represents one completed (call, return) pair with the traced
// calls that enclosed it, innermost first
type CallRecord struct {
	Frames []StackFrame // location stack at return time, leaf first
	Start  time.Time    // call observation time (zero when unrecorded)
	End    time.Time    // return observation time (zero when unrecorded)
}

// Duration returns the wall time between call and return, zero when the
// notification source recorded no timestamps
func (r CallRecord) Duration() time.Duration {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// SampleTypeConfig defines configuration for different sample types in the profile
var SampleTypeConfig = map[string]map[string]interface{}{
	"cpu": {
		"units":        "nanoseconds",
		"display-name": "cpu-time",
		"aggregation":  "sum",
		"cumulative":   false,
		"sampled":      true,
	},
	"calls": {
		"units":        "count",
		"display-name": "call-count",
		"aggregation":  "sum",
		"cumulative":   false,
		"sampled":      true,
	},
}
