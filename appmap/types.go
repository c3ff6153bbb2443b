package appmap

// Version is the AppMap format version this writer produces
const Version = "1.2"

// ThreadID is a fixed placeholder: the tracer is single-threaded by design
const ThreadID = 1

// Parameter describes one captured parameter or receiver of a call event
type Parameter struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// ReturnValue describes the value produced by a completed call
type ReturnValue struct {
	Class string `json:"class"`
	Value string `json:"value"`
}

// CallEvent is one serialized call occurrence
type CallEvent struct {
	ID           int          `json:"id"`
	Event        string       `json:"event"`
	DefinedClass string       `json:"defined_class"`
	MethodID     string       `json:"method_id"`
	Path         string       `json:"path"`
	Lineno       int          `json:"lineno"`
	Static       bool         `json:"static"`
	Parameters   []*Parameter `json:"parameters"`
	ThreadID     int          `json:"thread_id"`
	Receiver     *Parameter   `json:"receiver,omitempty"`
}

// ReturnEvent is one serialized return occurrence, linked to its call
// through ParentID
type ReturnEvent struct {
	ID           int          `json:"id"`
	Event        string       `json:"event"`
	DefinedClass string       `json:"defined_class"`
	MethodID     string       `json:"method_id"`
	Path         string       `json:"path"`
	Lineno       int          `json:"lineno"`
	ParentID     int          `json:"parent_id"`
	ReturnValue  *ReturnValue `json:"return_value,omitempty"`
}

// Framework identifies one test framework in the document metadata
type Framework struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Metadata is the trailing metadata block of the document
type Metadata struct {
	Name         string      `json:"name"`
	App          string      `json:"app"`
	FeatureGroup string      `json:"feature_group"`
	Feature      string      `json:"feature"`
	Frameworks   []Framework `json:"frameworks"`
}
