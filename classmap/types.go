package classmap

// Node types used in the exported class map
const (
	TypePackage  = "package"
	TypeClass    = "class"
	TypeFunction = "function"
)

// Designated method names in the traced program that carry semantic labels
const (
	CtorName    = "__init__"
	SetattrName = "__setattr__"
	GetattrName = "__getattr__"
)

// Introspector answers reflection queries about classes in the traced
// program. The aggregator uses it to detect computed-property getters; a nil
// Introspector means no such information is available.
type Introspector interface {
	HasComputedGetter(class, method string) bool
}

// Function is one traced method recorded in the class map, deduplicated by
// source location
type Function struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Static   bool     `json:"static"`
	Labels   []string `json:"labels,omitempty"`
}

// FunctionTable holds the functions discovered for one class, keyed by
// "path:line" location, preserving first-discovered order for export
type FunctionTable struct {
	byLocation map[string]*Function
	order      []string
}

// node is one package or class in the classmap tree
type node struct {
	name      string
	nodeType  string
	children  []*node
	functions *FunctionTable // class nodes only
}

// Classmap incrementally aggregates the packages, classes and functions
// discovered during one trace session
type Classmap struct {
	intro Introspector
	root  *node
	nodes map[string]*node          // qualified package/class path -> node
	funcs map[string]*FunctionTable // fully-qualified class name -> table
}

// ExportNode is the serialized form of one classmap node
type ExportNode struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Children []any  `json:"children,omitempty"`
}
