package classmap

import (
	"strings"
)

// New creates an empty Classmap. The introspector may be nil when no
// class-reflection information is available (e.g. replayed streams).
func New(intro Introspector) *Classmap {
	return &Classmap{
		intro: intro,
		root:  &node{name: "root", nodeType: "none"},
		nodes: make(map[string]*node),
		funcs: make(map[string]*FunctionTable),
	}
}

// EnsureClass registers fqClass (module path plus class name, dot separated)
// in the classmap and returns its function table. Idempotent: an already-seen
// class is returned without mutation.
func (c *Classmap) EnsureClass(fqClass string) *FunctionTable {
	if table, ok := c.funcs[fqClass]; ok {
		return table
	}

	mods, cls := splitLast(fqClass)

	// Walk or create one package node per module path segment
	parent := c.root
	prefix := ""
	if mods != "" {
		for _, mod := range strings.Split(mods, ".") {
			if prefix == "" {
				prefix = mod
			} else {
				prefix = prefix + "." + mod
			}
			child, ok := c.nodes[prefix]
			if !ok {
				child = &node{name: mod, nodeType: TypePackage}
				c.nodes[prefix] = child
				parent.children = append(parent.children, child)
			}
			parent = child
		}
	}

	table := &FunctionTable{byLocation: make(map[string]*Function)}
	classNode := &node{name: cls, nodeType: TypeClass, functions: table}
	c.nodes[fqClass] = classNode
	parent.children = append(parent.children, classNode)
	c.funcs[fqClass] = table

	return table
}

// RegisterFunction records one traced method in the class's function table.
// Idempotent per source location: repeat invocations of the same method are
// recorded once. ownerClass is the runtime class of the receiver when one was
// detected, empty otherwise; labels are derived once, at first sight.
func (c *Classmap) RegisterFunction(table *FunctionTable, location, method, ownerClass string) {
	if _, ok := table.byLocation[location]; ok {
		return
	}

	fn := &Function{
		Type:     TypeFunction,
		Name:     method,
		Location: location,
		Static:   false,
	}

	var labels []string
	switch method {
	case CtorName:
		labels = append(labels, "ctor")
	case SetattrName:
		labels = append(labels, "setter")
	case GetattrName:
		labels = append(labels, "getter")
	}

	// A computed-property getter is a separate label source and is not
	// deduplicated against the __getattr__ case.
	if ownerClass != "" && c.intro != nil && c.intro.HasComputedGetter(ownerClass, method) {
		labels = append(labels, "getter")
	}

	if len(labels) > 0 {
		fn.Labels = labels
	}

	table.byLocation[location] = fn
	table.order = append(table.order, location)
}

// Export produces the top-level classmap nodes in first-discovered order,
// with class nodes carrying their functions as ordered children.
func (c *Classmap) Export() []*ExportNode {
	out := make([]*ExportNode, 0, len(c.root.children))
	for _, child := range c.root.children {
		out = append(out, exportNode(child))
	}
	return out
}

func exportNode(n *node) *ExportNode {
	exp := &ExportNode{Name: n.name, Type: n.nodeType}

	if n.nodeType == TypeClass {
		for _, fn := range n.functions.Functions() {
			exp.Children = append(exp.Children, fn)
		}
		return exp
	}

	for _, child := range n.children {
		exp.Children = append(exp.Children, exportNode(child))
	}
	return exp
}

// Functions returns the table's entries in first-discovered order
func (t *FunctionTable) Functions() []*Function {
	out := make([]*Function, 0, len(t.order))
	for _, loc := range t.order {
		out = append(out, t.byLocation[loc])
	}
	return out
}

// Len returns the number of distinct source locations recorded
func (t *FunctionTable) Len() int {
	return len(t.order)
}

// splitLast splits a dot-separated qualified name at its last separator
func splitLast(name string) (prefix, last string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}
