// Package synnode defines the small capability trait the AST walkers
// (C7/C8) are polymorphic over, and an adapter implementing it on top of
// github.com/alexaandru/go-tree-sitter-bare (spec §9: "a small capability
// trait... concrete implementations adapt whichever parse library is
// chosen").
package synnode

// Node is the capability set a walker needs from a parsed syntax tree,
// regardless of which concrete grammar library produced it.
type Node interface {
	// Kind is the grammar's node-type name (e.g. "binary_operator", "if_statement").
	Kind() string
	// NamedChildCount returns the number of named (non-anonymous-token) children.
	NamedChildCount() int
	// NamedChild returns the i-th named child, or nil if out of range.
	NamedChild(i int) Node
	// ChildByField returns the child bound to the grammar's named field, or nil.
	ChildByField(name string) Node
	// ChildCount returns the number of all children, named and anonymous.
	ChildCount() int
	// Child returns the i-th child (including anonymous tokens such as
	// operators), or nil if out of range.
	Child(i int) Node
	// Text returns the node's raw source text.
	Text() string
	// StartRow returns the 0-based source line the node begins on.
	StartRow() int
}
