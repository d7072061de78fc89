// Package synnodetest provides a hand-built Node implementation for unit
// tests that need to assemble small syntax trees directly, the way the
// teacher's tests build node.Node trees by hand (see complexity/visitor_test.go).
package synnodetest

import "github.com/watttrace/analyzer-core/internal/synnode"

// Fake is an in-memory Node for tests.
type Fake struct {
	kind     string
	text     string
	row      int
	children []*Fake
	fields   map[string]*Fake
}

// New creates a Fake node of the given kind and text.
func New(kind, text string) *Fake {
	return &Fake{kind: kind, text: text, fields: map[string]*Fake{}}
}

// WithRow sets the 0-based start row.
func (f *Fake) WithRow(row int) *Fake {
	f.row = row

	return f
}

// AddChild appends a positional (named) child and returns f for chaining.
func (f *Fake) AddChild(child *Fake) *Fake {
	f.children = append(f.children, child)

	return f
}

// WithField binds name to child as a field and also appends it as a child.
func (f *Fake) WithField(name string, child *Fake) *Fake {
	f.fields[name] = child
	f.children = append(f.children, child)

	return f
}

func (f *Fake) Kind() string { return f.kind }

func (f *Fake) NamedChildCount() int { return len(f.children) }

func (f *Fake) NamedChild(i int) synnode.Node {
	if i < 0 || i >= len(f.children) {
		return nil
	}

	return f.children[i]
}

func (f *Fake) ChildByField(name string) synnode.Node {
	child, ok := f.fields[name]
	if !ok {
		return nil
	}

	return child
}

func (f *Fake) ChildCount() int { return len(f.children) }

func (f *Fake) Child(i int) synnode.Node {
	return f.NamedChild(i)
}

func (f *Fake) Text() string { return f.text }

func (f *Fake) StartRow() int { return f.row }
