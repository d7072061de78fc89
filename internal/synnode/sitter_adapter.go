package synnode

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// sitterNode adapts sitter.Node to the Node capability trait. It carries
// the original source bytes so Text() can slice by byte offset, matching
// the pattern the teacher's DSL parser uses (StartByte/EndByte slicing).
type sitterNode struct {
	n      sitter.Node
	source []byte
}

// Wrap adapts a sitter.Node rooted in source into the Node trait. It
// returns nil if n is the null node.
func Wrap(n sitter.Node, source []byte) Node {
	if n.IsNull() {
		return nil
	}

	return &sitterNode{n: n, source: source}
}

func (s *sitterNode) Kind() string { return s.n.Type() }

func (s *sitterNode) NamedChildCount() int { return int(s.n.NamedChildCount()) }

func (s *sitterNode) NamedChild(i int) Node {
	if i < 0 || i >= s.NamedChildCount() {
		return nil
	}

	return Wrap(s.n.NamedChild(uint32(i)), s.source)
}

func (s *sitterNode) ChildByField(name string) Node {
	child := s.n.ChildByFieldName(name)

	return Wrap(child, s.source)
}

func (s *sitterNode) ChildCount() int { return int(s.n.ChildCount()) }

func (s *sitterNode) Child(i int) Node {
	if i < 0 || i >= s.ChildCount() {
		return nil
	}

	return Wrap(s.n.Child(uint32(i)), s.source)
}

func (s *sitterNode) Text() string {
	start, end := s.n.StartByte(), s.n.EndByte()
	if int(end) > len(s.source) || start > end {
		return ""
	}

	return string(s.source[start:end])
}

func (s *sitterNode) StartRow() int {
	return int(s.n.StartPoint().Row)
}
