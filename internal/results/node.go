package results

import (
	"encoding/json"
)

// Payload is the data carried by a node: *Outcome, *FixtureSummary or *AssemblySummary.
type Payload interface {
	payload()
}

func (*Outcome) payload()         {}
func (*FixtureSummary) payload()  {}
func (*AssemblySummary) payload() {}

// Node is one entry of the result tree. The parent link is a back-reference only; a node
// owns its children. Leaf and root are derived from the links, never stored.
type Node struct {
	label    string
	kind     Kind
	parent   *Node
	children []*Node
	payload  Payload
}

// Label returns the display label of the node.
func (n *Node) Label() string { return n.label }

// Kind returns the tree level of the node.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Payload returns the data attached to the node.
func (n *Node) Payload() Payload { return n.payload }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the child at index i.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Index returns the position of the node among its siblings; the root is at 0.
func (n *Node) Index() int {
	if n.parent == nil {
		return 0
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Root walks up to the root of the tree.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Outcome returns the payload of a test node.
func (n *Node) Outcome() (*Outcome, bool) {
	o, ok := n.payload.(*Outcome)
	return o, ok
}

// FixtureSummary returns the payload of a fixture node.
func (n *Node) FixtureSummary() (*FixtureSummary, bool) {
	s, ok := n.payload.(*FixtureSummary)
	return s, ok
}

// AssemblySummary returns the payload of an assembly node.
func (n *Node) AssemblySummary() (*AssemblySummary, bool) {
	s, ok := n.payload.(*AssemblySummary)
	return s, ok
}

// Walk visits the subtree depth-first in child order. Returning false from fn stops the walk.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

type nodeJSON struct {
	Label    string      `json:"label"`
	Kind     Kind        `json:"kind"`
	Payload  interface{} `json:"payload,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
	Children []*Node     `json:"children,omitempty"`
}

// MarshalJSON renders the subtree with errors flattened to their messages.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		Label:    n.label,
		Kind:     n.kind,
		Payload:  n.payload,
		Children: n.children,
	}
	var errs []error
	switch p := n.payload.(type) {
	case *Outcome:
		errs = p.Errors
	case *FixtureSummary:
		errs = p.Errors()
	}
	for _, err := range errs {
		out.Errors = append(out.Errors, err.Error())
	}
	return json.Marshal(out)
}
