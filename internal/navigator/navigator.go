// Package navigator moves a cursor over a result tree. A failed move returns a sentinel error
// and leaves the cursor where it was.
package navigator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fixturectl/internal/results"
)

var (
	ErrNodeIsRootNode        = errors.New("node is the root node")
	ErrNodeIsLeafNode        = errors.New("node is a leaf node")
	ErrNodeIsFirstChild      = errors.New("node is the first child")
	ErrNodeIsLastChild       = errors.New("node is the last child")
	ErrNodeIsOutOfRange      = errors.New("child index is out of range")
	ErrDetailLevelOutOfRange = errors.New("detail level is out of range")
	ErrUnknownCommand        = errors.New("unknown navigation command")
)

// DetailLevel selects how much of a node Describe renders.
type DetailLevel int

const (
	// DetailStatus shows labels and statuses only
	DetailStatus DetailLevel = iota
	// DetailErrorTypes adds the type of every recorded error
	DetailErrorTypes
	// DetailFull adds the full error text
	DetailFull
)

// MaxDetailLevel is the highest accepted detail level.
const MaxDetailLevel = DetailFull

// Navigator is a cursor over one result tree. It is not safe for concurrent use.
type Navigator struct {
	current *results.Node
	detail  DetailLevel
}

// New places a cursor on root at detail level 0.
func New(root *results.Node) *Navigator {
	return &Navigator{current: root}
}

// Current returns the node under the cursor.
func (n *Navigator) Current() *results.Node {
	return n.current
}

// DetailLevel returns the current detail level.
func (n *Navigator) DetailLevel() DetailLevel {
	return n.detail
}

// Up moves to the parent.
func (n *Navigator) Up() error {
	if n.current.IsRoot() {
		return ErrNodeIsRootNode
	}
	n.current = n.current.Parent()
	return nil
}

// Down moves to the first child.
func (n *Navigator) Down() error {
	child, ok := n.current.Child(0)
	if !ok {
		return ErrNodeIsLeafNode
	}
	n.current = child
	return nil
}

// Left moves to the previous sibling.
func (n *Navigator) Left() error {
	if n.current.IsRoot() {
		return ErrNodeIsFirstChild
	}
	prev, ok := n.current.Parent().Child(n.current.Index() - 1)
	if !ok {
		return ErrNodeIsFirstChild
	}
	n.current = prev
	return nil
}

// Right moves to the next sibling.
func (n *Navigator) Right() error {
	if n.current.IsRoot() {
		return ErrNodeIsLastChild
	}
	next, ok := n.current.Parent().Child(n.current.Index() + 1)
	if !ok {
		return ErrNodeIsLastChild
	}
	n.current = next
	return nil
}

// GoToChild moves to the child at index i.
func (n *Navigator) GoToChild(i int) error {
	child, ok := n.current.Child(i)
	if !ok {
		return fmt.Errorf("%w: %d of %d", ErrNodeIsOutOfRange, i, n.current.ChildCount())
	}
	n.current = child
	return nil
}

// SetDetailLevel changes how much Describe renders.
func (n *Navigator) SetDetailLevel(level DetailLevel) error {
	if level < DetailStatus || level > MaxDetailLevel {
		return fmt.Errorf("%w: %d", ErrDetailLevelOutOfRange, level)
	}
	n.detail = level
	return nil
}

// Root moves to the root of the tree. It never fails.
func (n *Navigator) Root() {
	n.current = n.current.Root()
}

// Path returns the labels from the root to the current node.
func (n *Navigator) Path() []string {
	var path []string
	for cur := n.current; cur != nil; cur = cur.Parent() {
		path = append(path, cur.Label())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Execute applies a single navigation command:
//
//	u d l r   move up, down, left, right
//	0 1 2     set the detail level
//	g<N>      go to child N
func (n *Navigator) Execute(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	switch cmd {
	case "u":
		return n.Up()
	case "d":
		return n.Down()
	case "l":
		return n.Left()
	case "r":
		return n.Right()
	case "0", "1", "2":
		level, _ := strconv.Atoi(cmd)
		return n.SetDetailLevel(DetailLevel(level))
	}

	if rest, ok := strings.CutPrefix(cmd, "g"); ok {
		i, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
		}
		return n.GoToChild(i)
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}
