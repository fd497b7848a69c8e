package results

import (
	"errors"
	"fmt"
	"time"
)

// ErrWrongParent is returned when a node is appended under a node of the wrong kind.
var ErrWrongParent = errors.New("node appended under wrong parent kind")

// Builder grows a result tree rooted at a single assembly node. Nodes are only ever
// appended; re-running a fixture appends a new fixture subtree.
type Builder struct {
	root *Node
	now  func() time.Time
}

// NewBuilder creates a builder whose root is an assembly node with the given name.
func NewBuilder(assembly string) *Builder {
	b := &Builder{now: time.Now}
	b.root = &Node{
		label: assembly,
		kind:  KindAssembly,
		payload: &AssemblySummary{
			Name:      assembly,
			StartedAt: b.now(),
		},
	}
	return b
}

// Root returns the assembly node.
func (b *Builder) Root() *Node {
	return b.root
}

// Now returns the builder's clock reading; the pipeline stamps outcomes with it.
func (b *Builder) Now() time.Time {
	return b.now()
}

// SetClock replaces the time source. Intended for tests.
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}

func (b *Builder) assembly() *AssemblySummary {
	s, _ := b.root.AssemblySummary()
	return s
}

// AddFixture appends a fixture node under the assembly.
func (b *Builder) AddFixture(summary *FixtureSummary) *Node {
	if summary.StartedAt.IsZero() {
		summary.StartedAt = b.now()
	}
	node := &Node{
		label:   summary.Fixture,
		kind:    KindFixture,
		parent:  b.root,
		payload: summary,
	}
	b.root.children = append(b.root.children, node)
	b.assembly().Fixtures++
	return node
}

// AddTest appends a finished outcome under a fixture node and updates the summaries.
func (b *Builder) AddTest(fixture *Node, outcome *Outcome) (*Node, error) {
	summary, ok := fixture.FixtureSummary()
	if !ok || fixture.Root() != b.root {
		return nil, fmt.Errorf("%w: %s is a %s node", ErrWrongParent, fixture.label, fixture.kind)
	}

	node := &Node{
		label:   outcome.Test,
		kind:    KindTest,
		parent:  fixture,
		payload: outcome,
	}
	fixture.children = append(fixture.children, node)

	asm := b.assembly()
	switch outcome.Status {
	case StatusPassed:
		summary.Passed++
		asm.Passed++
	case StatusFailed:
		summary.Failed++
		asm.Failed++
	default:
		summary.NotRun++
		asm.NotRun++
	}
	return node, nil
}

// CompleteFixture stamps the fixture completion time and folds fixture-level errors into
// the assembly summary.
func (b *Builder) CompleteFixture(fixture *Node) {
	summary, ok := fixture.FixtureSummary()
	if !ok {
		return
	}
	summary.CompletedAt = b.now()

	asm := b.assembly()
	if len(summary.Errors()) > 0 {
		asm.Broken++
	}
	asm.CompletedAt = summary.CompletedAt
}
