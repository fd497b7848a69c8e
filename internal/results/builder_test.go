package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildsOrderedTree(t *testing.T) {
	b := NewBuilder("suite")
	root := b.Root()

	assert.True(t, root.IsRoot())
	assert.True(t, root.IsLeaf())
	assert.Equal(t, KindAssembly, root.Kind())

	fx := b.AddFixture(&FixtureSummary{Fixture: "Accounts"})
	_, err := b.AddTest(fx, &Outcome{Test: "Deposit", Status: StatusPassed})
	require.NoError(t, err)
	_, err = b.AddTest(fx, &Outcome{Test: "Withdraw", Status: StatusFailed, Errors: []error{errors.New("boom")}})
	require.NoError(t, err)
	_, err = b.AddTest(fx, &Outcome{Test: "Overdraft", Status: StatusNotRun, Ignored: true, IgnoreReason: "later"})
	require.NoError(t, err)
	b.CompleteFixture(fx)

	assert.False(t, root.IsLeaf())
	assert.Equal(t, 1, root.ChildCount())
	assert.Equal(t, fx, root.Children()[0])
	assert.Equal(t, root, fx.Parent())

	var labels []string
	for _, c := range fx.Children() {
		labels = append(labels, c.Label())
		assert.Equal(t, fx, c.Parent())
		assert.True(t, c.IsLeaf())
	}
	assert.Equal(t, []string{"Deposit", "Withdraw", "Overdraft"}, labels)

	summary, ok := fx.FixtureSummary()
	require.True(t, ok)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.NotRun)
	assert.False(t, summary.Healthy())

	asm, ok := root.AssemblySummary()
	require.True(t, ok)
	assert.Equal(t, 1, asm.Fixtures)
	assert.Equal(t, 0, asm.Broken)
	assert.Equal(t, 1, asm.Failed)
	assert.False(t, asm.Healthy())

	third, _ := fx.Child(2)
	outcome, ok := third.Outcome()
	require.True(t, ok)
	assert.True(t, outcome.Ignored)
	assert.Equal(t, 2, third.Index())
}

func TestBuilder_RerunAppendsNewSubtree(t *testing.T) {
	b := NewBuilder("suite")
	first := b.AddFixture(&FixtureSummary{Fixture: "Accounts", RunID: "1"})
	second := b.AddFixture(&FixtureSummary{Fixture: "Accounts", RunID: "2"})

	require.Equal(t, 2, b.Root().ChildCount())
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, first.Index())
	assert.Equal(t, 1, second.Index())
}

func TestBuilder_AddTestRejectsWrongParent(t *testing.T) {
	b := NewBuilder("suite")
	_, err := b.AddTest(b.Root(), &Outcome{Test: "stray"})
	assert.ErrorIs(t, err, ErrWrongParent)

	other := NewBuilder("other")
	foreign := other.AddFixture(&FixtureSummary{Fixture: "Foreign"})
	_, err = b.AddTest(foreign, &Outcome{Test: "stray"})
	assert.ErrorIs(t, err, ErrWrongParent)
}

func TestBuilder_CompleteFixtureCountsBroken(t *testing.T) {
	b := NewBuilder("suite")
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	b.SetClock(func() time.Time { return fixed })

	fx := b.AddFixture(&FixtureSummary{Fixture: "Broken", SetupErrors: []error{errors.New("db down")}})
	b.CompleteFixture(fx)

	asm, _ := b.Root().AssemblySummary()
	assert.Equal(t, 1, asm.Broken)
	assert.Equal(t, fixed, asm.CompletedAt)
	assert.False(t, asm.Healthy())
}

func TestNode_WalkAndJSON(t *testing.T) {
	b := NewBuilder("suite")
	fx := b.AddFixture(&FixtureSummary{Fixture: "Accounts", TeardownErrors: []error{errors.New("leak")}})
	_, err := b.AddTest(fx, &Outcome{Test: "Deposit", Status: StatusFailed, Errors: []error{errors.New("short by 1")}})
	require.NoError(t, err)

	var visited []string
	b.Root().Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Label())
		return true
	})
	assert.Equal(t, []string{"suite", "Accounts", "Deposit"}, visited)

	data, err := json.Marshal(b.Root())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	children := decoded["children"].([]interface{})
	fixture := children[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"leak"}, fixture["errors"])
	test := fixture["children"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"short by 1"}, test["errors"])
}

func TestErrorType(t *testing.T) {
	base := errors.New("base")
	assert.Equal(t, "", ErrorType(nil))
	assert.Equal(t, "*errors.errorString", ErrorType(base))
	assert.Equal(t, "*fmt.wrapError(*errors.errorString)", ErrorType(fmt.Errorf("ctx: %w", base)))
}
