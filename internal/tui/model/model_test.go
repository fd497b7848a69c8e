package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixturectl/internal/navigator"
	"fixturectl/internal/results"
)

func newTree(t *testing.T) *results.Node {
	t.Helper()
	b := results.NewBuilder("suite")
	f := b.AddFixture(&results.FixtureSummary{Fixture: "Accounts"})
	_, err := b.AddTest(f, &results.Outcome{Test: "Deposit", Status: results.StatusPassed})
	require.NoError(t, err)
	b.CompleteFixture(f)
	return b.Root()
}

func TestInitializeModel(t *testing.T) {
	m, err := InitializeModel(newTree(t), navigator.DetailErrorTypes, nil)
	require.NoError(t, err)

	assert.Equal(t, ModeBrowse, m.CurrentAppMode)
	assert.Equal(t, navigator.DetailErrorTypes, m.Navigator.DetailLevel())
	assert.Contains(t, m.DetailText(), "assembly [PASSED] suite")
	assert.Nil(t, m.Init(), "no log channel, nothing to listen to")

	_, err = InitializeModel(newTree(t), navigator.DetailLevel(7), nil)
	assert.ErrorIs(t, err, navigator.ErrDetailLevelOutOfRange)
}

func TestAddRawLineToActivityLog_Bounded(t *testing.T) {
	m := &Model{}
	for i := 0; i < MaxActivityLogLines+10; i++ {
		m.AddRawLineToActivityLog(fmt.Sprintf("line %d", i))
	}

	require.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.Equal(t, "line 10", m.ActivityLog[0])
	assert.True(t, m.ActivityLogDirty)
}

func TestSetStatusMessage_NewerCancelsOlder(t *testing.T) {
	m := &Model{}

	first := m.SetStatusMessage("first", StatusBarInfo, time.Millisecond)
	second := m.SetStatusMessage("second", StatusBarError, time.Millisecond)

	assert.Equal(t, "second", m.StatusBarMessage)
	assert.Equal(t, StatusBarError, m.StatusBarMessageType)
	assert.Nil(t, first(), "the superseded clear is cancelled")
	assert.IsType(t, ClearStatusBarMsg{}, second())
}

func TestDefaultKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	for _, group := range km.FullHelp() {
		for _, b := range group {
			assert.NotEmpty(t, b.Help().Key)
		}
	}
	assert.Contains(t, km.Quit.Keys(), "q")
	assert.True(t, key.Matches(keyMsg("?"), km.Help))
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
