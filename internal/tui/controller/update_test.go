package controller

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixturectl/internal/navigator"
	"fixturectl/internal/runner"
	"fixturectl/internal/selftest"
	"fixturectl/internal/tui/model"
	"fixturectl/internal/tui/view"
	"fixturectl/pkg/logging"
)

func newTestModel(t *testing.T, logs <-chan logging.LogEntry) *model.Model {
	t.Helper()
	types, _ := selftest.Builtins()
	root, err := runner.New(runner.DefaultConfiguration(), nil).Run(context.Background(), types)
	require.NoError(t, err)

	m, err := model.InitializeModel(root, navigator.DetailStatus, logs)
	require.NoError(t, err)
	m, _ = Update(tea.WindowSizeMsg{Width: 120, Height: 40}, m)
	return m
}

func press(m *model.Model, keys ...string) (*model.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}, m)
	}
	return m, cmd
}

func TestUpdate_Navigation(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, "d")
	assert.Equal(t, selftest.LifecycleFixture, m.Navigator.Current().Label())

	m, _ = press(m, "r", "r")
	assert.Equal(t, selftest.FaultySetupFixture, m.Navigator.Current().Label())

	m, _ = press(m, "l", "d")
	assert.Equal(t, "Fails", m.Navigator.Current().Label())
	assert.Contains(t, m.DetailText(), "test [FAILED] Fails")

	m, _ = press(m, "t")
	assert.True(t, m.Navigator.Current().IsRoot())
}

func TestUpdate_BoundaryShowsStatus(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := press(m, "u")
	assert.NotNil(t, cmd)
	assert.Equal(t, navigator.ErrNodeIsRootNode.Error(), m.StatusBarMessage)
	assert.Equal(t, model.StatusBarWarning, m.StatusBarMessageType)
	assert.True(t, m.Navigator.Current().IsRoot())

	m, _ = Update(model.ClearStatusBarMsg{}, m)
	assert.Empty(t, m.StatusBarMessage)
}

func TestUpdate_DetailLevels(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(m, "d", "r", "d")

	m, _ = press(m, "2")
	assert.Equal(t, navigator.DetailFull, m.Navigator.DetailLevel())
	assert.Contains(t, m.DetailText(), "scripted failure")

	m, _ = press(m, "0")
	assert.NotContains(t, m.DetailText(), "scripted failure")
}

func TestUpdate_Overlays(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, "h")
	assert.Equal(t, model.ModeHelpOverlay, m.CurrentAppMode)
	m, _ = press(m, "d")
	assert.True(t, m.Navigator.Current().IsRoot(), "help overlay swallows navigation")
	m, _ = Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.Equal(t, model.ModeBrowse, m.CurrentAppMode)

	m, _ = press(m, "L")
	assert.Equal(t, model.ModeLogOverlay, m.CurrentAppMode)
	m, _ = press(m, "L")
	assert.Equal(t, model.ModeBrowse, m.CurrentAppMode)
}

func TestUpdate_CopyDetails(t *testing.T) {
	original := writeClipboard
	defer func() { writeClipboard = original }()

	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}

	m := newTestModel(t, nil)
	m, _ = press(m, "y")
	assert.Equal(t, m.DetailText(), copied)
	assert.Equal(t, model.StatusBarSuccess, m.StatusBarMessageType)

	writeClipboard = func(string) error { return errors.New("no display") }
	m, _ = press(m, "y")
	assert.Equal(t, model.StatusBarError, m.StatusBarMessageType)
	assert.Contains(t, m.StatusBarMessage, "no display")
}

func TestUpdate_LogEntries(t *testing.T) {
	logs := make(chan logging.LogEntry, 1)
	m := newTestModel(t, logs)

	entry := logging.LogEntry{Timestamp: time.Now(), Level: logging.LevelWarn, Subsystem: "Pipeline", Message: "slow hook"}
	m, cmd := Update(model.NewLogEntryMsg{Entry: entry}, m)

	require.Len(t, m.ActivityLog, 1)
	assert.Contains(t, m.ActivityLog[0], "[Pipeline] slow hook")
	assert.NotNil(t, cmd, "re-subscribes to the log channel")

	close(logs)
	msg := cmd()
	assert.IsType(t, model.LogChannelClosedMsg{}, msg)
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := press(m, "q")
	assert.True(t, m.QuitApp)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_View(t *testing.T) {
	m := newTestModel(t, nil)
	app := NewAppModel(m)

	out := app.View()
	assert.Contains(t, out, "fixturectl")
	assert.Contains(t, out, "[detail 0]")

	updated, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	out = updated.View()
	assert.True(t, strings.Contains(out, selftest.LifecycleFixture))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", view.Truncate("short", 10))
	assert.Equal(t, "abcd…", view.Truncate("abcdefghij", 5))
	assert.Equal(t, "日本…", view.Truncate("日本語テキスト", 5))
	assert.Equal(t, "", view.Truncate("anything", 0))
}
