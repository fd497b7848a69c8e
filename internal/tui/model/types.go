package model

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"fixturectl/internal/navigator"
	"fixturectl/pkg/logging"
)

// MaxActivityLogLines bounds the in-memory activity log.
const MaxActivityLogLines = 500

// AppMode selects what the main area shows.
type AppMode int

const (
	// ModeBrowse shows the node under the cursor
	ModeBrowse AppMode = iota
	// ModeHelpOverlay shows the full key help
	ModeHelpOverlay
	// ModeLogOverlay shows the activity log
	ModeLogOverlay
)

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarWarning
	StatusBarError
)

// Model is the state of the result browser.
type Model struct {
	Navigator *navigator.Navigator

	// Terminal dimensions
	Width  int
	Height int

	CurrentAppMode AppMode
	Keys           KeyMap
	Help           help.Model

	// Detail pane holding navigator.Describe output for the current node
	DetailViewport viewport.Model
	LogViewport    viewport.Model

	ActivityLog      []string
	ActivityLogDirty bool
	LogChannel       <-chan logging.LogEntry

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	QuitApp bool
}

// SetStatusMessage shows message in the status bar and clears it after clearAfter. A newer
// message cancels the pending clear of an older one.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// AddRawLineToActivityLog appends a formatted entry, keeping at most MaxActivityLogLines.
func (m *Model) AddRawLineToActivityLog(entry string) {
	m.ActivityLog = append(m.ActivityLog, entry)
	if len(m.ActivityLog) > MaxActivityLogLines {
		m.ActivityLog = m.ActivityLog[len(m.ActivityLog)-MaxActivityLogLines:]
	}
	m.ActivityLogDirty = true
}
