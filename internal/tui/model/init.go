package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"fixturectl/internal/navigator"
	"fixturectl/internal/results"
	"fixturectl/pkg/logging"
)

// InitializeModel creates a browser over the tree rooted at root. logChannel may be nil.
func InitializeModel(root *results.Node, detail navigator.DetailLevel, logChannel <-chan logging.LogEntry) (*Model, error) {
	nav := navigator.New(root)
	if err := nav.SetDetailLevel(detail); err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	m := &Model{
		Navigator:      nav,
		CurrentAppMode: ModeBrowse,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		DetailViewport: viewport.New(80, 20),
		LogViewport:    viewport.New(80, 20),
		LogChannel:     logChannel,
	}
	m.RefreshDetail()
	return m, nil
}

// Init starts listening for log entries.
func (m *Model) Init() tea.Cmd {
	return m.ListenForLogs()
}

// ListenForLogs waits for the next log entry. The handler of NewLogEntryMsg re-subscribes.
func (m *Model) ListenForLogs() tea.Cmd {
	if m.LogChannel == nil {
		return nil
	}
	ch := m.LogChannel
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return LogChannelClosedMsg{}
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// DetailText returns the description of the node under the cursor.
func (m *Model) DetailText() string {
	return strings.Join(m.Navigator.Describe(), "\n")
}

// RefreshDetail re-renders the detail pane after a move or detail level change.
func (m *Model) RefreshDetail() {
	m.DetailViewport.SetContent(m.DetailText())
	m.DetailViewport.GotoTop()
}
