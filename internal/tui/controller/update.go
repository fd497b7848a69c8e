package controller

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fixturectl/internal/navigator"
	"fixturectl/internal/tui/model"
	"fixturectl/internal/tui/view"
)

const statusMessageTTL = 3 * time.Second

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// Update is the main update function for the browser.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)

	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case model.NewLogEntryMsg:
		m.AddRawLineToActivityLog(msg.Entry.String())
		refreshLogViewport(m)
		return m, m.ListenForLogs()

	case model.LogChannelClosedMsg:
		return m, nil

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		m.StatusBarMessageType = model.StatusBarInfo
		m.StatusBarClearCancel = nil
		return m, nil
	}
	return m, nil
}

func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Help.Width = msg.Width

	_, detailWidth, bodyHeight := view.Layout(msg.Width, msg.Height)
	m.DetailViewport.Width, m.DetailViewport.Height = view.InnerSize(detailWidth, bodyHeight)
	m.LogViewport.Width, m.LogViewport.Height = view.InnerSize(msg.Width, bodyHeight)
	m.RefreshDetail()
	refreshLogViewport(m)
	return m, nil
}

func refreshLogViewport(m *model.Model) {
	if !m.ActivityLogDirty {
		return
	}
	m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog, m.LogViewport.Width))
	m.LogViewport.GotoBottom()
	m.ActivityLogDirty = false
}

func handleKeyMsg(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if key.Matches(keyMsg, m.Keys.Quit) {
		m.QuitApp = true
		return m, tea.Quit
	}

	// overlays swallow everything except their own toggles and scrolling
	switch m.CurrentAppMode {
	case model.ModeHelpOverlay:
		if key.Matches(keyMsg, m.Keys.Help, m.Keys.Esc) {
			m.CurrentAppMode = model.ModeBrowse
		}
		return m, nil
	case model.ModeLogOverlay:
		if key.Matches(keyMsg, m.Keys.ToggleLog, m.Keys.Esc) {
			m.CurrentAppMode = model.ModeBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(keyMsg)
		return m, cmd
	}

	nav := m.Navigator
	switch {
	case key.Matches(keyMsg, m.Keys.Help):
		m.CurrentAppMode = model.ModeHelpOverlay
		return m, nil
	case key.Matches(keyMsg, m.Keys.ToggleLog):
		m.CurrentAppMode = model.ModeLogOverlay
		return m, nil
	case key.Matches(keyMsg, m.Keys.Up):
		return applyMove(m, nav.Up())
	case key.Matches(keyMsg, m.Keys.Down):
		return applyMove(m, nav.Down())
	case key.Matches(keyMsg, m.Keys.Left):
		return applyMove(m, nav.Left())
	case key.Matches(keyMsg, m.Keys.Right):
		return applyMove(m, nav.Right())
	case key.Matches(keyMsg, m.Keys.Root):
		nav.Root()
		return applyMove(m, nil)
	case key.Matches(keyMsg, m.Keys.Detail0):
		return applyMove(m, nav.SetDetailLevel(navigator.DetailStatus))
	case key.Matches(keyMsg, m.Keys.Detail1):
		return applyMove(m, nav.SetDetailLevel(navigator.DetailErrorTypes))
	case key.Matches(keyMsg, m.Keys.Detail2):
		return applyMove(m, nav.SetDetailLevel(navigator.DetailFull))
	case key.Matches(keyMsg, m.Keys.Copy):
		if err := writeClipboard(m.DetailText()); err != nil {
			return m, m.SetStatusMessage("Copy failed: "+err.Error(), model.StatusBarError, statusMessageTTL)
		}
		return m, m.SetStatusMessage("Node details copied to clipboard", model.StatusBarSuccess, statusMessageTTL)
	}

	// anything else scrolls the detail pane
	var cmd tea.Cmd
	m.DetailViewport, cmd = m.DetailViewport.Update(keyMsg)
	return m, cmd
}

// applyMove refreshes the detail pane after a successful navigation, or reports the boundary
// the cursor ran into.
func applyMove(m *model.Model, err error) (*model.Model, tea.Cmd) {
	if err != nil {
		return m, m.SetStatusMessage(err.Error(), model.StatusBarWarning, statusMessageTTL)
	}
	m.RefreshDetail()
	return m, nil
}
