package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"fixturectl/internal/navigator"
	"fixturectl/internal/results"
	"fixturectl/internal/tui/model"
	"fixturectl/pkg/logging"
)

// NewProgram creates a Bubble Tea program browsing the tree rooted at root.
func NewProgram(root *results.Node, detail navigator.DetailLevel, logChannel <-chan logging.LogEntry) (*tea.Program, error) {
	m, err := model.InitializeModel(root, detail, logChannel)
	if err != nil {
		return nil, err
	}

	app := NewAppModel(m)

	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, nil
}
