package view

import (
	"github.com/charmbracelet/lipgloss"
)

// Icons shown next to node statuses.
const (
	IconCheck   = "✔"
	IconCross   = "✘"
	IconSkip    = "⏭"
	IconFire    = "🔥"
	IconInfo    = "ℹ"
	IconPointer = "▶"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#303030"}).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#505050"}).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"})

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"})

	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007700", Dark: "#5FD75F"})
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"})
	brokenStyle  = failedStyle.Bold(true)
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7F7F7F", Dark: "#8A8A8A"})

	statusBarStyle = lipgloss.NewStyle().Padding(0, 1)

	statusBarInfoStyle    = statusBarStyle.Background(lipgloss.AdaptiveColor{Light: "#D0E7FF", Dark: "#1F3A5F"})
	statusBarSuccessStyle = statusBarStyle.Background(lipgloss.AdaptiveColor{Light: "#D7FFD7", Dark: "#1F4F1F"})
	statusBarWarningStyle = statusBarStyle.Background(lipgloss.AdaptiveColor{Light: "#FFF5D0", Dark: "#5F4F1F"})
	statusBarErrorStyle   = statusBarStyle.Background(lipgloss.AdaptiveColor{Light: "#FFD7D7", Dark: "#5F1F1F"})

	logErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"})
	logWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFAF5F"})
	logDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7F7F7F", Dark: "#8A8A8A"})
)
