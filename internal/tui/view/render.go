package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"fixturectl/internal/navigator"
	"fixturectl/internal/results"
	"fixturectl/internal/tui/model"
)

const (
	headerHeight    = 1
	statusBarHeight = 1
	// panel border and padding on each axis
	panelChromeWidth  = 4
	panelChromeHeight = 2
	minListWidth      = 24
)

// Layout splits the terminal into the sibling list, the detail pane and the body height.
func Layout(width, height int) (listWidth, detailWidth, bodyHeight int) {
	bodyHeight = height - headerHeight - statusBarHeight
	if bodyHeight < panelChromeHeight+1 {
		bodyHeight = panelChromeHeight + 1
	}
	listWidth = width / 3
	if listWidth < minListWidth {
		listWidth = minListWidth
	}
	detailWidth = width - listWidth
	if detailWidth < panelChromeWidth+1 {
		detailWidth = panelChromeWidth + 1
	}
	return listWidth, detailWidth, bodyHeight
}

// InnerSize returns the content size of a panel of the given outer size.
func InnerSize(width, height int) (int, int) {
	return max(width-panelChromeWidth, 1), max(height-panelChromeHeight, 1)
}

// Render draws the whole browser.
func Render(m *model.Model) string {
	if m.Width == 0 || m.Height == 0 {
		return "Initializing..."
	}

	header := renderHeader(m)
	status := renderStatusBar(m)
	listWidth, detailWidth, bodyHeight := Layout(m.Width, m.Height)

	var body string
	switch m.CurrentAppMode {
	case model.ModeHelpOverlay:
		body = renderPanel(m.Help.FullHelpView(m.Keys.FullHelp()), m.Width, bodyHeight, true)
	case model.ModeLogOverlay:
		body = renderPanel(m.LogViewport.View(), m.Width, bodyHeight, true)
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			renderPanel(renderSiblings(m, listWidth-panelChromeWidth), listWidth, bodyHeight, false),
			renderPanel(m.DetailViewport.View(), detailWidth, bodyHeight, true),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func renderHeader(m *model.Model) string {
	path := strings.Join(m.Navigator.Path(), " › ")
	text := fmt.Sprintf("fixturectl  %s  [detail %d]", path, m.Navigator.DetailLevel())
	return headerStyle.Width(m.Width).Render(Truncate(text, m.Width-4))
}

func renderPanel(content string, width, height int, focused bool) string {
	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	innerW, innerH := InnerSize(width, height)
	return style.Width(innerW + 2).Height(innerH).MaxHeight(height).Render(content)
}

// renderSiblings lists the current node and its siblings, marking the cursor.
func renderSiblings(m *model.Model, width int) string {
	current := m.Navigator.Current()
	siblings := []*results.Node{current}
	if parent := current.Parent(); parent != nil {
		siblings = parent.Children()
	}

	lines := make([]string, 0, len(siblings))
	for _, n := range siblings {
		prefix := "  "
		if n == current {
			prefix = IconPointer + " "
		}
		line := Truncate(fmt.Sprintf("%s%s %s", prefix, StatusIcon(n), n.Label()), width)
		if n == current {
			line = selectedStyle.Render(line)
		} else {
			line = statusStyle(n).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// StatusIcon maps a node status onto an icon.
func StatusIcon(n *results.Node) string {
	switch navigator.NodeStatus(n) {
	case "PASSED":
		return IconCheck
	case "FAILED":
		return IconCross
	case "BROKEN":
		return IconFire
	case "IGNORED", "NOT_RUN":
		return IconSkip
	default:
		return IconInfo
	}
}

func statusStyle(n *results.Node) lipgloss.Style {
	switch navigator.NodeStatus(n) {
	case "PASSED":
		return passedStyle
	case "FAILED":
		return failedStyle
	case "BROKEN":
		return brokenStyle
	default:
		return skippedStyle
	}
}

func renderStatusBar(m *model.Model) string {
	if m.StatusBarMessage == "" {
		return statusBarStyle.Width(m.Width).Render(m.Help.ShortHelpView(m.Keys.ShortHelp()))
	}
	style := statusBarInfoStyle
	switch m.StatusBarMessageType {
	case model.StatusBarSuccess:
		style = statusBarSuccessStyle
	case model.StatusBarWarning:
		style = statusBarWarningStyle
	case model.StatusBarError:
		style = statusBarErrorStyle
	}
	return style.Width(m.Width).Render(Truncate(m.StatusBarMessage, m.Width-2))
}

// Truncate shortens s to at most width terminal cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// PrepareLogContent truncates long lines to avoid viewport wrapping and colours them by level.
func PrepareLogContent(lines []string, maxWidth int) string {
	out := make([]string, len(lines))
	for i, raw := range lines {
		line := raw
		if maxWidth > 0 {
			line = Truncate(line, maxWidth)
		}
		out[i] = styleLogLine(line)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, " ERROR "):
		return logErrorStyle.Render(l)
	case strings.Contains(l, " WARN "):
		return logWarnStyle.Render(l)
	case strings.Contains(l, " DEBUG "):
		return logDebugStyle.Render(l)
	default:
		return l
	}
}
