// Package tui provides the terminal chat widget for docchat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/docchat/internal/models"
	"github.com/diogo/docchat/internal/render"
)

// Style variables (rebuilt when theme changes)
var (
	theme render.TUITheme

	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userBubbleStyle     lipgloss.Style
	userLabelStyle      lipgloss.Style
	botBubbleStyle      lipgloss.Style
	botLabelStyle       lipgloss.Style
	pendingStyle        lipgloss.Style
	welcomeStyle        lipgloss.Style
	welcomeTitleStyle   lipgloss.Style
	statusLineBaseStyle lipgloss.Style

	inputPanelStyle  lipgloss.Style
	inputLabelStyle  lipgloss.Style
	lockedInputStyle lipgloss.Style
	loadingStyle     lipgloss.Style
	noticeStyle      lipgloss.Style
	statusBarStyle   lipgloss.Style
	statusKeyStyle   lipgloss.Style
	statusDescStyle  lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles from the active TUI theme
func UpdateTheme() {
	theme = render.GetTUITheme()
	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(theme.User).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(theme.TextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(theme.TextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.User).
		Foreground(theme.Text).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(theme.User).
		Bold(true).
		MarginLeft(4)

	botBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Bot).
		Foreground(theme.Text).
		Padding(0, 1).
		MarginRight(4)

	botLabelStyle = lipgloss.NewStyle().
		Foreground(theme.Bot).
		Bold(true)

	pendingStyle = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(theme.Bot).
		Bold(true).
		Align(lipgloss.Center)

	statusLineBaseStyle = lipgloss.NewStyle().
		Padding(0, 1)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(theme.User).
		Bold(true)

	lockedInputStyle = lipgloss.NewStyle().
		Foreground(theme.TextMute).
		Italic(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(theme.Processing).
		Bold(true)

	noticeStyle = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(theme.TextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(theme.TextMute)
}

// statusLineStyle colors the upload status line by state
func statusLineStyle(state models.StatusState) lipgloss.Style {
	style := statusLineBaseStyle.Foreground(theme.StatusColor(state))
	if state == models.StatusError {
		style = style.Bold(true)
	}
	return style
}
