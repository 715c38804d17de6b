package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/docchat/internal/models"
)

// TUITheme is the palette of the chat widget
type TUITheme struct {
	Name        string
	Description string

	Surface lipgloss.Color
	Border  lipgloss.Color

	// Speaker colors
	User lipgloss.Color
	Bot  lipgloss.Color

	// Status line colors
	Processing lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultTUITheme is used when the configured name is unknown
const DefaultTUITheme = "tokyonight"

var tuiThemes = map[string]TUITheme{
	"tokyonight": {
		Name:        "tokyonight",
		Description: "Tokyo Night, dark with blue accents",
		Surface:     lipgloss.Color("#24283b"),
		Border:      lipgloss.Color("#414868"),
		User:        lipgloss.Color("#7aa2f7"),
		Bot:         lipgloss.Color("#bb9af7"),
		Processing:  lipgloss.Color("#e0af68"),
		Success:     lipgloss.Color("#9ece6a"),
		Error:       lipgloss.Color("#f7768e"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
		TextMute:    lipgloss.Color("#3b4261"),
	},
	"catppuccin": {
		Name:        "catppuccin",
		Description: "Catppuccin Mocha, warm pastels",
		Surface:     lipgloss.Color("#313244"),
		Border:      lipgloss.Color("#45475a"),
		User:        lipgloss.Color("#89b4fa"),
		Bot:         lipgloss.Color("#cba6f7"),
		Processing:  lipgloss.Color("#f9e2af"),
		Success:     lipgloss.Color("#a6e3a1"),
		Error:       lipgloss.Color("#f38ba8"),
		Text:        lipgloss.Color("#cdd6f4"),
		TextDim:     lipgloss.Color("#6c7086"),
		TextMute:    lipgloss.Color("#45475a"),
	},
	"nord": {
		Name:        "nord",
		Description: "Nord, cool arctic tones",
		Surface:     lipgloss.Color("#3b4252"),
		Border:      lipgloss.Color("#4c566a"),
		User:        lipgloss.Color("#88c0d0"),
		Bot:         lipgloss.Color("#b48ead"),
		Processing:  lipgloss.Color("#ebcb8b"),
		Success:     lipgloss.Color("#a3be8c"),
		Error:       lipgloss.Color("#bf616a"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
		TextMute:    lipgloss.Color("#4c566a"),
	},
	"dracula": {
		Name:        "dracula",
		Description: "Dracula, vibrant dark",
		Surface:     lipgloss.Color("#44475a"),
		Border:      lipgloss.Color("#6272a4"),
		User:        lipgloss.Color("#8be9fd"),
		Bot:         lipgloss.Color("#ff79c6"),
		Processing:  lipgloss.Color("#f1fa8c"),
		Success:     lipgloss.Color("#50fa7b"),
		Error:       lipgloss.Color("#ff5555"),
		Text:        lipgloss.Color("#f8f8f2"),
		TextDim:     lipgloss.Color("#6272a4"),
		TextMute:    lipgloss.Color("#44475a"),
	},
}

var (
	themeMu      sync.RWMutex
	currentTheme = tuiThemes[DefaultTUITheme]
)

// GetTUITheme returns the active theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates a theme by name and reports whether it exists
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName looks up a theme
func GetTUIThemeByName(name string) (TUITheme, bool) {
	theme, ok := tuiThemes[name]
	return theme, ok
}

// TUIThemeNames returns the theme names in sorted order
func TUIThemeNames() []string {
	names := make([]string, 0, len(tuiThemes))
	for name := range tuiThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StatusColor picks the status line color for a state
func (t TUITheme) StatusColor(state models.StatusState) lipgloss.Color {
	switch state {
	case models.StatusProcessing:
		return t.Processing
	case models.StatusSuccess:
		return t.Success
	case models.StatusError:
		return t.Error
	default:
		return t.TextDim
	}
}

// RoleColor picks the label color for a transcript entry
func (t TUITheme) RoleColor(role models.Role) lipgloss.Color {
	if role == models.RoleUser {
		return t.User
	}
	return t.Bot
}
