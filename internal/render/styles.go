package render

// Glamour standard style names accepted by Options.Style.
// Any other value is treated as a path to a JSON style file.
const (
	StyleAuto       = "auto"
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleInfo describes a markdown style for `config show`
type StyleInfo struct {
	Name        string
	Description string
}

var standardStyles = []StyleInfo{
	{Name: StyleDark, Description: "Dark theme (default)"},
	{Name: StyleLight, Description: "Light theme for bright terminals"},
	{Name: StyleAuto, Description: "Dark or light, detected from the terminal"},
	{Name: StyleDracula, Description: "Dracula color scheme"},
	{Name: StyleTokyoNight, Description: "Tokyo Night color scheme"},
	{Name: StylePink, Description: "Pink accents"},
	{Name: StyleNoTTY, Description: "Plain text (no styling)"},
	{Name: StyleASCII, Description: "ASCII-only output"},
}

// IsStandardStyle reports whether style names a glamour standard style
// rather than a style file.
func IsStandardStyle(style string) bool {
	for _, s := range standardStyles {
		if s.Name == style {
			return true
		}
	}
	return false
}

// AvailableStyles returns the standard markdown styles
func AvailableStyles() []StyleInfo {
	out := make([]StyleInfo, len(standardStyles))
	copy(out, standardStyles)
	return out
}

// StyleNames returns just the style names.
func StyleNames() []string {
	names := make([]string, len(standardStyles))
	for i, s := range standardStyles {
		names[i] = s.Name
	}
	return names
}
