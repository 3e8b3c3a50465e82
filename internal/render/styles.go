package render

import "strings"

// Glamour's built-in style names
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

// StyleInfo describes a markdown style for display purposes.
type StyleInfo struct {
	Name        string
	Description string
}

// AvailableStyles lists the built-in markdown styles.
func AvailableStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleDark, Description: "Dark theme (default)"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: StyleAuto, Description: "Dark or light, following the terminal background"},
		{Name: StyleDracula, Description: "Dracula color scheme"},
		{Name: StyleTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: StylePink, Description: "Pink accents"},
		{Name: StyleNoTTY, Description: "Plain text (no styling)"},
		{Name: StyleASCII, Description: "ASCII-only output"},
	}
}

// IsBuiltinStyle reports whether style names one of AvailableStyles.
func IsBuiltinStyle(style string) bool {
	for _, s := range AvailableStyles() {
		if s.Name == style {
			return true
		}
	}
	return false
}

// resolveStyle maps legacy aliases onto glamour names; an empty style
// means the default.
func resolveStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "":
		return StyleDark
	case "tokyonight":
		return StyleTokyoNight
	default:
		return style
	}
}
