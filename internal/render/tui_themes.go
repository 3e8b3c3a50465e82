package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the color palette of the chat view.
type TUITheme struct {
	Name        string
	Description string

	Border lipgloss.Color
	Muted  lipgloss.Color
	Text   lipgloss.Color

	// User and Agent color the role labels of the transcript
	User  lipgloss.Color
	Agent lipgloss.Color

	Accent lipgloss.Color
	Error  lipgloss.Color
}

// DefaultTUIThemeName is used when no theme is configured
const DefaultTUIThemeName = "tokyonight"

var tuiThemes = map[string]TUITheme{
	"tokyonight": {
		Name:        "tokyonight",
		Description: "Tokyo Night, dark with blue accents",
		Border:      "#414868",
		Muted:       "#565f89",
		Text:        "#c0caf5",
		User:        "#7aa2f7",
		Agent:       "#9ece6a",
		Accent:      "#bb9af7",
		Error:       "#f7768e",
	},
	"catppuccin": {
		Name:        "catppuccin",
		Description: "Catppuccin Mocha, warm pastels",
		Border:      "#45475a",
		Muted:       "#6c7086",
		Text:        "#cdd6f4",
		User:        "#89b4fa",
		Agent:       "#a6e3a1",
		Accent:      "#cba6f7",
		Error:       "#f38ba8",
	},
	"nord": {
		Name:        "nord",
		Description: "Nord, arctic cool tones",
		Border:      "#4c566a",
		Muted:       "#7b88a1",
		Text:        "#eceff4",
		User:        "#88c0d0",
		Agent:       "#a3be8c",
		Accent:      "#b48ead",
		Error:       "#bf616a",
	},
	"dracula": {
		Name:        "dracula",
		Description: "Dracula, vibrant dark",
		Border:      "#6272a4",
		Muted:       "#6272a4",
		Text:        "#f8f8f2",
		User:        "#8be9fd",
		Agent:       "#50fa7b",
		Accent:      "#ff79c6",
		Error:       "#ff5555",
	},
}

var (
	themeMu      sync.RWMutex
	currentTheme = tuiThemes[DefaultTUIThemeName]
)

// GetTUITheme returns the active theme.
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates the named theme. Unknown names leave the active
// theme unchanged and return false.
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

// GetTUIThemeByName looks a theme up case-insensitively.
func GetTUIThemeByName(name string) (TUITheme, bool) {
	theme, ok := tuiThemes[strings.ToLower(strings.TrimSpace(name))]
	return theme, ok
}

// TUIThemeNames returns the theme names in sorted order.
func TUIThemeNames() []string {
	names := make([]string, 0, len(tuiThemes))
	for name := range tuiThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
