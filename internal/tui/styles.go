// Package tui provides the terminal chat view for agentchat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/agentchat/internal/errors"
	"github.com/diogo/agentchat/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color
	colorMuted  lipgloss.Color
	colorText   lipgloss.Color
	colorUser   lipgloss.Color
	colorAgent  lipgloss.Color
	colorAccent lipgloss.Color
	colorError  lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style
	userBubbleStyle   lipgloss.Style
	userLabelStyle    lipgloss.Style
	agentBubbleStyle  lipgloss.Style
	agentLabelStyle   lipgloss.Style
	typingStyle       lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	errorStyle lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles from the active TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorMuted = theme.Muted
	colorText = theme.Text
	colorUser = theme.User
	colorAgent = theme.Agent
	colorAccent = theme.Accent
	colorError = theme.Error

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2).
		MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	// User turns sit on the right, agent turns on the left
	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true).
		MarginLeft(4)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorUser).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	agentLabelStyle = lipgloss.NewStyle().
		Foreground(colorAgent).
		Bold(true)

	agentBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorAgent).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	typingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// FormatError returns a styled error message with the details carried by
// the structured error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorMuted)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := errors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
		return sb.String()
	}

	switch {
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Is the backend running? Try 'agentchat health'"))
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The endpoint did not answer with JSON. Check --endpoint"))
	case errors.IsConfigError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'agentchat config show' to inspect the settings"))
	}

	return sb.String()
}
