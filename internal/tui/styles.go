package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#5865F2") // Blurple
	successColor   = lipgloss.Color("#34D399")
	errorColor     = lipgloss.Color("#F87171")
	warningColor   = lipgloss.Color("#FBBF24")
	mutedColor     = lipgloss.Color("#9CA3AF")
	highlightColor = lipgloss.Color("#60A5FA")

	surfaceColor = lipgloss.Color("#1F2937")
	borderColor  = lipgloss.Color("#374151")
	textColor    = lipgloss.Color("#F3F4F6")
	subtleColor  = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Italic(true).
			MarginLeft(2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Foreground(textColor).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Background(surfaceColor).
			Foreground(textColor).
			Padding(1, 2).
			Width(56)

	cardHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	cardMutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 2)

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlightColor)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Foreground(textColor).
			Padding(0, 1)

	logLineStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			PaddingLeft(1)

	logErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Italic(true).
			MarginTop(1)
)

const (
	iconConnected = "●"
	iconOffline   = "○"
	iconWarning   = "⚠"
	iconSuccess   = "✓"
	iconFailed    = "✗"
	iconHolding   = "◉"
)

// getStatusIcon summarizes the connection: enabled, enabled with a failed
// handshake, or disabled.
func getStatusIcon(enabled bool, connectErr error) string {
	switch {
	case enabled && connectErr != nil:
		return warningStyle.Render(iconWarning)
	case enabled:
		return successStyle.Render(iconConnected)
	default:
		return pendingStyle.Render(iconOffline)
	}
}

func getStatusText(enabled bool, connectErr error) string {
	switch {
	case enabled && connectErr != nil:
		return warningStyle.Render("handshake failed")
	case enabled:
		return successStyle.Render("enabled")
	default:
		return pendingStyle.Render("disabled")
	}
}
