package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"presencesync/internal/workflow"
)

// Logger handles logging and viewport management
type Logger struct {
	logView viewport.Model
	logs    []string
	maxLogs int
	width   int
	height  int
}

// NewLogger creates a new logger instance
func NewLogger() *Logger {
	v := viewport.New(80, 10)
	// Border/padding are applied by the surrounding log panel.
	v.Style = lipgloss.NewStyle()

	return &Logger{
		logView: v,
		logs:    make([]string, 0),
		maxLogs: 500,
	}
}

// AddLog adds a log line to the logger
func (l *Logger) AddLog(line string) {
	l.logs = append(l.logs, line)
	if len(l.logs) > l.maxLogs {
		l.logs = l.logs[1:]
	}
	l.refreshLogView()
}

// AddOutput adds an executor output line, marking warnings.
func (l *Logger) AddOutput(out workflow.Output) {
	if out.IsErr {
		l.AddLog("Warning: " + out.Text)
		return
	}
	l.AddLog(out.Text)
}

// Lines returns the buffered log lines.
func (l *Logger) Lines() []string {
	return l.logs
}

// SetSize updates the viewport size
func (l *Logger) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.logView.Width = max(20, width-6)
	// Favor showing logs while still leaving room for the presence card.
	l.logView.Height = min(max(6, height/3), max(6, height-20))
	l.refreshLogView()
}

// GetView returns the viewport model for rendering
func (l *Logger) GetView() viewport.Model {
	return l.logView
}

// Update handles viewport updates
func (l *Logger) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.logView, cmd = l.logView.Update(msg)
	return cmd
}

// refreshLogView updates the viewport content with styled logs
func (l *Logger) refreshLogView() {
	wasAtBottom := l.logView.AtBottom()

	w := l.logView.Width
	if w <= 0 {
		w = max(30, l.width-6)
	}

	lines := make([]string, 0, len(l.logs))
	for _, logText := range l.logs {
		// Truncate *before* styling so we don't cut ANSI sequences.
		line := truncate(logText, max(10, w-2))
		style := logLineStyle

		switch {
		case strings.HasPrefix(logText, "Error"):
			style = logErrorStyle
		case strings.HasPrefix(logText, "Warning"):
			style = logLineStyle.Foreground(warningColor)
		case strings.HasPrefix(logText, "Published"):
			style = logLineStyle.Foreground(successColor)
		case strings.HasPrefix(logText, "Title"):
			style = logLineStyle.Foreground(highlightColor)
		}

		lines = append(lines, style.Render(line))
	}

	l.logView.SetContent(strings.Join(lines, "\n"))
	if wasAtBottom {
		l.logView.GotoBottom()
	}
}
