package tui

import (
	"fmt"
	"strings"
)

func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPhase())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderPresence())
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Log"))
	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("e toggle presence • ↑/↓ scroll logs • q quit"))

	return b.String()
}

func (m *Model) renderHeader() string {
	return headerStyle.Render("◉ PRESENCESYNC") + subtitleStyle.Render("Rich presence preview")
}

func (m *Model) renderPhase() string {
	icon, ok := m.phase.Icon()
	if !ok {
		icon = m.spinner.View()
	}
	return phaseStyle.Render(fmt.Sprintf("%s %s", icon, m.phase.String()))
}

func (m *Model) renderStatus() string {
	title := "none"
	if m.titleID != "" {
		title = fmt.Sprintf("%s (%s)", truncate(m.title, 40), m.titleID)
	}

	lines := []string{
		fmt.Sprintf("%s Presence: %s", getStatusIcon(m.enabled, m.connectErr), getStatusText(m.enabled, m.connectErr)),
		fmt.Sprintf("Application: %s | Sink: %s", m.cfg.ApplicationID, m.cfg.Sink),
		fmt.Sprintf("Title: %s", title),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderPresence draws the record the way a chat client profile shows it.
func (m *Model) renderPresence() string {
	if m.record == nil {
		return cardStyle.Render(cardMutedStyle.Render("No presence published"))
	}
	rec := m.record

	var b strings.Builder
	b.WriteString(cardMutedStyle.Render("PLAYING A GAME"))
	b.WriteString("\n")
	b.WriteString(cardHeadingStyle.Render(rec.Details))
	b.WriteString("\n")
	b.WriteString(rec.State)
	b.WriteString("\n")
	if !rec.Start.IsZero() {
		b.WriteString(cardMutedStyle.Render(formatElapsed(m.now().Sub(rec.Start))))
		b.WriteString("\n")
	}
	b.WriteString(cardMutedStyle.Render(fmt.Sprintf("[%s] %s", rec.Assets.LargeImageKey, rec.Assets.LargeImageText)))
	if rec.Assets.SmallImageKey != "" {
		b.WriteString("\n")
		b.WriteString(cardMutedStyle.Render(fmt.Sprintf("[%s] %s", rec.Assets.SmallImageKey, rec.Assets.SmallImageText)))
	}

	return cardStyle.Render(b.String())
}

func (m *Model) renderProgress() string {
	total := 0
	if m.script != nil {
		total = len(m.script.Steps)
	}
	if total == 0 {
		return ""
	}
	percent := float64(m.step) / float64(total)
	return fmt.Sprintf("Steps %d/%d %s", m.step, total, m.progress.ViewAs(percent))
}

func (m *Model) renderLogs() string {
	viewportContent := m.logger.GetView().View()
	if len(m.logger.Lines()) == 0 {
		return logBoxStyle.Render("Waiting for events...")
	}
	return logBoxStyle.Render(viewportContent)
}
