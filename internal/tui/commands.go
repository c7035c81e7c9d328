package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"presencesync/internal/script"
	"presencesync/internal/workflow"
)

type (
	eventMsg   struct{ event workflow.Event }
	runDoneMsg struct{ err error }
)

func (m *Model) startRun() tea.Cmd {
	ops, s, hold := m.operationManager, m.script, m.hold
	return func() tea.Msg {
		return runDoneMsg{err: ops.Run(s, hold)}
	}
}

func (m *Model) listenForEvents() tea.Cmd {
	ops := m.operationManager
	return func() tea.Msg {
		select {
		case <-ops.GetContext().Done():
			return nil
		case e := <-ops.GetEventChannel():
			return eventMsg{event: e}
		}
	}
}

// toggleEnabled asks the executor to flip the presence connection. The
// displayed state only changes once the executor reports it.
func (m *Model) toggleEnabled() {
	if m.phase.Done() {
		return
	}
	action := script.ActionEnable
	if m.enabled {
		action = script.ActionDisable
	}
	if !m.operationManager.Submit(script.Step{Action: action}) {
		m.logger.AddLog("Warning: control queue full, toggle dropped")
	}
}
