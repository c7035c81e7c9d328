package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"presencesync/internal/config"
	"presencesync/internal/presence"
	"presencesync/internal/script"
	"presencesync/internal/workflow"
)

type Model struct {
	cfg    *config.Config
	script *script.Script
	hold   bool

	phase      Phase
	enabled    bool
	connectErr error
	titleID    string
	title      string
	record     *presence.Record
	step       int
	err        error
	quitting   bool
	width      int
	height     int
	now        func() time.Time

	spinner          spinner.Model
	progress         progress.Model
	logger           *Logger
	operationManager *OperationManager
}

// NewModel creates the model and the executor it drives.
func NewModel(cfg *config.Config, s *script.Script, hold bool) (*Model, error) {
	ops, err := NewOperationManager(cfg)
	if err != nil {
		return nil, err
	}
	return NewModelWithOperations(cfg, s, hold, ops), nil
}

func NewModelWithOperations(cfg *config.Config, s *script.Script, hold bool, ops *OperationManager) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)

	return &Model{
		cfg:              cfg,
		script:           s,
		hold:             hold,
		phase:            PhaseStarting,
		now:              time.Now,
		spinner:          sp,
		progress:         p,
		logger:           NewLogger(),
		operationManager: ops,
	}
}

// Shutdown stops the executor after the program exits so the presence
// client is disposed before the process ends.
func (m *Model) Shutdown(timeout time.Duration) bool {
	return m.operationManager.Shutdown(timeout)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startRun(),
		m.listenForEvents(),
		tea.WindowSize(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.operationManager.Cancel()
			return m, tea.Quit
		case "e":
			m.toggleEnabled()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.SetSize(msg.Width, msg.Height)
		m.progress.Width = min(40, msg.Width-20)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case eventMsg:
		m.handleEvent(msg.event)
		cmds = append(cmds, m.listenForEvents())

	case runDoneMsg:
		for _, e := range m.operationManager.drain() {
			m.handleEvent(e)
		}
		if msg.err != nil {
			m.err = msg.err
			m.phase = PhaseFailed
			m.logger.AddLog(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.phase = PhaseCompleted
		}
	}

	cmds = append(cmds, m.logger.Update(msg))

	return m, tea.Batch(cmds...)
}

func (m *Model) handleEvent(event workflow.Event) {
	switch e := event.(type) {
	case workflow.EventStarted:
		m.phase = PhaseReplaying
		m.logger.AddLog(fmt.Sprintf("Replaying %s (%d steps)", e.Script.Name, len(e.Script.Steps)))

	case workflow.EventStepApplied:
		m.step = e.Index
		if m.hold && m.script != nil && e.Index == len(m.script.Steps) {
			m.phase = PhaseHolding
			m.logger.AddLog("Script finished, holding presence (e toggles, q quits)")
		}

	case workflow.EventEnabled:
		m.enabled = e.Enabled
		if !e.Enabled {
			m.record = nil
			m.connectErr = nil
		}
		if e.Enabled {
			m.logger.AddLog("Presence enabled")
		} else {
			m.logger.AddLog("Presence disabled")
		}

	case workflow.EventConnected:
		m.connectErr = e.Err
		if e.Err != nil {
			m.logger.AddLog(fmt.Sprintf("Warning: handshake failed: %v", e.Err))
		} else {
			m.logger.AddLog(fmt.Sprintf("Connected as %s", e.ApplicationID))
		}

	case workflow.EventTitleChanged:
		if id, ok := e.Change.New.Get(); ok {
			m.titleID, m.title = id, e.Title
			m.logger.AddLog(fmt.Sprintf("Title launched: %s (%s)", e.Title, id))
		} else {
			m.titleID, m.title = "", ""
			m.logger.AddLog("Title exited")
		}

	case workflow.EventPublished:
		rec := e.Record
		m.record = &rec
		m.logger.AddLog(fmt.Sprintf("Published: %s | %s", rec.Details, rec.State))

	case workflow.EventDisposed:
		m.record = nil

	case workflow.EventOutput:
		m.logger.AddOutput(e.Output)

	case workflow.EventError:
		m.logger.AddLog(fmt.Sprintf("Error: %v", e.Err))

	case workflow.EventCompleted:
		m.logger.AddLog("Script completed")
	}
}

func (m *Model) ExitCode() int {
	if m.phase == PhaseFailed {
		return 1
	}
	return 0
}
