package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"presencesync/internal/assets"
	"presencesync/internal/config"
	"presencesync/internal/constants"
	"presencesync/internal/logger"
	"presencesync/internal/playreport"
	"presencesync/internal/presence"
	"presencesync/internal/process"
	"presencesync/internal/script"
	"presencesync/internal/sink"
	"presencesync/internal/titles"
)

type Output struct {
	Text  string
	IsErr bool
}

type Event interface {
	isEvent()
}

type EventStarted struct {
	Script *script.Script
}

func (EventStarted) isEvent() {}

type EventStepApplied struct {
	Index int
	Step  script.Step
}

func (EventStepApplied) isEvent() {}

type EventEnabled struct {
	Enabled bool
}

func (EventEnabled) isEvent() {}

type EventTitleChanged struct {
	Change titles.Change
	Title  string
}

func (EventTitleChanged) isEvent() {}

type EventConnected struct {
	ApplicationID string
	Err           error
}

func (EventConnected) isEvent() {}

type EventPublished struct {
	Record presence.Record
}

func (EventPublished) isEvent() {}

type EventDisposed struct{}

func (EventDisposed) isEvent() {}

type EventOutput struct {
	Output
}

func (EventOutput) isEvent() {}

type EventError struct {
	Err error
}

func (EventError) isEvent() {}

type EventCompleted struct{}

func (EventCompleted) isEvent() {}

// Executor replays emulator events against a presence controller. Every
// controller call happens on the goroutine running Run; steps submitted from
// elsewhere are queued on a control channel and applied there.
type Executor struct {
	cfg       *config.Config
	eventsCh  chan Event
	controlCh chan script.Step
	log       *slog.Logger

	controller *presence.Controller
	registry   *titles.Registry
	processes  *process.Table
}

// NewExecutor wires the controller to the sink selected by cfg.
func NewExecutor(cfg *config.Config, eventsCh chan Event) (*Executor, error) {
	factory, err := sink.NewFactory(cfg)
	if err != nil {
		return nil, err
	}
	return NewExecutorWithDeps(cfg, eventsCh, factory)
}

func NewExecutorWithDeps(cfg *config.Config, eventsCh chan Event, factory presence.ClientFactory) (*Executor, error) {
	analyzer, err := playreport.NewDefaultAnalyzer(cfg.ReportRules)
	if err != nil {
		return nil, fmt.Errorf("invalid report rules: %w", err)
	}

	e := &Executor{
		cfg:       cfg,
		eventsCh:  eventsCh,
		controlCh: make(chan script.Step, constants.ControlChannelBuffer),
		log:       logger.Component("workflow"),
		registry:  titles.NewRegistry(titles.NewStore(cfg.LibraryPath())),
		processes: process.NewTable(),
	}

	e.controller = presence.NewController(presence.Options{
		ApplicationID: cfg.ApplicationID,
		Description:   cfg.Release.Description(),
		NewClient:     sink.Observe(factory, e),
		Titles:        e.registry,
		Processes:     e.processes,
		Formatter:     analyzer,
		Assets:        assets.NewCatalog(cfg.AssetKeys...),
	})

	e.registry.Subscribe(e.onTitleChanged)
	return e, nil
}

// Submit queues a step to run on the executor goroutine. It reports false
// when the queue is full.
func (e *Executor) Submit(step script.Step) bool {
	select {
	case e.controlCh <- step:
		return true
	default:
		return false
	}
}

// Run replays s. With hold set it keeps serving submitted steps after the
// script ends until ctx is cancelled. The presence client is always disposed
// before Run returns.
func (e *Executor) Run(ctx context.Context, s *script.Script, hold bool) error {
	defer e.controller.Shutdown()

	e.emit(EventStarted{Script: s})
	if e.cfg.Enabled {
		e.setEnabled(true)
	}

	for i, step := range s.Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e.drainControl()

		if step.Action == script.ActionWait {
			if err := e.wait(ctx, step); err != nil {
				return err
			}
		} else {
			e.apply(step)
		}
		e.emit(EventStepApplied{Index: i + 1, Step: step})
	}

	if hold {
		e.serve(ctx)
	}

	e.controller.Shutdown()
	e.emit(EventCompleted{})
	return nil
}

func (e *Executor) wait(ctx context.Context, step script.Step) error {
	d, err := step.Wait()
	if err != nil {
		e.emit(EventError{Err: err})
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case ctl := <-e.controlCh:
			e.apply(ctl)
		}
	}
}

func (e *Executor) serve(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ctl := <-e.controlCh:
			e.apply(ctl)
		}
	}
}

func (e *Executor) drainControl() {
	for {
		select {
		case ctl := <-e.controlCh:
			e.apply(ctl)
		default:
			return
		}
	}
}

func (e *Executor) apply(step script.Step) {
	e.log.Debug("applying step", "step", step.String())

	switch step.Action {
	case script.ActionEnable:
		e.setEnabled(true)
	case script.ActionDisable:
		e.setEnabled(false)
	case script.ActionLaunch:
		proc, err := step.Process()
		if err != nil {
			e.emit(EventError{Err: err})
			return
		}
		// One guest runs at a time; launching over a running title exits it.
		if e.registry.CurrentTitle().IsSome() {
			e.apply(script.Step{Action: script.ActionExit})
		}
		e.processes.Activate(proc)
		if err := e.registry.Launch(step.TitleID, step.Title); err != nil {
			e.processes.Clear()
			e.emit(EventError{Err: err})
		}
	case script.ActionExit:
		if err := e.registry.Exit(); err != nil {
			e.emit(EventOutput{Output{
				Text:  fmt.Sprintf("Warning: failed to record play time: %v", err),
				IsErr: true,
			}})
		}
		e.processes.Clear()
	case script.ActionReport:
		id, _ := e.registry.CurrentTitle().Get()
		report, err := step.Report(id)
		if err != nil {
			e.emit(EventError{Err: err})
			return
		}
		e.controller.OnPlayReport(report)
	case script.ActionWait:
		// Waits only make sense in a script; a submitted one is ignored.
	default:
		e.emit(EventError{Err: fmt.Errorf("unknown action %q", step.Action)})
	}
}

func (e *Executor) setEnabled(enabled bool) {
	if e.controller.Enabled() == enabled {
		return
	}
	e.controller.SetEnabled(enabled)
	e.emit(EventEnabled{Enabled: e.controller.Enabled()})
}

func (e *Executor) onTitleChanged(c titles.Change) {
	title := ""
	if id, ok := c.New.Get(); ok {
		if meta, err := e.registry.LoadAndSaveMetadata(id); err == nil {
			title = meta.Title
		}
	}
	e.emit(EventTitleChanged{Change: c, Title: title})
	e.controller.OnTitleChanged(c.New)
}

// Connected, Published and Disposed make the Executor the observer of every
// client the controller creates.
func (e *Executor) Connected(appID string, err error) {
	e.emit(EventConnected{ApplicationID: appID, Err: err})
}

func (e *Executor) Published(rec presence.Record) {
	e.emit(EventPublished{Record: rec})
}

func (e *Executor) Disposed() {
	e.emit(EventDisposed{})
}

func (e *Executor) emit(event Event) {
	if e.eventsCh != nil {
		e.eventsCh <- event
	}
}
