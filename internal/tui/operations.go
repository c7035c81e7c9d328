package tui

import (
	"context"
	"time"

	"presencesync/internal/config"
	"presencesync/internal/constants"
	"presencesync/internal/script"
	"presencesync/internal/workflow"
)

// Executor is the part of workflow.Executor the TUI drives.
type Executor interface {
	Run(ctx context.Context, s *script.Script, hold bool) error
	Submit(step script.Step) bool
}

// OperationManager owns the executor goroutine and its event stream.
type OperationManager struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
	eventsCh   chan workflow.Event
	exec       Executor
	done       chan struct{}
}

// NewOperationManager creates an executor for cfg.
func NewOperationManager(cfg *config.Config) (*OperationManager, error) {
	eventsCh := make(chan workflow.Event, constants.EventChannelBuffer)
	exec, err := workflow.NewExecutor(cfg, eventsCh)
	if err != nil {
		return nil, err
	}
	return NewOperationManagerWithExecutor(exec, eventsCh), nil
}

func NewOperationManagerWithExecutor(exec Executor, eventsCh chan workflow.Event) *OperationManager {
	ctx, cancel := context.WithCancel(context.Background())

	return &OperationManager{
		ctx:        ctx,
		cancelFunc: cancel,
		eventsCh:   eventsCh,
		exec:       exec,
		done:       make(chan struct{}),
	}
}

// GetContext returns the operation context
func (om *OperationManager) GetContext() context.Context {
	return om.ctx
}

// GetEventChannel returns the executor's event channel
func (om *OperationManager) GetEventChannel() chan workflow.Event {
	return om.eventsCh
}

// Run replays s on the calling goroutine. It must be called at most once.
func (om *OperationManager) Run(s *script.Script, hold bool) error {
	defer close(om.done)
	return om.exec.Run(om.ctx, s, hold)
}

// Submit forwards a step to the executor.
func (om *OperationManager) Submit(step script.Step) bool {
	return om.exec.Submit(step)
}

// Cancel stops the executor.
func (om *OperationManager) Cancel() {
	if om.cancelFunc != nil {
		om.cancelFunc()
	}
}

// Shutdown cancels the executor and waits up to timeout for it to dispose
// its client. It reports whether the executor finished in time.
func (om *OperationManager) Shutdown(timeout time.Duration) bool {
	om.Cancel()
	select {
	case <-om.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// drain returns the events already queued without blocking.
func (om *OperationManager) drain() []workflow.Event {
	var events []workflow.Event
	for {
		select {
		case e := <-om.eventsCh:
			events = append(events, e)
		default:
			return events
		}
	}
}
