package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"presencesync/internal/config"
	"presencesync/internal/constants"
	"presencesync/internal/presence"
	"presencesync/internal/script"
	"presencesync/internal/workflow"
)

// Runner handles CLI (non-TUI) execution
type Runner struct {
	cfg    *config.Config
	script *script.Script
	hold   bool
	out    *termenv.Output
}

// NewRunner creates a new CLI runner. With hold set the runner keeps the
// presence alive after the script until interrupted.
func NewRunner(cfg *config.Config, s *script.Script, hold bool) *Runner {
	return NewRunnerWithWriter(cfg, s, hold, os.Stdout)
}

func NewRunnerWithWriter(cfg *config.Config, s *script.Script, hold bool, w io.Writer) *Runner {
	return &Runner{
		cfg:    cfg,
		script: s,
		hold:   hold,
		out:    termenv.NewOutput(w),
	}
}

// Run replays the script and returns an exit code
func (r *Runner) Run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(r.out, "\nInterrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	r.printHeader()

	eventsCh := make(chan workflow.Event, constants.EventChannelBuffer)
	exec, err := workflow.NewExecutor(r.cfg, eventsCh)
	if err != nil {
		fmt.Fprintf(r.out, "%s %v\n", r.red("Error:"), err)
		return 1
	}

	doneCh := make(chan int, 1)
	go r.handleEvents(eventsCh, doneCh)

	err = exec.Run(ctx, r.script, r.hold)
	close(eventsCh)
	code := <-doneCh

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(r.out, "%s %v\n", r.red("Error:"), err)
		return 1
	}
	return code
}

func (r *Runner) printHeader() {
	name := r.script.Name
	if name == "" {
		name = "unnamed script"
	}
	fmt.Fprintf(r.out, "%s\n", r.out.String("presencesync").Bold())
	fmt.Fprintf(r.out, "   Application: %s\n", r.cfg.ApplicationID)
	fmt.Fprintf(r.out, "   Sink: %s\n", r.cfg.Sink)
	fmt.Fprintf(r.out, "   Script: %s (%d steps)\n\n", name, len(r.script.Steps))
}

func (r *Runner) handleEvents(eventsCh <-chan workflow.Event, doneCh chan<- int) {
	exitCode := 0

	for event := range eventsCh {
		switch e := event.(type) {
		case workflow.EventStepApplied:
			fmt.Fprintf(r.out, "%s %s\n", r.faint(fmt.Sprintf("[%d/%d]", e.Index, len(r.script.Steps))), e.Step)

		case workflow.EventEnabled:
			if e.Enabled {
				fmt.Fprintf(r.out, "   %s\n", r.green("presence enabled"))
			} else {
				fmt.Fprintf(r.out, "   %s\n", r.yellow("presence disabled"))
			}

		case workflow.EventTitleChanged:
			if id, ok := e.Change.New.Get(); ok {
				fmt.Fprintf(r.out, "   title: %s (%s)\n", e.Title, id)
			} else {
				fmt.Fprintln(r.out, "   title: none")
			}

		case workflow.EventConnected:
			if e.Err != nil {
				fmt.Fprintf(r.out, "   %s connect failed: %v\n", r.yellow("[!]"), e.Err)
			} else {
				fmt.Fprintf(r.out, "   connected as %s\n", e.ApplicationID)
			}

		case workflow.EventPublished:
			r.printRecord(e.Record)

		case workflow.EventDisposed:
			fmt.Fprintln(r.out, "   presence cleared")

		case workflow.EventOutput:
			prefix := "   "
			if e.IsErr {
				prefix = "   " + r.yellow("[!]")
			}
			fmt.Fprintf(r.out, "%s %s\n", prefix, e.Text)

		case workflow.EventError:
			fmt.Fprintf(r.out, "%s %v\n", r.red("Error:"), e.Err)
			exitCode = 1

		case workflow.EventCompleted:
			fmt.Fprintln(r.out, r.green("Script completed"))
		}
	}

	doneCh <- exitCode
}

func (r *Runner) printRecord(rec presence.Record) {
	fmt.Fprintf(r.out, "   %s %s | %s\n", r.green("▶"), rec.Details, rec.State)
	fmt.Fprintf(r.out, "     image %s: %s\n", rec.Assets.LargeImageKey, rec.Assets.LargeImageText)
}

func (r *Runner) green(s string) string {
	return r.out.String(s).Foreground(r.out.Color("2")).String()
}

func (r *Runner) yellow(s string) string {
	return r.out.String(s).Foreground(r.out.Color("3")).String()
}

func (r *Runner) red(s string) string {
	return r.out.String(s).Foreground(r.out.Color("1")).String()
}

func (r *Runner) faint(s string) string {
	return r.out.String(s).Faint().String()
}
