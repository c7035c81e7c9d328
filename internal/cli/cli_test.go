package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"presencesync/internal/config"
	"presencesync/internal/presence"
	"presencesync/internal/script"
	"presencesync/internal/sink"
	"presencesync/internal/titles"
	"presencesync/internal/workflow"
)

func testScript() *script.Script {
	return &script.Script{
		Name: "smoke",
		Steps: []script.Step{
			{Action: script.ActionLaunch, TitleID: "0100000000010000", Title: "Super Mario Odyssey"},
			{Action: script.ActionReport, Values: map[string]any{"is_kids_mode": false}},
			{Action: script.ActionExit},
		},
	}
}

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.WorkDir = t.TempDir()

	var buf bytes.Buffer
	return NewRunnerWithWriter(cfg, testScript(), false, &buf), &buf
}

func runEvents(r *Runner, events ...workflow.Event) int {
	eventsCh := make(chan workflow.Event, len(events))
	doneCh := make(chan int, 1)
	for _, e := range events {
		eventsCh <- e
	}
	close(eventsCh)

	r.handleEvents(eventsCh, doneCh)
	return <-doneCh
}

func TestNewRunner(t *testing.T) {
	cfg := config.DefaultConfig()
	s := testScript()
	r := NewRunner(cfg, s, true)

	if r == nil {
		t.Fatal("NewRunner() returned nil")
	}
	if r.cfg != cfg {
		t.Error("cfg not set correctly")
	}
	if r.script != s {
		t.Error("script not set correctly")
	}
	if !r.hold {
		t.Error("hold should be true")
	}
}

func TestPrintHeader(t *testing.T) {
	r, buf := newTestRunner(t)
	r.cfg.ApplicationID = "42"

	r.printHeader()

	output := buf.String()
	if !strings.Contains(output, "presencesync") {
		t.Error("printHeader() should contain the program name")
	}
	if !strings.Contains(output, "Application: 42") {
		t.Error("printHeader() should contain the application id")
	}
	if !strings.Contains(output, "smoke (3 steps)") {
		t.Errorf("printHeader() should describe the script, got %q", output)
	}
}

func TestHandleEventsError(t *testing.T) {
	r, buf := newTestRunner(t)

	code := runEvents(r, workflow.EventError{Err: errors.New("test error")})

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "test error") {
		t.Error("error text not printed")
	}
}

func TestHandleEventsCompleted(t *testing.T) {
	r, buf := newTestRunner(t)

	code := runEvents(r, workflow.EventCompleted{})

	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(buf.String(), "Script completed") {
		t.Error("completion not printed")
	}
}

func TestHandleEventsPresence(t *testing.T) {
	r, buf := newTestRunner(t)

	rec := presence.NewMainRecord("dev build", time.Now())
	runEvents(r,
		workflow.EventEnabled{Enabled: true},
		workflow.EventConnected{ApplicationID: "app"},
		workflow.EventPublished{Record: rec},
		workflow.EventTitleChanged{Change: titles.Change{New: titles.Some("0100000000010000")}, Title: "Super Mario Odyssey"},
		workflow.EventTitleChanged{Change: titles.Change{Old: titles.Some("0100000000010000")}},
		workflow.EventOutput{Output: workflow.Output{Text: "disk full", IsErr: true}},
		workflow.EventDisposed{},
		workflow.EventEnabled{Enabled: false},
	)

	output := buf.String()
	for _, want := range []string{
		"presence enabled",
		"connected as app",
		"Main Menu | Idling",
		"title: Super Mario Odyssey (0100000000010000)",
		"title: none",
		"[!] disk full",
		"presence cleared",
		"presence disabled",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestHandleEventsConnectFailure(t *testing.T) {
	r, buf := newTestRunner(t)

	code := runEvents(r, workflow.EventConnected{ApplicationID: "app", Err: errors.New("refused")})

	if code != 0 {
		t.Errorf("exit code = %d, want 0 for a failed handshake", code)
	}
	if !strings.Contains(buf.String(), "connect failed: refused") {
		t.Error("connect failure not printed")
	}
}

func TestHandleEventsStep(t *testing.T) {
	r, buf := newTestRunner(t)

	runEvents(r, workflow.EventStepApplied{Index: 2, Step: script.Step{Action: script.ActionReport, Room: "mode"}})

	if !strings.Contains(buf.String(), "[2/3] report mode") {
		t.Errorf("step not printed: %q", buf.String())
	}
}

func TestRunWithFileSink(t *testing.T) {
	r, buf := newTestRunner(t)
	r.cfg.Sink = config.SinkFile

	if code := r.Run(); code != 0 {
		t.Fatalf("Run() = %d, output:\n%s", code, buf.String())
	}

	output := buf.String()
	if !strings.Contains(output, "Playing in Regular Mode") {
		t.Errorf("play report not shown:\n%s", output)
	}
	if !strings.Contains(output, "Script completed") {
		t.Errorf("completion not shown:\n%s", output)
	}

	// the file sink removes its file when the client is disposed
	if _, err := sink.ReadFile(filepath.Join(r.cfg.WorkDir, r.cfg.SinkFile)); err == nil {
		t.Error("sink file should be removed after the run")
	}
}

func TestRunInvalidRules(t *testing.T) {
	r, buf := newTestRunner(t)
	r.cfg.ReportRules = []config.ReportRule{{Key: "x"}}

	if code := r.Run(); code != 1 {
		t.Errorf("Run() = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Error("error not printed")
	}
}
