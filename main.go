package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"presencesync/internal/args"
	"presencesync/internal/cli"
	"presencesync/internal/config"
	"presencesync/internal/logger"
	"presencesync/internal/script"
	"presencesync/internal/status"
	"presencesync/internal/tui"
)

const (
	exitSuccess = 0
	exitFailure = 1

	logFile         = "presencesync.log"
	shutdownTimeout = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := args.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println(args.HelpText())
		return exitFailure
	}

	if opts.Help {
		fmt.Println(args.HelpText())
		return exitSuccess
	}

	if err := opts.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println(args.HelpText())
		return exitFailure
	}

	closeLog, err := initLogging(opts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return exitFailure
	}
	defer closeLog()

	cfg, err := config.LoadFile(opts.ConfigPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return exitFailure
	}
	if opts.Disabled {
		cfg.Enabled = false
	}

	if opts.Command == args.CommandStatus {
		if err := status.Display(cfg); err != nil {
			fmt.Printf("Error: %v\n", err)
			return exitFailure
		}
		return exitSuccess
	}

	s := script.Default()
	if opts.Script != "" {
		s, err = script.Load(opts.Script)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return exitFailure
		}
	}

	// If run mode is specified, use CLI (non-TUI) output
	if opts.Command == args.CommandRun {
		runner := cli.NewRunner(cfg, s, opts.Hold)
		return runner.Run()
	}

	model, err := tui.NewModel(cfg, s, true)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return exitFailure
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if !model.Shutdown(shutdownTimeout) {
		fmt.Println("Warning: presence client did not shut down in time")
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return exitFailure
	}

	// Determine exit code based on final state
	if m, ok := finalModel.(*tui.Model); ok {
		return m.ExitCode()
	}

	return exitSuccess
}

// initLogging sends logs to stderr in run and status modes. The TUI owns the
// terminal, so there logs are dropped unless --verbose sends them to a file.
func initLogging(opts *args.Options) (func(), error) {
	if opts.Command != args.CommandTUI {
		logger.Init(opts.Verbose)
		return func() {}, nil
	}

	if !opts.Verbose {
		logger.InitWithWriter(io.Discard, false)
		return func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.InitWithWriter(f, true)
	return func() { f.Close() }, nil
}
