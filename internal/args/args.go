package args

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

const (
	CommandTUI    = ""
	CommandRun    = "run"
	CommandStatus = "status"
)

type Options struct {
	Command    string
	Script     string
	ConfigPath string
	Disabled   bool
	Hold       bool
	Verbose    bool
	Help       bool
}

// Parse reads the command line. Unknown flags and extra arguments are
// errors.
func Parse(args []string) (*Options, error) {
	opts := &Options{}

	fs := pflag.NewFlagSet("presencesync", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&opts.Script, "script", "s", "", "event script to replay")
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "config file")
	fs.BoolVar(&opts.Disabled, "disabled", false, "start with presence disabled")
	fs.BoolVar(&opts.Hold, "hold", false, "keep the presence after the script ends")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVarP(&opts.Help, "help", "h", false, "show this help message")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	rest := fs.Args()
	if len(rest) > 0 {
		opts.Command = rest[0]
	}
	if len(rest) > 1 {
		return opts, fmt.Errorf("unexpected arguments: %v", rest[1:])
	}

	return opts, nil
}

func (o *Options) Validate() error {
	if o.Help {
		return nil
	}

	switch o.Command {
	case CommandTUI, CommandRun:
	case CommandStatus:
		if o.Script != "" {
			return fmt.Errorf("--script cannot be used with status")
		}
		if o.Hold {
			return fmt.Errorf("--hold cannot be used with status")
		}
	default:
		return fmt.Errorf("unknown command %q", o.Command)
	}

	return nil
}

func HelpText() string {
	return `
presencesync - Emulator rich presence synchronizer

Usage:
  presencesync [flags]                  # Replay a script in the interactive preview (TUI)
  presencesync run [flags]              # Replay a script with stdout output
  presencesync status [--config FILE]   # Show the title library and current presence

Options:
  --script, -s FILE   Event script to replay (default: built-in demo)
  --config, -c FILE   Config file (default: ./presencesync.yaml if present)
  --disabled          Start with presence disabled
  --hold              Keep the presence after the script ends (run mode; the TUI always holds)
  --verbose, -v       Enable debug logging
  --help, -h          Show this help message

Modes:
  (default)    Interactive TUI with a presence preview
  run          Non-interactive stdout output (for CI/scripts)
  status       Print the library and the last presence written by the file sink

Controls (TUI mode):
  e            Toggle presence on and off
  ↑/↓          Scroll the log
  q, Ctrl+C    Quit the application

Environment:
  PRESENCE_APPLICATION_ID, PRESENCE_ENABLED, PRESENCE_SINK, PRESENCE_SINK_FILE,
  PRESENCE_NATS_URL, PRESENCE_NATS_SUBJECT, PRESENCE_LIBRARY_FILE

Examples:
  presencesync
  presencesync --script sessions/totk.yaml
  presencesync run --script sessions/totk.yaml --verbose
  PRESENCE_SINK=nats presencesync run --hold
  presencesync status
`
}
