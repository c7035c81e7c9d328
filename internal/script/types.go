package script

import (
	"encoding/base64"
	"fmt"
	"time"

	"presencesync/internal/constants"
	"presencesync/internal/playreport"
	"presencesync/internal/process"
	"presencesync/internal/titles"
)

// Action names what a Step does to the emulator.
type Action string

const (
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
	ActionLaunch  Action = "launch"
	ActionExit    Action = "exit"
	ActionReport  Action = "report"
	ActionWait    Action = "wait"
)

// Step is one emulator event in a Script.
type Step struct {
	Action  Action `yaml:"action"`
	TitleID string `yaml:"title_id,omitempty"`
	Title   string `yaml:"title,omitempty"`
	Version string `yaml:"version,omitempty"`
	Room    string `yaml:"room,omitempty"`
	// Values is a decoded play report body; Payload is the same as base64
	// encoded MessagePack. A report step carries exactly one of them.
	Values   map[string]any `yaml:"values,omitempty"`
	Payload  string         `yaml:"payload,omitempty"`
	Duration string         `yaml:"duration,omitempty"`
}

// Script is an ordered list of emulator events replayed against the
// presence controller.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

func (s Step) String() string {
	switch s.Action {
	case ActionLaunch:
		if s.Title != "" {
			return fmt.Sprintf("launch %s (%s)", s.Title, s.TitleID)
		}
		return fmt.Sprintf("launch %s", s.TitleID)
	case ActionReport:
		if s.Room != "" {
			return fmt.Sprintf("report %s", s.Room)
		}
		return "report"
	case ActionWait:
		return fmt.Sprintf("wait %s", s.Duration)
	default:
		return string(s.Action)
	}
}

// Wait returns the duration of a wait step.
func (s Step) Wait() (time.Duration, error) {
	d, err := time.ParseDuration(s.Duration)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s.Duration, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q cannot be negative", s.Duration)
	}
	if d > constants.MaxScriptWait*time.Second {
		return 0, fmt.Errorf("duration %q exceeds %ds", s.Duration, constants.MaxScriptWait)
	}
	return d, nil
}

// Process returns the process a launch step starts.
func (s Step) Process() (process.Result, error) {
	pid, err := process.ParseProgramID(s.TitleID)
	if err != nil {
		return process.Result{}, err
	}
	version := s.Version
	if version == "" {
		version = "1.0.0"
	}
	return process.Result{ProgramID: pid, DisplayVersion: version, Name: s.Title}, nil
}

// Report builds the play report of a report step. titleID is used when the
// step does not name a title.
func (s Step) Report(titleID string) (playreport.Report, error) {
	if s.TitleID != "" {
		titleID = s.TitleID
	}
	titleID = titles.NormalizeID(titleID)

	if s.Payload == "" {
		values := s.Values
		if values == nil {
			values = map[string]any{}
		}
		return playreport.Report{TitleID: titleID, Room: s.Room, Values: values}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(s.Payload)
	if err != nil {
		return playreport.Report{}, fmt.Errorf("invalid payload encoding: %w", err)
	}
	return playreport.Decode(titleID, s.Room, raw)
}

// Counts tallies steps per action.
func (s *Script) Counts() map[Action]int {
	counts := map[Action]int{}
	for _, step := range s.Steps {
		counts[step.Action]++
	}
	return counts
}
