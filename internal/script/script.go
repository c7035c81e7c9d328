package script

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"presencesync/internal/errors"
	"presencesync/internal/storage"
	"presencesync/internal/titles"
)

// Load reads and validates a script file under a shared lock.
func Load(path string) (*Script, error) {
	data, err := storage.ReadLocked(path)
	if err != nil {
		return nil, errors.ScriptError{Op: "read", Err: err}
	}
	return Parse(data)
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.ScriptError{Op: "parse", Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.ScriptError{Op: "validate", Err: fmt.Errorf("script has no steps")}
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return errors.ScriptError{Step: i + 1, Op: "validate", Err: err}
		}
	}
	return nil
}

func (s Step) Validate() error {
	switch s.Action {
	case ActionEnable, ActionDisable, ActionExit:
		return nil
	case ActionLaunch:
		if s.TitleID == "" {
			return fmt.Errorf("launch requires title_id")
		}
		return titles.ValidateID(s.TitleID)
	case ActionReport:
		if s.TitleID != "" {
			if err := titles.ValidateID(s.TitleID); err != nil {
				return err
			}
		}
		if s.Payload != "" && len(s.Values) > 0 {
			return fmt.Errorf("report cannot carry both values and payload")
		}
		if _, err := s.Report(s.TitleID); err != nil {
			return err
		}
		return nil
	case ActionWait:
		_, err := s.Wait()
		return err
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
}

// Default is the demonstration session replayed when no script is given:
// idle, play a title with a couple of play reports, return to the menu.
func Default() *Script {
	return &Script{
		Name: "demo",
		Steps: []Step{
			{Action: ActionWait, Duration: "1s"},
			{Action: ActionLaunch, TitleID: "01007EF00011E000", Title: "The Legend of Zelda: Breath of the Wild", Version: "1.6.0"},
			{Action: ActionWait, Duration: "2s"},
			{Action: ActionReport, Room: "hardmode", Values: map[string]any{"IsHardMode": true}},
			{Action: ActionWait, Duration: "2s"},
			{Action: ActionReport, Room: "hardmode", Values: map[string]any{"IsHardMode": true}},
			{Action: ActionWait, Duration: "2s"},
			{Action: ActionReport, Room: "hardmode", Values: map[string]any{"IsHardMode": false}},
			{Action: ActionWait, Duration: "2s"},
			{Action: ActionExit},
		},
	}
}
