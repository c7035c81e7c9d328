package playreport

import (
	"fmt"
	"strings"

	"presencesync/internal/config"
	"presencesync/internal/titles"
)

// ResetMarker in a configured rule restores the default playing text.
const ResetMarker = "@reset"

// Builtin returns the specs shipped with presencesync.
func Builtin() []*Spec {
	return []*Spec{
		NewSpec("The Legend of Zelda: Breath of the Wild", "01007ef00011e000").
			AddValueFormatter("IsHardMode", botwMasterMode),
		NewSpec("Super Mario Odyssey", "0100000000010000").
			AddValueFormatter("is_kids_mode", smoAssistMode),
		NewSpec("The Legend of Zelda: Tears of the Kingdom", "0100f2c0115b6000").
			AddValueFormatter("PlayerPosY", totkLocation),
	}
}

func botwMasterMode(v Value, _ *titles.Metadata) FormattedValue {
	hard, ok := v.Bool()
	if !ok {
		return Unhandled
	}
	if hard {
		return Formatted("Playing Master Mode")
	}
	return ForceReset()
}

func smoAssistMode(v Value, _ *titles.Metadata) FormattedValue {
	kids, ok := v.Bool()
	if !ok {
		return Unhandled
	}
	if kids {
		return Formatted("Playing in Assist Mode")
	}
	return Formatted("Playing in Regular Mode")
}

func totkLocation(v Value, _ *titles.Metadata) FormattedValue {
	y, ok := v.Float()
	if !ok {
		return Unhandled
	}
	switch {
	case y > 800:
		return Formatted("Exploring the Sky Islands")
	case y < -10:
		return Formatted("Exploring the Depths")
	default:
		return Formatted("Roaming Hyrule")
	}
}

// FromConfig compiles configured rules into specs. Rules sharing a name and
// title set are not merged; each rule becomes its own spec.
func FromConfig(rules []config.ReportRule) ([]*Spec, error) {
	specs := make([]*Spec, 0, len(rules))
	for i, r := range rules {
		if r.Key == "" {
			return nil, fmt.Errorf("report rule %d: key is required", i+1)
		}
		if len(r.Titles) == 0 {
			return nil, fmt.Errorf("report rule %d (%s): at least one title is required", i+1, r.Key)
		}
		for _, id := range r.Titles {
			if err := titles.ValidateID(id); err != nil {
				return nil, fmt.Errorf("report rule %d (%s): %w", i+1, r.Key, err)
			}
		}
		if len(r.Values) == 0 && r.Format == "" {
			return nil, fmt.Errorf("report rule %d (%s): values or format is required", i+1, r.Key)
		}

		name := r.Name
		if name == "" {
			name = r.Key
		}
		specs = append(specs, NewSpec(name, r.Titles...).AddValueFormatter(r.Key, ruleFormatter(r)))
	}
	return specs, nil
}

func ruleFormatter(r config.ReportRule) ValueFormatter {
	return func(v Value, app *titles.Metadata) FormattedValue {
		raw := v.String()

		text, ok := r.Values[raw]
		if !ok {
			text = r.Format
		}
		if text == "" {
			return Unhandled
		}
		if text == ResetMarker {
			return ForceReset()
		}

		return Formatted(strings.NewReplacer(
			"{value}", raw,
			"{title}", appTitle(app, "this game"),
		).Replace(text))
	}
}

// NewDefaultAnalyzer registers the built-in specs followed by rules.
func NewDefaultAnalyzer(rules []config.ReportRule) (*Analyzer, error) {
	a := NewAnalyzer()
	for _, s := range Builtin() {
		a.AddSpec(s)
	}

	configured, err := FromConfig(rules)
	if err != nil {
		return nil, err
	}
	for _, s := range configured {
		a.AddSpec(s)
	}
	return a, nil
}
