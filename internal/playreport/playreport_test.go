package playreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presencesync/internal/config"
	"presencesync/internal/titles"
)

const (
	botw = "01007ef00011e000"
	smo  = "0100000000010000"
	totk = "0100f2c0115b6000"
)

func TestDecodeRoundTripsMessagePack(t *testing.T) {
	payload, err := Encode(map[string]any{"IsHardMode": true, "Stage": 3, "Name": "Cap"})
	require.NoError(t, err)

	report, err := Decode(botw, "event_id", payload)
	require.NoError(t, err)

	assert.Equal(t, botw, report.TitleID)
	assert.Equal(t, "event_id", report.Room)
	assert.Equal(t, true, report.Values["IsHardMode"])
	assert.Equal(t, "Cap", report.Values["Name"])

	stage := Value{Key: "Stage", Raw: report.Values["Stage"]}
	f, ok := stage.Float()
	require.True(t, ok)
	assert.Equal(t, 3.0, f)
	assert.Equal(t, "3", stage.String())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(botw, "", []byte{0xc1})
	assert.Error(t, err)
}

func TestDecodeNilMap(t *testing.T) {
	payload, err := Encode(nil)
	require.NoError(t, err)

	report, err := Decode(botw, "", payload)
	require.NoError(t, err)
	assert.NotNil(t, report.Values)
}

func TestValueConversions(t *testing.T) {
	b, ok := Value{Raw: int8(1)}.Bool()
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = Value{Raw: "false"}.Bool()
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = Value{Raw: []int{1}}.Bool()
	assert.False(t, ok)

	f, ok := Value{Raw: uint16(812)}.Float()
	assert.True(t, ok)
	assert.Equal(t, 812.0, f)

	assert.Equal(t, "2.5", Value{Raw: 2.5}.String())
	assert.Equal(t, "true", Value{Raw: true}.String())
	assert.Equal(t, "", Value{}.String())
}

func newBuiltinAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewDefaultAnalyzer(nil)
	require.NoError(t, err)
	return a
}

func TestBuiltinFormatters(t *testing.T) {
	a := newBuiltinAnalyzer(t)
	app := &titles.Metadata{Title: "Game"}

	tests := []struct {
		name    string
		titleID string
		values  map[string]any
		want    FormattedValue
	}{
		{"botw master mode", botw, map[string]any{"IsHardMode": true}, Formatted("Playing Master Mode")},
		{"botw normal mode resets", botw, map[string]any{"IsHardMode": false}, ForceReset()},
		{"smo assist", smo, map[string]any{"is_kids_mode": 1}, Formatted("Playing in Assist Mode")},
		{"smo regular", smo, map[string]any{"is_kids_mode": 0}, Formatted("Playing in Regular Mode")},
		{"totk sky", totk, map[string]any{"PlayerPosY": 1200.0}, Formatted("Exploring the Sky Islands")},
		{"totk depths", totk, map[string]any{"PlayerPosY": -300}, Formatted("Exploring the Depths")},
		{"totk surface", totk, map[string]any{"PlayerPosY": 120}, Formatted("Roaming Hyrule")},
		{"missing key", botw, map[string]any{"Other": 1}, Unhandled},
		{"unparseable value", botw, map[string]any{"IsHardMode": []int{1}}, Unhandled},
		{"unknown title", "0100ffffffff0000", map[string]any{"IsHardMode": true}, Unhandled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Format(tt.titleID, app, Report{TitleID: tt.titleID, Values: tt.values})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIgnoresTitleCase(t *testing.T) {
	a := newBuiltinAnalyzer(t)

	got := a.Format("01007EF00011E000", nil, Report{Values: map[string]any{"IsHardMode": true}})
	assert.True(t, got.Handled)
	assert.True(t, a.Has("01007EF00011E000"))
	assert.False(t, a.Has("0100ffffffff0000"))
}

func TestSpecOrderFirstHandledWins(t *testing.T) {
	a := NewAnalyzer().AddSpec(
		NewSpec("test", smo).
			AddValueFormatter("a", func(Value, *titles.Metadata) FormattedValue { return Unhandled }).
			AddValueFormatter("b", func(Value, *titles.Metadata) FormattedValue { return Formatted("from b") }).
			AddValueFormatter("c", func(Value, *titles.Metadata) FormattedValue { return Formatted("from c") }),
	)

	got := a.Format(smo, nil, Report{Values: map[string]any{"a": 1, "b": 1, "c": 1}})
	assert.Equal(t, Formatted("from b"), got)
}

func TestTitleIDs(t *testing.T) {
	a := newBuiltinAnalyzer(t)
	assert.Equal(t, []string{smo, botw, totk}, a.TitleIDs())
}

func TestConfiguredRules(t *testing.T) {
	rules := []config.ReportRule{
		{
			Name:   "Kart",
			Titles: []string{"0100152000022000"},
			Key:    "Mode",
			Values: map[string]string{"0": ResetMarker, "1": "Grand Prix in {title}"},
			Format: "Racing in mode {value}",
		},
	}
	a, err := NewDefaultAnalyzer(rules)
	require.NoError(t, err)

	app := &titles.Metadata{Title: "Mario Kart 8 Deluxe"}
	id := "0100152000022000"

	assert.Equal(t, ForceReset(), a.Format(id, app, Report{Values: map[string]any{"Mode": 0}}))
	assert.Equal(t, Formatted("Grand Prix in Mario Kart 8 Deluxe"), a.Format(id, app, Report{Values: map[string]any{"Mode": 1}}))
	assert.Equal(t, Formatted("Racing in mode 7"), a.Format(id, nil, Report{Values: map[string]any{"Mode": 7}}))
}

func TestConfiguredRuleWithoutFallbackIgnoresUnknownValues(t *testing.T) {
	a, err := NewDefaultAnalyzer([]config.ReportRule{
		{Titles: []string{"0100152000022000"}, Key: "Mode", Values: map[string]string{"1": "GP"}},
	})
	require.NoError(t, err)

	assert.Equal(t, Unhandled, a.Format("0100152000022000", nil, Report{Values: map[string]any{"Mode": 2}}))
}

func TestFromConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		rule config.ReportRule
	}{
		{"no key", config.ReportRule{Titles: []string{smo}, Format: "x"}},
		{"no titles", config.ReportRule{Key: "k", Format: "x"}},
		{"bad title", config.ReportRule{Titles: []string{"mario"}, Key: "k", Format: "x"}},
		{"no output", config.ReportRule{Titles: []string{smo}, Key: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromConfig([]config.ReportRule{tt.rule})
			assert.Error(t, err)
		})
	}
}
