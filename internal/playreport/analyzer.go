package playreport

import (
	"sort"
	"strings"

	"presencesync/internal/titles"
)

// FormattedValue is the outcome of formatting a report.
// Handled is false when no formatter recognised the report; Reset asks for
// the default "Playing <title>" text instead of Text.
type FormattedValue struct {
	Handled bool
	Reset   bool
	Text    string
}

// Unhandled is returned for reports nothing knows how to format.
var Unhandled = FormattedValue{}

// ForceReset restores the default playing text.
func ForceReset() FormattedValue {
	return FormattedValue{Handled: true, Reset: true}
}

// Formatted sets the status text to s.
func Formatted(s string) FormattedValue {
	return FormattedValue{Handled: true, Text: s}
}

// ValueFormatter formats one report value. app is the metadata of the running
// title and may be nil.
type ValueFormatter func(v Value, app *titles.Metadata) FormattedValue

type valueRule struct {
	key    string
	format ValueFormatter
}

// Spec groups the value formatters for one game. Formatters are tried in the
// order they were added; the first handled result wins.
type Spec struct {
	Name     string
	TitleIDs []string
	rules    []valueRule
}

func NewSpec(name string, titleIDs ...string) *Spec {
	ids := make([]string, 0, len(titleIDs))
	for _, id := range titleIDs {
		ids = append(ids, titles.NormalizeID(id))
	}
	return &Spec{Name: name, TitleIDs: ids}
}

// AddValueFormatter appends a formatter for reports carrying key.
func (s *Spec) AddValueFormatter(key string, f ValueFormatter) *Spec {
	s.rules = append(s.rules, valueRule{key: key, format: f})
	return s
}

func (s *Spec) format(report Report, app *titles.Metadata) FormattedValue {
	for _, r := range s.rules {
		raw, ok := report.Values[r.key]
		if !ok {
			continue
		}
		if fv := r.format(Value{Key: r.key, Raw: raw}, app); fv.Handled {
			return fv
		}
	}
	return Unhandled
}

// Analyzer dispatches reports to the specs registered for their title.
type Analyzer struct {
	specs map[string][]*Spec
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{specs: map[string][]*Spec{}}
}

// AddSpec registers s for all of its title ids.
func (a *Analyzer) AddSpec(s *Spec) *Analyzer {
	for _, id := range s.TitleIDs {
		a.specs[id] = append(a.specs[id], s)
	}
	return a
}

// Has reports whether any spec handles titleID.
func (a *Analyzer) Has(titleID string) bool {
	return len(a.specs[titles.NormalizeID(titleID)]) > 0
}

// TitleIDs lists every title with at least one spec, sorted.
func (a *Analyzer) TitleIDs() []string {
	ids := make([]string, 0, len(a.specs))
	for id := range a.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Format runs the report through the specs of titleID.
func (a *Analyzer) Format(titleID string, app *titles.Metadata, report Report) FormattedValue {
	for _, s := range a.specs[titles.NormalizeID(titleID)] {
		if fv := s.format(report, app); fv.Handled {
			return fv
		}
	}
	return Unhandled
}

// appTitle is the display name of app, or fallback.
func appTitle(app *titles.Metadata, fallback string) string {
	if app == nil || strings.TrimSpace(app.Title) == "" {
		return fallback
	}
	return app.Title
}
