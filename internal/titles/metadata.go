package titles

import (
	"fmt"
	"strings"
	"time"
)

// Metadata is what the library remembers about a title between sessions.
type Metadata struct {
	Title      string        `json:"title"`
	TimePlayed time.Duration `json:"time_played"`
	LastPlayed *time.Time    `json:"last_played_utc,omitempty"`
}

// UpdatePreGame marks the title as launched at now.
func (m *Metadata) UpdatePreGame(now time.Time) {
	t := now.UTC()
	m.LastPlayed = &t
}

// UpdatePostGame adds the session that started at LastPlayed to TimePlayed.
func (m *Metadata) UpdatePostGame(now time.Time) {
	if m.LastPlayed == nil {
		return
	}
	if session := now.Sub(*m.LastPlayed); session > 0 {
		m.TimePlayed += session
	}
}

// NormalizeID lower-cases a title id so lookups are case-insensitive.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// ValidateID checks that id is a 16 digit hexadecimal title id.
func ValidateID(id string) error {
	if len(id) != 16 {
		return fmt.Errorf("title id %q must be 16 hex digits", id)
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("title id %q contains non-hex character %q", id, r)
		}
	}
	return nil
}

// FormatPlayTime renders an accumulated play time for display.
func FormatPlayTime(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d < time.Minute:
		return plural(int(d/time.Second), "second")
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	default:
		hours := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", d.Hours()), "0"), ".")
		if hours == "1" {
			return "1 hour"
		}
		return hours + " hours"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
