package tui

import (
	"fmt"
	"time"
)

// truncate shortens s to max runes for display.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max < 4 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// formatElapsed renders the time since start the way chat clients show it.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d elapsed", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d elapsed", m, s)
}
