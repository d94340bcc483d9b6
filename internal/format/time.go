// Package format renders times and durations for the plain CLI
// surfaces. The interactive session has its own SMPTE timecode
// rendering in internal/media; this package covers everything that
// prints to a non-TUI terminal.
package format

import (
	"fmt"
	"time"
)

const dateTimeLayout = "2006-01-02 15:04"

// DateTime formats a session timestamp for listings.
// Example output: "2026-08-26 15:04"
func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// Duration renders a session length compactly: seconds below a minute,
// minutes and seconds below an hour, hours and minutes above that.
// Example outputs: "42s", "45m30s", "1h02m".
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%02ds", m, s)
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
