package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateTime(t *testing.T) {
	ts := time.Date(2026, 8, 26, 15, 4, 5, 0, time.UTC)

	require.Equal(t, "2026-08-26 15:04", DateTime(ts))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0s"},
		{"negative clamps", -5 * time.Second, "0s"},
		{"seconds", 42 * time.Second, "42s"},
		{"rounds subsecond", 41*time.Second + 700*time.Millisecond, "42s"},
		{"exact minute", time.Minute, "1m"},
		{"minutes and seconds", 45*time.Minute + 30*time.Second, "45m30s"},
		{"pads seconds", 5*time.Minute + 3*time.Second, "5m03s"},
		{"exact hour", time.Hour, "1h"},
		{"hours and minutes", time.Hour + 2*time.Minute, "1h02m"},
		{"drops seconds above an hour", 2*time.Hour + 30*time.Minute + 59*time.Second, "2h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Duration(tt.in))
		})
	}
}
