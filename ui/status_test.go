package ui

import (
	"testing"
	"time"

	"github.com/lexio-app/lexio/internal/session"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0:00"},
		{"seconds only", 7 * time.Second, "0:07"},
		{"minute boundary", 60 * time.Second, "1:00"},
		{"minutes and seconds", 95 * time.Second, "1:35"},
		{"over ten minutes", 754 * time.Second, "12:34"},
		{"negative clamps", -3 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.d); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestStateIcon(t *testing.T) {
	tests := []struct {
		state session.State
		want  string
	}{
		{session.StatePlaying, "▶"},
		{session.StatePaused, "⏸"},
		{session.StateLoading, "⟳"},
		{session.StateReady, "■"},
		{session.StateIdle, "○"},
	}

	for _, tt := range tests {
		if got := stateIcon(tt.state); got != tt.want {
			t.Errorf("stateIcon(%v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
