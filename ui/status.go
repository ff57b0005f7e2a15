package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexio-app/lexio/internal/session"
)

var (
	stateStyleByColor = func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}

	playingStyle = stateStyleByColor("46")  // green
	pausedStyle  = stateStyleByColor("226") // yellow
	loadingStyle = stateStyleByColor("39")  // blue
	idleStyle    = stateStyleByColor("245") // gray
	errorStyle   = stateStyleByColor("196") // red
	dimStyle     = stateStyleByColor("247")

	statusSeparator = stateStyleByColor("240").Render(" │ ")
)

// renderStatus builds the one-line transport status for the player view.
func renderStatus(s *session.Session) string {
	state := s.State()

	var parts []string
	parts = append(parts, stateStyle(state).Render(stateIcon(state)+" "+state.String()))

	if items := s.Items(); len(items) > 0 && s.CurrentIndex() >= 0 {
		parts = append(parts, dimStyle.Render(
			fmt.Sprintf("item %d/%d", s.CurrentIndex()+1, len(items)),
		))
	}

	if duration := s.TrackDuration(); duration > 0 {
		position := time.Duration(s.Position() * float64(time.Second))
		total := time.Duration(duration * float64(time.Second))
		parts = append(parts, dimStyle.Render(
			fmt.Sprintf("%s/%s", formatDuration(position), formatDuration(total)),
		))
	}

	parts = append(parts, dimStyle.Render(fmt.Sprintf("%.2gx", s.Rate())))

	if s.Loop() {
		parts = append(parts, dimStyle.Render("loop"))
	}

	if err := s.Err(); err != nil {
		parts = append(parts, errorStyle.Render("⚠ "+err.Error()))
	}

	return strings.Join(parts, statusSeparator)
}

func stateStyle(state session.State) lipgloss.Style {
	switch state {
	case session.StatePlaying:
		return playingStyle
	case session.StatePaused:
		return pausedStyle
	case session.StateLoading:
		return loadingStyle
	default:
		return idleStyle
	}
}

func stateIcon(state session.State) string {
	switch state {
	case session.StatePlaying:
		return "▶"
	case session.StatePaused:
		return "⏸"
	case session.StateLoading:
		return "⟳"
	case session.StateReady:
		return "■"
	default:
		return "○"
	}
}

// formatDuration formats a playback position for display.
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "0:00"
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
