package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexio-app/lexio/internal/timing"
)

func TestHighlightStyle(t *testing.T) {
	tests := []struct {
		name        string
		color       string
		wantEnabled bool
	}{
		{"known color", "yellow", true},
		{"mixed case", "Cyan", true},
		{"none disables", "none", false},
		{"unknown name disables", "chartreuse", false},
		{"empty disables", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, enabled := HighlightStyle(tt.color)
			if enabled != tt.wantEnabled {
				t.Errorf("HighlightStyle(%q) enabled = %v, want %v", tt.color, enabled, tt.wantEnabled)
			}
		})
	}
}

func TestRenderTimingsReconstructsText(t *testing.T) {
	text := "The quick  brown fox."
	timings := timing.EstimateWordTimings(text, 10)

	// Disabled highlighting must return the text byte for byte.
	got := RenderTimings(timings, 2, lipgloss.NewStyle(), false)
	if got != text {
		t.Errorf("RenderTimings() = %q, want %q", got, text)
	}

	// No active entry behaves the same way.
	got = RenderTimings(timings, -1, lipgloss.NewStyle(), true)
	if got != text {
		t.Errorf("RenderTimings() with index -1 = %q, want %q", got, text)
	}

	// Out-of-range indices are ignored, not a panic.
	got = RenderTimings(timings, len(timings)+5, lipgloss.NewStyle(), true)
	if got != text {
		t.Errorf("RenderTimings() with out-of-range index = %q, want %q", got, text)
	}
}

func TestRenderTimingsSkipsWhitespaceEntries(t *testing.T) {
	timings := []timing.WordTiming{
		{Text: "hello", Start: 0, End: 0.3},
		{Text: " ", Start: 0.3, End: 0.35},
		{Text: "world", Start: 0.35, End: 0.7},
	}

	// Highlighting a whitespace entry must leave the text untouched even
	// with an unconditional style, since styles never wrap whitespace.
	style := lipgloss.NewStyle()
	got := RenderTimings(timings, 1, style, true)
	if got != "hello world" {
		t.Errorf("RenderTimings() = %q, want %q", got, "hello world")
	}
}

func TestRenderTimingsEmpty(t *testing.T) {
	if got := RenderTimings(nil, 0, lipgloss.NewStyle(), true); got != "" {
		t.Errorf("RenderTimings(nil) = %q, want empty", got)
	}
}
