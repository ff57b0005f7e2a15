package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexio-app/lexio/internal/timing"
)

// highlightColors maps the config color names to ANSI palette entries.
var highlightColors = map[string]string{
	"black":   "0",
	"red":     "196",
	"green":   "46",
	"yellow":  "226",
	"blue":    "39",
	"magenta": "201",
	"cyan":    "51",
	"white":   "231",
}

// HighlightStyle resolves a configured color name to a highlight style. The
// name "none" (or an unknown name) disables highlighting.
func HighlightStyle(name string) (lipgloss.Style, bool) {
	code, ok := highlightColors[strings.ToLower(name)]
	if !ok {
		return lipgloss.NewStyle(), false
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(code)).
		Foreground(lipgloss.Color("0")).
		Bold(true)
	return style, true
}

// RenderTimings reconstructs the item text from its timing schedule, wrapping
// the active entry in the highlight style. The schedule preserves whitespace
// runs as entries of their own, so concatenating every entry reproduces the
// original text exactly.
func RenderTimings(timings []timing.WordTiming, activeIndex int, style lipgloss.Style, enabled bool) string {
	var b strings.Builder
	for i, wt := range timings {
		if enabled && i == activeIndex && !wt.IsWhitespace() {
			b.WriteString(style.Render(wt.Text))
			continue
		}
		b.WriteString(wt.Text)
	}
	return b.String()
}
