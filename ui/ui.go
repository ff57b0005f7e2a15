// Package ui provides the terminal player for lexio: a queue of text items,
// the body of the current item with the spoken word highlighted, and a
// transport status line.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lexio-app/lexio/internal/session"
)

// Config contains TUI-specific configuration.
type Config struct {
	HighlightColor string
	ShowStatus     bool

	// For debugging the UI
	AltScreen bool `env:"LEXIO_ALT_SCREEN" envDefault:"true"`
}

// NewProgram returns a new Tea program driving the given session.
func NewProgram(cfg Config, sess *session.Session) *tea.Program {
	log.Debug("starting player", "highlight", cfg.HighlightColor, "status", cfg.ShowStatus)

	opts := []tea.ProgramOption{}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return tea.NewProgram(newPlayerModel(cfg, sess), opts...)
}
