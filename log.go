package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"
)

// setupLog routes logs to a file in the user cache dir so they never bleed
// into the TUI. The returned closer flushes and closes the file.
func setupLog() (func() error, error) {
	if !viper.GetBool("debug") && os.Getenv("LEXIO_DEBUG") == "" {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.WarnLevel)
		return func() error { return nil }, nil
	}

	scope := gap.NewScope(gap.User, "lexio")
	path, err := scope.LogPath("lexio.log")
	if err != nil {
		return nil, fmt.Errorf("unable to resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.Debug("logging initialized", "path", path)
	return f.Close, nil
}
