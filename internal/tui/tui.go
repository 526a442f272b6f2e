package tui

import (
	"io"

	"callstrip/internal/calllog"
	"callstrip/internal/icons"
	"callstrip/internal/logger"
	"callstrip/internal/strip"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the call-log browser.
type Options struct {
	Store      calllog.Store
	Bundle     *icons.Bundle
	Accounting strip.Accounting
	// Limit caps the number of rows loaded; <= 0 loads all.
	Limit int
}

// Run starts the browser on the alt screen. Log output is discarded while it
// runs so it cannot tear the screen.
func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	defer muteLogs()()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// muteLogs discards log output and returns a func restoring the previous
// writer.
func muteLogs() (restore func()) {
	prev := logger.SetOutput(io.Discard)
	return func() { logger.SetOutput(prev) }
}
