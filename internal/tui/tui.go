package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/lazyscales/internal/library"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program browsing lib. The program uses the
// alternate screen buffer.
func NewProgram(lib *library.Library, opts Options, progOpts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, progOpts...)
	return tea.NewProgram(NewModel(lib, opts), allOpts...)
}

// Run creates and runs the browser, blocking until it exits.
func Run(lib *library.Library, opts Options) error {
	if _, err := NewProgram(lib, opts).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
