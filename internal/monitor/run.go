package monitor

import (
	"context"
	stderrors "errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/ddstop/ddstop/internal/errors"
)

// Run shows the dashboard until the user quits or ctx ends.
// Bubble Tea restores the terminal on every exit path.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerminal,
			"The dashboard needs an interactive terminal",
			"Run 'ddstop dump' to print the current state instead")
	}

	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, opts...)

	program := tea.NewProgram(m, opts...)
	if _, err := program.Run(); err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Terminal I/O failed",
			"Check that the terminal supports an alternate screen")
	}
	return nil
}
