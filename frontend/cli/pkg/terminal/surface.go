package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/furisto/ask/backend/dialog"
)

// DefaultTTY is the controlling terminal. Stdin and stdout may be taken by
// the MCP stdio transport, so the dialog always talks to the terminal itself.
const DefaultTTY = "/dev/tty"

type SurfaceOption func(*Surface)

// WithIO replaces the terminal with the given streams.
func WithIO(in io.Reader, out io.Writer) SurfaceOption {
	return func(s *Surface) {
		s.in = in
		s.out = out
	}
}

func WithTTY(path string) SurfaceOption {
	return func(s *Surface) {
		s.ttyPath = path
	}
}

// WithoutAltScreen renders inline instead of taking over the whole terminal.
func WithoutAltScreen() SurfaceOption {
	return func(s *Surface) {
		s.altScreen = false
	}
}

// Surface shows questions as a full screen terminal dialog.
type Surface struct {
	ttyPath   string
	in        io.Reader
	out       io.Writer
	altScreen bool
}

func NewSurface(opts ...SurfaceOption) *Surface {
	s := &Surface{ttyPath: DefaultTTY, altScreen: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) Present(ctx context.Context, d *dialog.Dialog) error {
	in, out := s.in, s.out
	if in == nil || out == nil {
		tty, err := os.OpenFile(s.ttyPath, os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("failed to open terminal %s: %w", s.ttyPath, err)
		}
		defer tty.Close()
		in, out = tty, tty
	}

	options := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}
	if s.altScreen {
		options = append(options, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(NewSession(d), options...).Run()
	switch {
	case errors.Is(err, tea.ErrInterrupted):
		d.Close()
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return ctx.Err()
	}

	return err
}

// Interactive reports whether path is a terminal a dialog can be shown on.
func Interactive(path string) bool {
	tty, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return false
	}
	defer tty.Close()

	return term.IsTerminal(int(tty.Fd()))
}

var _ dialog.Surface = (*Surface)(nil)
