// Package session implements the interactive recording session: a
// Bubble Tea program that prompts for a working directory when the
// operator asked for that, shows the recording clock next to a live
// log pane, and reports how the session ended.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/slate-tools/cli/internal/logging"
	"github.com/slate-tools/cli/internal/media"
	"github.com/slate-tools/cli/internal/usage"
)

// Config describes one session launch.
type Config struct {
	ID      string
	WorkDir string
	AskPath bool
	Hidden  bool
	Profile media.Profile
	LogPath string
}

// Source feeds the live log pane. *logging.DisplayBuffer satisfies it.
type Source interface {
	Snapshot() []logging.Record
}

// Result is what the session hands back to the launcher. Reason is one
// of the Reason constants; an empty Reason means the UI errored out
// before reaching a clean stop.
type Result struct {
	WorkDir   string
	Remember  bool
	StartedAt time.Time
	EndedAt   time.Time
	Frames    int64
	Reason    string
}

// Run drives the interactive session until the operator stops it or the
// context is cancelled.
func Run(ctx context.Context, cfg Config, src Source, log *zap.Logger) (Result, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return Result{}, usage.NotATerminal()
	}

	m := newModel(cfg, src, log)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("run session ui: %w", err)
	}

	fm, ok := final.(sessionModel)
	if !ok {
		return Result{}, errors.New("session ui returned unexpected model")
	}
	return fm.result(), nil
}
