package launch

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/slate-tools/cli/internal/encoder"
	"github.com/slate-tools/cli/internal/journal"
	"github.com/slate-tools/cli/internal/notify"
	"github.com/slate-tools/cli/internal/paths"
	"github.com/slate-tools/cli/internal/power"
	"github.com/slate-tools/cli/internal/session"
)

// inhibitor and notifier are the slices of power.Inhibitor and
// notify.Notifier the launcher touches.
type inhibitor interface {
	Start(ctx context.Context)
	Stop()
}

type notifier interface {
	Acquire(workDir string)
	Notify(title, body string)
	Release()
}

// launchDeps holds the injectable edges of a mode launch. Tests swap
// them for fakes; the binary runs with defaultDeps.
type launchDeps struct {
	Stderr       io.Writer
	NewID        func() string
	Now          func() time.Time
	SettingsPath func() (string, error)
	OpenJournal  func() (*journal.Store, error)
	NewInhibitor func(log *zap.Logger) inhibitor
	NewNotifier  func(log *zap.Logger) notifier
	RunSession   func(ctx context.Context, cfg session.Config, src session.Source, log *zap.Logger) (session.Result, error)
	RunEncoder   func(ctx context.Context, log *zap.Logger, args []string) error
}

func defaultDeps() launchDeps {
	return launchDeps{
		Stderr:       os.Stderr,
		NewID:        uuid.NewString,
		Now:          time.Now,
		SettingsPath: paths.SettingsFilePath,
		OpenJournal: func() (*journal.Store, error) {
			return journal.Open(paths.JournalFilePath())
		},
		NewInhibitor: func(log *zap.Logger) inhibitor {
			return power.New(log)
		},
		NewNotifier: func(log *zap.Logger) notifier {
			onTerminal := term.IsTerminal(int(os.Stdout.Fd()))
			return notify.New(os.Stdout, onTerminal, log)
		},
		RunSession: session.Run,
		RunEncoder: encoder.Run,
	}
}
