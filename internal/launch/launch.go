package launch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/slate-tools/cli/internal/app"
	"github.com/slate-tools/cli/internal/cli"
	"github.com/slate-tools/cli/internal/encoder"
	"github.com/slate-tools/cli/internal/journal"
	"github.com/slate-tools/cli/internal/media"
	"github.com/slate-tools/cli/internal/session"
	"github.com/slate-tools/cli/internal/settings"
	"github.com/slate-tools/cli/internal/usage"
)

// Run executes the resolved outcome and returns the process exit code.
func Run(ctx context.Context, a *app.App, out Outcome) int {
	return runWith(ctx, a, out, defaultDeps())
}

func runWith(ctx context.Context, a *app.App, out Outcome, deps launchDeps) int {
	switch out.Kind {
	case KindSession:
		return runSession(ctx, a, out.Session, deps)
	case KindEncode:
		return runEncode(ctx, a, out.Encode, deps)
	default:
		return out.Code
	}
}

// runEncode is the opaque hand-off: the sidecar's exit code becomes
// ours and its stderr already said whatever there was to say.
func runEncode(ctx context.Context, a *app.App, req *cli.EncodeRequest, deps launchDeps) int {
	err := deps.RunEncoder(ctx, a.Logger, req.Args)
	if err == nil {
		return 0
	}

	var exit *encoder.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}

	fmt.Fprintln(deps.Stderr, err.Error())

	var ue *usage.Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	return 1
}

// runSession stands the session support up, runs the UI to completion
// and tears everything down on every exit path. Deferred order
// matters here: the crash capture registered last recovers a UI panic
// first, so the journal close, notifier release, keep-awake stop and
// context cancel beneath it still run for a crash exactly as they do
// for a clean stop.
func runSession(ctx context.Context, a *app.App, req *cli.SessionRequest, deps launchDeps) (code int) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := a.Logger.Named("launch")

	store, prefs := loadPreferences(a.Logger, log, deps)
	cfg := resolveConfig(req, prefs, a.LogPath(), deps)

	log.Info("entering session mode",
		zap.String("session_id", cfg.ID),
		zap.String("work_dir", cfg.WorkDir),
		zap.Bool("ask_path", cfg.AskPath),
		zap.Bool("hidden", cfg.Hidden),
		zap.Stringer("profile", cfg.Profile))

	inh := deps.NewInhibitor(a.Logger)
	inh.Start(ctx)
	defer inh.Stop()

	note := deps.NewNotifier(a.Logger)
	note.Acquire(cfg.WorkDir)
	defer note.Release()

	jr := openJournal(log, deps)
	if jr != nil {
		defer func() { _ = jr.Close() }()
		beginEntry(jr, log, cfg, deps.Now())
	}

	defer a.Reporter.CaptureSessionCrash(&code)

	res, err := deps.RunSession(ctx, cfg, a.Displays, a.Logger)
	if err != nil {
		// An unfinished journal row is how a crash looks; a UI error is
		// not one, so close the entry with an empty reason.
		finishEntry(jr, log, cfg.ID, deps.Now(), session.Result{})
		return reportSessionError(err, log, deps)
	}

	end := endedAt(res, deps)
	finishEntry(jr, log, cfg.ID, end, res)
	rememberWorkDir(store, log, res)

	note.Notify("slate", endMessage(res, end))

	log.Info("session finished",
		zap.String("session_id", cfg.ID),
		zap.String("reason", res.Reason),
		zap.Int64("frames", res.Frames),
		zap.Uint64("dropped_records", a.Dropped()))

	return 0
}

// loadPreferences reads the settings file, falling back to defaults
// when the file is unreachable. A broken preference file must never
// block a recording.
func loadPreferences(base, log *zap.Logger, deps launchDeps) (*settings.Store, settings.Settings) {
	path, err := deps.SettingsPath()
	if err != nil {
		log.Warn("settings unavailable, using defaults", zap.Error(err))
		return nil, settings.Default()
	}

	store := settings.NewStore(path, base)
	prefs, err := store.Load()
	if err != nil {
		log.Warn("settings load failed, using defaults",
			zap.String("path", path), zap.Error(err))
		return store, settings.Default()
	}
	return store, prefs
}

// resolveConfig merges the command line over the saved preferences.
// Flags win; an explicit path suppresses the saved ask-every-time
// preference but never the --ask-path flag.
func resolveConfig(req *cli.SessionRequest, prefs settings.Settings, logPath string, deps launchDeps) session.Config {
	cfg := session.Config{
		ID:      deps.NewID(),
		WorkDir: req.WorkDir,
		AskPath: req.AskPath,
		Hidden:  req.Hidden || prefs.StartHidden,
		Profile: media.DefaultProfile(),
		LogPath: logPath,
	}

	if cfg.WorkDir == "" {
		cfg.WorkDir = prefs.WorkDir
		if prefs.AskWorkDir {
			cfg.AskPath = true
		}
	}

	return cfg
}

func openJournal(log *zap.Logger, deps launchDeps) *journal.Store {
	jr, err := deps.OpenJournal()
	if err != nil {
		log.Warn("session journal unavailable", zap.Error(err))
		return nil
	}
	return jr
}

func beginEntry(jr *journal.Store, log *zap.Logger, cfg session.Config, startedAt time.Time) {
	err := jr.Begin(journal.Entry{
		ID:        cfg.ID,
		WorkDir:   cfg.WorkDir,
		Profile:   cfg.Profile.String(),
		StartedAt: startedAt,
	})
	if err != nil {
		log.Warn("journal write failed", zap.Error(err))
	}
}

func finishEntry(jr *journal.Store, log *zap.Logger, id string, endedAt time.Time, res session.Result) {
	if jr == nil {
		return
	}
	if err := jr.Finish(id, endedAt, res.Reason, res.Frames, 0); err != nil {
		log.Warn("journal write failed", zap.Error(err))
	}
}

// endMessage summarizes the recording for the desktop notification. A
// session abandoned at the directory prompt never started a clock.
func endMessage(res session.Result, end time.Time) string {
	if res.StartedAt.IsZero() {
		return fmt.Sprintf("recording %s", res.Reason)
	}
	return fmt.Sprintf("recording %s after %s",
		res.Reason, end.Sub(res.StartedAt).Round(time.Second))
}

func endedAt(res session.Result, deps launchDeps) time.Time {
	if res.EndedAt.IsZero() {
		return deps.Now()
	}
	return res.EndedAt
}

func rememberWorkDir(store *settings.Store, log *zap.Logger, res session.Result) {
	if store == nil || !res.Remember || res.WorkDir == "" {
		return
	}
	if err := store.RememberWorkDir(res.WorkDir); err != nil {
		log.Warn("could not save work directory",
			zap.String("work_dir", res.WorkDir), zap.Error(err))
	}
}

func reportSessionError(err error, log *zap.Logger, deps launchDeps) int {
	log.Error("session failed", zap.Error(err))
	fmt.Fprintln(deps.Stderr, err.Error())

	var ue *usage.Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	return 1
}
