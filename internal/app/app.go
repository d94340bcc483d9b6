// Package app assembles the process-wide collaborators: the log
// pipeline, its level switches, and the crash reporter. main creates
// one App and hands the pieces to whoever needs them.
package app

import (
	"go.uber.org/zap"

	"github.com/slate-tools/cli/internal/fault"
	"github.com/slate-tools/cli/internal/logging"
)

// Version is stamped at build time:
//
//	-ldflags "-X github.com/slate-tools/cli/internal/app.Version=v0.4.0"
var Version = "dev"

// App holds the collaborators that live for the whole process.
type App struct {
	Logger   *zap.Logger
	Switches *logging.Switches
	Displays *logging.DisplayBuffer
	Reporter *fault.Reporter

	pipeline *logging.Pipeline
}

// Options configures the application factory.
type Options struct {
	Logging logging.Options
}

// DefaultOptions returns production defaults.
func DefaultOptions() Options {
	return Options{Logging: logging.DefaultOptions()}
}

// New wires the collaborators. It never fails: the log pipeline
// degrades sink by sink instead of refusing to start, and everything
// else here is allocation.
func New(opts Options) *App {
	switches := logging.NewSwitches(logging.DebuggerAttached())
	pipeline := logging.New(switches, opts.Logging)

	return &App{
		Logger:   pipeline.Logger,
		Switches: switches,
		Displays: pipeline.Displays,
		Reporter: fault.NewReporter(pipeline.Logger),
		pipeline: pipeline,
	}
}

// Close flushes and stops the log pipeline. Call once, after
// everything that logs has finished.
func (a *App) Close() error {
	return a.pipeline.Close()
}

// LogPath returns the file the log pipeline is currently writing, or
// "" when no file sink is configured or nothing has been written yet.
func (a *App) LogPath() string {
	return a.pipeline.LogPath()
}

// Dropped returns how many records the async sinks discarded under
// backpressure.
func (a *App) Dropped() uint64 {
	return a.pipeline.Dropped()
}
