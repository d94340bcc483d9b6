// Package fault funnels panics from every failure domain into the log
// pipeline before the process acts on them. Crash reports have to reach
// the file sink even when the thing that crashed is the UI the user was
// looking at.
package fault

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Domain identifies which failure domain a panic escaped from.
type Domain string

const (
	// DomainProcess covers the main goroutine.
	DomainProcess Domain = "process"
	// DomainBackground covers goroutines started through Go.
	DomainBackground Domain = "background"
	// DomainSession covers the interactive session.
	DomainSession Domain = "session"
)

// Reporter captures panics and writes them through one logger. The
// fatal hook is disarmed so reporting at fatal severity never exits the
// process behind the caller's back.
type Reporter struct {
	log *zap.Logger
}

// writeThenResume keeps running after a fatal-severity write. zap
// upgrades the stock WriteThenNoop hook back to WriteThenFatal at the
// fatal level, so the reporter brings its own hook type: recording a
// crash must never be the thing that exits the process.
type writeThenResume struct{}

func (writeThenResume) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

func NewReporter(log *zap.Logger) *Reporter {
	return &Reporter{
		log: log.Named("fault").WithOptions(zap.WithFatalHook(writeThenResume{})),
	}
}

// CaptureCrash is deferred at the top of main. It logs the panic with
// the crashing stack, then rethrows so the runtime still prints the
// traceback and exits nonzero.
func (r *Reporter) CaptureCrash() {
	p := recover()
	if p == nil {
		return
	}
	r.report(zapcore.FatalLevel, "process crashed", DomainProcess, p)
	panic(p)
}

// CaptureSessionCrash is deferred around the interactive session. A
// panic inside the UI is as unrecoverable as a process crash, so it is
// logged at fatal severity, but it converts to exit code 1 through code
// instead of rethrowing so teardown deferred beneath it still runs.
func (r *Reporter) CaptureSessionCrash(code *int) {
	p := recover()
	if p == nil {
		return
	}
	r.report(zapcore.FatalLevel, "session crashed", DomainSession, p)
	*code = 1
}

// Go runs fn on a new goroutine and reports a panic instead of letting
// it take the process down.
func (r *Reporter) Go(name string, fn func()) {
	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.report(zapcore.ErrorLevel, "background task crashed",
					DomainBackground, p, zap.String("task", name))
			}
		}()
		fn()
	}()
}

// report must never throw: it runs inside deferred crash handlers, and
// a second panic there would mask the first. If the pipeline itself is
// the casualty, fall back to bare stderr.
func (r *Reporter) report(level zapcore.Level, msg string, domain Domain, p interface{}, extra ...zap.Field) {
	defer func() {
		if recover() != nil {
			fmt.Fprintf(os.Stderr, "slate: %s [%s]: %v\n", msg, domain, p)
		}
	}()

	fields := make([]zap.Field, 0, len(extra)+3)
	fields = append(fields,
		zap.String("domain", string(domain)),
		zap.Any("panic", p),
		zap.Stack("stack"),
	)
	fields = append(fields, extra...)

	r.log.Log(level, msg, fields...)
}
