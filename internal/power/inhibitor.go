// Package power keeps the machine awake while a recording runs. The OS
// idle timers would otherwise suspend the system mid-capture the moment
// nobody touches the keyboard.
package power

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slate-tools/cli/internal/logging"
)

// DefaultInterval is how often the keep-awake state is re-asserted.
const DefaultInterval = 30 * time.Second

// failureWarnStreak is how many consecutive assertion failures it takes
// before the inhibitor warns. One warning per streak; a success resets.
const failureWarnStreak = 10

// Asserter is the platform keep-awake primitive. KeepAwake may be
// called repeatedly; Release undoes it.
type Asserter interface {
	KeepAwake() error
	Release() error
}

// Inhibitor re-asserts the platform keep-awake state on a fixed
// interval for as long as it runs. Start and Stop bracket a recording
// session.
type Inhibitor struct {
	log      *zap.Logger
	asserter Asserter
	interval time.Duration

	// failures is only touched by the runner goroutine.
	failures int

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Inhibitor)

// WithAsserter substitutes the platform primitive.
func WithAsserter(a Asserter) Option {
	return func(i *Inhibitor) { i.asserter = a }
}

// WithInterval overrides the re-assert interval.
func WithInterval(d time.Duration) Option {
	return func(i *Inhibitor) {
		if d > 0 {
			i.interval = d
		}
	}
}

func New(log *zap.Logger, opts ...Option) *Inhibitor {
	i := &Inhibitor{
		log:      log.Named("power"),
		asserter: newAsserter(),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Start asserts keep-awake now and keeps re-asserting until ctx is
// cancelled or Stop is called. Calling Start on a running inhibitor is
// a no-op.
func (i *Inhibitor) Start(ctx context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.done != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	i.cancel = cancel
	i.done = done

	go i.run(runCtx, done)
}

// Stop releases the keep-awake state and waits for the runner to exit.
// Safe without a prior Start and safe to call twice.
func (i *Inhibitor) Stop() {
	i.mu.Lock()
	cancel, done := i.cancel, i.done
	i.cancel, i.done = nil, nil
	i.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (i *Inhibitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	// The Windows primitive is thread-affine: the assertion belongs to
	// the calling thread, so the runner pins itself to one.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	i.assert()

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := i.asserter.Release(); err != nil {
				i.log.Debug("keep-awake release failed", zap.Error(err))
			}
			return
		case <-ticker.C:
			i.assert()
		}
	}
}

func (i *Inhibitor) assert() {
	err := i.asserter.KeepAwake()
	if err != nil {
		i.failures++
		if i.failures == failureWarnStreak {
			i.log.Warn("keep-awake assertions failing, system may sleep mid-recording",
				zap.Int("consecutive_failures", i.failures),
				zap.Error(err))
		}
		return
	}

	if i.failures >= failureWarnStreak {
		i.log.Info("keep-awake assertion recovered",
			zap.Int("failures_before_recovery", i.failures))
	}
	i.failures = 0
	i.log.Log(logging.TraceLevel, "keep-awake asserted")
}
