// Package notify surfaces session state outside the log pane. The
// terminal title tracks the running recording and OSC 777 desktop
// notifications fire on milestones, where the terminal supports them.
package notify

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

const idleTitle = "slate"

// Notifier owns the terminal-integration side effects of a session.
// Acquire and Release bracket the recording; Release is safe on every
// exit path and only restores once.
type Notifier struct {
	out     *termenv.Output
	log     *zap.Logger
	enabled bool

	acquireMu sync.Mutex
	acquired  bool
	release   sync.Once
}

// New builds a notifier writing to w. Pass enabled=false when w is not
// a terminal so escape sequences never leak into pipes.
func New(w io.Writer, enabled bool, log *zap.Logger) *Notifier {
	return &Notifier{
		out:     termenv.NewOutput(w),
		log:     log.Named("notify"),
		enabled: enabled,
	}
}

// Acquire marks the terminal as recording into workDir.
func (n *Notifier) Acquire(workDir string) {
	if !n.enabled {
		return
	}

	n.acquireMu.Lock()
	n.acquired = true
	n.acquireMu.Unlock()

	title := idleTitle + " ● rec"
	if workDir != "" {
		title = fmt.Sprintf("%s ● rec %s", idleTitle, filepath.Base(workDir))
	}
	n.out.SetWindowTitle(title)
}

// Notify sends a desktop notification through the terminal.
func (n *Notifier) Notify(title, body string) {
	if !n.enabled {
		return
	}
	n.out.Notify(title, body)
	n.log.Debug("notification sent", zap.String("title", title))
}

// Release restores the terminal title. Exactly once, no matter how many
// exit paths call it.
func (n *Notifier) Release() {
	n.release.Do(func() {
		if !n.enabled {
			return
		}

		n.acquireMu.Lock()
		acquired := n.acquired
		n.acquireMu.Unlock()
		if !acquired {
			return
		}

		n.out.SetWindowTitle(idleTitle)
	})
}
