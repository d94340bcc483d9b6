package actions

import (
	"fmt"
	"strings"
	"time"

	"github.com/slate-tools/cli/internal/dispatchers"
	"github.com/slate-tools/cli/internal/format"
	"github.com/slate-tools/cli/internal/journal"
	"github.com/slate-tools/cli/internal/ui/style"
)

const defaultSessionsLimit = 20

// SessionsList prints the most recent entries of the session journal,
// newest first.
func SessionsList(args []string, flags *dispatchers.ParsedFlags) error {
	return sessionsList(args, flags, defaultDeps())
}

func sessionsList(_ []string, flags *dispatchers.ParsedFlags, deps actionDependencies) error {
	store, err := deps.OpenJournal()
	if err != nil {
		return fmt.Errorf("open session journal: %w", err)
	}
	defer func() { _ = store.Close() }()

	limit := flags.Int("--limit", defaultSessionsLimit)
	var since time.Time
	if t := flags.Date("--since"); t != nil {
		since = *t
	}

	entries, err := store.Recent(limit, since)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(entries) == 0 {
		_, _ = deps.Printf("No recorded sessions yet.\n")
		return nil
	}

	for _, e := range entries {
		_, _ = deps.Printf("%s\n", formatEntry(e))
	}
	return nil
}

func formatEntry(e journal.Entry) string {
	id := e.ID
	if len(id) > 8 {
		id = id[:8]
	}

	var b strings.Builder
	b.WriteString(style.Info(id))
	b.WriteString("  ")
	b.WriteString(format.DateTime(e.StartedAt.Local()))
	b.WriteString("  ")
	if e.Crashed() {
		b.WriteString(style.Error("crashed"))
	} else {
		b.WriteString(fmt.Sprintf("%8s", format.Duration(e.Duration())))
	}
	b.WriteString("  ")
	b.WriteString(e.WorkDir)
	if e.Frames > 0 {
		b.WriteString(style.Muted(fmt.Sprintf("  (%d frames)", e.Frames)))
	}
	return b.String()
}
