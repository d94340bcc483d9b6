package actions

import (
	"fmt"

	"github.com/slate-tools/cli/internal/app"
	"github.com/slate-tools/cli/internal/journal"
	"github.com/slate-tools/cli/internal/paths"
)

type actionDependencies struct {
	Printf      func(format string, a ...any) (n int, err error)
	Version     func() string
	OpenJournal func() (*journal.Store, error)
}

func defaultDeps() actionDependencies {
	return actionDependencies{
		Printf:  fmt.Printf,
		Version: func() string { return app.Version },
		OpenJournal: func() (*journal.Store, error) {
			return journal.Open(paths.JournalFilePath())
		},
	}
}
