package actions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slate-tools/cli/internal/dispatchers"
	"github.com/slate-tools/cli/internal/journal"
	"github.com/slate-tools/cli/internal/testutil"
)

func listDeps(t *testing.T, j *journal.Store) (actionDependencies, *[]string) {
	t.Helper()

	var lines []string
	deps := actionDependencies{
		Printf: func(format string, a ...any) (int, error) {
			line := fmt.Sprintf(format, a...)
			lines = append(lines, line)
			return len(line), nil
		},
		OpenJournal: func() (*journal.Store, error) { return j, nil },
	}
	return deps, &lines
}

func seedThree(t *testing.T, j *journal.Store) {
	t.Helper()

	testutil.SeedSessions(t, j, []journal.Entry{
		{
			ID:         "aaaaaaaa-1111-4000-8000-000000000001",
			WorkDir:    "/shoots/day-02",
			StartedAt:  testutil.Timestamp(t, "2026-08-10T09:00:00Z"),
			EndedAt:    testutil.Timestamp(t, "2026-08-10T09:45:30Z"),
			ExitReason: "completed",
			Frames:     81900,
		},
		{
			ID:        "bbbbbbbb-2222-4000-8000-000000000002",
			WorkDir:   "/shoots/day-03",
			StartedAt: testutil.Timestamp(t, "2026-08-20T10:00:00Z"),
		},
		{
			ID:         "cccccccc-3333-4000-8000-000000000003",
			WorkDir:    "/shoots/day-04",
			StartedAt:  testutil.Timestamp(t, "2026-08-25T11:00:00Z"),
			EndedAt:    testutil.Timestamp(t, "2026-08-25T11:00:42Z"),
			ExitReason: "completed",
			Frames:     1260,
		},
	})
}

func TestSessionsList_PrintsNewestFirst(t *testing.T) {
	j := testutil.NewTestJournal(t)
	seedThree(t, j)
	deps, lines := listDeps(t, j)

	err := sessionsList(nil, dispatchers.NewParsedFlags(nil), deps)

	require.NoError(t, err)
	require.Len(t, *lines, 3)
	require.Contains(t, (*lines)[0], "cccccccc")
	require.Contains(t, (*lines)[1], "bbbbbbbb")
	require.Contains(t, (*lines)[2], "aaaaaaaa")
}

func TestSessionsList_MarksCrashedSessions(t *testing.T) {
	j := testutil.NewTestJournal(t)
	seedThree(t, j)
	deps, lines := listDeps(t, j)

	err := sessionsList(nil, dispatchers.NewParsedFlags(nil), deps)

	require.NoError(t, err)
	require.Contains(t, (*lines)[1], "crashed")
	require.NotContains(t, (*lines)[0], "crashed")
}

func TestSessionsList_ShowsDurationAndFrames(t *testing.T) {
	j := testutil.NewTestJournal(t)
	seedThree(t, j)
	deps, lines := listDeps(t, j)

	err := sessionsList(nil, dispatchers.NewParsedFlags(nil), deps)

	require.NoError(t, err)
	require.Contains(t, (*lines)[2], "45m30s")
	require.Contains(t, (*lines)[2], "(81900 frames)")
	require.Contains(t, (*lines)[2], "/shoots/day-02")
}

func TestSessionsList_LimitFlag(t *testing.T) {
	j := testutil.NewTestJournal(t)
	seedThree(t, j)
	deps, lines := listDeps(t, j)

	err := sessionsList(nil, dispatchers.NewParsedFlags([]string{"--limit=2"}), deps)

	require.NoError(t, err)
	require.Len(t, *lines, 2)
	require.Contains(t, (*lines)[0], "cccccccc")
	require.Contains(t, (*lines)[1], "bbbbbbbb")
}

func TestSessionsList_SinceFlag(t *testing.T) {
	j := testutil.NewTestJournal(t)
	seedThree(t, j)
	deps, lines := listDeps(t, j)

	err := sessionsList(nil, dispatchers.NewParsedFlags([]string{"--since=2026-08-15"}), deps)

	require.NoError(t, err)
	require.Len(t, *lines, 2)
	require.NotContains(t, (*lines)[1], "aaaaaaaa")
}

func TestSessionsList_EmptyJournal(t *testing.T) {
	j := testutil.NewTestJournal(t)
	deps, lines := listDeps(t, j)

	err := sessionsList(nil, dispatchers.NewParsedFlags(nil), deps)

	require.NoError(t, err)
	require.Len(t, *lines, 1)
	require.Contains(t, (*lines)[0], "No recorded sessions yet")
}

func TestSessionsList_OpenError(t *testing.T) {
	deps := actionDependencies{
		OpenJournal: func() (*journal.Store, error) {
			return nil, errors.New("disk gone")
		},
	}

	err := sessionsList(nil, dispatchers.NewParsedFlags(nil), deps)

	require.Error(t, err)
	require.Contains(t, err.Error(), "open session journal")
}
