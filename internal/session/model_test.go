package session

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slate-tools/cli/internal/logging"
	"github.com/slate-tools/cli/internal/media"
)

type fakeSource struct {
	records []logging.Record
}

func (s *fakeSource) Snapshot() []logging.Record { return s.records }

func testConfig() Config {
	return Config{
		ID:      "0b5a9c1e-7d31-4f9e-8a44-2c6f0d9e1b23",
		WorkDir: "/shoots/day-04",
		Profile: media.DefaultProfile(),
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// =========== MODEL TESTS ===========

func TestNewModel_PromptWhenAsked(t *testing.T) {
	cfg := testConfig()
	cfg.AskPath = true

	m := newModel(cfg, &fakeSource{}, zap.NewNop())

	require.Equal(t, phasePrompt, m.phase)
	require.True(t, m.startedAt.IsZero())
	require.Equal(t, "/shoots/day-04", m.input.Value())
}

func TestNewModel_PromptWhenNoWorkDir(t *testing.T) {
	cfg := testConfig()
	cfg.WorkDir = ""

	m := newModel(cfg, &fakeSource{}, zap.NewNop())

	require.Equal(t, phasePrompt, m.phase)
}

func TestNewModel_RecordsImmediately(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())

	require.Equal(t, phaseRecording, m.phase)
	require.False(t, m.startedAt.IsZero())
	require.Equal(t, "/shoots/day-04", m.workDir)
	require.False(t, m.remember)
}

func TestPromptSubmitStartsRecording(t *testing.T) {
	cfg := testConfig()
	cfg.AskPath = true
	m := newModel(cfg, &fakeSource{}, zap.NewNop())

	m.input.SetValue("  /shoots/day-05  ")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(sessionModel)

	require.Equal(t, phaseRecording, m.phase)
	require.Equal(t, "/shoots/day-05", m.workDir)
	require.True(t, m.remember)
	require.False(t, m.startedAt.IsZero())
}

func TestPromptEmptySubmitIgnored(t *testing.T) {
	cfg := testConfig()
	cfg.WorkDir = ""
	m := newModel(cfg, &fakeSource{}, zap.NewNop())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(sessionModel)

	require.Equal(t, phasePrompt, m.phase)
}

func TestPromptEscAborts(t *testing.T) {
	cfg := testConfig()
	cfg.AskPath = true
	m := newModel(cfg, &fakeSource{}, zap.NewNop())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(sessionModel)

	require.Equal(t, ReasonAborted, m.reason)
	require.False(t, m.endedAt.IsZero())
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRecordingStopKeysOpenConfirm(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		keyRune('q'),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m := newModel(testConfig(), &fakeSource{}, zap.NewNop())

		updated, _ := m.Update(msg)
		m = updated.(sessionModel)

		require.Equal(t, phaseConfirmStop, m.phase, "key %s", msg.String())
	}
}

func TestConfirmYesStops(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	m = m.openConfirm()

	updated, cmd := m.Update(confirmResult{confirmed: true})
	m = updated.(sessionModel)

	require.Equal(t, ReasonCompleted, m.reason)
	require.False(t, m.endedAt.IsZero())
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConfirmNoResumes(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	m = m.openConfirm()

	updated, _ := m.Update(confirmResult{confirmed: false})
	m = updated.(sessionModel)

	require.Equal(t, phaseRecording, m.phase)
	require.Empty(t, m.reason)
}

func TestConfirmKeyYResolves(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	m = m.openConfirm()

	_, cmd := m.Update(keyRune('y'))

	require.NotNil(t, cmd)
	require.Equal(t, confirmResult{confirmed: true}, cmd())
}

func TestHiddenAndLogToggles(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	require.False(t, m.hidden)
	require.True(t, m.showLog)

	updated, _ := m.Update(keyRune('h'))
	m = updated.(sessionModel)
	require.True(t, m.hidden)

	updated, _ = m.Update(keyRune('l'))
	m = updated.(sessionModel)
	require.False(t, m.showLog)

	updated, _ = m.Update(keyRune('h'))
	m = updated.(sessionModel)
	require.False(t, m.hidden)
}

func TestTickPullsRecords(t *testing.T) {
	src := &fakeSource{records: []logging.Record{
		{Time: time.Now(), Message: "keep-awake asserted"},
	}}
	m := newModel(testConfig(), src, zap.NewNop())

	updated, cmd := m.Update(tickMsg(time.Now()))
	m = updated.(sessionModel)

	require.Len(t, m.records, 1)
	require.False(t, m.now.IsZero())
	require.NotNil(t, cmd, "tick must reschedule itself")
}

func TestWindowSizeReadiesPane(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(sessionModel)

	require.True(t, m.ready)
	require.Equal(t, 96, m.pane.Width)
	require.Equal(t, 30-chromeHeight, m.pane.Height)
}

// =========== CLOCK TESTS ===========

func TestFramesFromElapsed(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	m.startedAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	m.now = m.startedAt.Add(2 * time.Second)

	require.Equal(t, int64(60), m.frames())
	require.Equal(t, "00:00:02:00", m.timecode().String())
}

func TestFramesStopAtEnd(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	m.startedAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	m.endedAt = m.startedAt.Add(1 * time.Second)
	m.now = m.startedAt.Add(10 * time.Second)

	require.Equal(t, int64(30), m.frames())
}

func TestFramesFallBackToDefaultRate(t *testing.T) {
	cfg := testConfig()
	cfg.Profile = media.Profile{}
	m := newModel(cfg, &fakeSource{}, zap.NewNop())
	m.startedAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	m.now = m.startedAt.Add(1 * time.Second)

	require.Equal(t, int64(30), m.frames())
}

func TestElapsedZeroBeforeStart(t *testing.T) {
	cfg := testConfig()
	cfg.AskPath = true
	m := newModel(cfg, &fakeSource{}, zap.NewNop())
	m.now = time.Now()

	require.Equal(t, time.Duration(0), m.elapsed())
	require.Equal(t, int64(0), m.frames())
}

func TestResultCarriesSessionState(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	m.startedAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	m.now = m.startedAt.Add(3 * time.Second)

	updated, _ := m.Update(confirmResult{confirmed: true})
	m = updated.(sessionModel)

	res := m.result()
	require.Equal(t, "/shoots/day-04", res.WorkDir)
	require.Equal(t, ReasonCompleted, res.Reason)
	require.False(t, res.EndedAt.IsZero())
	require.Positive(t, res.Frames)
}

// =========== VIEW TESTS ===========

func TestView_LoadingBeforeSize(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())

	require.Equal(t, "Loading...", m.View())
}

func TestView_RecordingShowsClock(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(sessionModel)

	view := m.View()
	require.Contains(t, view, "REC")
	require.Contains(t, view, "/shoots/day-04")
}

func TestView_PromptAsksForDirectory(t *testing.T) {
	cfg := testConfig()
	cfg.AskPath = true
	m := newModel(cfg, &fakeSource{}, zap.NewNop())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(sessionModel)

	require.Contains(t, m.View(), "Working directory")
}

func TestView_HiddenCollapsesToOneLine(t *testing.T) {
	cfg := testConfig()
	cfg.Hidden = true
	m := newModel(cfg, &fakeSource{}, zap.NewNop())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(sessionModel)

	view := m.View()
	require.Contains(t, view, "[h] show")
	require.NotContains(t, view, "\n\n")
}

func TestView_ConfirmOverlaysDialog(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(sessionModel)
	m = m.openConfirm()

	require.Contains(t, m.View(), "Stop recording?")
}

func TestRenderRecordsSkipsNothingWhenEmpty(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())

	require.Contains(t, m.renderRecords(), "waiting for activity")
}

func TestRenderRecordsFormatsLine(t *testing.T) {
	m := newModel(testConfig(), &fakeSource{}, zap.NewNop())
	m.records = []logging.Record{{
		Time:    time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Level:   logging.TraceLevel,
		Logger:  "power",
		Message: "keep-awake asserted",
	}}

	out := m.renderRecords()
	require.Contains(t, out, "10:30:00.000")
	require.Contains(t, out, "TRACE")
	require.Contains(t, out, "power")
	require.Contains(t, out, "keep-awake asserted")
}
