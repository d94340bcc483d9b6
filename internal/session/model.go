package session

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/slate-tools/cli/internal/logging"
	"github.com/slate-tools/cli/internal/media"
)

const pollInterval = 500 * time.Millisecond

// chromeHeight is everything around the log pane: header, status line,
// footer, blanks, pane border.
const chromeHeight = 7

// Exit reasons recorded in the session journal.
const (
	ReasonCompleted = "completed"
	ReasonAborted   = "aborted"
)

type phase int

const (
	phasePrompt phase = iota
	phaseRecording
	phaseConfirmStop
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type sessionModel struct {
	cfg Config
	src Source
	log *zap.Logger

	phase   phase
	hidden  bool
	showLog bool

	workDir  string
	remember bool

	input   textinput.Model
	spin    spinner.Model
	pane    viewport.Model
	help    help.Model
	confirm confirmModel

	startedAt time.Time
	endedAt   time.Time
	now       time.Time
	reason    string

	records []logging.Record

	width  int
	height int
	ready  bool
}

func newModel(cfg Config, src Source, log *zap.Logger) sessionModel {
	input := textinput.New()
	input.Placeholder = "where should this recording go?"
	input.CharLimit = 512
	if cfg.WorkDir != "" {
		input.SetValue(cfg.WorkDir)
		input.CursorEnd()
	}

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	m := sessionModel{
		cfg:     cfg,
		src:     src,
		log:     log,
		hidden:  cfg.Hidden,
		showLog: true,
		workDir: cfg.WorkDir,
		input:   input,
		spin:    spin,
		help:    help.New(),
		now:     time.Now(),
	}

	if cfg.AskPath || cfg.WorkDir == "" {
		m.phase = phasePrompt
		_ = m.input.Focus()
	} else {
		m.phase = phaseRecording
		m.startedAt = time.Now()
	}

	return m
}

func (m sessionModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.phase == phasePrompt {
		cmds = append(cmds, textinput.Blink)
	} else {
		cmds = append(cmds, m.spin.Tick)
	}
	return tea.Batch(cmds...)
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePane()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		if m.src != nil {
			m.records = m.src.Snapshot()
			m.refreshPane()
		}
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case confirmResult:
		if msg.confirmed {
			return m.stopRecording(ReasonCompleted)
		}
		m.phase = phaseRecording
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m sessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phasePrompt:
		return m.handlePromptKey(msg)
	case phaseConfirmStop:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	return m.handleRecordingKey(msg)
}

func (m sessionModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.reason = ReasonAborted
		m.endedAt = time.Now()
		return m, tea.Quit

	case tea.KeyEnter:
		dir := strings.TrimSpace(m.input.Value())
		if dir == "" {
			return m, nil
		}
		m.workDir = dir
		m.remember = true
		m.input.Blur()
		m.phase = phaseRecording
		m.startedAt = time.Now()
		m.log.Info("recording started",
			zap.String("work_dir", dir),
			zap.Any("profile", m.cfg.Profile))
		return m, m.spin.Tick
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m sessionModel) handleRecordingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.openConfirm(), nil
	}

	switch msg.String() {
	case "q":
		return m.openConfirm(), nil
	case "l":
		m.showLog = !m.showLog
		m.resizePane()
		return m, nil
	case "h":
		m.hidden = !m.hidden
		m.resizePane()
		return m, nil
	}

	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

func (m sessionModel) openConfirm() sessionModel {
	m.phase = phaseConfirmStop
	m.confirm = newConfirm("Stop recording?",
		m.timecode().String()+" recorded so far.")
	return m
}

func (m sessionModel) stopRecording(reason string) (tea.Model, tea.Cmd) {
	m.reason = reason
	m.endedAt = time.Now()
	m.log.Info("recording stopped",
		zap.String("reason", reason),
		zap.Any("timecode", m.timecode()))
	return m, tea.Quit
}

func (m sessionModel) elapsed() time.Duration {
	if m.startedAt.IsZero() {
		return 0
	}
	end := m.now
	if !m.endedAt.IsZero() {
		end = m.endedAt
	}
	if end.Before(m.startedAt) {
		return 0
	}
	return end.Sub(m.startedAt)
}

func (m sessionModel) frames() int64 {
	fps := m.cfg.Profile.Rate.FPS()
	if fps <= 0 {
		fps = media.DefaultProfile().Rate.FPS()
	}
	return int64(m.elapsed().Seconds() * fps)
}

func (m sessionModel) timecode() media.Timecode {
	return media.Timecode{Frames: int(m.frames()), Rate: m.cfg.Profile.Rate}
}

func (m *sessionModel) resizePane() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.pane.Width = m.width - 4
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.pane.Height = h
	m.refreshPane()
}

func (m *sessionModel) refreshPane() {
	tail := m.pane.AtBottom()
	m.pane.SetContent(m.renderRecords())
	if tail {
		m.pane.GotoBottom()
	}
}

func (m sessionModel) result() Result {
	return Result{
		WorkDir:   m.workDir,
		Remember:  m.remember,
		StartedAt: m.startedAt,
		EndedAt:   m.endedAt,
		Frames:    m.frames(),
		Reason:    m.reason,
	}
}
