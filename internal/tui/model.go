// Package tui provides the Bubble Tea play screen.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuimole/internal/game"
	"github.com/verte-zerg/tuimole/internal/model"
	statsPkg "github.com/verte-zerg/tuimole/internal/stats"
)

const saveTimeout = 2 * time.Second

// Controller is the engine surface the screen drives.
type Controller interface {
	Start()
	Reset()
	Attempt(target int)
}

// Recorder persists finished rounds.
type Recorder interface {
	InsertRound(ctx context.Context, round model.RoundStats, verdicts []model.VerdictRecord) (int64, error)
}

// Options configures the play screen.
type Options struct {
	Holes    int
	Duration int
	Best     int
	Provider string
	Recorder Recorder
}

type phase int

const (
	phaseIdle phase = iota
	phaseRunning
	phaseOver
)

type strike struct {
	target int
	hit    bool
}

type roundSavedMsg struct {
	err error
}

// Model implements the Bubble Tea play screen.
type Model struct {
	ctrl     Controller
	recorder Recorder
	journal  *game.Journal
	keys     keyMap
	help     help.Model
	bar      progress.Model

	width  int
	height int

	holes    int
	duration int
	phase    phase
	snap     model.Snapshot
	active   int
	frozen   int
	last     *strike
	best     int
	newBest  bool
	message  string
	verdict  model.Difficulty
	fallback bool
	saveErr  error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	messageStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#8FB3FF"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cellStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4A4A4A"))
	activeStyle   = cellStyle.Copy().BorderForeground(lipgloss.Color("#C89A3A"))
	hitStyle      = cellStyle.Copy().BorderForeground(lipgloss.Color("#52C41A"))
	missStyle     = cellStyle.Copy().BorderForeground(lipgloss.Color("#FF4D4F"))
	frozenStyle   = cellStyle.Copy().BorderForeground(lipgloss.Color("#8C8C8C"))
	moleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 3).BorderForeground(lipgloss.Color("#C89A3A"))
	newBestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// NewModel constructs the play screen.
func NewModel(ctrl Controller, opts Options) *Model {
	holes := opts.Holes
	if holes <= 0 {
		holes = game.DefaultHoles
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = game.DefaultDuration
	}
	m := &Model{
		ctrl:     ctrl,
		recorder: opts.Recorder,
		journal:  game.NewJournal(opts.Provider, nil),
		keys:     newKeyMap(holes),
		help:     help.New(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		holes:    holes,
		duration: duration,
		best:     opts.Best,
		active:   game.NoTarget,
		frozen:   game.NoTarget,
		message:  game.ReadyMessage,
		snap: model.Snapshot{
			TimeLeft:        duration,
			SpawnIntervalMs: game.InitialSpeedMs,
		},
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(msg.Width-10, 48), 10)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case roundSavedMsg:
		m.saveErr = msg.err
		return m, nil
	case game.Event:
		return m, m.handleEvent(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Start):
		if m.phase != phaseRunning {
			m.ctrl.Start()
		}
		return nil
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		return nil
	}
	if m.phase != phaseRunning {
		return nil
	}
	if target := m.keys.holeFor(msg.String()); target >= 0 {
		m.ctrl.Attempt(target)
	}
	return nil
}

func (m *Model) handleEvent(ev game.Event) tea.Cmd {
	var cmd tea.Cmd
	if round, verdicts, done := m.journal.Record(ev); done {
		cmd = m.saveRound(round, verdicts)
	}
	switch ev := ev.(type) {
	case game.Started:
		m.phase = phaseRunning
		m.snap = ev.Snapshot
		m.holes = ev.Holes
		m.best = ev.Best
		m.active = game.NoTarget
		m.frozen = game.NoTarget
		m.last = nil
		m.newBest = false
		m.verdict = ""
		m.fallback = false
		m.saveErr = nil
		m.message = "Whack them before they hide!"
	case game.Activated:
		m.active = ev.Target
		m.last = nil
	case game.Deactivated:
		if m.active == ev.Target {
			m.active = game.NoTarget
		}
	case game.Expired:
		m.clearActive(ev.Target)
		m.snap = ev.Snapshot
		m.last = &strike{target: ev.Target}
	case game.Hit:
		m.clearActive(ev.Target)
		m.snap = ev.Snapshot
		m.last = &strike{target: ev.Target, hit: true}
	case game.Miss:
		m.snap = ev.Snapshot
		m.last = &strike{target: ev.Target}
	case game.Ticked:
		m.snap.TimeLeft = ev.TimeLeft
	case game.Adjusted:
		m.snap.SpawnIntervalMs = ev.SpawnAfter
		m.verdict = ev.Verdict.Difficulty
		m.fallback = ev.Fallback
		if msg := strings.TrimSpace(ev.Verdict.Message); msg != "" {
			m.message = msg
		}
	case game.Ended:
		m.phase = phaseOver
		m.snap = ev.Snapshot
		m.active = game.NoTarget
		m.frozen = ev.LastTarget
		m.best = ev.Best
		m.newBest = ev.NewBest
	case game.Reset:
		m.phase = phaseIdle
		m.snap = ev.Snapshot
		m.active = game.NoTarget
		m.frozen = game.NoTarget
		m.last = nil
		m.verdict = ""
		m.fallback = false
		m.message = ev.Message
	}
	return cmd
}

func (m *Model) clearActive(target int) {
	if m.active == target {
		m.active = game.NoTarget
	}
}

func (m *Model) saveRound(round model.RoundStats, verdicts []model.VerdictRecord) tea.Cmd {
	if m.recorder == nil {
		return nil
	}
	recorder := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if _, err := recorder.InsertRound(ctx, round, verdicts); err != nil {
			return roundSavedMsg{err: fmt.Errorf("failed to save round: %w", err)}
		}
		return roundSavedMsg{}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		titleStyle.Render("tuimole"),
		m.renderHUD(),
		m.renderTimer(),
		"",
	}
	if m.phase == phaseOver {
		sections = append(sections, m.renderEndCard())
	} else {
		sections = append(sections, m.renderBoard())
	}
	sections = append(sections, "", m.renderMessage(), m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHUD() string {
	segments := []string{
		fmt.Sprintf("Score %d", m.snap.Score),
		fmt.Sprintf("Accuracy %s", statsPkg.AccuracyLabel(m.snap.Accuracy)),
		fmt.Sprintf("Best %d", m.best),
		fmt.Sprintf("Spawn %dms", m.snap.SpawnIntervalMs),
	}
	if m.verdict != "" {
		label := "Pace " + string(m.verdict)
		if m.fallback {
			label += " (default)"
		}
		segments = append(segments, label)
	}
	return hudStyle.Render(strings.Join(segments, "  ·  "))
}

func (m *Model) renderTimer() string {
	pct := 0.0
	if m.duration > 0 {
		pct = float64(m.snap.TimeLeft) / float64(m.duration)
	}
	return fmt.Sprintf("%s %2ds", m.bar.ViewAs(pct), m.snap.TimeLeft)
}

func (m *Model) renderMessage() string {
	lines := []string{messageStyle.Render(m.message)}
	if m.fallback {
		lines[0] = fallbackStyle.Render(m.message)
	}
	if m.saveErr != nil {
		lines = append(lines, errorStyle.Render(m.saveErr.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderEndCard() string {
	lines := []string{
		titleStyle.Render("Time's up!"),
		"",
		fmt.Sprintf("Final score: %d", m.snap.Score),
		fmt.Sprintf("Accuracy: %s", statsPkg.AccuracyLabel(m.snap.Accuracy)),
		fmt.Sprintf("Best score: %d", m.best),
	}
	if m.newBest {
		lines = append(lines, newBestStyle.Render("New best!"))
	}
	lines = append(lines, "", dimStyle.Render(game.ClosingMessage))
	return lipgloss.JoinVertical(lipgloss.Center,
		m.renderBoard(),
		"",
		cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...)),
	)
}
