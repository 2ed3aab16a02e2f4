package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-flappy/internal/clock"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/share"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// GameID identifies flappy rows in the score history.
const GameID = "flappy"

// statusTTL is how long a status message stays in the HUD.
const statusTTL = 3 * time.Second

// ScoreRecorder stores finished sessions. *storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(gameID, sessionID string, score int, duration time.Duration) (int64, error)
}

// Options configures the game screen.
type Options struct {
	Runtime       core.RuntimeConfig
	MaxDelta      time.Duration // Step bound for the frame driver
	ShowFPS       bool
	ShareDir      string
	ScreenshotDir string
}

// Model is the Bubble Tea model running one flappy game.
type Model struct {
	game     *sim.Game
	renderer *Renderer
	screen   *core.Screen
	driver   *clock.Driver
	debounce *Debouncer
	recorder ScoreRecorder
	logger   *log.Logger
	opts     Options

	keys KeyMap
	help help.Model
	now  func() time.Time

	sessionID   string
	status      string
	statusUntil time.Time
	quitting    bool
}

// NewModel creates the game screen around an existing simulation.
// recorder and logger may be nil.
func NewModel(game *sim.Game, recorder ScoreRecorder, logger *log.Logger, opts Options) Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		game:     game,
		renderer: NewRenderer(opts.Runtime.Seed, game.Snapshot().World),
		screen:   core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 1)),
		driver:   clock.NewDriver(opts.MaxDelta),
		debounce: NewDebouncer(DefaultRepeatWindow),
		recorder: recorder,
		logger:   logger,
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     h,
		now:      time.Now,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey applies a debounced key press; the next tick simulates it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "err", err)
			m.setStatus("screenshot failed")
		} else {
			m.logger.Info("screenshot saved", "path", path)
			m.setStatus("saved " + filepath.Base(path))
		}
		return m, nil

	case core.ActionShare:
		if m.game.State() == sim.StateOver {
			m.exportShare()
		}
		return m, nil
	}

	for _, a := range m.debounce.Press(action, m.now()) {
		m.apply(a)
	}
	return m, nil
}

// apply hands a debounced action to the simulation.
func (m *Model) apply(action core.Action) {
	prev := m.game.State()
	if !m.game.Apply(action) {
		return
	}

	switch {
	case prev == sim.StateIdle && m.game.State() == sim.StateRunning:
		m.sessionID = uuid.NewString()
		m.logger.Info("session started", "session", m.sessionID, "action", action)
	case action == core.ActionRestart:
		m.debounce.Reset()
		m.logger.Debug("session reset")
	}
}

// handleResize keeps the character screen in step with the terminal.
// The world is logical, so the session carries on at the new scale.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the simulation by the time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if a, ok := m.debounce.Due(m.now()); ok {
		m.apply(a)
	}

	dt := m.driver.Advance(now)

	prev := m.game.State()
	snap := m.game.Tick(dt)
	if prev == sim.StateRunning && snap.State == sim.StateOver {
		m.finishSession(snap)
	}

	if m.status != "" && !now.Before(m.statusUntil) {
		m.status = ""
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// finishSession logs the result and records it in the score history.
func (m *Model) finishSession(snap sim.Snapshot) {
	res := snap.Result
	if res == nil {
		return
	}

	m.logger.Info("session over",
		"session", m.sessionID,
		"score", res.Score,
		"best", res.HighScore,
		"new_best", res.NewBest,
		"duration", res.Duration.Round(time.Millisecond),
	)

	if m.recorder == nil || res.Score <= 0 {
		return
	}
	if _, err := m.recorder.SaveScore(GameID, m.sessionID, res.Score, res.Duration); err != nil {
		m.logger.Warn("cannot record score", "err", err)
	}
}

// exportShare writes the share card for the finished session.
func (m *Model) exportShare() {
	res := m.game.Snapshot().Result
	if res == nil {
		return
	}

	files, err := share.Export(m.opts.ShareDir, share.FromResult(*res, m.now()))
	if err != nil {
		m.logger.Warn("share export failed", "err", err)
		m.setStatus("share failed")
		return
	}

	m.logger.Info("share card exported", "png", files.PNG, "text", files.Text)
	m.setStatus("saved " + filepath.Base(files.PNG))
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.renderer.Draw(m.screen, m.game.Snapshot(), m.hud())

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", m.opts.ScreenshotDir, err)
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("%s_%s.txt", GameID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = m.now().Add(statusTTL)
}

func (m Model) hud() HUD {
	return HUD{
		ShowFPS: m.opts.ShowFPS,
		FPS:     m.driver.FPS(),
		Frames:  m.driver.Frames(),
		Status:  m.status,
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Draw(m.screen, m.game.Snapshot(), m.hud())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the given game.
func Run(game *sim.Game, recorder ScoreRecorder, logger *log.Logger, opts Options) error {
	model := NewModel(game, recorder, logger, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
