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

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/input"
	"github.com/vovakirdan/touch-arcade/internal/registry"
)

// footerRows is the number of rows below the game screen.
const footerRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// binder is implemented by games that expose their effective key names.
type binder interface {
	Bindings() map[core.Action][]string
}

// heldKey tracks a key press. Terminals report presses and auto-repeats
// but no releases, so a key counts as held for one tick interval after its
// last press, and at least for the first tick after it.
type heldKey struct {
	until time.Time
	seen  bool
}

// pointer is the last mouse state in screen cells. A press is latched
// until a tick samples it, so a click released between two ticks still
// reaches the game.
type pointer struct {
	col, row int
	down     bool
	pressed  bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	logger    *log.Logger
	now       func() time.Time
	held      map[string]*heldKey
	pointer   *pointer
	gameState core.GameState
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	if b, ok := game.(binder); ok {
		keys = NewKeyMap(b.Bindings())
	}

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-footerRows, 0)),
		config:  cfg,
		keys:    keys,
		help:    help.New(),
		logger:  logger,
		now:     time.Now,
		held:    make(map[string]*heldKey),
		pointer: &pointer{},
	}
}

// Init starts a fresh round and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.game.TickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records key presses for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case msg.String() == "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	name := keyName(msg)
	h, ok := m.held[name]
	if !ok {
		h = &heldKey{}
		m.held[name] = h
	}
	h.until = m.now().Add(tickInterval(m.game.TickRate()))
	h.seen = false
	return m, nil
}

// handleMouse tracks the left button and the cell under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.pointer.col, m.pointer.row = msg.X, msg.Y
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pointer.down = true
		m.pointer.pressed = true
	case msg.Action == tea.MouseActionRelease:
		// Some encodings report releases without a button.
		m.pointer.down = false
	}
	return m, nil
}

// handleResize keeps the screen buffer in step with the terminal.
// Games scale to any size, so the round is not reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-footerRows, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick samples input and advances the simulation by one tick.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	raw := m.sample(t)
	result := m.game.Step(raw)

	if result.Restarted {
		m.logger.Debug("round restarted", "game", m.game.ID())
	}
	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("game over", "game", m.game.ID(), "score", result.State.Score)
	}
	m.gameState = result.State

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.game.TickRate())
}

// sample builds the device state for the tick at t, expires released
// keys and clears the pointer latch.
func (m Model) sample(t time.Time) input.Raw {
	var raw input.Raw
	for name, h := range m.held {
		if h.seen && !h.until.After(t) {
			delete(m.held, name)
			continue
		}
		h.seen = true
		raw.HoldKey(name)
	}

	if m.pointer.down || m.pointer.pressed {
		raw.PointerDown = true
		raw.PointerX, raw.PointerY = m.game.CellToWorld(m.pointer.col, m.pointer.row)
	}
	m.pointer.pressed = false
	return raw
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the game and blocks until it
// quits.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
