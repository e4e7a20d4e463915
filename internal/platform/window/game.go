// Package window runs a variant in an Ebitengine window with keyboard,
// mouse and touch input.
//
// The logical screen is the variant's world, one pixel per world unit, so
// cursor and touch positions need no conversion. Ebitengine scales the
// window to whatever size the user drags it to.
package window

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/engine"
	"github.com/vovakirdan/touch-arcade/internal/input"
	"github.com/vovakirdan/touch-arcade/internal/registry"
)

// Scene is a game that exposes enough of its round to be drawn as
// shapes. *arcade.Game implements it.
type Scene interface {
	registry.Game
	Variant() config.Variant
	Snapshot() engine.Snapshot
	Buttons() []input.Button
	ActiveButtons() []string
}

// ErrAlreadyRun is returned by a second Run in the same process.
// Ebitengine can only run one game loop per process.
var ErrAlreadyRun = errors.New("window: already run in this process")

var started atomic.Bool

// Options configures the window frontend.
type Options struct {
	AssetDir string // Base directory for relative sprite paths
	Logger   *log.Logger
}

// Game adapts a Scene to ebiten.Game.
type Game struct {
	scene   Scene
	assets  Assets
	logger  *log.Logger
	state   core.GameState
	keys    []ebiten.Key
	touches []ebiten.TouchID
}

// New resets the scene and loads its sprites.
func New(scene Scene, cfg core.RuntimeConfig, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	scene.Reset(cfg)
	return &Game{
		scene:  scene,
		assets: LoadAssets(opts.AssetDir, scene.Variant().Sprites, logger),
		logger: logger,
	}
}

// Update samples input and advances the scene by one tick. Ebitengine
// calls it TPS times per second.
func (g *Game) Update() error {
	res := g.scene.Step(g.sample())

	if res.Restarted {
		g.logger.Debug("round restarted", "game", g.scene.ID())
	}
	if res.State.GameOver && !g.state.GameOver {
		g.logger.Info("game over", "game", g.scene.ID(), "score", res.State.Score)
	}
	g.state = res.State

	if res.Quit {
		return ebiten.Termination
	}
	if tps := g.scene.TickRate(); tps != ebiten.TPS() {
		ebiten.SetTPS(tps)
	}
	return nil
}

// sample reads the devices for this tick.
func (g *Game) sample() input.Raw {
	g.keys = pressedKeys(g.keys[:0])
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	raw := keysRaw(g.keys, ctrl)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		raw.PointerDown = true
		raw.PointerX, raw.PointerY = float64(x), float64(y)
	}
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y := ebiten.TouchPosition(g.touches[0])
		raw.PointerDown = true
		raw.PointerX, raw.PointerY = float64(x), float64(y)
	}

	raw.Quit = ebiten.IsWindowBeingClosed()
	return raw
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	d := drawer{
		dst:     screen,
		palette: newPalette(g.scene.Variant().Colors),
		assets:  g.assets,
	}
	d.draw(g.scene.Snapshot(), g.scene.Buttons(), g.scene.ActiveButtons(), g.scene.Variant())
}

// Layout returns the world size as the logical screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return worldSize(g.scene.Variant().World)
}

// worldSize rounds the world up to whole pixels.
func worldSize(w config.World) (int, int) {
	return core.Max(int(math.Ceil(w.Width)), 1), core.Max(int(math.Ceil(w.Height)), 1)
}

// Run opens a window for the scene and blocks until it is closed or a
// quit binding is pressed. It can be called once per process.
func Run(scene Scene, cfg core.RuntimeConfig, opts Options) error {
	if !started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}
	g := New(scene, cfg, opts)

	w, h := worldSize(scene.Variant().World)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("arcade - " + scene.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(scene.TickRate())

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
