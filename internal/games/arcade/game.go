// Package arcade exposes every rules variant as a registry game.
//
// A Game glues the pieces of one variant together: the effective rules
// from the config loader, the input mapper built from them, and the
// engine round. It optionally watches the rules file and swaps in the
// new rules at the next restart.
package arcade

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/engine"
	"github.com/vovakirdan/touch-arcade/internal/input"
	"github.com/vovakirdan/touch-arcade/internal/registry"
)

// Game runs one variant.
type Game struct {
	id         string
	configPath string
	loader     *config.Loader
	logger     *log.Logger
	watcher    *config.Watcher

	variant config.Variant
	pending *config.Variant // Reloaded rules waiting for the next restart
	mapper  *input.Mapper
	round   *engine.Round
	active  []string
	view    view

	restartHeld bool // Restart intent seen on the previous Step
}

// New loads the rules for id and prepares a round. Call Reset before the
// first Step to size the screen and seed the round.
func New(id string, opts registry.Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	loader := opts.Loader
	if loader == nil {
		loader = config.NewLoader(logger)
	}

	v, err := loader.Load(id, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	mapper, err := input.NewMapper(v)
	if err != nil {
		return nil, err
	}

	g := &Game{
		id:         id,
		configPath: opts.ConfigPath,
		loader:     loader,
		logger:     logger.WithPrefix(id),
		variant:    v,
		mapper:     mapper,
	}

	if opts.Watch {
		if path := loader.Path(id, opts.ConfigPath); path == "" {
			g.logger.Warn("nothing to watch, rules come from the embedded default")
		} else if g.watcher, err = config.NewWatcher(path); err != nil {
			return nil, err
		} else {
			g.logger.Info("watching rules file", "path", g.watcher.Path())
		}
	}

	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the variant ID.
func (g *Game) ID() string {
	return g.id
}

// Title returns the variant's display name.
func (g *Game) Title() string {
	if g.variant.Title != "" {
		return g.variant.Title
	}
	return g.id
}

// Reset starts a new round. Pending reloaded rules are applied first.
// A zero seed draws one from the clock.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.pending != nil {
		g.apply(*g.pending)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.round = engine.New(g.variant, rand.New(rand.NewSource(seed)),
		engine.WithLogger(g.logger),
		engine.WithTickRate(cfg.TickRate),
	)
	g.active = nil
}

// Step maps the tick's device input and advances the round.
func (g *Game) Step(raw input.Raw) core.StepResult {
	g.pollReload()

	res := g.mapper.Map(raw)
	g.active = res.Active

	// Restart fires on a new press only, so a pointer still held from
	// play cannot skip the game over screen.
	restart := res.Frame.Has(core.ActionRestart)
	if restart && g.restartHeld {
		res.Frame.Actions[core.ActionRestart] = false
	}
	g.restartHeld = restart

	var restarted bool
	if g.pending != nil && g.round.Phase() == engine.PhaseGameOver && res.Frame.Has(core.ActionRestart) {
		g.apply(*g.pending)
		g.round.Reconfigure(g.variant)
		restarted = true
	} else {
		restarted = g.round.Step(res.Frame).Restarted
	}

	return core.StepResult{
		State:     g.State(),
		Restarted: restarted,
		Quit:      res.Frame.Has(core.ActionQuit),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.round.DisplayScore(),
		GameOver: g.round.Phase() == engine.PhaseGameOver,
		Paused:   g.round.Paused(),
		Health:   g.round.Health(),
	}
}

// TickRate returns the ticks per second the frontend should step at.
func (g *Game) TickRate() int {
	return g.round.TickRate()
}

// Variant returns the rules currently in play.
func (g *Game) Variant() config.Variant {
	return g.variant
}

// Snapshot returns a copy of the round for drawing.
func (g *Game) Snapshot() engine.Snapshot {
	return g.round.Snapshot()
}

// Buttons returns the variant's virtual buttons.
func (g *Game) Buttons() []input.Button {
	return g.mapper.Buttons()
}

// Bindings returns the key names bound to each action.
func (g *Game) Bindings() map[core.Action][]string {
	return g.mapper.Bindings()
}

// ActiveButtons returns the names of buttons pressed on the last Step.
func (g *Game) ActiveButtons() []string {
	return g.active
}

// Close stops the rules watcher, if any.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// pollReload drains watcher notifications without blocking.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			return
		}
		v, err := g.loader.Load(g.id, g.configPath)
		if err != nil {
			g.logger.Warn("keeping current rules", "path", path, "err", err)
			return
		}
		g.pending = &v
		g.logger.Info("rules reloaded, applied on restart", "path", path)
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("rules watcher", "err", err)
		}
	default:
	}
}

// apply swaps in new rules. Bindings that fail to build keep the old
// mapper.
func (g *Game) apply(v config.Variant) {
	g.pending = nil
	mapper, err := input.NewMapper(v)
	if err != nil {
		g.logger.Warn("keeping current rules", "err", err)
		return
	}
	g.variant = v
	g.mapper = mapper
}
