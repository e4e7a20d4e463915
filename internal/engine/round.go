package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// Events reports what happened during one Step.
type Events struct {
	Restarted bool // A new round began this tick
	GameOver  bool // The round ended this tick
	LifeLost  bool // Lethal contact under the health policy
	Kills     int  // Enemies removed by bullets
	Dodged    int  // Falling enemies that left the bottom
}

// Round is the state of one play session of a variant.
type Round struct {
	cfg      config.Variant
	rng      Rand
	logger   *log.Logger
	tickRate int
	scale    float64 // Continuous increment multiplier, 1 for the fixed step

	phase  Phase
	paused bool
	score  int
	ticks  int

	player    Player
	enemies   []Entity
	obstacles []Entity
	platforms []Entity
	bullets   []Entity

	spawnMS   float64 // Elapsed milliseconds toward the next spawn
	shootHeld bool
	pauseHeld bool
}

// Option configures a Round.
type Option func(*Round)

// WithLogger sets the logger for round transitions.
func WithLogger(l *log.Logger) Option {
	return func(r *Round) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTickRate overrides the variant's tick rate. Zero keeps it.
func WithTickRate(rate int) Option {
	return func(r *Round) {
		if rate > 0 {
			r.tickRate = rate
		}
	}
}

// New creates a round for the variant and places every body.
// The variant is assumed to be valid (see config.Variant.Validate).
func New(v config.Variant, rng Rand, opts ...Option) *Round {
	r := &Round{
		cfg:      v,
		rng:      rng,
		logger:   log.New(io.Discard),
		tickRate: v.TickRate,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.scale = v.StepScale(r.tickRate)
	r.reset()
	return r
}

// Variant returns the rules this round runs with.
func (r *Round) Variant() config.Variant {
	return r.cfg
}

// TickRate returns the ticks per second the round is stepped at.
func (r *Round) TickRate() int {
	return r.tickRate
}

// Phase returns the current round state.
func (r *Round) Phase() Phase {
	return r.phase
}

// Paused reports whether simulation is suspended.
func (r *Round) Paused() bool {
	return r.paused
}

// Score returns the raw score.
func (r *Round) Score() int {
	return r.score
}

// DisplayScore returns the score as shown to the player.
func (r *Round) DisplayScore() int {
	if d := r.cfg.Rules.ScoreDivisor; d > 1 {
		return r.score / d
	}
	return r.score
}

// Health returns remaining lives, 0 for variants without health.
func (r *Round) Health() int {
	return r.player.Health
}

// Restart begins a new round. Only the configuration survives.
func (r *Round) Restart() {
	r.reset()
	r.logger.Debug("round restarted", "variant", r.cfg.ID)
}

// Reconfigure swaps in new rules and restarts. Used for config reloads.
func (r *Round) Reconfigure(v config.Variant) {
	if r.tickRate == r.cfg.TickRate {
		r.tickRate = v.TickRate
	}
	r.cfg = v
	r.scale = v.StepScale(r.tickRate)
	r.Restart()
}

func (r *Round) reset() {
	r.phase = PhasePlaying
	r.paused = false
	r.score = 0
	r.ticks = 0
	r.spawnMS = 0
	r.shootHeld = false
	r.pauseHeld = false

	p := r.cfg.Player
	r.player = Player{
		Entity: Entity{Kind: KindPlayer, Box: core.NewRectF(p.X, p.Y, p.Width, p.Height)},
		Health: p.MaxHealth,
	}

	r.platforms = r.platforms[:0]
	for _, b := range r.cfg.Platforms {
		r.platforms = append(r.platforms, Entity{Kind: KindPlatform, Box: rectOf(b)})
	}
	r.bullets = r.bullets[:0]
	r.enemies = r.placeEnemies(r.enemies[:0])
	r.obstacles = r.placeObstacles(r.obstacles[:0])
}

// Step advances the round by one tick.
//
// Order: pause, effect timers, restart, player intents, motion, spawning,
// collision resolution, animation, scoring.
func (r *Round) Step(in core.InputFrame) Events {
	var ev Events

	pause := in.Has(core.ActionPause)
	if pause && !r.pauseHeld && r.phase == PhasePlaying {
		r.paused = !r.paused
	}
	r.pauseHeld = pause
	if r.paused {
		return ev
	}

	r.tickEffects()

	if r.phase == PhaseGameOver {
		if in.Has(core.ActionRestart) {
			r.Restart()
			ev.Restarted = true
		}
		return ev
	}

	r.ticks++
	r.applyIntents(in)
	r.player.Grounded = false
	r.moveBodies(&ev)
	r.spawnEnemies()
	r.resolve(&ev)

	// The tick that ends the round still scores.
	if r.cfg.Rules.Scoring == config.ScorePerTick {
		r.score++
	}
	if r.phase == PhasePlaying {
		r.animate()
	}
	return ev
}

// tickEffects counts feedback timers down. They keep running after the
// round ends so the last hit stays visible briefly.
func (r *Round) tickEffects() {
	if r.player.Bump > 0 {
		r.player.Bump--
	}
	for i := range r.obstacles {
		if r.obstacles[i].Flash > 0 {
			r.obstacles[i].Flash--
		}
	}
}

func (r *Round) animate() {
	p := &r.player
	frames, every := r.cfg.Player.WalkFrames, r.cfg.Player.FrameTicks
	if frames < 2 || every <= 0 {
		return
	}
	if !p.Grounded {
		p.Frame = 0
		return
	}
	p.frameTimer++
	if p.frameTimer%every == 0 {
		p.Frame = (p.Frame + 1) % frames
	}
}

func (r *Round) gameOver(ev *Events, reason string) {
	r.phase = PhaseGameOver
	ev.GameOver = true
	r.logger.Debug("game over", "variant", r.cfg.ID, "reason", reason, "score", r.score, "tick", r.ticks)
}

func rectOf(b config.Box) core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}
