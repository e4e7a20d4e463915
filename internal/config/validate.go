package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/touch-arcade/internal/core"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid variant")

// Tick rate limits accepted by Validate.
const (
	MinTickRate = 1
	MaxTickRate = 240
)

// Validate checks the variant for values the engine cannot run with.
// The first problem found is returned, wrapped around ErrInvalid.
func (v Variant) Validate() error {
	if v.ID == "" {
		return invalid("id is empty")
	}
	if v.TickRate < MinTickRate || v.TickRate > MaxTickRate {
		return invalid("tick_rate %d outside %d..%d", v.TickRate, MinTickRate, MaxTickRate)
	}
	if v.World.Width <= 0 || v.World.Height <= 0 {
		return invalid("world size %gx%g must be positive", v.World.Width, v.World.Height)
	}
	if area := v.PlayArea(); area.H <= 0 {
		return invalid("play area from %g to %g is empty", v.World.PlayTop, v.World.PlayBottom)
	}
	if v.Player.Width <= 0 || v.Player.Height <= 0 {
		return invalid("player size %gx%g must be positive", v.Player.Width, v.Player.Height)
	}
	if v.Player.MaxHealth < 0 {
		return invalid("player.max_health %d is negative", v.Player.MaxHealth)
	}

	if err := oneOf("movement.mode", v.Movement.Mode, MovementContinuous, MovementGrid); err != nil {
		return err
	}
	if v.Movement.Mode == MovementGrid && v.Movement.CellSize <= 0 {
		return invalid("movement.cell_size must be positive in grid mode")
	}
	if err := oneOf("movement.bounds", v.Movement.Bounds, "", BoundsNone, BoundsClamp, BoundsLethal); err != nil {
		return err
	}
	if err := oneOf("physics.step_mode", v.Physics.StepMode, "", StepFixed, StepScaled); err != nil {
		return err
	}
	if v.Physics.StepMode == StepScaled && v.Physics.ReferenceFPS <= 0 {
		return invalid("physics.reference_fps must be positive for the scaled step")
	}
	if err := oneOf("rules.on_lethal", v.Rules.OnLethal, "", LethalInstant, LethalHealth); err != nil {
		return err
	}
	if v.Rules.OnLethal == LethalHealth && v.Player.MaxHealth <= 0 {
		return invalid("rules.on_lethal is health but player.max_health is %d", v.Player.MaxHealth)
	}
	if err := oneOf("rules.scoring", v.Rules.Scoring, "", ScoreNone, ScorePerTick, ScorePerMove, ScorePerDodge, ScorePerKill); err != nil {
		return err
	}
	if v.Rules.ScoreDivisor < 0 {
		return invalid("rules.score_divisor %d is negative", v.Rules.ScoreDivisor)
	}

	for i, p := range v.Platforms {
		if !positive(p) {
			return invalid("platforms[%d] size %gx%g must be positive", i, p.W, p.H)
		}
	}

	if err := v.Enemies.validate(); err != nil {
		return err
	}
	if err := v.Obstacles.validate(v.Movement); err != nil {
		return err
	}
	if v.Bullets.Enabled {
		if v.Bullets.Width <= 0 || v.Bullets.Height <= 0 {
			return invalid("bullets size %gx%g must be positive", v.Bullets.Width, v.Bullets.Height)
		}
		if v.Bullets.Speed <= 0 {
			return invalid("bullets.speed must be positive")
		}
	}
	if v.Effects.BumpTicks < 0 || v.Effects.FlashTicks < 0 {
		return invalid("effect timers must not be negative")
	}

	seen := make(map[string]bool, len(v.Buttons))
	for i, b := range v.Buttons {
		if b.Name == "" {
			return invalid("buttons[%d] has no name", i)
		}
		if seen[b.Name] {
			return invalid("button %q defined twice", b.Name)
		}
		seen[b.Name] = true
		if !positive(b.Box) {
			return invalid("button %q size %gx%g must be positive", b.Name, b.W, b.H)
		}
		if _, ok := core.ParseAction(b.Action); !ok {
			return invalid("button %q has unknown action %q", b.Name, b.Action)
		}
	}
	for name := range v.Keys {
		if _, ok := core.ParseAction(name); !ok {
			return invalid("keys: unknown action %q", name)
		}
	}
	if !v.Restart.Anywhere && !positive(v.Restart.Box) {
		return invalid("restart needs a positive region or anywhere: true")
	}

	for field, name := range v.Colors.byField() {
		if _, ok := core.ParseColor(name); !ok {
			return invalid("colors.%s: unknown color %q", field, name)
		}
	}
	return nil
}

func (e Enemies) validate() error {
	if err := oneOf("enemies.motion", e.Motion, "", EnemyStatic, EnemyFall, EnemySpawn); err != nil {
		return err
	}
	switch e.Motion {
	case EnemyStatic:
		for i, b := range e.Static {
			if !positive(b) {
				return invalid("enemies.static[%d] size %gx%g must be positive", i, b.W, b.H)
			}
		}
	case EnemyFall:
		if e.Count < 0 {
			return invalid("enemies.count %d is negative", e.Count)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return invalid("enemies size %gx%g must be positive", e.Width, e.Height)
		}
		if e.SpawnY.Min > e.SpawnY.Max || e.RecycleY.Min > e.RecycleY.Max {
			return invalid("enemies spawn ranges must have min <= max")
		}
	case EnemySpawn:
		if e.Width <= 0 || e.Height <= 0 {
			return invalid("enemies size %gx%g must be positive", e.Width, e.Height)
		}
		if e.IntervalMS <= 0 {
			return invalid("enemies.interval_ms must be positive")
		}
		if e.SpeedRange.Min <= 0 || e.SpeedRange.Min > e.SpeedRange.Max {
			return invalid("enemies.speed_range must be positive with min <= max")
		}
	}
	return nil
}

func (o Obstacles) validate(m Movement) error {
	if err := oneOf("obstacles.motion", o.Motion, "", ObstacleStatic, ObstacleBounce); err != nil {
		return err
	}
	for i, b := range o.Fixed {
		if !positive(b) {
			return invalid("obstacles.fixed[%d] size %gx%g must be positive", i, b.W, b.H)
		}
	}
	if o.Random < 0 {
		return invalid("obstacles.random %d is negative", o.Random)
	}
	if o.Random > 0 && o.Size <= 0 {
		return invalid("obstacles.size must be positive for random obstacles")
	}
	if o.GridAlign && m.CellSize <= 0 {
		return invalid("obstacles.grid_align needs movement.cell_size")
	}
	if o.Motion == ObstacleBounce {
		if len(o.Velocities) == 0 {
			return invalid("bouncing obstacles need velocities")
		}
		if o.MaxSpeed <= 0 {
			return invalid("obstacles.max_speed must be positive for bouncing obstacles")
		}
	}
	return nil
}

func (c Colors) byField() map[string]string {
	return map[string]string{
		"player":        c.Player,
		"player_bump":   c.PlayerBump,
		"player_jump":   c.PlayerJump,
		"enemy":         c.Enemy,
		"obstacle":      c.Obstacle,
		"obstacle_hit":  c.ObstacleHit,
		"platform":      c.Platform,
		"bullet":        c.Bullet,
		"floor":         c.Floor,
		"button":        c.Button,
		"button_active": c.ButtonActive,
		"score":         c.Score,
	}
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return invalid("%s: unknown value %q", field, value)
}

func positive(b Box) bool {
	return b.W > 0 && b.H > 0
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}
