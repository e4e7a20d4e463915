package engine

import (
	"github.com/vovakirdan/touch-arcade/internal/config"
)

// resolve applies collision rules in priority order:
//  1. platforms, only while falling or resting (vy >= 0)
//  2. the floor
//  3. lethal bodies and lethal bounds
//  4. bullets against enemies
func (r *Round) resolve(ev *Events) {
	p := &r.player

	for _, pl := range r.platforms {
		if p.VY >= 0 && p.Box.Intersects(pl.Box) {
			p.Box.SetBottom(pl.Box.Y)
			p.VY = 0
			p.Grounded = true
		}
	}

	if floor := r.cfg.World.Floor; floor > 0 && p.Box.Bottom() >= floor {
		p.Box.SetBottom(floor)
		p.VY = 0
		p.Grounded = true
	}

	if reason, hit := r.lethalContact(); hit {
		r.onLethal(ev, reason)
		if r.phase != PhasePlaying {
			return
		}
	}

	r.resolveBullets(ev)
}

// lethalContact finds the first lethal contact this tick. An obstacle that
// is hit starts flashing.
func (r *Round) lethalContact() (string, bool) {
	p := &r.player

	if r.cfg.Movement.Bounds == config.BoundsLethal && !inside(p.Box, r.playArea()) {
		return "out of bounds", true
	}
	for _, en := range r.enemies {
		if p.Box.Intersects(en.Box) {
			return "enemy", true
		}
	}
	for i := range r.obstacles {
		if p.Box.Intersects(r.obstacles[i].Box) {
			r.obstacles[i].Flash = r.cfg.Effects.FlashTicks
			return "obstacle", true
		}
	}
	return "", false
}

// onLethal applies the variant's lethal-contact policy.
func (r *Round) onLethal(ev *Events, reason string) {
	p := &r.player
	p.Bump = r.cfg.Effects.BumpTicks

	if r.cfg.Rules.OnLethal != config.LethalHealth {
		r.gameOver(ev, reason)
		return
	}

	p.Health--
	ev.LifeLost = true
	r.logger.Debug("life lost", "variant", r.cfg.ID, "reason", reason, "health", p.Health)
	if p.Health <= 0 {
		p.Health = 0
		r.gameOver(ev, reason)
		return
	}
	spawn := r.cfg.Player
	p.Box.X, p.Box.Y = spawn.X, spawn.Y
	p.VY = 0
	p.Grounded = false
}

// resolveBullets removes each enemy hit by a bullet together with the first
// bullet that hit it. Each pair scores once.
func (r *Round) resolveBullets(ev *Events) {
	if len(r.bullets) == 0 || len(r.enemies) == 0 {
		return
	}

	spent := make([]bool, len(r.bullets))
	keptEnemies := r.enemies[:0]
	for _, en := range r.enemies {
		hit := false
		for i, b := range r.bullets {
			if spent[i] || !b.Box.Intersects(en.Box) {
				continue
			}
			spent[i] = true
			hit = true
			break
		}
		if !hit {
			keptEnemies = append(keptEnemies, en)
			continue
		}
		ev.Kills++
		if r.cfg.Rules.Scoring == config.ScorePerKill {
			r.score++
		}
	}
	r.enemies = keptEnemies

	keptBullets := r.bullets[:0]
	for i, b := range r.bullets {
		if !spent[i] {
			keptBullets = append(keptBullets, b)
		}
	}
	r.bullets = keptBullets
}
