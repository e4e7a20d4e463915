package engine

import (
	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// applyIntents turns this tick's intents into player motion and bullets.
func (r *Round) applyIntents(in core.InputFrame) {
	p := &r.player
	m := r.cfg.Movement

	switch m.Mode {
	case config.MovementGrid:
		// Later assignments win: Right over Left, Down over Up.
		dx, dy := 0.0, 0.0
		if in.Has(core.ActionLeft) {
			dx = -1
		}
		if in.Has(core.ActionRight) {
			dx = 1
		}
		if in.Has(core.ActionUp) {
			dy = -1
		}
		if in.Has(core.ActionDown) {
			dy = 1
		}
		if dx != 0 || dy != 0 {
			next := p.Box.Translate(dx*m.CellSize, dy*m.CellSize)
			if m.Bounds == config.BoundsClamp && !inside(next, r.playArea()) {
				break
			}
			p.Box = next
			p.Moves++
			if r.cfg.Rules.Scoring == config.ScorePerMove {
				r.score++
			}
		}
	default:
		step := m.Speed * r.scale
		if in.Has(core.ActionLeft) {
			p.Box.X -= step
		}
		if in.Has(core.ActionRight) {
			p.Box.X += step
		}
		if m.Bounds == config.BoundsClamp {
			p.Box.X = core.ClampF(p.Box.X, 0, r.cfg.World.Width-p.Box.W)
		}
	}

	// Grounded still holds last tick's resolution here.
	if in.Has(core.ActionJump) && p.Grounded && r.cfg.Physics.Gravity > 0 {
		p.VY = r.cfg.Physics.JumpImpulse
	}

	shoot := in.Has(core.ActionShoot)
	if shoot && !r.shootHeld && r.cfg.Bullets.Enabled {
		r.fire()
	}
	r.shootHeld = shoot
}

// fire spawns a bullet at the top centre of the player.
func (r *Round) fire() {
	b := r.cfg.Bullets
	cx, _ := r.player.Box.Center()
	r.bullets = append(r.bullets, Entity{
		Kind: KindBullet,
		Box:  core.NewRectF(cx-b.Width/2, r.player.Box.Y, b.Width, b.Height),
		VY:   -b.Speed,
	})
}

// moveBodies integrates gravity and moves every non-player body.
func (r *Round) moveBodies(ev *Events) {
	s := r.scale
	ph := r.cfg.Physics
	p := &r.player

	if ph.Gravity > 0 {
		p.VY += ph.Gravity * s
		if ph.MaxFallSpeed > 0 && p.VY > ph.MaxFallSpeed {
			p.VY = ph.MaxFallSpeed
		}
		p.Box.Y += p.VY * s
	}

	r.moveEnemies(ev)
	r.moveObstacles()

	area := r.playArea()
	kept := r.bullets[:0]
	for _, b := range r.bullets {
		b.Box.Y += b.VY * s
		if b.Box.Bottom() < area.Y {
			continue
		}
		kept = append(kept, b)
	}
	r.bullets = kept
}

func (r *Round) moveEnemies(ev *Events) {
	s := r.scale
	e := r.cfg.Enemies
	switch e.Motion {
	case config.EnemyFall:
		for i := range r.enemies {
			en := &r.enemies[i]
			en.Box.Y += e.Speed * s
			if en.Box.Y > r.cfg.World.Height {
				r.recycle(en)
				ev.Dodged++
				if r.cfg.Rules.Scoring == config.ScorePerDodge {
					r.score++
				}
			}
		}
	case config.EnemySpawn:
		area := r.playArea()
		kept := r.enemies[:0]
		for _, en := range r.enemies {
			en.Box.X += en.VX * s
			en.Box.Y += en.VY * s
			// Spawned enemies that have crossed the whole field are dropped.
			if !en.Box.Intersects(area) {
				continue
			}
			kept = append(kept, en)
		}
		r.enemies = kept
	}
}

func (r *Round) moveObstacles() {
	if r.cfg.Obstacles.Motion != config.ObstacleBounce {
		return
	}
	s := r.scale
	o := r.cfg.Obstacles
	area := r.playArea()
	for i := range r.obstacles {
		ob := &r.obstacles[i]
		ob.Box.X += ob.VX * s
		ob.Box.Y += ob.VY * s

		if ob.Box.X < area.X || ob.Box.Right() > area.Right() {
			ob.VX = -ob.VX + r.choose(o.Jitter)
			ob.Box.X = core.ClampF(ob.Box.X, area.X, area.Right()-ob.Box.W)
		}
		if ob.Box.Y < area.Y || ob.Box.Bottom() > area.Bottom() {
			ob.VY = -ob.VY + r.choose(o.Jitter)
			ob.Box.Y = core.ClampF(ob.Box.Y, area.Y, area.Bottom()-ob.Box.H)
		}
		ob.VX = core.ClampF(ob.VX, -o.MaxSpeed, o.MaxSpeed)
		ob.VY = core.ClampF(ob.VY, -o.MaxSpeed, o.MaxSpeed)
	}
}

// inside reports whether b lies entirely within area.
func inside(b, area core.RectF) bool {
	return b.X >= area.X && b.Right() <= area.Right() &&
		b.Y >= area.Y && b.Bottom() <= area.Bottom()
}

func (r *Round) playArea() core.RectF {
	return rectOf(r.cfg.PlayArea())
}
