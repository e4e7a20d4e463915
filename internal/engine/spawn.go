package engine

import (
	"math"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// Placement attempts before a random obstacle may overlap the spawn point.
const placeAttempts = 16

// Edges a spawned enemy can enter from.
const (
	edgeTop = iota
	edgeBottom
	edgeLeft
	edgeRight
)

// placeEnemies builds the initial enemy set for a round.
func (r *Round) placeEnemies(dst []Entity) []Entity {
	e := r.cfg.Enemies
	switch e.Motion {
	case config.EnemyStatic:
		for _, b := range e.Static {
			dst = append(dst, Entity{Kind: KindEnemy, Box: rectOf(b)})
		}
	case config.EnemyFall:
		for i := 0; i < e.Count; i++ {
			y := -float64(i) * e.Stagger
			if e.Stagger <= 0 {
				y = r.between(e.SpawnY.Min, e.SpawnY.Max)
			}
			x := r.between(0, r.cfg.World.Width-e.Width)
			dst = append(dst, Entity{Kind: KindEnemy, Box: core.NewRectF(x, y, e.Width, e.Height)})
		}
	}
	// Spawned enemies start empty and arrive on the timer.
	return dst
}

// recycle puts a falling enemy back above the screen.
func (r *Round) recycle(en *Entity) {
	e := r.cfg.Enemies
	span := e.RecycleY
	if span.IsZero() {
		span = e.SpawnY
	}
	en.Box.X = r.between(0, r.cfg.World.Width-e.Width)
	en.Box.Y = r.between(span.Min, span.Max)
}

// spawnEnemies runs the periodic edge spawner.
func (r *Round) spawnEnemies() {
	e := r.cfg.Enemies
	if e.Motion != config.EnemySpawn || r.tickRate <= 0 {
		return
	}
	r.spawnMS += 1000 / float64(r.tickRate)
	interval := float64(e.IntervalMS)
	for r.spawnMS >= interval {
		r.spawnMS -= interval
		r.enemies = append(r.enemies, r.edgeEnemy())
	}
}

// edgeEnemy creates an enemy on a random edge of the play area, heading
// inward at an integer speed from the configured range.
func (r *Round) edgeEnemy() Entity {
	e := r.cfg.Enemies
	area := r.playArea()
	speed := r.between(e.SpeedRange.Min, e.SpeedRange.Max)

	en := Entity{Kind: KindEnemy}
	switch r.rng.Intn(4) {
	case edgeTop:
		en.Box = core.NewRectF(r.between(area.X, area.Right()-e.Width), area.Y, e.Width, e.Height)
		en.VY = speed
	case edgeBottom:
		en.Box = core.NewRectF(r.between(area.X, area.Right()-e.Width), area.Bottom()-e.Height, e.Width, e.Height)
		en.VY = -speed
	case edgeLeft:
		en.Box = core.NewRectF(area.X, r.between(area.Y, area.Bottom()-e.Height), e.Width, e.Height)
		en.VX = speed
	default:
		en.Box = core.NewRectF(area.Right()-e.Width, r.between(area.Y, area.Bottom()-e.Height), e.Width, e.Height)
		en.VX = -speed
	}
	return en
}

// placeObstacles builds fixed and random obstacles. Random ones avoid the
// player's spawn point when a free spot turns up within placeAttempts.
func (r *Round) placeObstacles(dst []Entity) []Entity {
	o := r.cfg.Obstacles
	bounce := o.Motion == config.ObstacleBounce

	for _, b := range o.Fixed {
		dst = append(dst, r.obstacle(rectOf(b), bounce))
	}

	spawn := r.player.Box
	for i := 0; i < o.Random; i++ {
		var box core.RectF
		for try := 0; try < placeAttempts; try++ {
			box = r.randomObstacleBox()
			if !box.Intersects(spawn) {
				break
			}
		}
		dst = append(dst, r.obstacle(box, bounce))
	}
	return dst
}

func (r *Round) obstacle(box core.RectF, bounce bool) Entity {
	ob := Entity{Kind: KindObstacle, Box: box}
	if bounce {
		ob.VX = r.choose(r.cfg.Obstacles.Velocities)
		ob.VY = r.choose(r.cfg.Obstacles.Velocities)
	}
	return ob
}

func (r *Round) randomObstacleBox() core.RectF {
	o := r.cfg.Obstacles
	area := r.playArea()
	size := o.Size

	if o.GridAlign {
		cell := r.cfg.Movement.CellSize
		cols := int(r.cfg.World.Width / cell)
		rowTop := int(math.Floor(area.Y / cell))
		rowBottom := int(math.Floor(area.Bottom() / cell))
		x := float64(r.intn(cols)) * cell
		y := float64(rowTop+r.intn(rowBottom-rowTop)) * cell
		return core.NewRectF(x, y, size, size)
	}

	x := r.between(area.X, area.Right()-size)
	y := r.between(area.Y, area.Bottom()-size)
	return core.NewRectF(x, y, size, size)
}

// between returns a whole number in [lo, hi], or lo when the range is empty.
func (r *Round) between(lo, hi float64) float64 {
	lo, hi = math.Ceil(lo), math.Floor(hi)
	if hi <= lo {
		return lo
	}
	return lo + float64(r.rng.Intn(int(hi-lo)+1))
}

// choose picks one value, or 0 from an empty list.
func (r *Round) choose(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[r.rng.Intn(len(values))]
}

func (r *Round) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}
