package engine

import "github.com/vovakirdan/touch-arcade/internal/core"

// Snapshot is a read-only copy of a round for presentation.
type Snapshot struct {
	Tick         int
	Phase        Phase
	Paused       bool
	Score        int
	DisplayScore int
	Health       int
	MaxHealth    int

	Player    Player
	Enemies   []Entity
	Obstacles []Entity
	Platforms []Entity
	Bullets   []Entity

	World    core.RectF
	PlayArea core.RectF
	Floor    float64 // 0 when the variant has no floor
}

// Snapshot copies the round state. Mutating the result does not affect
// the round.
func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		Tick:         r.ticks,
		Phase:        r.phase,
		Paused:       r.paused,
		Score:        r.score,
		DisplayScore: r.DisplayScore(),
		Health:       r.player.Health,
		MaxHealth:    r.cfg.Player.MaxHealth,
		Player:       r.player,
		Enemies:      cloneEntities(r.enemies),
		Obstacles:    cloneEntities(r.obstacles),
		Platforms:    cloneEntities(r.platforms),
		Bullets:      cloneEntities(r.bullets),
		World:        core.NewRectF(0, 0, r.cfg.World.Width, r.cfg.World.Height),
		PlayArea:     r.playArea(),
		Floor:        r.cfg.World.Floor,
	}
}

// GameOver reports whether the round has ended.
func (s Snapshot) GameOver() bool {
	return s.Phase == PhaseGameOver
}

func cloneEntities(in []Entity) []Entity {
	if len(in) == 0 {
		return nil
	}
	return append([]Entity(nil), in...)
}
