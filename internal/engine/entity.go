// Package engine implements the shared entity-update and collision loop
// that every arcade variant runs on.
//
// A Round owns all bodies of one play session. Frontends drive it with one
// Step per tick and read it back through Snapshot; nothing else mutates it.
package engine

import "github.com/vovakirdan/touch-arcade/internal/core"

// Kind identifies what a body is for collision purposes.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindObstacle
	KindBullet
	KindPlatform
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindObstacle:
		return "obstacle"
	case KindBullet:
		return "bullet"
	case KindPlatform:
		return "platform"
	}
	return "unknown"
}

// Entity is a body in the world. Its size never changes after creation.
type Entity struct {
	Kind  Kind
	Box   core.RectF
	VX    float64
	VY    float64
	Flash int // Ticks of hit highlight left
}

// Player is the controllable body.
type Player struct {
	Entity
	Health   int
	Grounded bool // Set only by platform or floor resolution this tick
	Bump     int  // Ticks of hit highlight left
	Frame    int  // Walk animation frame
	Moves    int  // Accepted grid moves this round

	frameTimer int
}

// Jumping reports whether the jump frame should be shown.
func (p Player) Jumping() bool {
	return !p.Grounded
}

// Rand is the random source a round draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Phase is the round state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	if p == PhaseGameOver {
		return "game_over"
	}
	return "playing"
}
