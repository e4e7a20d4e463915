package engine

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// seqRand returns its values in order, wrapping around.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func platformVariant() config.Variant {
	return config.Variant{
		ID:       "test-platforms",
		TickRate: 60,
		World:    config.World{Width: 600, Height: 400},
		Movement: config.Movement{Mode: config.MovementContinuous, Speed: 5, Bounds: config.BoundsNone},
		Physics:  config.Physics{Gravity: 1, JumpImpulse: -15},
		Player:   config.Player{X: 120, Y: 100, Width: 40, Height: 40},
		Rules:    config.Rules{OnLethal: config.LethalInstant},
		Platforms: []config.Box{
			{X: 100, Y: 250, W: 150, H: 20},
		},
		Restart: config.Restart{Anywhere: true},
	}
}

func gridVariant() config.Variant {
	return config.Variant{
		ID:       "test-grid",
		TickRate: 10,
		World:    config.World{Width: 1200, Height: 800, PlayTop: 80, PlayBottom: 340},
		Movement: config.Movement{Mode: config.MovementGrid, CellSize: 40, Bounds: config.BoundsLethal},
		Player:   config.Player{X: 600, Y: 210, Width: 40, Height: 40},
		Rules:    config.Rules{OnLethal: config.LethalInstant, Scoring: config.ScorePerMove},
		Restart:  config.Restart{Anywhere: true},
	}
}

func shooterVariant() config.Variant {
	v := gridVariant()
	v.ID = "test-shooter"
	v.Rules.Scoring = config.ScorePerKill
	v.Enemies = config.Enemies{
		Motion:     config.EnemySpawn,
		Width:      40,
		Height:     40,
		IntervalMS: 1000,
		SpeedRange: config.Range{Min: 1, Max: 2},
	}
	v.Bullets = config.Bullets{Enabled: true, Width: 10, Height: 10, Speed: 5}
	return v
}

func mustDefault(t *testing.T, id string) config.Variant {
	t.Helper()
	v, err := config.Default(id)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestLandingOnPlatform(t *testing.T) {
	r := New(platformVariant(), rand.New(rand.NewSource(1)))
	r.player.Box.Y = 207 // bottom 247, just above the platform at 250
	r.player.VY = 5

	r.Step(frame())

	p := r.player
	if p.Box.Bottom() != 250 {
		t.Errorf("bottom = %v, want 250", p.Box.Bottom())
	}
	if p.VY != 0 {
		t.Errorf("vy = %v, want 0", p.VY)
	}
	if !p.Grounded {
		t.Error("player should be grounded after landing")
	}
}

func TestPlatformIgnoredWhileRising(t *testing.T) {
	r := New(platformVariant(), rand.New(rand.NewSource(1)))
	r.player.Box.Y = 230 // overlapping the platform from below
	r.player.VY = -10

	r.Step(frame())

	p := r.player
	if p.Grounded {
		t.Error("rising player must not land on a platform")
	}
	if p.VY != -9 {
		t.Errorf("vy = %v, want -9", p.VY)
	}
	if p.Box.Y != 221 {
		t.Errorf("y = %v, want 221", p.Box.Y)
	}
}

func TestFloorClamp(t *testing.T) {
	v := platformVariant()
	v.Platforms = nil
	v.World.Floor = 300
	r := New(v, rand.New(rand.NewSource(1)))
	r.player.Box.Y = 255
	r.player.VY = 10

	r.Step(frame())

	if r.player.Box.Bottom() != 300 || r.player.VY != 0 || !r.player.Grounded {
		t.Errorf("after floor hit: bottom=%v vy=%v grounded=%v", r.player.Box.Bottom(), r.player.VY, r.player.Grounded)
	}
}

func TestGroundedNotSticky(t *testing.T) {
	v := platformVariant()
	v.Platforms = nil
	v.World.Floor = 300
	v.Player.Y = 260
	r := New(v, rand.New(rand.NewSource(1)))

	r.Step(frame())
	if !r.player.Grounded {
		t.Fatal("player resting on the floor should be grounded")
	}

	r.Step(frame(core.ActionJump))
	if r.player.Grounded {
		t.Error("grounded must reset on the tick the player leaves the floor")
	}
	if r.player.VY != -14 {
		t.Errorf("vy after jump = %v, want -14", r.player.VY)
	}

	// No jump while airborne.
	vy := r.player.VY
	r.Step(frame(core.ActionJump))
	if r.player.VY != vy+1 {
		t.Errorf("mid-air jump changed vy to %v", r.player.VY)
	}
}

func TestWalkOffPlatformClearsGrounded(t *testing.T) {
	v := platformVariant()
	v.Player.X = 200
	v.Player.Y = 210
	r := New(v, rand.New(rand.NewSource(1)))

	r.Step(frame())
	if !r.player.Grounded {
		t.Fatal("player should rest on the platform")
	}
	for i := 0; i < 20 && r.player.Box.X < 250; i++ {
		r.Step(frame(core.ActionRight))
	}
	r.Step(frame(core.ActionRight))
	if r.player.Grounded {
		t.Error("player past the platform edge should not be grounded")
	}
}

func TestLethalInstant(t *testing.T) {
	r := New(mustDefault(t, "collision"), rand.New(rand.NewSource(1)))

	var over bool
	for i := 0; i < 200; i++ {
		ev := r.Step(frame(core.ActionRight))
		if ev.GameOver {
			over = true
			break
		}
	}
	if !over {
		t.Fatal("walking into the block should end the round")
	}
	if r.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want game_over", r.Phase())
	}

	// Nothing moves once the round is over.
	x := r.player.Box.X
	r.Step(frame(core.ActionRight))
	if r.player.Box.X != x {
		t.Error("player moved after game over")
	}
}

func TestLeftEdgeLethal(t *testing.T) {
	r := New(gridVariant(), rand.New(rand.NewSource(1)))
	r.player.Box.X = -1

	ev := r.Step(frame(core.ActionUp, core.ActionShoot, core.ActionJump))
	if !ev.GameOver || r.Phase() != PhaseGameOver {
		t.Error("player left of the play area must end the round")
	}
}

func TestGridMoves(t *testing.T) {
	tests := []struct {
		name   string
		in     core.InputFrame
		dx, dy float64
		moves  int
	}{
		{"none", frame(), 0, 0, 0},
		{"left", frame(core.ActionLeft), -40, 0, 1},
		{"right wins over left", frame(core.ActionLeft, core.ActionRight), 40, 0, 1},
		{"down wins over up", frame(core.ActionUp, core.ActionDown), 0, 40, 1},
		{"diagonal is one move", frame(core.ActionRight, core.ActionUp), 40, -40, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(gridVariant(), rand.New(rand.NewSource(1)))
			x0, y0 := r.player.Box.X, r.player.Box.Y
			r.Step(tt.in)
			if got := r.player.Box.X - x0; got != tt.dx {
				t.Errorf("dx = %v, want %v", got, tt.dx)
			}
			if got := r.player.Box.Y - y0; got != tt.dy {
				t.Errorf("dy = %v, want %v", got, tt.dy)
			}
			if r.player.Moves != tt.moves || r.Score() != tt.moves {
				t.Errorf("moves=%d score=%d, want %d", r.player.Moves, r.Score(), tt.moves)
			}
		})
	}
}

func TestGridLeavesPlayAreaFromTop(t *testing.T) {
	r := New(gridVariant(), rand.New(rand.NewSource(1)))
	// 210 -> 170 -> 130 -> 90 -> 50 (above play_top 80)
	for i := 0; i < 3; i++ {
		if ev := r.Step(frame(core.ActionUp)); ev.GameOver {
			t.Fatalf("round ended early on move %d", i+1)
		}
	}
	if ev := r.Step(frame(core.ActionUp)); !ev.GameOver {
		t.Error("fourth move up should leave the play area")
	}
	if r.Score() != 4 {
		t.Errorf("score = %d, want 4 (the fatal move still counts)", r.Score())
	}
}

func TestContinuousClamp(t *testing.T) {
	r := New(mustDefault(t, "dodge"), &seqRand{vals: []int{0}})
	r.player.Box.X = 2

	r.Step(frame(core.ActionLeft))
	if r.player.Box.X != 0 {
		t.Errorf("x = %v, want clamped to 0", r.player.Box.X)
	}

	r.player.Box.X = 557
	r.Step(frame(core.ActionRight))
	if r.player.Box.Right() != 600 {
		t.Errorf("right = %v, want clamped to 600", r.player.Box.Right())
	}
}

func TestHealthRespawn(t *testing.T) {
	v := mustDefault(t, "platforms")
	r := New(v, rand.New(rand.NewSource(1)))

	r.player.Box.X, r.player.Box.Y = 500, 300 // on the enemy
	r.player.VY = 3
	ev := r.Step(frame())

	if !ev.LifeLost || ev.GameOver {
		t.Fatalf("events = %+v, want life lost only", ev)
	}
	if r.Health() != 2 {
		t.Errorf("health = %d, want 2", r.Health())
	}
	if r.player.Box.X != v.Player.X || r.player.Box.Y != v.Player.Y || r.player.VY != 0 {
		t.Errorf("player not respawned: %+v", r.player.Box)
	}
	if r.Phase() != PhasePlaying {
		t.Error("round should continue while health remains")
	}
}

func TestHealthRunsOut(t *testing.T) {
	v := platformVariant()
	v.Player.MaxHealth = 3
	v.Rules.OnLethal = config.LethalHealth
	v.Enemies = config.Enemies{
		Motion: config.EnemyStatic,
		Static: []config.Box{{X: 120, Y: 100, W: 40, H: 40}}, // sits on the spawn point
	}
	v.Physics.Gravity = 0
	r := New(v, rand.New(rand.NewSource(1)))

	for want := 2; want >= 1; want-- {
		ev := r.Step(frame())
		if !ev.LifeLost || r.Health() != want {
			t.Fatalf("health = %d, want %d", r.Health(), want)
		}
	}
	ev := r.Step(frame())
	if !ev.GameOver || r.Health() != 0 {
		t.Errorf("last life: events=%+v health=%d", ev, r.Health())
	}
}

func TestRespawnClearsGrounded(t *testing.T) {
	v := platformVariant()
	v.Player.MaxHealth = 3
	v.Rules.OnLethal = config.LethalHealth
	v.Enemies = config.Enemies{
		Motion: config.EnemyStatic,
		Static: []config.Box{{X: 120, Y: 215, W: 40, H: 30}}, // resting on the platform
	}
	r := New(v, rand.New(rand.NewSource(1)))
	r.player.Box.Y = 211 // lands on the platform this tick, into the enemy

	ev := r.Step(frame())
	if !ev.LifeLost {
		t.Fatalf("events = %+v, want life lost", ev)
	}
	if r.player.Box.Y != v.Player.Y {
		t.Fatalf("player y = %v, want spawn %v", r.player.Box.Y, v.Player.Y)
	}
	if r.player.Grounded {
		t.Error("respawned player in mid-air should not be grounded")
	}
}

func TestPerTickScoreCountsFinalTick(t *testing.T) {
	v := platformVariant()
	v.Rules.Scoring = config.ScorePerTick
	v.Physics.Gravity = 0
	v.Enemies = config.Enemies{
		Motion: config.EnemyStatic,
		Static: []config.Box{{X: 300, Y: 100, W: 40, H: 40}},
	}
	r := New(v, rand.New(rand.NewSource(1)))

	ticks := 0
	for r.Phase() == PhasePlaying && ticks < 100 {
		r.Step(frame(core.ActionRight))
		ticks++
	}
	if r.Phase() != PhaseGameOver {
		t.Fatal("setup: expected game over")
	}
	if r.Score() != ticks {
		t.Errorf("score = %d after %d ticks, want every tick counted", r.Score(), ticks)
	}

	r.Step(frame())
	if r.Score() != ticks {
		t.Errorf("score changed after game over: %d", r.Score())
	}
}

func TestRestart(t *testing.T) {
	v := mustDefault(t, "platforms")
	r := New(v, rand.New(rand.NewSource(1)))
	r.score = 99
	r.player.Health = 1
	r.player.Box.X, r.player.Box.Y = 500, 300
	r.Step(frame())
	if r.Phase() != PhaseGameOver {
		t.Fatal("setup: expected game over")
	}

	if ev := r.Step(frame(core.ActionLeft)); ev.Restarted || r.Phase() != PhaseGameOver {
		t.Fatal("only an explicit restart intent may leave game over")
	}

	ev := r.Step(frame(core.ActionRestart))
	if !ev.Restarted {
		t.Error("Restarted event missing")
	}
	if r.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", r.Phase())
	}
	if r.Score() != 0 {
		t.Errorf("score = %d, want 0", r.Score())
	}
	if r.Health() != v.Player.MaxHealth {
		t.Errorf("health = %d, want %d", r.Health(), v.Player.MaxHealth)
	}
	if r.player.Box.X != v.Player.X || r.player.Box.Y != v.Player.Y {
		t.Errorf("player at (%v,%v), want spawn", r.player.Box.X, r.player.Box.Y)
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	r := New(gridVariant(), rand.New(rand.NewSource(1)))
	r.Step(frame(core.ActionRight))
	ev := r.Step(frame(core.ActionRestart))
	if ev.Restarted || r.Score() != 1 {
		t.Errorf("restart while playing: events=%+v score=%d", ev, r.Score())
	}
}

func TestRestartClearsTimersAndBullets(t *testing.T) {
	r := New(shooterVariant(), rand.New(rand.NewSource(3)))
	r.Step(frame(core.ActionShoot))
	for i := 0; i < 5; i++ {
		r.Step(frame())
	}
	if len(r.bullets) == 0 || r.spawnMS == 0 {
		t.Fatal("setup: expected bullets in flight and a running spawn timer")
	}
	r.phase = PhaseGameOver

	r.Step(frame(core.ActionRestart))
	if len(r.bullets) != 0 || len(r.enemies) != 0 || r.spawnMS != 0 {
		t.Errorf("restart left bullets=%d enemies=%d spawnMS=%v", len(r.bullets), len(r.enemies), r.spawnMS)
	}
}
