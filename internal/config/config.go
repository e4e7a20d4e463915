// Package config provides YAML-based rules for the arcade variants.
//
// Every prototype (gravity demo, dodger, runner, grid mover, shooter, ...)
// is one Variant document. The engine reads nothing else: sizes, speeds,
// the lethal-contact policy, scoring and the on-screen buttons all live
// here, so adding a variant means adding a YAML file.
package config

// Variant contains the full rule set for one arcade variant.
type Variant struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	TickRate int    `yaml:"tick_rate"` // Simulation ticks per second

	World     World               `yaml:"world"`
	Movement  Movement            `yaml:"movement"`
	Physics   Physics             `yaml:"physics"`
	Player    Player              `yaml:"player"`
	Rules     Rules               `yaml:"rules"`
	Platforms []Box               `yaml:"platforms"`
	Enemies   Enemies             `yaml:"enemies"`
	Obstacles Obstacles           `yaml:"obstacles"`
	Bullets   Bullets             `yaml:"bullets"`
	Effects   Effects             `yaml:"effects"`
	Buttons   []Button            `yaml:"buttons"`
	Keys      map[string][]string `yaml:"keys"` // Action name -> key names, replaces the default binding
	Restart   Restart             `yaml:"restart"`
	Colors    Colors              `yaml:"colors"`
	Sprites   Sprites             `yaml:"sprites"`
}

// Box is an axis-aligned rectangle in world units.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Range is an inclusive numeric interval used for random placement.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IsZero reports whether the range was left unset.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// World defines the virtual play field.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// PlayTop/PlayBottom bound the play area vertically. Both zero means the
	// whole world is playable.
	PlayTop    float64 `yaml:"play_top"`
	PlayBottom float64 `yaml:"play_bottom"`
	// Floor is the y of the floor surface; zero means no floor.
	Floor float64 `yaml:"floor"`
}

// Movement mode names.
const (
	MovementContinuous = "continuous"
	MovementGrid       = "grid"
)

// Bounds policy names.
const (
	BoundsNone   = "none"   // Player may leave the world
	BoundsClamp  = "clamp"  // Moves that would leave the world are refused
	BoundsLethal = "lethal" // Leaving the play area is a lethal contact
)

// Movement defines how player intents translate into motion.
type Movement struct {
	Mode     string  `yaml:"mode"`      // continuous or grid
	Speed    float64 `yaml:"speed"`     // World units per held intent per tick (continuous)
	CellSize float64 `yaml:"cell_size"` // World units per accepted move (grid)
	Bounds   string  `yaml:"bounds"`    // none, clamp or lethal
}

// Step mode names.
const (
	StepFixed  = "fixed"  // Increments are per tick; speed follows tick rate
	StepScaled = "scaled" // Increments scaled by reference_fps / tick_rate
)

// Physics defines gravity and jumping.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`        // Added to vy every tick; 0 disables gravity
	JumpImpulse  float64 `yaml:"jump_impulse"`   // Negative = upward
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // 0 = unlimited
	StepMode     string  `yaml:"step_mode"`      // fixed (default) or scaled
	ReferenceFPS int     `yaml:"reference_fps"`  // Rate the speeds were tuned for
}

// Player defines the player body.
type Player struct {
	X         float64 `yaml:"x"` // Spawn point (top-left)
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MaxHealth int     `yaml:"max_health"` // 0 = no health mechanic
	// Walk animation: number of frames and ticks per frame while grounded.
	WalkFrames int `yaml:"walk_frames"`
	FrameTicks int `yaml:"frame_ticks"`
}

// Lethal-contact policy names.
const (
	LethalInstant = "instant" // Any lethal contact ends the round
	LethalHealth  = "health"  // Lose one health and respawn; round ends at 0
)

// Scoring mode names.
const (
	ScoreNone     = "none"
	ScorePerTick  = "per_tick"  // +1 every simulated tick, the last one included
	ScorePerMove  = "per_move"  // +1 per accepted grid move
	ScorePerDodge = "per_dodge" // +1 per falling enemy that leaves the screen
	ScorePerKill  = "per_kill"  // +1 per bullet hit
)

// Rules defines round-level behavior.
type Rules struct {
	OnLethal     string `yaml:"on_lethal"`     // instant or health
	Scoring      string `yaml:"scoring"`       // see Score* constants
	ScoreDivisor int    `yaml:"score_divisor"` // Displayed score = score / divisor
}

// Enemy motion names.
const (
	EnemyStatic = "static" // Fixed positions from Enemies.Static
	EnemyFall   = "fall"   // Fall from above and recycle at the top
	EnemySpawn  = "spawn"  // Appear at a random edge on a timer and cross the field
)

// Enemies defines lethal moving or static bodies.
type Enemies struct {
	Motion string  `yaml:"motion"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Static []Box   `yaml:"static"`

	// fall
	Count    int     `yaml:"count"`
	Speed    float64 `yaml:"speed"`
	Stagger  float64 `yaml:"stagger"`   // If > 0, enemy i starts at y = -i*stagger
	SpawnY   Range   `yaml:"spawn_y"`   // Initial y when not staggered
	RecycleY Range   `yaml:"recycle_y"` // y after leaving the bottom; defaults to spawn_y

	// spawn
	IntervalMS int   `yaml:"interval_ms"`
	SpeedRange Range `yaml:"speed_range"` // Inward speed, integer-valued
}

// Obstacle motion names.
const (
	ObstacleStatic = "static"
	ObstacleBounce = "bounce"
)

// Obstacles defines lethal blocks inside the play area.
type Obstacles struct {
	Motion string  `yaml:"motion"`
	Size   float64 `yaml:"size"`
	Fixed  []Box   `yaml:"fixed"`
	// Random obstacles are regenerated every round.
	Random     int       `yaml:"random"`
	GridAlign  bool      `yaml:"grid_align"` // Snap random positions to movement.cell_size
	Velocities []float64 `yaml:"velocities"` // Choices for initial vx/vy (bounce)
	Jitter     []float64 `yaml:"jitter"`     // Choices added to a reflected velocity
	MaxSpeed   float64   `yaml:"max_speed"`
}

// Bullets defines the shooter's projectiles.
type Bullets struct {
	Enabled bool    `yaml:"enabled"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"` // Upward speed per tick
}

// Effects defines feedback timers, in ticks.
type Effects struct {
	BumpTicks  int `yaml:"bump_ticks"`  // Player highlight after a hit
	FlashTicks int `yaml:"flash_ticks"` // Obstacle highlight after a hit
}

// Button is an on-screen virtual button.
type Button struct {
	Name   string `yaml:"name"`
	Label  string `yaml:"label"`
	Action string `yaml:"action"`
	Box    `yaml:",inline"`
}

// Restart defines the restart hit-region shown during game over.
type Restart struct {
	Box      `yaml:",inline"`
	Anywhere bool   `yaml:"anywhere"` // Any pointer press restarts
	Label    string `yaml:"label"`
}

// Colors names the color of each body kind (see core.ParseColor).
type Colors struct {
	Player       string `yaml:"player"`
	PlayerBump   string `yaml:"player_bump"`
	PlayerJump   string `yaml:"player_jump"`
	Enemy        string `yaml:"enemy"`
	Obstacle     string `yaml:"obstacle"`
	ObstacleHit  string `yaml:"obstacle_hit"`
	Platform     string `yaml:"platform"`
	Bullet       string `yaml:"bullet"`
	Floor        string `yaml:"floor"`
	Button       string `yaml:"button"`
	ButtonActive string `yaml:"button_active"`
	Score        string `yaml:"score"`
}

// Sprites names optional image files for the window frontend.
type Sprites struct {
	Player     string `yaml:"player"`
	Enemy      string `yaml:"enemy"`
	Background string `yaml:"background"`
}

// PlayArea returns the rectangle the player must stay inside.
func (v Variant) PlayArea() Box {
	top, bottom := v.World.PlayTop, v.World.PlayBottom
	if top == 0 && bottom == 0 {
		bottom = v.World.Height
	}
	return Box{X: 0, Y: top, W: v.World.Width, H: bottom - top}
}

// StepScale returns the factor applied to continuous per-tick increments
// when running at tickRate. It is always 1 for the fixed step mode.
func (v Variant) StepScale(tickRate int) float64 {
	if v.Physics.StepMode != StepScaled || tickRate <= 0 || v.Physics.ReferenceFPS <= 0 {
		return 1
	}
	return float64(v.Physics.ReferenceFPS) / float64(tickRate)
}
