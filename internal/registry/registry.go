// Package registry maps game IDs to factories. Variants register
// themselves from init functions and the CLI creates them by ID.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/input"
)

// ErrUnknown is returned by Create for IDs nobody registered.
var ErrUnknown = errors.New("unknown game")

// Game is the interface every playable variant implements.
// Games contain pure logic with no frontend dependencies.
// The platform handles device input, timing, and drawing.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "dodge").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh round sized for the given screen.
	Reset(cfg core.RuntimeConfig)

	// Step maps one tick of device input to intents and advances the
	// simulation.
	Step(raw input.Raw) core.StepResult

	// Render draws the current round into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState

	// TickRate returns the ticks per second to step at.
	TickRate() int

	// CellToWorld converts a screen cell from the last Render into world
	// units for pointer input.
	CellToWorld(col, row int) (x, y float64)

	// Close releases background resources such as config watchers.
	Close() error
}

// Options are per-run settings passed to a factory.
type Options struct {
	ConfigPath string         // Explicit rules file; empty uses the search order
	Watch      bool           // Reload the rules file when it changes
	Loader     *config.Loader // nil uses config.NewLoader
	Logger     *log.Logger    // nil discards
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(opts Options) (Game, error)

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory, normally from an init function. It panics
// if the ID is taken.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create builds a new instance of the game registered under id.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %q: %w", id, ErrUnknown)
	}
	g, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
