// Package input turns raw device state into per-tick intents.
//
// Both frontends feed the same Mapper: the terminal sends held keys and
// mouse state, the window adds touch. The mapper merges key bindings and
// virtual-button hit tests into one core.InputFrame and reports which
// buttons are lit so the frontend can highlight them.
package input

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// Raw is the device state sampled for one tick.
type Raw struct {
	Keys        map[string]bool // Held keys, by normalized name
	PointerX    float64         // Pointer position in world units
	PointerY    float64
	PointerDown bool
	Quit        bool // Window closed or terminal interrupted
}

// HoldKey marks a key as held.
func (r *Raw) HoldKey(name string) {
	if r.Keys == nil {
		r.Keys = make(map[string]bool)
	}
	r.Keys[NormalizeKey(name)] = true
}

// Button is a named virtual button hit region.
type Button struct {
	Name   string
	Label  string
	Box    core.RectF
	Action core.Action
}

// Result is the mapped intent set for one tick.
type Result struct {
	Frame  core.InputFrame
	Active []string // Names of pressed buttons, in declaration order
}

// Mapper maps raw input to intents. It has no state of its own.
type Mapper struct {
	bindings        map[core.Action][]string
	buttons         []Button
	keys            map[string][]core.Action
	restart         core.RectF
	restartAnywhere bool
}

// DefaultBindings returns the key names bound to each action unless a
// variant overrides them.
func DefaultBindings() map[core.Action][]string {
	return map[core.Action][]string{
		core.ActionLeft:    {"left", "a"},
		core.ActionRight:   {"right", "d"},
		core.ActionUp:      {"up", "w"},
		core.ActionDown:    {"down", "s"},
		core.ActionJump:    {"space"},
		core.ActionShoot:   {"f"},
		core.ActionRestart: {"r"},
		core.ActionPause:   {"p"},
		core.ActionQuit:    {"q", "esc", "ctrl+c"},
	}
}

// NewMapper builds a mapper from a variant's buttons, key overrides and
// restart region.
func NewMapper(v config.Variant) (*Mapper, error) {
	bindings := DefaultBindings()
	for name, keys := range v.Keys {
		a, ok := core.ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("input: unknown action %q in key bindings", name)
		}
		bindings[a] = keys
	}

	m := &Mapper{
		bindings:        bindings,
		keys:            make(map[string][]core.Action),
		restart:         rectOf(v.Restart.Box),
		restartAnywhere: v.Restart.Anywhere,
	}
	for a, keys := range bindings {
		for _, k := range keys {
			k = NormalizeKey(k)
			m.keys[k] = append(m.keys[k], a)
		}
	}

	for _, b := range v.Buttons {
		a, ok := core.ParseAction(b.Action)
		if !ok {
			return nil, fmt.Errorf("input: button %q: unknown action %q", b.Name, b.Action)
		}
		m.buttons = append(m.buttons, Button{
			Name:   b.Name,
			Label:  b.Label,
			Box:    rectOf(b.Box),
			Action: a,
		})
	}
	return m, nil
}

// Bindings returns the effective key names per action.
func (m *Mapper) Bindings() map[core.Action][]string {
	return m.bindings
}

// Buttons returns the virtual buttons in declaration order.
func (m *Mapper) Buttons() []Button {
	return m.buttons
}

// Map computes the intent set for one tick.
//
// A button is active when the pointer is down inside it or a key bound to
// its action is held. A pointer press inside the restart region (or
// anywhere, for tap-to-restart variants) yields Restart; the engine only
// honours it once the round is over.
func (m *Mapper) Map(raw Raw) Result {
	res := Result{Frame: core.NewInputFrame()}

	for k, held := range raw.Keys {
		if !held {
			continue
		}
		for _, a := range m.keys[k] {
			res.Frame.Set(a)
		}
	}

	for _, b := range m.buttons {
		pressed := raw.PointerDown && b.Box.Contains(raw.PointerX, raw.PointerY)
		if pressed {
			res.Frame.Set(b.Action)
		}
		if pressed || res.Frame.Has(b.Action) {
			res.Active = append(res.Active, b.Name)
		}
	}

	if raw.PointerDown && (m.restartAnywhere || m.restart.Contains(raw.PointerX, raw.PointerY)) {
		res.Frame.Set(core.ActionRestart)
	}
	if raw.Quit {
		res.Frame.Set(core.ActionQuit)
	}
	return res
}

// NormalizeKey maps frontend key names to the names used in bindings.
func NormalizeKey(name string) string {
	switch name {
	case " ":
		return "space"
	case "escape":
		return "esc"
	}
	return strings.ToLower(name)
}

func rectOf(b config.Box) core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}
