package window

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/touch-arcade/internal/input"
)

// pressedKeys appends the keys held this tick.
func pressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(keys)
}

// keyName converts an Ebitengine key to the name used in bindings.
func keyName(k ebiten.Key) string {
	name := strings.ToLower(k.String())
	switch name {
	case "arrowleft":
		return "left"
	case "arrowright":
		return "right"
	case "arrowup":
		return "up"
	case "arrowdown":
		return "down"
	}
	if d, ok := strings.CutPrefix(name, "digit"); ok {
		return d
	}
	return input.NormalizeKey(name)
}

// keysRaw builds the held-key set. With ctrl held, letter keys are also
// reported in their ctrl+ form so terminal-style bindings match.
func keysRaw(keys []ebiten.Key, ctrl bool) input.Raw {
	var raw input.Raw
	for _, k := range keys {
		name := keyName(k)
		raw.HoldKey(name)
		if ctrl && len(name) == 1 {
			raw.HoldKey("ctrl+" + name)
		}
	}
	return raw
}
