package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/input"
)

// KeyMap describes the in-game bindings for the help footer.
// The input mapper does the actual key-to-intent translation.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Jump       key.Binding
	Shoot      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Jump, k.Shoot, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Jump, k.Shoot},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// NewKeyMap builds the help bindings from the effective key names of a
// variant. Actions with no keys are disabled and drop out of the help.
func NewKeyMap(bindings map[core.Action][]string) KeyMap {
	b := func(a core.Action) key.Binding {
		keys := bindings[a]
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), a.String()),
		)
	}
	k := KeyMap{
		Left:    b(core.ActionLeft),
		Right:   b(core.ActionRight),
		Up:      b(core.ActionUp),
		Down:    b(core.ActionDown),
		Jump:    b(core.ActionJump),
		Shoot:   b(core.ActionShoot),
		Pause:   b(core.ActionPause),
		Restart: b(core.ActionRestart),
		Quit:    b(core.ActionQuit),
	}
	k.Screenshot = key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "screenshot"),
	)
	for _, kb := range []*key.Binding{&k.Left, &k.Right, &k.Up, &k.Down, &k.Jump, &k.Shoot, &k.Pause, &k.Restart, &k.Quit} {
		kb.SetEnabled(len(kb.Keys()) > 0)
	}
	return k
}

// DefaultKeyMap returns the help bindings for the default key layout.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(input.DefaultBindings())
}

// MenuKeyMap defines the key bindings for the variant picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings for the menu.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// keyName converts a Bubble Tea key message to the name used in bindings.
func keyName(msg tea.KeyMsg) string {
	return input.NormalizeKey(msg.String())
}
