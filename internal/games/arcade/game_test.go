package arcade

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/input"
	"github.com/vovakirdan/touch-arcade/internal/registry"
)

// embeddedOnly skips the user and local config directories.
func embeddedOnly() registry.Options {
	return registry.Options{Loader: &config.Loader{}}
}

func newGame(t *testing.T, id string) *Game {
	t.Helper()
	g, err := New(id, embeddedOnly())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = g.Close() })
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	return g
}

func keys(names ...string) input.Raw {
	var raw input.Raw
	for _, n := range names {
		raw.HoldKey(n)
	}
	return raw
}

func TestRegisteredVariants(t *testing.T) {
	titles := make(map[string]string)
	for _, info := range registry.List() {
		titles[info.ID] = info.Title
	}
	for _, id := range config.IDs() {
		title, ok := titles[id]
		if !ok {
			t.Errorf("variant %q not registered", id)
			continue
		}
		if title == "" {
			t.Errorf("variant %q has no title", id)
		}
	}
	if titles["dodge"] != "Block Dodger" {
		t.Errorf("dodge title = %q", titles["dodge"])
	}
}

func TestCreateThroughRegistry(t *testing.T) {
	g, err := registry.Create("shooter", embeddedOnly())
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	if g.ID() != "shooter" || g.Title() == "" {
		t.Errorf("created %q %q", g.ID(), g.Title())
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("no-such-variant", embeddedOnly()); !errors.Is(err, config.ErrUnknownVariant) {
		t.Errorf("unknown variant: err = %v", err)
	}

	opts := embeddedOnly()
	opts.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New("dodge", opts); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestStepPointerButton(t *testing.T) {
	g := newGame(t, "dodge")
	x0 := g.Snapshot().Player.Box.X

	res := g.Step(input.Raw{PointerX: 540, PointerY: 360, PointerDown: true})

	if got := g.Snapshot().Player.Box.X; got != x0+5 {
		t.Errorf("x = %v, want %v", got, x0+5)
	}
	if len(g.ActiveButtons()) != 1 || g.ActiveButtons()[0] != "right" {
		t.Errorf("active = %v, want [right]", g.ActiveButtons())
	}
	if res.Quit || res.Restarted || res.State.GameOver {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestStepQuit(t *testing.T) {
	g := newGame(t, "grid")
	for _, raw := range []input.Raw{keys("q"), keys("esc"), keys("ctrl+c"), {Quit: true}} {
		if res := g.Step(raw); !res.Quit {
			t.Errorf("raw %+v did not quit", raw)
		}
	}
}

func TestRestartRegion(t *testing.T) {
	g := newGame(t, "collision")
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(keys("right"))
	}
	if !g.State().GameOver {
		t.Fatal("setup: expected game over")
	}

	// A tap outside the region does nothing.
	if res := g.Step(input.Raw{PointerX: 10, PointerY: 10, PointerDown: true}); res.Restarted {
		t.Fatal("tap outside the restart region restarted")
	}
	g.Step(input.Raw{})

	res := g.Step(input.Raw{PointerX: 300, PointerY: 260, PointerDown: true})
	if !res.Restarted || res.State.GameOver {
		t.Errorf("tap on restart: %+v", res)
	}
	if x := g.Snapshot().Player.Box.X; x != 100 {
		t.Errorf("player x after restart = %v, want spawn 100", x)
	}
}

func TestHeldPointerDoesNotRestart(t *testing.T) {
	g := newGame(t, "runner")
	jump := input.Raw{PointerX: 410, PointerY: 570, PointerDown: true}
	for i := 0; i < 5000 && !g.State().GameOver; i++ {
		if res := g.Step(jump); res.Restarted {
			t.Fatalf("tick %d: restarted while playing", i)
		}
	}
	if !g.State().GameOver {
		t.Fatal("setup: expected game over while holding jump")
	}

	for i := 0; i < 3; i++ {
		if res := g.Step(jump); res.Restarted || !res.State.GameOver {
			t.Fatalf("held pointer restarted the round: %+v", res)
		}
	}
	if res := g.Step(input.Raw{}); res.Restarted {
		t.Fatal("release restarted the round")
	}
	if res := g.Step(jump); !res.Restarted || res.State.GameOver {
		t.Errorf("new tap after release: %+v", res)
	}
}

func TestHeldRestartKey(t *testing.T) {
	g := newGame(t, "collision")
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(keys("right", "r"))
	}
	if !g.State().GameOver {
		t.Fatal("setup: expected game over")
	}
	if res := g.Step(keys("r")); res.Restarted {
		t.Fatal("restart key held since before game over restarted the round")
	}
	g.Step(input.Raw{})
	if res := g.Step(keys("r")); !res.Restarted {
		t.Error("fresh restart key press ignored")
	}
}

func TestHealthInState(t *testing.T) {
	g := newGame(t, "platforms")
	if s := g.State(); s.Health != 3 || s.Score != 0 {
		t.Errorf("initial state %+v", s)
	}
	g.Step(input.Raw{})
	if s := g.State(); s.Score != 1 {
		t.Errorf("per-tick score = %d, want 1", s.Score)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, "dodge")
	dst := core.NewScreen(60, 21)
	g.Step(input.Raw{PointerX: 540, PointerY: 360, PointerDown: true})
	g.Render(dst)

	if row := dst.Row(0); !strings.Contains(row, "Score: 0") || !strings.Contains(row, "Block Dodger") {
		t.Errorf("HUD row = %q", row)
	}

	// Player at (305,340) 40x40 -> columns 30..34, rows 17..19 plus the HUD row.
	cell := dst.GetCell(31, 18)
	if cell.Rune != PlayerChar || cell.Color != core.ColorBlue {
		t.Errorf("player cell = %+v", cell)
	}

	// The right button is lit, the left one is not.
	if c := dst.GetCell(50, 17); c.Color != core.ColorBrightGreen {
		t.Errorf("active button cell = %+v", c)
	}
	if c := dst.GetCell(2, 17); c.Color != core.ColorGreen {
		t.Errorf("idle button cell = %+v", c)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, "collision")
	dst := core.NewScreen(60, 21)

	g.Step(keys("p"))
	g.Render(dst)
	if !strings.Contains(dst.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	g.Step(input.Raw{})
	g.Step(keys("p"))
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(keys("right"))
	}
	g.Render(dst)
	out := dst.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Restart") {
		t.Errorf("game over overlay missing:\n%s", out)
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newGame(t, "shooter")
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 2}} {
		g.Render(core.NewScreen(size[0], size[1]))
	}
}

func TestCellToWorld(t *testing.T) {
	g := newGame(t, "dodge")
	g.Render(core.NewScreen(60, 21))

	x, y := g.CellToWorld(54, 1)
	if x != 545 || y != 10 {
		t.Errorf("CellToWorld(54, 1) = (%v, %v), want (545, 10)", x, y)
	}

	// A click on the cell under the right button presses it.
	x, y = g.CellToWorld(54, 18)
	g.Step(input.Raw{PointerX: x, PointerY: y, PointerDown: true})
	if len(g.ActiveButtons()) != 1 || g.ActiveButtons()[0] != "right" {
		t.Errorf("clicked cell maps to %v, want the right button", g.ActiveButtons())
	}
}

func TestReloadAppliedOnRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collision.yaml")
	write := func(speed string) {
		t.Helper()
		doc := "movement:\n  speed: " + speed + "\n"
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("5")

	opts := embeddedOnly()
	opts.ConfigPath = path
	opts.Watch = true
	g, err := New("collision", opts)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	g.Reset(core.RuntimeConfig{Seed: 1})

	write("10")
	deadline := time.Now().Add(5 * time.Second)
	for g.pending == nil && time.Now().Before(deadline) {
		g.Step(input.Raw{})
		time.Sleep(20 * time.Millisecond)
	}
	if g.pending == nil {
		t.Fatal("reload not picked up")
	}
	if g.Variant().Movement.Speed != 5 {
		t.Fatal("reload must wait for the next restart")
	}

	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(keys("right"))
	}
	if res := g.Step(keys("r")); !res.Restarted {
		t.Fatal("restart key ignored after game over")
	}
	if g.Variant().Movement.Speed != 10 {
		t.Errorf("speed after restart = %v, want 10", g.Variant().Movement.Speed)
	}

	x0 := g.Snapshot().Player.Box.X
	g.Step(keys("right"))
	if dx := g.Snapshot().Player.Box.X - x0; dx != 10 {
		t.Errorf("moved %v, want 10 with the reloaded rules", dx)
	}
}
