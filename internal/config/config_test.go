package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsValidate(t *testing.T) {
	ids := IDs()
	want := []string{
		"animation", "bouncers", "bump", "collision", "dodge", "gravity",
		"grid", "obstacles", "platforms", "runner", "shooter",
	}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], id)
		}
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			v, err := Default(id)
			if err != nil {
				t.Fatalf("Default(%q) error: %v", id, err)
			}
			if v.ID != id {
				t.Errorf("ID = %q, want %q", v.ID, id)
			}
			if err := v.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestDefaultUnknown(t *testing.T) {
	_, err := Default("nope")
	if !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Default(nope) error = %v, want ErrUnknownVariant", err)
	}
}

func TestValidate(t *testing.T) {
	base, err := Default("platforms")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(v *Variant)
	}{
		{"tick rate zero", func(v *Variant) { v.TickRate = 0 }},
		{"tick rate too high", func(v *Variant) { v.TickRate = 241 }},
		{"zero player width", func(v *Variant) { v.Player.Width = 0 }},
		{"negative world", func(v *Variant) { v.World.Height = -1 }},
		{"unknown movement", func(v *Variant) { v.Movement.Mode = "teleport" }},
		{"grid without cell", func(v *Variant) { v.Movement.Mode = MovementGrid; v.Movement.CellSize = 0 }},
		{"unknown bounds", func(v *Variant) { v.Movement.Bounds = "wrap" }},
		{"unknown lethal", func(v *Variant) { v.Rules.OnLethal = "maybe" }},
		{"health without lives", func(v *Variant) { v.Player.MaxHealth = 0 }},
		{"unknown scoring", func(v *Variant) { v.Rules.Scoring = "per_jump" }},
		{"flat platform", func(v *Variant) { v.Platforms[0].H = 0 }},
		{"unknown button action", func(v *Variant) { v.Buttons[0].Action = "dance" }},
		{"duplicate button", func(v *Variant) { v.Buttons[1].Name = v.Buttons[0].Name }},
		{"unknown key action", func(v *Variant) { v.Keys = map[string][]string{"dance": {"x"}} }},
		{"unknown color", func(v *Variant) { v.Colors.Player = "mauve" }},
		{"no restart region", func(v *Variant) { v.Restart.W = 0 }},
		{"scaled without reference", func(v *Variant) { v.Physics.StepMode = StepScaled; v.Physics.ReferenceFPS = 0 }},
		{"spawner without interval", func(v *Variant) { v.Enemies.Motion = EnemySpawn; v.Enemies.Width, v.Enemies.Height = 40, 40 }},
		{"bounce without velocities", func(v *Variant) { v.Obstacles.Motion = ObstacleBounce }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			v.Platforms = append([]Box(nil), base.Platforms...)
			v.Buttons = append([]Button(nil), base.Buttons...)
			tt.mutate(&v)
			err := v.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestPlayArea(t *testing.T) {
	v := Variant{World: World{Width: 600, Height: 400}}
	if got := v.PlayArea(); got != (Box{X: 0, Y: 0, W: 600, H: 400}) {
		t.Errorf("PlayArea() = %+v, want whole world", got)
	}

	v.World.PlayTop, v.World.PlayBottom = 80, 340
	if got := v.PlayArea(); got != (Box{X: 0, Y: 80, W: 600, H: 260}) {
		t.Errorf("PlayArea() = %+v, want band 80..340", got)
	}
}

func TestStepScale(t *testing.T) {
	tests := []struct {
		name string
		mode string
		ref  int
		rate int
		want float64
	}{
		{"fixed ignores rate", StepFixed, 60, 30, 1},
		{"default is fixed", "", 60, 30, 1},
		{"scaled half rate", StepScaled, 60, 30, 2},
		{"scaled same rate", StepScaled, 60, 60, 1},
		{"scaled double rate", StepScaled, 30, 60, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Variant{Physics: Physics{StepMode: tt.mode, ReferenceFPS: tt.ref}}
			if got := v.StepScale(tt.rate); got != tt.want {
				t.Errorf("StepScale(%d) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoaderSearchOrder(t *testing.T) {
	root := t.TempDir()
	userDir := filepath.Join(root, "user")
	localDir := filepath.Join(root, "local")
	l := &Loader{UserDir: userDir, LocalDir: localDir}

	v, err := l.Load("dodge", "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if v.Enemies.Speed != 5 {
		t.Errorf("embedded enemy speed = %v, want 5", v.Enemies.Speed)
	}
	if p := l.Path("dodge", ""); p != "" {
		t.Errorf("Path() = %q, want empty for embedded", p)
	}

	writeFile(t, localDir, "dodge.yaml", "enemies:\n  speed: 7\n")
	v, err = l.Load("dodge", "")
	if err != nil {
		t.Fatal(err)
	}
	if v.Enemies.Speed != 7 {
		t.Errorf("local enemy speed = %v, want 7", v.Enemies.Speed)
	}
	if v.Enemies.Count != 5 {
		t.Errorf("overlay lost enemies.count: got %d, want 5", v.Enemies.Count)
	}

	userPath := writeFile(t, userDir, "dodge.yaml", "enemies:\n  speed: 9\n")
	v, err = l.Load("dodge", "")
	if err != nil {
		t.Fatal(err)
	}
	if v.Enemies.Speed != 9 {
		t.Errorf("user enemy speed = %v, want 9", v.Enemies.Speed)
	}
	if p := l.Path("dodge", ""); p != userPath {
		t.Errorf("Path() = %q, want %q", p, userPath)
	}

	custom := writeFile(t, root, "custom.yaml", "enemies:\n  speed: 11\n")
	v, err = l.Load("dodge", custom)
	if err != nil {
		t.Fatal(err)
	}
	if v.Enemies.Speed != 11 {
		t.Errorf("custom enemy speed = %v, want 11", v.Enemies.Speed)
	}
}

func TestLoaderSkipsBrokenImplicitFile(t *testing.T) {
	root := t.TempDir()
	l := &Loader{UserDir: filepath.Join(root, "user")}
	writeFile(t, l.UserDir, "runner.yaml", "tick_rate: 0\n")

	v, err := l.Load("runner", "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if v.TickRate != 60 {
		t.Errorf("TickRate = %d, want embedded 60", v.TickRate)
	}
}

func TestLoaderCustomErrors(t *testing.T) {
	root := t.TempDir()
	l := &Loader{}

	if _, err := l.Load("runner", filepath.Join(root, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	bad := writeFile(t, root, "bad.yaml", "tick_rate: [\n")
	if _, err := l.Load("runner", bad); err == nil {
		t.Error("expected parse error for malformed custom file")
	}

	invalidFile := writeFile(t, root, "invalid.yaml", "tick_rate: 500\n")
	if _, err := l.Load("runner", invalidFile); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load(invalid) error = %v, want ErrInvalid", err)
	}

	if _, err := l.Load("nope", ""); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Load(nope) error = %v, want ErrUnknownVariant", err)
	}
}

func TestMarshalRoundTripsThroughLoader(t *testing.T) {
	v, err := Default("shooter")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, t.TempDir(), "shooter.yaml", string(data))

	got, err := (&Loader{}).Load("shooter", p)
	if err != nil {
		t.Fatalf("Load(marshalled) error: %v", err)
	}
	if got.Enemies.IntervalMS != 1000 || len(got.Buttons) != 5 || !got.Bullets.Enabled {
		t.Errorf("marshalled variant lost fields: %+v", got)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "grid.yaml", "tick_rate: 10\n")
	writeFile(t, dir, "other.yaml", "x: 1\n")

	w, err := NewWatcher(p)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(p, []byte("tick_rate: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != w.Path() {
			t.Errorf("event path = %q, want %q", got, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change event within 5s")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	p := writeFile(t, t.TempDir(), "grid.yaml", "tick_rate: 10\n")
	w, err := NewWatcher(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events still open after Close")
	}
	// Second close is a no-op.
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
