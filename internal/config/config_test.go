package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/level/formats"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	def := DefaultLanderConfig()

	if cfg.Physics != def.Physics {
		t.Errorf("Physics = %+v, expected %+v", cfg.Physics, def.Physics)
	}
	if cfg.Collision != def.Collision {
		t.Errorf("Collision = %+v, expected %+v", cfg.Collision, def.Collision)
	}
	if cfg.Camera != def.Camera || cfg.Audio != def.Audio {
		t.Errorf("Camera/Audio differ: %+v %+v", cfg.Camera, cfg.Audio)
	}
	if len(cfg.Story.Levels) != len(def.Story.Levels) {
		t.Errorf("len(Story.Levels) = %d, expected %d", len(cfg.Story.Levels), len(def.Story.Levels))
	}
	if len(cfg.Ship.Visual) != len(def.Ship.Visual) || len(cfg.Ship.Collider) != len(def.Ship.Collider) {
		t.Error("ship meshes differ between YAML and hardcoded defaults")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultLanderConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LanderConfig)
		field  string
	}{
		{"zero tick rate", func(c *LanderConfig) { c.Physics.TickRate = 0 }, "physics.tick_rate"},
		{"damping above one", func(c *LanderConfig) { c.Physics.Damping = 1.5 }, "physics.damping"},
		{"zero damping", func(c *LanderConfig) { c.Physics.Damping = 0 }, "physics.damping"},
		{"bad map size", func(c *LanderConfig) { c.Collision.Width = -1 }, "collision.width/height"},
		{"flat extents", func(c *LanderConfig) { c.Collision.Extents.Height = 0 }, "collision.extents"},
		{"threshold zero", func(c *LanderConfig) { c.Collision.Threshold = 0 }, "collision.threshold"},
		{"threshold too big", func(c *LanderConfig) { c.Collision.Threshold = 300 }, "collision.threshold"},
		{"loud thrust", func(c *LanderConfig) { c.Audio.ThrustVolume = 2 }, "audio.thrust_volume"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultLanderConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("Field = %q, expected %q", ve.Field, tc.field)
			}
		})
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 12\ncamera:\n  debug: true\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Physics.Gravity != 12 {
		t.Errorf("Gravity = %v, expected 12", cfg.Physics.Gravity)
	}
	if cfg.Physics.ThrustAccel != 100 {
		t.Errorf("ThrustAccel = %v, expected default 100", cfg.Physics.ThrustAccel)
	}
	if !cfg.Camera.Debug {
		t.Error("Camera.Debug should be set")
	}
	if len(cfg.Story.Levels) == 0 {
		t.Error("story table should keep its defaults")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("physics: [")); err == nil {
		t.Error("Parse should fail on malformed YAML")
	}
	if _, err := Parse([]byte("collision:\n  threshold: 0\n")); err == nil {
		t.Error("Parse should fail validation")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lander.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  turn_speed: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.TurnSpeed != 5 {
		t.Errorf("TurnSpeed = %v, expected 5", cfg.Physics.TurnSpeed)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail for a missing custom path")
	}
}

func TestResolveSources(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	_, src, err := Resolve("")
	if err != nil || src != SourceEmbedded {
		t.Fatalf("Resolve(\"\") = %q, %v; expected embedded", src, err)
	}

	// A broken user file is skipped, a valid local one is used.
	userDir := filepath.Join(home, ".lander", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "lander.yaml"), []byte("physics: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "lander.yaml"), []byte("physics:\n  gravity: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if src != filepath.Join("configs", "lander.yaml") || cfg.Physics.Gravity != 20 {
		t.Errorf("Resolve(\"\") = gravity %v from %q, expected 20 from configs/lander.yaml", cfg.Physics.Gravity, src)
	}

	// A valid user file wins over the local one.
	if err := os.WriteFile(filepath.Join(userDir, "lander.yaml"), []byte("physics:\n  gravity: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, src, _ = Resolve("")
	if cfg.Physics.Gravity != 30 || src != filepath.Join(userDir, "lander.yaml") {
		t.Errorf("Resolve(\"\") = gravity %v from %q, expected the user file", cfg.Physics.Gravity, src)
	}
}

func TestShipParams(t *testing.T) {
	p := DefaultLanderConfig().ShipParams()
	if p.Gravity != 40 || p.Damping != 0.6 || p.SampleSpacing != 2 || p.DeathDelay != 1.5 {
		t.Errorf("ShipParams() = %+v", p)
	}
}

func TestStoryScript(t *testing.T) {
	script, err := DefaultLanderConfig().Story.Script()
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}

	eff, ok := script.Lookup(1, 1)
	if !ok || !eff.EnableThrust || eff.EnableTurning {
		t.Errorf("Lookup(1, 1) = %+v, %v", eff, ok)
	}
	eff, ok = script.Lookup(2, 3)
	if !ok || !eff.Complete {
		t.Errorf("Lookup(2, 3) = %+v, %v", eff, ok)
	}

	dup := StoryConfig{Levels: []StoryLevel{
		{Level: 1, Triggers: []StoryTrigger{{ID: 4}}},
		{Level: 1, Triggers: []StoryTrigger{{ID: 4}}},
	}}
	if _, err := dup.Script(); err == nil {
		t.Error("Script() should reject a duplicated trigger")
	}
}

func TestShipMeshesFromAsset(t *testing.T) {
	dir := t.TempDir()
	collider := []core.Polygon{{core.V(1, 0), core.V(0, 1), core.V(-1, 0)}}
	path := filepath.Join(dir, "collider.dat")
	if err := os.WriteFile(path, formats.EncodePolygons(collider), 0o600); err != nil {
		t.Fatal(err)
	}

	sc := DefaultLanderConfig().Ship
	sc.ColliderAsset = path

	visual, got, err := sc.Meshes()
	if err != nil {
		t.Fatalf("Meshes() failed: %v", err)
	}
	if len(visual) != 3 {
		t.Errorf("len(visual) = %d, expected 3", len(visual))
	}
	if len(got) != 1 || got[0][1] != core.V(0, 1) {
		t.Errorf("collider = %v, expected %v", got, collider)
	}

	sc.ColliderAsset = filepath.Join(dir, "missing.dat")
	if _, _, err := sc.Meshes(); err == nil {
		t.Error("Meshes() should fail for a missing asset")
	}

	sc.ColliderAsset = ""
	sc.Collider = nil
	if _, _, err := sc.Meshes(); err == nil {
		t.Error("Meshes() should fail without a collider")
	}
}
