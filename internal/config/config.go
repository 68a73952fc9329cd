// Package config provides YAML-based configuration loading for the lander:
// physics constants, collision map geometry, ship meshes, camera, audio and
// the level story table.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/ship"
)

// LanderConfig contains all configuration for the lander game.
type LanderConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Collision CollisionConfig `yaml:"collision"`
	Ship      ShipConfig      `yaml:"ship"`
	Camera    CameraConfig    `yaml:"camera"`
	Audio     AudioConfig     `yaml:"audio"`
	Story     StoryConfig     `yaml:"story"`
}

// PhysicsConfig defines the integrator constants.
type PhysicsConfig struct {
	TickRate     int     `yaml:"tick_rate"`      // Fixed ticks per second
	Gravity      float64 `yaml:"gravity"`        // World units / s^2
	Damping      float64 `yaml:"damping"`        // Velocity kept per second
	ThrustAccel  float64 `yaml:"thrust_accel"`   // Engine acceleration
	TurnSpeed    float64 `yaml:"turn_speed"`     // rad/s
	DeathDelay   float64 `yaml:"death_delay"`    // Seconds before the crash prompt
	MaxFrameTime float64 `yaml:"max_frame_time"` // Cap on real time per frame
}

// CollisionConfig defines the occupancy grid.
type CollisionConfig struct {
	Width         int          `yaml:"width"`
	Height        int          `yaml:"height"`
	Extents       core.Extents `yaml:"extents"`
	Threshold     int          `yaml:"threshold"`      // Alpha >= threshold is solid
	SampleSpacing float64      `yaml:"sample_spacing"` // Collider edge sampling
}

// ShipConfig defines the ship meshes in ship-local space (nose along +x).
// An asset path, when set, replaces the inline polygons.
type ShipConfig struct {
	Visual        [][][2]float64 `yaml:"visual"`
	Collider      [][][2]float64 `yaml:"collider"`
	VisualAsset   string         `yaml:"visual_asset"`
	ColliderAsset string         `yaml:"collider_asset"`
}

// CameraConfig defines the visible world rectangle.
type CameraConfig struct {
	ViewHeight float64 `yaml:"view_height"` // World units from top to bottom of the view
	CellAspect float64 `yaml:"cell_aspect"` // Terminal cell height / width
	Debug      bool    `yaml:"debug"`       // Draw collider samples
}

// AudioConfig defines the cue and engine volumes.
type AudioConfig struct {
	Enabled           bool    `yaml:"enabled"`
	SampleRate        int     `yaml:"sample_rate"`
	MasterVolume      float64 `yaml:"master_volume"`
	ThrustVolume      float64 `yaml:"thrust_volume"`       // Engine level at full thrust
	PausedVolumeScale float64 `yaml:"paused_volume_scale"` // Engine scale while text is shown
}

// StoryConfig is the narrative table, grouped by level.
type StoryConfig struct {
	Levels []StoryLevel `yaml:"levels"`
}

// StoryLevel lists the scripted triggers of one level.
type StoryLevel struct {
	Level    int            `yaml:"level"`
	Triggers []StoryTrigger `yaml:"triggers"`
}

// StoryTrigger is the effect of one trigger.
type StoryTrigger struct {
	ID            uint32 `yaml:"id"`
	Text          string `yaml:"text"`
	EnableTurning bool   `yaml:"enable_turning"`
	EnableThrust  bool   `yaml:"enable_thrust"`
	Complete      bool   `yaml:"complete"`
}

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks that the values can drive a simulation.
func (c LanderConfig) Validate() error {
	var errs []error
	check := func(ok bool, field, msg string) {
		if !ok {
			errs = append(errs, ValidationError{Field: field, Message: msg})
		}
	}

	p := c.Physics
	check(p.TickRate > 0, "physics.tick_rate", "must be positive")
	check(p.Gravity >= 0, "physics.gravity", "must not be negative")
	check(p.Damping > 0 && p.Damping <= 1, "physics.damping", "must be in (0, 1]")
	check(p.ThrustAccel > 0, "physics.thrust_accel", "must be positive")
	check(p.TurnSpeed > 0, "physics.turn_speed", "must be positive")
	check(p.DeathDelay >= 0, "physics.death_delay", "must not be negative")
	check(p.MaxFrameTime > 0, "physics.max_frame_time", "must be positive")

	col := c.Collision
	check(col.Width > 0 && col.Height > 0, "collision.width/height", "must be positive")
	check(col.Extents.Width > 0 && col.Extents.Height > 0, "collision.extents", "must have positive area")
	check(col.Threshold >= 1 && col.Threshold <= 255, "collision.threshold", "must be in 1..255")
	check(col.SampleSpacing > 0, "collision.sample_spacing", "must be positive")

	check(c.Camera.ViewHeight > 0, "camera.view_height", "must be positive")
	check(c.Camera.CellAspect > 0, "camera.cell_aspect", "must be positive")

	a := c.Audio
	check(a.ThrustVolume >= 0 && a.ThrustVolume <= 1, "audio.thrust_volume", "must be in [0, 1]")
	check(a.PausedVolumeScale >= 0 && a.PausedVolumeScale <= 1, "audio.paused_volume_scale", "must be in [0, 1]")
	check(a.MasterVolume >= 0 && a.MasterVolume <= 1, "audio.master_volume", "must be in [0, 1]")

	return errors.Join(errs...)
}

// ShipParams converts the physics section into integrator parameters.
func (c LanderConfig) ShipParams() ship.Params {
	return ship.Params{
		Gravity:       c.Physics.Gravity,
		Damping:       c.Physics.Damping,
		ThrustAccel:   c.Physics.ThrustAccel,
		TurnSpeed:     c.Physics.TurnSpeed,
		DeathDelay:    c.Physics.DeathDelay,
		SampleSpacing: c.Collision.SampleSpacing,
	}
}

// TickDuration returns the fixed step in seconds.
func (c LanderConfig) TickDuration() float64 {
	return 1 / float64(c.Physics.TickRate)
}
