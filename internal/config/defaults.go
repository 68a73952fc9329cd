package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-lander/internal/core"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultLanderConfig returns the built-in configuration.
// It mirrors defaults/lander.yaml and is used if that file fails to parse.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		Physics: PhysicsConfig{
			TickRate:     60,
			Gravity:      40,
			Damping:      0.6,
			ThrustAccel:  100,
			TurnSpeed:    3,
			DeathDelay:   1.5,
			MaxFrameTime: 0.25,
		},
		Collision: CollisionConfig{
			Width:         1024,
			Height:        2048,
			Extents:       core.Extents{Left: -256, Bottom: -512, Width: 512, Height: 1024},
			Threshold:     128,
			SampleSpacing: 2,
		},
		Ship: ShipConfig{
			Visual: [][][2]float64{
				{{5, 0}, {1, 3}, {-3, 3}, {-3, -3}, {1, -3}},
				{{-2, 3}, {-5, 5}, {-3, 3}},
				{{-2, -3}, {-5, -5}, {-3, -3}},
			},
			Collider: [][][2]float64{
				{{6, 0}, {-4, 5}, {-6, 5}, {-6, -5}, {-4, -5}},
			},
		},
		Camera: CameraConfig{
			ViewHeight: 160,
			CellAspect: 2,
		},
		Audio: AudioConfig{
			Enabled:           true,
			SampleRate:        44100,
			MasterVolume:      0.8,
			ThrustVolume:      0.6,
			PausedVolumeScale: 0.25,
		},
		Story: StoryConfig{
			Levels: []StoryLevel{
				{
					Level: 1,
					Triggers: []StoryTrigger{
						{ID: 1, Text: "Main engine online. Hold W to fire it.", EnableThrust: true},
						{ID: 2, Text: "Attitude jets online. A and D turn the ship.", EnableTurning: true},
						{ID: 3, Text: "You found the way out.", Complete: true},
					},
				},
				{
					Level: 2,
					Triggers: []StoryTrigger{
						{ID: 1, Text: "Systems restored. The cave drops away to the east.", EnableThrust: true, EnableTurning: true},
						{ID: 2, Text: "Careful. The shaft narrows below."},
						{ID: 3, Text: "Daylight. That is the last of the caves.", Complete: true},
					},
				},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLanderYAML
}
