package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// Used when neither a config file nor the embedded YAML can be decoded.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:         800,
			Height:        480,
			GroundOffset:  32,
			CeilingMargin: 16,
		},
		Physics: PhysicsConfig{
			Gravity:     1400,
			FlapImpulse: -420,
			DiveImpulse: 520,
			DiveDamping: 0.6,
			MaxVelocity: 720,
			MaxDeltaMS:  60,
		},
		Speed: SpeedConfig{
			World:           260,
			SpawnIntervalMS: 1800,
			SpawnPreload:    0.6,
		},
		Obstacles: ObstacleConfig{
			Width:         64,
			GapSize:       120,
			GapMargin:     80,
			DespawnMargin: 20,
		},
		Player: PlayerConfig{
			X:      120,
			Width:  52,
			Height: 36,
		},
		Animation: AnimationConfig{
			Frames:       2,
			FastPeriodMS: 120,
			SlowPeriodMS: 240,
		},
		Storage: StorageConfig{
			HighScoreKey: "flappy-bird-high-score",
			LegacyKey:    "flappy-dino-high-score",
		},
	}
}
