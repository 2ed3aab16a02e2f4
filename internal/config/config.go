// Package config provides YAML/TOML-based game configuration loading for the
// flappy simulation and its persistence layer.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all tunables of the game.
// Lengths are in world pixels, speeds in pixels per second.
type FlappyConfig struct {
	World     WorldConfig     `yaml:"world" toml:"world"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Speed     SpeedConfig     `yaml:"speed" toml:"speed"`
	Obstacles ObstacleConfig  `yaml:"obstacles" toml:"obstacles"`
	Player    PlayerConfig    `yaml:"player" toml:"player"`
	Animation AnimationConfig `yaml:"animation" toml:"animation"`
	Storage   StorageConfig   `yaml:"storage" toml:"storage"`
}

// WorldConfig defines the logical playfield.
type WorldConfig struct {
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	GroundOffset  float64 `yaml:"ground_offset" toml:"ground_offset"`   // Ground line distance from the bottom
	CeilingMargin float64 `yaml:"ceiling_margin" toml:"ceiling_margin"` // Minimum player Y
}

// PhysicsConfig defines the vertical integrator.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`
	FlapImpulse float64 `yaml:"flap_impulse" toml:"flap_impulse"` // Negative = up
	DiveImpulse float64 `yaml:"dive_impulse" toml:"dive_impulse"`
	DiveDamping float64 `yaml:"dive_damping" toml:"dive_damping"`
	MaxVelocity float64 `yaml:"max_velocity" toml:"max_velocity"`
	MaxDeltaMS  int     `yaml:"max_delta_ms" toml:"max_delta_ms"` // Upper bound of one frame step
}

// SpeedConfig defines world scroll and obstacle cadence.
type SpeedConfig struct {
	World           float64 `yaml:"world" toml:"world"`
	SpawnIntervalMS int     `yaml:"spawn_interval_ms" toml:"spawn_interval_ms"`
	SpawnPreload    float64 `yaml:"spawn_preload" toml:"spawn_preload"` // Fraction of the interval preloaded on start
}

// ObstacleConfig defines obstacle geometry.
type ObstacleConfig struct {
	Width         float64 `yaml:"width" toml:"width"`
	GapSize       float64 `yaml:"gap_size" toml:"gap_size"`
	GapMargin     float64 `yaml:"gap_margin" toml:"gap_margin"`         // Keep gap centers this far from ceiling and ground
	DespawnMargin float64 `yaml:"despawn_margin" toml:"despawn_margin"` // Distance left of the world before removal
}

// PlayerConfig defines the player hitbox.
type PlayerConfig struct {
	X      float64 `yaml:"x" toml:"x"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// AnimationConfig defines the wing-flap cycle.
type AnimationConfig struct {
	Frames       int `yaml:"frames" toml:"frames"`
	FastPeriodMS int `yaml:"fast_period_ms" toml:"fast_period_ms"` // While running
	SlowPeriodMS int `yaml:"slow_period_ms" toml:"slow_period_ms"` // Idle and game over
}

// StorageConfig names the persisted high score slot.
type StorageConfig struct {
	HighScoreKey string `yaml:"high_score_key" toml:"high_score_key"`
	LegacyKey    string `yaml:"legacy_key" toml:"legacy_key"`
}

// GroundY returns the y-coordinate of the ground line.
func (c FlappyConfig) GroundY() float64 {
	return c.World.Height - c.World.GroundOffset
}

// MaxDelta returns the longest step a single frame may advance the simulation.
func (c FlappyConfig) MaxDelta() time.Duration {
	return time.Duration(c.Physics.MaxDeltaMS) * time.Millisecond
}

// SpawnInterval returns the time between obstacle spawns.
func (c FlappyConfig) SpawnInterval() time.Duration {
	return time.Duration(c.Speed.SpawnIntervalMS) * time.Millisecond
}

// FastPeriod returns the animation period used while running.
func (c FlappyConfig) FastPeriod() time.Duration {
	return time.Duration(c.Animation.FastPeriodMS) * time.Millisecond
}

// SlowPeriod returns the animation period used while idle or over.
func (c FlappyConfig) SlowPeriod() time.Duration {
	return time.Duration(c.Animation.SlowPeriodMS) * time.Millisecond
}

// Validate checks that the configuration describes a playable world.
func (c FlappyConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("physics.max_velocity", c.Physics.MaxVelocity)
	positive("physics.max_delta_ms", float64(c.Physics.MaxDeltaMS))
	positive("speed.world", c.Speed.World)
	positive("speed.spawn_interval_ms", float64(c.Speed.SpawnIntervalMS))
	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.gap_size", c.Obstacles.GapSize)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("animation.frames", float64(c.Animation.Frames))
	positive("animation.fast_period_ms", float64(c.Animation.FastPeriodMS))
	positive("animation.slow_period_ms", float64(c.Animation.SlowPeriodMS))

	if c.Speed.SpawnPreload < 0 || c.Speed.SpawnPreload >= 1 {
		errs = append(errs, fmt.Errorf("speed.spawn_preload must be in [0, 1), got %v", c.Speed.SpawnPreload))
	}
	if c.World.CeilingMargin < 0 {
		errs = append(errs, fmt.Errorf("world.ceiling_margin must not be negative, got %v", c.World.CeilingMargin))
	}
	if ground := c.GroundY(); ground <= c.World.CeilingMargin+c.Player.Height {
		errs = append(errs, fmt.Errorf("ground line %v leaves no room for the player", ground))
	}
	if c.GroundY()-2*c.Obstacles.GapMargin < 0 {
		errs = append(errs, fmt.Errorf("obstacles.gap_margin %v leaves no band for gap centers", c.Obstacles.GapMargin))
	}
	if c.Storage.HighScoreKey == "" {
		errs = append(errs, errors.New("storage.high_score_key must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}
