// Package config provides YAML-based configuration loading and pace
// presets for the replant game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// ReplantConfig contains all configuration for the game.
type ReplantConfig struct {
	Timing  TimingConfig `yaml:"timing"`
	Input   InputConfig  `yaml:"input"`
	Replant GrowthConfig `yaml:"replant"`
	Ocean   OceanConfig  `yaml:"ocean"`
	Render  RenderConfig `yaml:"render"`
	Pace    PacePreset   `yaml:"pace"`
}

// TimingConfig defines the level clocks. Values are Go duration strings.
type TimingConfig struct {
	StepLength      time.Duration `yaml:"step_length"`      // push animation length
	JumpTime        time.Duration `yaml:"jump_time"`        // player hop length
	ReplantDuration time.Duration `yaml:"replant_duration"` // whole-board replant
	ClearDelay      time.Duration `yaml:"clear_delay"`      // pause before the next level
}

// InputConfig defines key handling.
type InputConfig struct {
	// LatchMS keeps a key "held" after its last press event. Terminals
	// report presses only, so two keys pressed within the window count as
	// held together.
	LatchMS int `yaml:"latch_ms"`
}

// Latch returns the latch window as a duration.
func (c InputConfig) Latch() time.Duration {
	return time.Duration(c.LatchMS) * time.Millisecond
}

// GrowthConfig defines the replant celebration.
type GrowthConfig struct {
	Healthy string `yaml:"healthy"` // tile codes a replanted tile may become
}

// OceanConfig defines the animated backdrop.
type OceanConfig struct {
	Enabled        bool       `yaml:"enabled"`
	WaveAmplitude  float64    `yaml:"wave_amplitude"`
	WaveSpeed      float64    `yaml:"wave_speed"`
	WaveFrequency  float64    `yaml:"wave_frequency"`
	WaveDirection  [2]float64 `yaml:"wave_direction"`
	NoiseIntensity float64    `yaml:"noise_intensity"`
	NoiseFrequency float64    `yaml:"noise_frequency"`
	Seed           int64      `yaml:"seed"`
}

// RenderConfig defines terminal presentation.
type RenderConfig struct {
	TileWidth int  `yaml:"tile_width"` // columns per half tile
	ShowHUD   bool `yaml:"show_hud"`
}

// Validate checks that the configuration can drive a level.
// validCodes lists the tile codes known to the tile table.
func (c ReplantConfig) Validate(validCodes []rune) error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"timing.step_length", c.Timing.StepLength},
		{"timing.jump_time", c.Timing.JumpTime},
		{"timing.replant_duration", c.Timing.ReplantDuration},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, d.name, d.d)
		}
	}
	if c.Timing.ClearDelay < 0 {
		return fmt.Errorf("%w: timing.clear_delay must not be negative", ErrInvalidConfig)
	}
	if c.Input.LatchMS < 0 {
		return fmt.Errorf("%w: input.latch_ms must not be negative", ErrInvalidConfig)
	}
	if c.Replant.Healthy == "" {
		return fmt.Errorf("%w: replant.healthy is empty", ErrInvalidConfig)
	}
	for _, r := range c.Replant.Healthy {
		if !containsRune(validCodes, r) {
			return fmt.Errorf("%w: replant.healthy has unknown tile code %q", ErrInvalidConfig, r)
		}
	}
	if c.Render.TileWidth < 1 {
		return fmt.Errorf("%w: render.tile_width must be at least 1", ErrInvalidConfig)
	}
	if _, ok := paceScale[c.Pace]; c.Pace != "" && !ok {
		return fmt.Errorf("%w: unknown pace %q", ErrInvalidConfig, c.Pace)
	}
	return nil
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
