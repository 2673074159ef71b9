package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/replant.yaml
var defaultReplantYAML []byte

// DefaultReplantConfig returns the default game configuration.
func DefaultReplantConfig() ReplantConfig {
	return ReplantConfig{
		Timing: TimingConfig{
			StepLength:      250 * time.Millisecond,
			JumpTime:        150 * time.Millisecond,
			ReplantDuration: 2 * time.Second,
			ClearDelay:      time.Second,
		},
		Input: InputConfig{
			LatchMS: 120,
		},
		Replant: GrowthConfig{
			Healthy: "o4",
		},
		Ocean: OceanConfig{
			Enabled:        true,
			WaveAmplitude:  1.0,
			WaveSpeed:      1.0,
			WaveFrequency:  1.0,
			WaveDirection:  [2]float64{1, 0.5},
			NoiseIntensity: 0.1,
			NoiseFrequency: 0.1,
			Seed:           42,
		},
		Render: RenderConfig{
			TileWidth: 2,
			ShowHUD:   true,
		},
		Pace: PaceNormal,
	}
}
