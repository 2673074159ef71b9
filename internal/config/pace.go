package config

import "time"

// PacePreset represents a named game speed.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceBrisk   PacePreset = "brisk"
)

// paceScale multiplies every animation duration.
var paceScale = map[PacePreset]float64{
	PaceRelaxed: 1.5,
	PaceNormal:  1.0,
	PaceBrisk:   0.6,
}

// Presets lists the known pace presets in display order.
func Presets() []PacePreset {
	return []PacePreset{PaceRelaxed, PaceNormal, PaceBrisk}
}

// ScaleForPreset returns the duration multiplier for a preset.
// Unknown or empty presets scale by 1.
func ScaleForPreset(preset PacePreset) float64 {
	if s, ok := paceScale[preset]; ok {
		return s
	}
	return 1.0
}

// ApplyPacePreset selects a pace preset. The timing section keeps its
// normal-pace values; Timings applies the scale.
func ApplyPacePreset(cfg *ReplantConfig, preset PacePreset) {
	cfg.Pace = preset
}

// Timings returns the timing section scaled by the pace preset.
func (c ReplantConfig) Timings() TimingConfig {
	f := ScaleForPreset(c.Pace)
	return TimingConfig{
		StepLength:      scaleDuration(c.Timing.StepLength, f),
		JumpTime:        scaleDuration(c.Timing.JumpTime, f),
		ReplantDuration: scaleDuration(c.Timing.ReplantDuration, f),
		ClearDelay:      scaleDuration(c.Timing.ClearDelay, f),
	}
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
