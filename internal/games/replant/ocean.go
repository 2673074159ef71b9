package replant

import (
	"math"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/replant/internal/config"
	platformcore "github.com/vovakirdan/replant/internal/core"
)

// Perlin parameters: smoothing, frequency multiplier and octaves.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Ocean is the animated backdrop: a directional sine wave with Perlin
// noise on top, advanced by elapsed time.
type Ocean struct {
	cfg   config.OceanConfig
	noise *perlin.Perlin

	wavePhase float64 // wave time scaled by speed
	elapsed   float64 // seconds since creation, drives the noise drift
}

// NewOcean creates a backdrop from its config.
func NewOcean(cfg config.OceanConfig) *Ocean {
	return &Ocean{
		cfg:   cfg,
		noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, cfg.Seed),
	}
}

// Advance moves the waves forward by dt.
func (o *Ocean) Advance(dt time.Duration) {
	s := dt.Seconds()
	o.wavePhase += s * o.cfg.WaveSpeed
	o.elapsed += s
}

// Height returns the surface height at a backdrop position.
func (o *Ocean) Height(x, y float64) float64 {
	dx, dy := o.cfg.WaveDirection[0], o.cfg.WaveDirection[1]
	wave := 0.0
	if n := math.Hypot(dx, dy); n > 0 {
		// Projection onto the unit direction.
		along := (x*dx + y*dy) / n
		wave = o.cfg.WaveAmplitude * math.Sin(o.cfg.WaveFrequency*(along-o.wavePhase))
	}

	f := o.cfg.NoiseFrequency
	n := o.noise.Noise2D(f*(x+2*o.elapsed), f*(y+o.elapsed))
	// Noise2D is roughly in [-1, 1]; shift into [0, 1].
	return wave + o.cfg.NoiseIntensity*(n+1)/2
}

// Peak is the largest height Height can return.
func (o *Ocean) Peak() float64 {
	return math.Abs(o.cfg.WaveAmplitude) + math.Abs(o.cfg.NoiseIntensity)
}

var oceanGlyphs = []struct {
	r rune
	c platformcore.Color
}{
	{' ', platformcore.ColorDefault},
	{'.', platformcore.ColorBlue},
	{'-', platformcore.ColorBlue},
	{'~', platformcore.ColorCyan},
	{'≈', platformcore.ColorBrightCyan},
}

// Glyph maps a height to a backdrop character.
func (o *Ocean) Glyph(h float64) (rune, platformcore.Color) {
	peak := o.Peak()
	if peak <= 0 {
		return ' ', platformcore.ColorDefault
	}
	f := (h + peak) / (2 * peak)
	i := int(f * float64(len(oceanGlyphs)))
	i = platformcore.Clamp(i, 0, len(oceanGlyphs)-1)
	g := oceanGlyphs[i]
	return g.r, g.c
}

// Render fills the rows from top down with the backdrop. Screen columns
// count half as much as rows so the waves look round in a terminal.
func (o *Ocean) Render(dst *platformcore.Screen, top int) {
	if !o.cfg.Enabled {
		return
	}
	for y := top; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			r, c := o.Glyph(o.Height(float64(x)/2, float64(y)))
			dst.SetWithColor(x, y, r, c)
		}
	}
}
