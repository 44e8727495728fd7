// Package reverbir synthesizes a stereo impulse response for the
// `reverb` effect processor (internal/effects), used when no recorded IR
// is supplied. Adapted from irsynth/synth.go's RoomConfig/GenerateRoom
// (the teacher's stereo room-IR generator for SoundboardConvolver),
// trimmed of the piano-specific body/plate-eigenmode generator which has
// no analogue in the devalang effect catalog.
package reverbir

import (
	"fmt"
	"math"
	"math/rand"
)

// Config controls synthetic reverb IR generation: early reflections
// clustered in the first tens of milliseconds plus a frequency-shaped
// diffuse late tail.
type Config struct {
	SampleRate  int
	DurationS   float64
	Seed        int64
	EarlyCount  int
	LateLevel   float64
	StereoWidth float64
	Brightness  float64
	LowDecayS   float64
	HighDecayS  float64
	FadeOutS    float64

	NormalizePeak float64
}

// DefaultConfig returns a medium-room-sized reverb IR configuration.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate:    sampleRate,
		DurationS:     1.0,
		Seed:          1,
		EarlyCount:    24,
		LateLevel:     0.06,
		StereoWidth:   0.6,
		Brightness:    0.8,
		LowDecayS:     1.2,
		HighDecayS:    0.2,
		FadeOutS:      0.01,
		NormalizePeak: 0.9,
	}
}

func (c *Config) validate() error {
	if c.SampleRate < 8000 {
		return fmt.Errorf("reverbir: sample rate too low: %d", c.SampleRate)
	}
	if c.DurationS <= 0 {
		return fmt.Errorf("reverbir: duration must be > 0")
	}
	if c.LowDecayS <= 0 || c.HighDecayS <= 0 {
		return fmt.Errorf("reverbir: decay seconds must be > 0")
	}
	if c.NormalizePeak <= 0 {
		return fmt.Errorf("reverbir: normalize peak must be > 0")
	}
	return nil
}

// Generate synthesizes a stereo impulse response according to cfg.
func Generate(cfg Config) (left, right []float32, err error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	n := int(math.Round(cfg.DurationS * float64(cfg.SampleRate)))
	if n < 1 {
		n = 1
	}
	bufL := make([]float64, n)
	bufR := make([]float64, n)

	rng := rand.New(rand.NewSource(cfg.Seed))

	for i := 0; i < cfg.EarlyCount; i++ {
		t := 0.001 + 0.049*rng.Float64()
		idx := int(t * float64(cfg.SampleRate))
		if idx <= 0 || idx >= n {
			continue
		}
		amp := (0.10 + 0.35*rng.Float64()) * math.Exp(-t*20.0)
		amp *= math.Pow(0.5+0.5*rng.Float64(), 1.0/cfg.Brightness)
		pan := (rng.Float64()*2.0 - 1.0) * cfg.StereoWidth
		bufL[idx] += amp * (1.0 - 0.5*pan)
		bufR[idx] += amp * (1.0 + 0.5*pan)
	}

	if cfg.LateLevel > 0 {
		lpL, lpR := 0.0, 0.0
		hpL, hpR := 0.0, 0.0
		for i := 0; i < n; i++ {
			t := float64(i) / float64(cfg.SampleRate)
			lowEnv := math.Exp(-t / (0.75 * cfg.LowDecayS))
			highEnv := math.Exp(-t / (0.75 * cfg.HighDecayS))

			nL := rng.NormFloat64()
			nR := rng.NormFloat64()

			lpL = 0.985*lpL + 0.015*nL
			lpR = 0.985*lpR + 0.015*nR

			hpL = 0.15*nL - 0.15*hpL
			hpR = 0.15*nR - 0.15*hpR

			brightnessScale := math.Max(0, 0.3*(cfg.Brightness-0.3))
			bufL[i] += cfg.LateLevel * (lowEnv*lpL + brightnessScale*highEnv*hpL)
			bufR[i] += cfg.LateLevel * (lowEnv*lpR + brightnessScale*highEnv*hpR)
		}
	}

	highpassDC(bufL, 0.995)
	highpassDC(bufR, 0.995)
	fadeOut(bufL, cfg.FadeOutS, cfg.SampleRate)
	fadeOut(bufR, cfg.FadeOutS, cfg.SampleRate)

	peak := math.Max(maxAbs(bufL), maxAbs(bufR))
	if peak < 1e-12 {
		peak = 1e-12
	}
	scale := cfg.NormalizePeak / peak

	left = make([]float32, n)
	right = make([]float32, n)
	for i := 0; i < n; i++ {
		left[i] = float32(bufL[i] * scale)
		right[i] = float32(bufR[i] * scale)
	}
	return left, right, nil
}

func highpassDC(x []float64, r float64) {
	prevIn, prevOut := 0.0, 0.0
	for i := range x {
		y := x[i] - prevIn + r*prevOut
		prevIn = x[i]
		prevOut = y
		x[i] = y
	}
}

func fadeOut(buf []float64, fadeS float64, sampleRate int) {
	if fadeS <= 0 || len(buf) == 0 {
		return
	}
	fadeSamples := int(math.Round(fadeS * float64(sampleRate)))
	if fadeSamples > len(buf) {
		fadeSamples = len(buf)
	}
	start := len(buf) - fadeSamples
	for i := 0; i < fadeSamples; i++ {
		t := float64(i) / float64(fadeSamples)
		gain := 0.5 * (1.0 + math.Cos(t*math.Pi))
		buf[start+i] *= gain
	}
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
