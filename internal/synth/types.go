package synth

import (
	"math"
	"strings"
)

// Type is the per-synth-type behavior: it narrows ADSR params to the
// type's characteristic envelope shape and applies a post-processing
// pass (a timbral signature distinct from the effect chain) after the
// raw oscillator/envelope render.
type Type interface {
	Name() string
	ModifyParams(p *Params)
	PostProcess(samples []float32, sampleRate uint32, options map[string]float32)
}

// GetType looks up a synth type by lowercased name against the catalog
// {pluck,arp,pad,bass,lead,keys}. Ok is false for unknown names.
func GetType(name string) (Type, bool) {
	switch strings.ToLower(name) {
	case "pluck":
		return pluckType{}, true
	case "arp":
		return arpType{}, true
	case "pad":
		return padType{}, true
	case "bass":
		return bassType{}, true
	case "lead":
		return leadType{}, true
	case "keys":
		return keysType{}, true
	default:
		return nil, false
	}
}

// pluckType: short percussive sound, instant attack, no sustain.
// Ported from synth/types/pluck.rs.
type pluckType struct{}

func (pluckType) Name() string { return "pluck" }

func (pluckType) ModifyParams(p *Params) {
	p.Attack = 0.001
	p.Decay = 0.15
	p.Sustain = 0.0
	p.Release = 0.05
}

func (pluckType) PostProcess(samples []float32, _ uint32, _ map[string]float32) {
	if len(samples) < 4 {
		return
	}
	var prev float32
	for i, s := range samples {
		samples[i] = s - 0.3*prev
		prev = s
	}
}

// arpType: very short, snappy envelope suited to fast arpeggiated
// repeats. Its Rust source was dropped from the filtered original but
// test_arp.rs constrains attack<0.01 and release<0.05; shaped here as a
// faster sibling of pluck with no post-process coloration of its own.
type arpType struct{}

func (arpType) Name() string { return "arp" }

func (arpType) ModifyParams(p *Params) {
	p.Attack = 0.002
	p.Decay = 0.05
	p.Sustain = 0.0
	p.Release = 0.03
}

func (arpType) PostProcess(_ []float32, _ uint32, _ map[string]float32) {}

// padType: lush, continuous, ambient sound with slow swell and long
// tail. Ported from synth/types/pad.rs.
type padType struct{}

func (padType) Name() string { return "pad" }

func (padType) ModifyParams(p *Params) {
	p.Attack = 0.3
	p.Decay = 0.4
	p.Sustain = 0.85
	p.Release = 0.8
}

func (padType) PostProcess(samples []float32, sampleRate uint32, _ map[string]float32) {
	delaySamples := int(float32(sampleRate) * 0.015)
	if len(samples) > delaySamples*2 {
		for i := len(samples) - 1; i >= delaySamples; i-- {
			delayed := samples[i-delaySamples]
			samples[i] = samples[i]*0.7 + delayed*0.3
		}
	}

	var prev float32
	for i, s := range samples {
		filtered := s*0.7 + prev*0.3
		prev = filtered
		samples[i] = filtered
	}
}

// bassType: deep, powerful low end with punchy attack and harmonic
// saturation. Ported from synth/types/bass.rs.
type bassType struct{}

func (bassType) Name() string { return "bass" }

func (bassType) ModifyParams(p *Params) {
	p.Attack = 0.01
	p.Decay = 0.15
	p.Sustain = 0.75
	p.Release = 0.1
	if p.Waveform == "sine" {
		p.Waveform = "square"
	}
}

func (bassType) PostProcess(samples []float32, _ uint32, _ map[string]float32) {
	for i, original := range samples {
		compressed := original
		if original > 0.0 {
			if compressed > 0.9 {
				compressed = 0.9
			}
		} else if compressed < -0.9 {
			compressed = -0.9
		}
		distorted := compressed + (compressed*compressed*compressed)*0.2
		samples[i] = distorted * 1.1
	}

	var prev float32
	for i, s := range samples {
		filtered := s*0.6 + prev*0.4
		prev = filtered
		samples[i] = filtered
	}
}

// leadType: bright, cutting, melodic sound with subtle vibrato.
// Ported from synth/types/lead.rs.
type leadType struct{}

func (leadType) Name() string { return "lead" }

func (leadType) ModifyParams(p *Params) {
	p.Attack = 0.008
	p.Decay = 0.08
	p.Sustain = 0.7
	p.Release = 0.15
	if p.Waveform == "sine" {
		p.Waveform = "saw"
	}
}

func (leadType) PostProcess(samples []float32, sampleRate uint32, _ map[string]float32) {
	const vibratoRate = 5.0
	const vibratoDepth = 0.005

	modulated := make([]float32, len(samples))
	for i := range samples {
		t := float32(i) / float32(sampleRate)
		vibrato := float32(math.Sin(2.0*math.Pi*vibratoRate*float64(t))) * vibratoDepth
		srcIdx := int(float32(i) * (1.0 + vibrato))
		if srcIdx >= 0 && srcIdx < len(samples) {
			modulated[i] = samples[srcIdx]
		} else {
			modulated[i] = samples[i]
		}
	}
	copy(samples, modulated)

	var prev float32
	for i, s := range samples {
		current := s
		samples[i] = current - 0.2*prev
		prev = current
	}
}

// keysType: a rounder electric-piano-like envelope between pluck and
// pad, with gentle low-pass smoothing. No Rust source was present in
// the filtered original (only pluck/pad/bass/lead were kept); shaped in
// the same idiom as its siblings from spec.md's default-ADSR table.
type keysType struct{}

func (keysType) Name() string { return "keys" }

func (keysType) ModifyParams(p *Params) {
	p.Attack = 0.004
	p.Decay = 0.2
	p.Sustain = 0.5
	p.Release = 0.25
}

func (keysType) PostProcess(samples []float32, _ uint32, _ map[string]float32) {
	var prev float32
	for i, s := range samples {
		filtered := s*0.8 + prev*0.2
		prev = filtered
		samples[i] = filtered
	}
}
