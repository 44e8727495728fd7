// Package synth implements the per-voice renderer (C2): synth-type
// parameter presets, ADSR-gated oscillator rendering, and per-type
// post-processing. Grounded on
// original_source/.../engine/audio/synth/types/{pluck,pad,bass,lead}.rs
// for the preset table and post-process algorithms. Voice is a one-shot
// renderer with no lifecycle state (see voice.go).
package synth

// Params holds the parameters that drive a single voice render: the
// oscillator waveform, its ADSR envelope, and the options map a synth
// statement's block may override per-type behavior with.
type Params struct {
	Waveform string
	Attack   float32
	Decay    float32
	Sustain  float32
	Release  float32
	Options  map[string]float32
}

// DefaultParams returns the generic ADSR shape used before any synth
// type's ModifyParams narrows it.
func DefaultParams() Params {
	return Params{
		Waveform: "sine",
		Attack:   0.01,
		Decay:    0.1,
		Sustain:  0.7,
		Release:  0.2,
		Options:  map[string]float32{},
	}
}
