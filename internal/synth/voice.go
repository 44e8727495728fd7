package synth

import (
	"github.com/devaloop-labs/devalang-sub003/internal/oscillator"
)

// Voice renders a single monophonic note event: oscillator + ADSR
// envelope + synth-type post-process. Unlike piano/voice.go's
// waveguide-string Voice, there is no ongoing physical state beyond the
// render call itself — a voice is produced fresh per trigger/spawn event
// and discarded after Render, matching spec.md's event-driven one-shot
// model rather than the teacher's continuously-excited string model.
type Voice struct {
	typeName   string
	synthType  Type
	params     Params
	frequency  float32
	sampleRate uint32
}

// NewVoice builds a voice for midiNote using the named synth type's
// ADSR preset. An unknown typeName falls back to DefaultParams() with no
// type-specific modification or post-process, per spec.md's "if unknown,
// use defaults" lookup rule, rather than failing the render.
func NewVoice(typeName string, midiNote int, sampleRate uint32) (*Voice, error) {
	params := DefaultParams()
	st, ok := GetType(typeName)
	if ok {
		st.ModifyParams(&params)
	}

	return &Voice{
		typeName:   typeName,
		synthType:  st,
		params:     params,
		frequency:  oscillator.MIDIToFrequency(midiNote),
		sampleRate: sampleRate,
	}, nil
}

// Params returns the voice's (possibly type-modified) ADSR/waveform
// parameters, for callers that need to inspect them before render.
func (v *Voice) Params() Params { return v.params }

// Render produces durationSamples mono samples for the voice's note:
// oscillator sampled at Params().Waveform/frequency, shaped by the ADSR
// envelope, then passed through the synth type's PostProcess.
func (v *Voice) Render(durationSamples int, velocity float32) []float32 {
	if durationSamples <= 0 {
		return nil
	}
	out := make([]float32, durationSamples)

	attackN := oscillator.TimeToSamples(v.params.Attack, v.sampleRate)
	decayN := oscillator.TimeToSamples(v.params.Decay, v.sampleRate)
	releaseN := oscillator.TimeToSamples(v.params.Release, v.sampleRate)
	sustainN := durationSamples - attackN - decayN - releaseN
	if sustainN < 0 {
		sustainN = 0
	}

	for i := 0; i < durationSamples; i++ {
		t := float32(i) / float32(v.sampleRate)
		osc := oscillator.Sample(v.params.Waveform, v.frequency, t)
		env := oscillator.ADSREnvelope(i, attackN, decayN, sustainN, releaseN, v.params.Sustain)
		out[i] = osc * env * velocity
	}

	if v.synthType != nil {
		v.synthType.PostProcess(out, v.sampleRate, v.params.Options)
	}
	return out
}
