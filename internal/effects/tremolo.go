package effects

import "math"

// TremoloProcessor amplitude-modulates with a sine LFO. Ported from
// original_source/.../effects/processors/tremolo.rs. `sync` (tempo-synced
// rate) is accepted for API parity with the Rust struct but, like the
// original, does not alter the per-sample math — the interpreter is
// responsible for translating a synced rate into Hz before constructing
// the processor.
type TremoloProcessor struct {
	rate, depth float32
	sync        bool
	phase       float32
}

func NewTremoloProcessor(rate, depth float32, sync bool) *TremoloProcessor {
	return &TremoloProcessor{
		rate:  clampF32(rate, 0.1, 20.0),
		depth: clampF32(depth, 0.0, 1.0),
		sync:  sync,
	}
}

func (p *TremoloProcessor) Process(samples []float32, sr uint32) {
	srF := float32(sr)
	for i := 0; i < len(samples); i += 2 {
		lfo := float32(math.Sin(2.0 * math.Pi * float64(p.phase)))
		modAmp := 1.0 - p.depth + p.depth*((lfo+1.0)*0.5)
		samples[i] *= modAmp
		if i+1 < len(samples) {
			samples[i+1] *= modAmp
		}
		p.phase += p.rate / srF
		if p.phase >= 1.0 {
			p.phase -= 1.0
		}
	}
}

func (p *TremoloProcessor) Reset()        { p.phase = 0 }
func (p *TremoloProcessor) Name() string { return "Tremolo" }

func init() {
	registerEffectFactory("tremolo", availBoth, func(params map[string]any) Processor {
		return NewTremoloProcessor(
			paramF32(params, "rate", 5.0),
			paramF32(params, "depth", 0.5),
			paramBool(params, "sync", false),
		)
	})
}
