package effects

import "math"

// PhaserProcessor cascades first-order all-pass stages with an
// LFO-modulated coefficient and a wet/dry mix. The cascade output is
// scaled by `feedback` before mixing; it is not fed back into the
// cascade input. Ported from
// original_source/.../effects/processors/phaser.rs.
type PhaserProcessor struct {
	stages   int
	rate     float32
	depth    float32
	feedback float32
	mix      float32
	phase    float32

	allpassState [][2]float32 // per-stage [left, right]
}

func NewPhaserProcessor(stages int, rate, depth, feedback, mix float32) *PhaserProcessor {
	if stages < 2 {
		stages = 2
	}
	if stages > 12 {
		stages = 12
	}
	return &PhaserProcessor{
		stages:       stages,
		rate:         clampF32(rate, 0.1, 10.0),
		depth:        clampF32(depth, 0.0, 1.0),
		feedback:     clampF32(feedback, 0.0, 0.95),
		mix:          clampF32(mix, 0.0, 1.0),
		allpassState: make([][2]float32, stages),
	}
}

func (p *PhaserProcessor) Process(samples []float32, sampleRate uint32) {
	for i := 0; i < len(samples); i += 2 {
		p.phase += p.rate / float32(sampleRate)
		if p.phase >= 1.0 {
			p.phase -= 1.0
		}

		lfo := float32(math.Sin(2.0 * math.Pi * float64(p.phase)))
		coeff := p.depth * lfo * 0.95

		for ch := 0; ch < 2; ch++ {
			if i+ch >= len(samples) {
				continue
			}
			signal := samples[i+ch]

			for stage := 0; stage < p.stages; stage++ {
				state := p.allpassState[stage][ch]
				output := -signal + coeff*(signal-state)
				p.allpassState[stage][ch] = signal
				signal = output + state
			}

			signal *= p.feedback
			samples[i+ch] = samples[i+ch]*(1.0-p.mix) + signal*p.mix
		}
	}
}

func (p *PhaserProcessor) Reset() {
	p.phase = 0
	for i := range p.allpassState {
		p.allpassState[i] = [2]float32{0, 0}
	}
}

func (p *PhaserProcessor) Name() string { return "Phaser" }

func init() {
	registerEffectFactory("phaser", availBoth, func(params map[string]any) Processor {
		return NewPhaserProcessor(
			paramInt(params, "stages", 4),
			paramF32(params, "rate", 0.5),
			paramF32(params, "depth", 0.7),
			paramF32(params, "fb", 0.5),
			paramF32(params, "mix", 0.5),
		)
	})
}
