package effects

import "math"

// ChorusProcessor modulates a short tap into a ~200ms buffer with a sine
// LFO. Ported from original_source/.../effects/processors/chorus.rs.
type ChorusProcessor struct {
	depth float32
	rate  float32
	mix   float32
	phase float32

	buf []float32
	pos int
}

const chorusBufferSamples = 8820 // ~200ms at 44.1kHz

func NewChorusProcessor(depth, rate, mix float32) *ChorusProcessor {
	return &ChorusProcessor{
		depth: clampF32(depth, 0.0, 1.0),
		rate:  clampF32(rate, 0.1, 10.0),
		mix:   clampF32(mix, 0.0, 1.0),
		buf:   make([]float32, chorusBufferSamples),
	}
}

func (p *ChorusProcessor) Process(samples []float32, sampleRate uint32) {
	maxDelaySamples := int(0.020 * float32(sampleRate))

	for i := 0; i < len(samples); i += 2 {
		p.phase += p.rate / float32(sampleRate)
		if p.phase >= 1.0 {
			p.phase -= 1.0
		}

		lfo := float32(math.Sin(2.0 * math.Pi * float64(p.phase)))
		delaySamples := int(p.depth * float32(maxDelaySamples) * (lfo + 1.0) / 2.0)
		if delaySamples > len(p.buf)-1 {
			delaySamples = len(p.buf) - 1
		}

		for ch := 0; ch < 2; ch++ {
			if i+ch >= len(samples) {
				continue
			}
			input := samples[i+ch]
			p.buf[p.pos] = input
			readPos := (p.pos + len(p.buf) - delaySamples) % len(p.buf)
			delayed := p.buf[readPos]
			samples[i+ch] = input*(1.0-p.mix) + delayed*p.mix
		}

		p.pos = (p.pos + 1) % len(p.buf)
	}
}

func (p *ChorusProcessor) Reset() {
	p.phase = 0
	for i := range p.buf {
		p.buf[i] = 0
	}
	p.pos = 0
}

func (p *ChorusProcessor) Name() string { return "Chorus" }

func init() {
	registerEffectFactory("chorus", availBoth, func(params map[string]any) Processor {
		return NewChorusProcessor(
			paramF32(params, "depth", 0.7),
			paramF32(params, "rate", 0.5),
			paramF32(params, "mix", 0.5),
		)
	})
}
