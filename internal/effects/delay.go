package effects

import "github.com/devaloop-labs/devalang-sub003/internal/dsp"

// DelayProcessor is a stereo circular-buffer delay with feedback and a
// wet/dry mix. Ported from
// original_source/.../effects/processors/delay.rs; buffer sized for up
// to 2 s at 44.1 kHz per spec.md §4.4's `delay` entry. The per-channel
// ring buffers are dsp.DelayLine instances, read before write each
// frame so the feedback tap sees the sample written delaySamples ago.
type DelayProcessor struct {
	timeMs   float32
	feedback float32
	mix      float32

	lineL, lineR *dsp.DelayLine
}

const delayMaxSamples = 88200 // 2s at 44.1kHz, per spec.md's `delay` contract

func NewDelayProcessor(timeMs, feedback, mix float32) *DelayProcessor {
	return &DelayProcessor{
		timeMs:   clampF32(timeMs, 1.0, 2000.0),
		feedback: clampF32(feedback, 0.0, 0.95),
		mix:      clampF32(mix, 0.0, 1.0),
		lineL:    dsp.NewDelayLine(delayMaxSamples),
		lineR:    dsp.NewDelayLine(delayMaxSamples),
	}
}

func (p *DelayProcessor) Process(samples []float32, sampleRate uint32) {
	delaySamples := int((p.timeMs / 1000.0) * float32(sampleRate))
	if delaySamples > p.lineL.Len()-1 {
		delaySamples = p.lineL.Len() - 1
	}

	for i := 0; i < len(samples); i += 2 {
		inL := samples[i]
		inR := inL
		if i+1 < len(samples) {
			inR = samples[i+1]
		}

		delayedL := p.lineL.Read(delaySamples)
		delayedR := p.lineR.Read(delaySamples)

		p.lineL.Write(inL + delayedL*p.feedback)
		p.lineR.Write(inR + delayedR*p.feedback)

		samples[i] = inL*(1.0-p.mix) + delayedL*p.mix
		if i+1 < len(samples) {
			samples[i+1] = inR*(1.0-p.mix) + delayedR*p.mix
		}
	}
}

func (p *DelayProcessor) Reset() {
	p.lineL.Reset()
	p.lineR.Reset()
}

func (p *DelayProcessor) Name() string { return "Delay" }

// clampF32 restricts v to [lo, hi]; a float32 wrapper over dsp.Clamp
// used throughout this package's processor constructors.
func clampF32(v, lo, hi float32) float32 {
	return dsp.Clamp(v, lo, hi)
}

func init() {
	registerEffectFactory("delay", availBoth, func(params map[string]any) Processor {
		return NewDelayProcessor(
			paramF32(params, "time_ms", 250.0),
			paramF32(params, "fb", 0.4),
			paramF32(params, "mix", 0.3),
		)
	})
}
