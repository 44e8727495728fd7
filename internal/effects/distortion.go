package effects

import "github.com/devaloop-labs/devalang-sub003/internal/dsp"

func softClip32(x float32) float32 { return dsp.SoftClip(x) }

// DistortionProcessor applies a tanh waveshaper at a fixed drive curve
// (1..30x) blended with the dry signal. Ported from
// original_source/.../effects/processors/distortion.rs.
type DistortionProcessor struct {
	amount float32
	mix    float32
}

func NewDistortionProcessor(amount, mix float32) *DistortionProcessor {
	return &DistortionProcessor{
		amount: clampF32(amount, 0.0, 1.0),
		mix:    clampF32(mix, 0.0, 1.0),
	}
}

func (p *DistortionProcessor) Process(samples []float32, _ uint32) {
	drive := 1.0 + p.amount*29.0
	for i, input := range samples {
		driven := input * drive
		distorted := softClip32(driven)
		samples[i] = input*(1.0-p.mix) + distorted*p.mix
	}
}

func (p *DistortionProcessor) Reset()        {}
func (p *DistortionProcessor) Name() string { return "Distortion" }

// DriveProcessor is a tube-style saturation with tone mixing and a
// per-channel one-pole color smoother. Ported from
// original_source/.../effects/processors/drive.rs.
type DriveProcessor struct {
	amount, tone, mix, color float32
	prevL, prevR             float32
}

func NewDriveProcessor(amount, tone, color, mix float32) *DriveProcessor {
	return &DriveProcessor{
		amount: clampF32(amount, 0.0, 1.0),
		tone:   clampF32(tone, 0.0, 1.0),
		mix:    clampF32(mix, 0.0, 1.0),
		color:  clampF32(color, 0.0, 1.0),
	}
}

func (p *DriveProcessor) Process(samples []float32, _ uint32) {
	gain := 1.0 + p.amount*19.0
	alpha := 0.05 + p.color*0.95

	for i := 0; i < len(samples); i += 2 {
		inL := samples[i]
		drivenL := inL * gain
		distortedL := softClip32(drivenL)
		tonedL := distortedL*p.tone + inL*(1.0-p.tone)
		tonedL = alpha*tonedL + (1.0-alpha)*p.prevL
		p.prevL = tonedL
		samples[i] = inL*(1.0-p.mix) + tonedL*p.mix

		if i+1 < len(samples) {
			inR := samples[i+1]
			drivenR := inR * gain
			distortedR := softClip32(drivenR)
			tonedR := distortedR*p.tone + inR*(1.0-p.tone)
			tonedR = alpha*tonedR + (1.0-alpha)*p.prevR
			p.prevR = tonedR
			samples[i+1] = inR*(1.0-p.mix) + tonedR*p.mix
		}
	}
}

func (p *DriveProcessor) Reset()        { p.prevL, p.prevR = 0, 0 }
func (p *DriveProcessor) Name() string { return "Drive" }

func init() {
	registerEffectFactory("distortion", availBoth, func(params map[string]any) Processor {
		return NewDistortionProcessor(paramF32(params, "amount", 0.5), paramF32(params, "mix", 0.5))
	})
	registerEffectFactory("drive", availBoth, func(params map[string]any) Processor {
		return NewDriveProcessor(
			paramF32(params, "amount", 0.5),
			paramF32(params, "tone", 0.5),
			paramF32(params, "color", 0.7),
			paramF32(params, "mix", 0.5),
		)
	})
}
