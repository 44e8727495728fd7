package effects

// StretchProcessor performs a naive linear-interpolation time stretch
// within the same buffer length: output frame i reads input position
// i/factor, so factor>1 slows the content down (the input's tail falls
// past the buffer end and is dropped) and factor<1 speeds it up (frames
// past the input's end are zero). Ported from
// original_source/.../effects/processors/stretch.rs. `pitch`/`formant`
// are accepted for API parity with the catalog entry but, as in the
// original, do not affect this processor's per-sample math — a
// pitch-shifting post-process is out of scope for this processor and is
// left to a dedicated pitch-shift effect if one is ever added.
type StretchProcessor struct {
	factor  float32
	pitch   float32
	formant bool
}

func NewStretchProcessor(factor, pitch float32, formant bool) *StretchProcessor {
	return &StretchProcessor{
		factor:  clampF32(factor, 0.25, 4.0),
		pitch:   clampF32(pitch, -48.0, 48.0),
		formant: formant,
	}
}

func (p *StretchProcessor) Process(samples []float32, _ uint32) {
	frames := len(samples) / 2
	if p.factor == 1.0 || frames == 0 {
		return
	}

	out := make([]float32, len(samples))
	for i := 0; i < frames; i++ {
		srcF := float32(i) / p.factor
		idx := int(srcF)
		frac := srcF - float32(idx)

		aL := sampleAt(samples, idx*2)
		bL := sampleAt(samples, (idx+1)*2)
		out[i*2] = aL*(1.0-frac) + bL*frac

		aR := sampleAt(samples, idx*2+1)
		if idx*2+1 >= len(samples) {
			aR = aL
		}
		bR := sampleAt(samples, (idx+1)*2+1)
		if (idx+1)*2+1 >= len(samples) {
			bR = aR
		}
		out[i*2+1] = aR*(1.0-frac) + bR*frac
	}
	copy(samples, out)
}

func sampleAt(samples []float32, idx int) float32 {
	if idx < 0 || idx >= len(samples) {
		return 0
	}
	return samples[idx]
}

func (p *StretchProcessor) Reset()        {}
func (p *StretchProcessor) Name() string { return "Stretch" }

func init() {
	registerEffectFactory("stretch", availTriggerOnly, func(params map[string]any) Processor {
		return NewStretchProcessor(
			paramF32(params, "factor", 1.0),
			paramF32(params, "pitch_semis", 0.0),
			paramBool(params, "formant", false),
		)
	})
}
