package effects

// StereoProcessor applies mid/side width control: mid=(L+R)/2,
// side=(L-R)/2*width. Ported from
// original_source/.../effects/processors/stereo.rs.
type StereoProcessor struct {
	width float32
}

func NewStereoProcessor(width float32) *StereoProcessor {
	return &StereoProcessor{width: clampF32(width, 0.0, 2.0)}
}

func (p *StereoProcessor) Process(samples []float32, _ uint32) {
	for i := 0; i < len(samples); i += 2 {
		l := samples[i]
		r := l
		if i+1 < len(samples) {
			r = samples[i+1]
		}
		mid := (l + r) * 0.5
		side := (l - r) * 0.5 * p.width
		samples[i] = mid + side
		if i+1 < len(samples) {
			samples[i+1] = mid - side
		}
	}
}

func (p *StereoProcessor) Reset()        {}
func (p *StereoProcessor) Name() string { return "Stereo" }

// MonoizerProcessor blends toward the mid signal by mix. Ported from
// original_source/.../effects/processors/monoizer.rs.
type MonoizerProcessor struct {
	enabled bool
	mix     float32
}

func NewMonoizerProcessor(enabled bool, mix float32) *MonoizerProcessor {
	return &MonoizerProcessor{enabled: enabled, mix: clampF32(mix, 0.0, 1.0)}
}

func (p *MonoizerProcessor) Process(samples []float32, _ uint32) {
	if !p.enabled {
		return
	}
	for i := 0; i < len(samples); i += 2 {
		l := samples[i]
		r := l
		if i+1 < len(samples) {
			r = samples[i+1]
		}
		mid := (l + r) * 0.5
		samples[i] = l*(1.0-p.mix) + mid*p.mix
		if i+1 < len(samples) {
			samples[i+1] = r*(1.0-p.mix) + mid*p.mix
		}
	}
}

func (p *MonoizerProcessor) Reset()        {}
func (p *MonoizerProcessor) Name() string { return "Monoizer" }

func init() {
	registerEffectFactory("stereo", availBoth, func(params map[string]any) Processor {
		return NewStereoProcessor(paramF32(params, "width", 1.0))
	})
	registerEffectFactory("monoizer", availBoth, func(params map[string]any) Processor {
		return NewMonoizerProcessor(paramBool(params, "enabled", true), paramF32(params, "mix", 1.0))
	})
}
