package effects

// SpeedProcessor resamples by a linear factor, writing into the head of
// the buffer and zero-filling the tail — it never changes slice length.
// Ported by behavior from the test in
// original_source/.../effects/test_registry.rs (the processor's own
// source file was not kept): speed(2.0) on [1,2,3,4] -> [1,3,0,0],
// i.e. out[j] = in[floor(j*factor)] if in range, else 0. Unlike the
// stereo-frame-aware processors, speed indexes the flat sample array
// directly (matches the authoritative test, not a stereo-frame model).
type SpeedProcessor struct {
	factor float32
}

func NewSpeedProcessor(factor float32) *SpeedProcessor {
	if factor <= 0 {
		factor = 1.0
	}
	return &SpeedProcessor{factor: factor}
}

func (p *SpeedProcessor) Process(samples []float32, _ uint32) {
	if p.factor == 1.0 {
		return
	}
	out := make([]float32, len(samples))
	for j := range samples {
		idx := int(float32(j) * p.factor)
		if idx >= 0 && idx < len(samples) {
			out[j] = samples[idx]
		}
	}
	copy(samples, out)
}

func (p *SpeedProcessor) Reset()       {}
func (p *SpeedProcessor) Name() string { return "Speed" }

func init() {
	registerEffectFactory("speed", availTriggerOnly, func(params map[string]any) Processor {
		return NewSpeedProcessor(paramF32(params, "factor", 1.0))
	})
}
