package effects

// FreezeProcessor captures the first buffer it sees and thereafter
// blends the frozen snapshot against the live signal by `fade`. Ported
// from original_source/.../effects/processors/freeze.rs. The 5s-at-44.1kHz
// capture buffer is sized generously for any call site; voices that
// render fewer frames simply use the buffer's leading portion.
type FreezeProcessor struct {
	enabled bool
	fade    float32
	hold    float32

	bufL, bufR []float32
	captured   bool
}

const freezeMaxSamples = 44100 * 5

func NewFreezeProcessor(enabled bool, fade, hold float32) *FreezeProcessor {
	return &FreezeProcessor{
		enabled: enabled,
		fade:    clampF32(fade, 0.0, 1.0),
		hold:    clampF32(hold, 0.05, 5.0),
		bufL:    make([]float32, freezeMaxSamples),
		bufR:    make([]float32, freezeMaxSamples),
	}
}

func (p *FreezeProcessor) Process(samples []float32, _ uint32) {
	if !p.enabled {
		return
	}
	frames := len(samples) / 2
	if frames > len(p.bufL) {
		frames = len(p.bufL)
	}

	if !p.captured {
		for i := 0; i < frames; i++ {
			idx := i * 2
			p.bufL[i] = samples[idx]
			if idx+1 < len(samples) {
				p.bufR[i] = samples[idx+1]
			} else {
				p.bufR[i] = samples[idx]
			}
		}
		p.captured = true
	}

	for i := 0; i < frames; i++ {
		idx := i * 2
		frozenL := p.bufL[i]
		frozenR := p.bufR[i]
		samples[idx] = samples[idx]*(1.0-p.fade) + frozenL*p.fade
		if idx+1 < len(samples) {
			samples[idx+1] = samples[idx+1]*(1.0-p.fade) + frozenR*p.fade
		}
	}
}

func (p *FreezeProcessor) Reset()        { p.captured = false }
func (p *FreezeProcessor) Name() string { return "Freeze" }

func init() {
	registerEffectFactory("freeze", availTriggerOnly, func(params map[string]any) Processor {
		return NewFreezeProcessor(
			paramBool(params, "enabled", false),
			paramF32(params, "fade", 0.2),
			paramF32(params, "hold_s", 0.5),
		)
	})
}
