package effects

// ReverseProcessor reverses the buffer in place; stateless. Ported from
// original_source/.../effects/processors/reverse.rs.
type ReverseProcessor struct {
	reversed bool
}

func NewReverseProcessor(reversed bool) *ReverseProcessor {
	return &ReverseProcessor{reversed: reversed}
}

func (p *ReverseProcessor) Process(samples []float32, _ uint32) {
	if !p.reversed {
		return
	}
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
}

func (p *ReverseProcessor) Reset() {}
func (p *ReverseProcessor) Name() string { return "Reverse" }

func init() {
	registerEffectFactory("reverse", availTriggerOnly, func(params map[string]any) Processor {
		return NewReverseProcessor(paramBool(params, "reversed", false))
	})
}
