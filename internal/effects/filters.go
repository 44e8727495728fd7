package effects

import "math"

// LowpassProcessor is a one-pole lowpass per channel: alpha = omega /
// (omega + 1), omega = 2*pi*min(cutoff, 0.49*sr)/sr. Ported from
// original_source/.../effects/processors/lowpass.rs.
type LowpassProcessor struct {
	cutoff     float32
	resonance  float32
	prevL, prevR float32
}

func NewLowpassProcessor(cutoff, resonance float32) *LowpassProcessor {
	return &LowpassProcessor{
		cutoff:    clampF32(cutoff, 20.0, 20000.0),
		resonance: clampF32(resonance, 0.0, 1.0),
	}
}

func (p *LowpassProcessor) Process(samples []float32, sr uint32) {
	fs := float32(sr)
	fc := p.cutoff
	if fc < 20.0 {
		fc = 20.0
	}
	if fc > fs*0.49 {
		fc = fs * 0.49
	}
	omega := float32(2.0*math.Pi) * fc / fs
	alpha := omega / (omega + 1.0)

	for i := 0; i < len(samples); i += 2 {
		xL := samples[i]
		p.prevL = p.prevL + alpha*(xL-p.prevL)
		samples[i] = p.prevL
		if i+1 < len(samples) {
			xR := samples[i+1]
			p.prevR = p.prevR + alpha*(xR-p.prevR)
			samples[i+1] = p.prevR
		}
	}
}

func (p *LowpassProcessor) Reset() { p.prevL, p.prevR = 0, 0 }
func (p *LowpassProcessor) Name() string { return "Lowpass" }

// HighpassProcessor is a one-pole highpass per channel: alpha =
// 1/(omega+1), y = alpha*(y_prev + x - x_prev). Ported from
// original_source/.../effects/processors/highpass.rs.
type HighpassProcessor struct {
	cutoff, resonance           float32
	prevXL, prevXR, prevYL, prevYR float32
}

func NewHighpassProcessor(cutoff, resonance float32) *HighpassProcessor {
	return &HighpassProcessor{
		cutoff:    clampF32(cutoff, 20.0, 20000.0),
		resonance: clampF32(resonance, 0.0, 1.0),
	}
}

func (p *HighpassProcessor) Process(samples []float32, sr uint32) {
	fs := float32(sr)
	fc := p.cutoff
	if fc < 20.0 {
		fc = 20.0
	}
	if fc > fs*0.49 {
		fc = fs * 0.49
	}
	omega := float32(2.0*math.Pi) * fc / fs
	alpha := 1.0 / (omega + 1.0)

	for i := 0; i < len(samples); i += 2 {
		xL := samples[i]
		yL := alpha * (p.prevYL + xL - p.prevXL)
		p.prevXL, p.prevYL = xL, yL
		samples[i] = yL
		if i+1 < len(samples) {
			xR := samples[i+1]
			yR := alpha * (p.prevYR + xR - p.prevXR)
			p.prevXR, p.prevYR = xR, yR
			samples[i+1] = yR
		}
	}
}

func (p *HighpassProcessor) Reset() {
	p.prevXL, p.prevXR, p.prevYL, p.prevYR = 0, 0, 0, 0
}
func (p *HighpassProcessor) Name() string { return "Highpass" }

// BandpassProcessor chains a highpass(cutoff*0.5) into a
// lowpass(cutoff*1.5). Ported from
// original_source/.../effects/processors/bandpass.rs.
type BandpassProcessor struct {
	cutoff, resonance float32
	hp                *HighpassProcessor
	lp                *LowpassProcessor
}

func NewBandpassProcessor(cutoff, resonance float32) *BandpassProcessor {
	cutoff = clampF32(cutoff, 20.0, 20000.0)
	hpCutoff := cutoff * 0.5
	if hpCutoff < 20.0 {
		hpCutoff = 20.0
	}
	return &BandpassProcessor{
		cutoff:    cutoff,
		resonance: clampF32(resonance, 0.0, 1.0),
		hp:        NewHighpassProcessor(hpCutoff, resonance),
		lp:        NewLowpassProcessor(cutoff*1.5, resonance),
	}
}

func (p *BandpassProcessor) Process(samples []float32, sr uint32) {
	p.hp.Process(samples, sr)
	p.lp.Process(samples, sr)
}

func (p *BandpassProcessor) Reset() {
	p.hp.Reset()
	p.lp.Reset()
}
func (p *BandpassProcessor) Name() string { return "Bandpass" }

func init() {
	registerEffectFactory("lowpass", availBoth, func(params map[string]any) Processor {
		return NewLowpassProcessor(paramF32(params, "cutoff", 5000.0), paramF32(params, "res", 0.1))
	})
	registerEffectFactory("highpass", availBoth, func(params map[string]any) Processor {
		return NewHighpassProcessor(paramF32(params, "cutoff", 200.0), paramF32(params, "res", 0.1))
	})
	registerEffectFactory("bandpass", availBoth, func(params map[string]any) Processor {
		return NewBandpassProcessor(paramF32(params, "cutoff", 1000.0), paramF32(params, "res", 0.2))
	})
}
