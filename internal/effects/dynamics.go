package effects

import (
	"math"

	"github.com/devaloop-labs/devalang-sub003/internal/dsp"
)

// CompressorProcessor smooths a per-frame RMS envelope with an
// attack/release one-pole (dsp.OnePole, alpha retargeted every frame to
// whichever of attack/release coefficient applies), and applies gain
// reduction above threshold. Ported from
// original_source/.../effects/processors/compressor.rs.
type CompressorProcessor struct {
	threshold float32
	ratio     float32
	attack    float32
	release   float32
	envelope  *dsp.OnePole
}

func NewCompressorProcessor(threshold, ratio, attack, release float32) *CompressorProcessor {
	if ratio < 1.0 {
		ratio = 1.0
	}
	if attack < 0.001 {
		attack = 0.001
	}
	if release < 0.001 {
		release = 0.001
	}
	return &CompressorProcessor{threshold: threshold, ratio: ratio, attack: attack, release: release, envelope: dsp.NewOnePole(0)}
}

func (p *CompressorProcessor) Process(samples []float32, sampleRate uint32) {
	attackCoeff := float32(math.Exp(-1.0 / float64(p.attack*float32(sampleRate))))
	releaseCoeff := float32(math.Exp(-1.0 / float64(p.release*float32(sampleRate))))

	for i := 0; i < len(samples); i += 2 {
		left := samples[i]
		right := left
		if i+1 < len(samples) {
			right = samples[i+1]
		}
		rms := float32(math.Sqrt(float64((left*left + right*right) / 2.0)))

		var db float32
		if rms > 0.0001 {
			db = 20.0 * float32(math.Log10(float64(rms)))
		} else {
			db = -100.0
		}

		var target float32
		if db > p.threshold {
			target = p.threshold + (db-p.threshold)/p.ratio
		} else {
			target = db
		}

		coeff := releaseCoeff
		if target > p.envelope.Value() {
			coeff = attackCoeff
		}
		p.envelope.SetAlpha(1.0 - coeff)
		smoothed := p.envelope.Process(target)

		gain := dsp.DBToLinear(smoothed - db)

		samples[i] *= gain
		if i+1 < len(samples) {
			samples[i+1] *= gain
		}
	}
}

func (p *CompressorProcessor) Reset()        { p.envelope.Reset() }
func (p *CompressorProcessor) Name() string { return "Compressor" }

// GateProcessor silences audio below a threshold using the same
// attack/release envelope scheme as the compressor, with a binary
// open/closed target. Ported from
// original_source/.../effects/processors/gate.rs.
type GateProcessor struct {
	threshold float32
	attack    float32
	release   float32
	envelope  *dsp.OnePole
}

func NewGateProcessor(threshold, attack, release float32) *GateProcessor {
	if attack < 0.001 {
		attack = 0.001
	}
	if release < 0.001 {
		release = 0.001
	}
	return &GateProcessor{threshold: threshold, attack: attack, release: release, envelope: dsp.NewOnePole(0)}
}

func (p *GateProcessor) Process(samples []float32, sampleRate uint32) {
	attackCoeff := float32(math.Exp(-1.0 / float64(p.attack*float32(sampleRate))))
	releaseCoeff := float32(math.Exp(-1.0 / float64(p.release*float32(sampleRate))))

	for i := 0; i < len(samples); i += 2 {
		left := samples[i]
		right := left
		if i+1 < len(samples) {
			right = samples[i+1]
		}
		rms := float32(math.Sqrt(float64((left*left + right*right) / 2.0)))

		var db float32
		if rms > 0.0001 {
			db = 20.0 * float32(math.Log10(float64(rms)))
		} else {
			db = -100.0
		}

		target := float32(-100.0)
		if db > p.threshold {
			target = 0.0
		}

		coeff := releaseCoeff
		if target > p.envelope.Value() {
			coeff = attackCoeff
		}
		p.envelope.SetAlpha(1.0 - coeff)
		smoothed := p.envelope.Process(target)

		gain := dsp.DBToLinear(smoothed)

		samples[i] *= gain
		if i+1 < len(samples) {
			samples[i+1] *= gain
		}
	}
}

func (p *GateProcessor) Reset()        { p.envelope.Reset() }
func (p *GateProcessor) Name() string { return "Gate" }

func init() {
	registerEffectFactory("compressor", availBoth, func(params map[string]any) Processor {
		return NewCompressorProcessor(
			paramF32(params, "threshold_db", -20.0),
			paramF32(params, "ratio", 4.0),
			paramF32(params, "attack_s", 0.005),
			paramF32(params, "release_s", 0.1),
		)
	})
	registerEffectFactory("gate", availBoth, func(params map[string]any) Processor {
		return NewGateProcessor(
			paramF32(params, "threshold_db", -30.0),
			paramF32(params, "attack", 0.001),
			paramF32(params, "release", 0.05),
		)
	})
}
