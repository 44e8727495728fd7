package effects

import (
	dspconv "github.com/cwbudde/algo-dsp/dsp/conv"

	"github.com/devaloop-labs/devalang-sub003/internal/reverbir"
)

// ReverbProcessor convolves the signal with a stereo impulse response
// using partitioned overlap-add convolution. The IR defaults to a
// synthetic room response (internal/reverbir) sized from `size`/`decay`;
// ported from the partitioning and tail-carry scheme in
// piano/convolver.go's SoundboardConvolver, generalized here to take a
// generic stereo IR instead of a soundboard body response.
type ReverbProcessor struct {
	mix   float32
	size  float32
	decay float32

	sampleRate int
	partSize   int
	irLen      int

	leftOLA, rightOLA *dspconv.OverlapAdd
	tailLeft          []float64
	tailRight         []float64
}

const reverbPartitionSize = 256

func NewReverbProcessor(mix, size, decay float32) *ReverbProcessor {
	return &ReverbProcessor{
		mix:      clampF32(mix, 0.0, 1.0),
		size:     clampF32(size, 0.0, 1.0),
		decay:    clampF32(decay, 0.0, 1.0),
		partSize: reverbPartitionSize,
	}
}

func (p *ReverbProcessor) ensureIR(sampleRate uint32) {
	if p.leftOLA != nil && p.sampleRate == int(sampleRate) {
		return
	}
	p.sampleRate = int(sampleRate)

	cfg := reverbir.DefaultConfig(p.sampleRate)
	cfg.DurationS = 0.2 + 1.8*float64(p.size)
	cfg.LowDecayS = 0.3 + 2.7*float64(p.decay)
	cfg.HighDecayS = 0.05 + 0.45*float64(p.decay)

	left, right, err := reverbir.Generate(cfg)
	if err != nil {
		left = []float32{1.0}
		right = []float32{1.0}
	}
	p.setIR(left, right)
}

func (p *ReverbProcessor) setIR(left, right []float32) {
	left64 := toFloat64Slice(left)
	right64 := toFloat64Slice(right)

	leftOLA, errL := dspconv.NewOverlapAdd(left64, p.partSize)
	rightOLA, errR := dspconv.NewOverlapAdd(right64, p.partSize)
	if errL != nil || errR != nil {
		return
	}
	p.leftOLA = leftOLA
	p.rightOLA = rightOLA
	p.irLen = len(left)
	if len(right) > p.irLen {
		p.irLen = len(right)
	}
	if p.irLen < 1 {
		p.irLen = 1
	}
	p.resetTails()
}

func (p *ReverbProcessor) resetTails() {
	tailLen := p.irLen - 1
	if tailLen < 0 {
		tailLen = 0
	}
	p.tailLeft = make([]float64, tailLen)
	p.tailRight = make([]float64, tailLen)
}

func (p *ReverbProcessor) Process(samples []float32, sampleRate uint32) {
	frames := len(samples) / 2
	if frames == 0 {
		return
	}
	p.ensureIR(sampleRate)
	if p.leftOLA == nil || p.rightOLA == nil {
		return
	}

	inL := make([]float64, frames)
	inR := make([]float64, frames)
	for i := 0; i < frames; i++ {
		inL[i] = float64(samples[i*2])
		inR[i] = float64(samples[i*2+1])
	}

	wetLFull, errL := p.leftOLA.Process(inL)
	wetRFull, errR := p.rightOLA.Process(inR)
	if errL != nil || errR != nil {
		return
	}

	wetL, newTailL := overlapAddBlock(wetLFull, p.tailLeft, frames)
	wetR, newTailR := overlapAddBlock(wetRFull, p.tailRight, frames)
	p.tailLeft = newTailL
	p.tailRight = newTailR

	dry := 1.0 - p.mix
	for i := 0; i < frames; i++ {
		samples[i*2] = samples[i*2]*dry + float32(wetL[i])*p.mix
		samples[i*2+1] = samples[i*2+1]*dry + float32(wetR[i])*p.mix
	}
}

func (p *ReverbProcessor) Reset() {
	if p.leftOLA != nil {
		p.leftOLA.Reset()
	}
	if p.rightOLA != nil {
		p.rightOLA.Reset()
	}
	p.resetTails()
}

func (p *ReverbProcessor) Name() string { return "Reverb" }

func toFloat64Slice(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// overlapAddBlock carries a partitioned convolver's tail across process
// calls of varying block length. Ported from piano/utils.go.
func overlapAddBlock(convOut []float64, tail []float64, blockLen int) ([]float64, []float64) {
	if len(convOut) < blockLen {
		out := make([]float64, blockLen)
		copy(out, convOut)
		return out, nil
	}

	full := make([]float64, len(convOut))
	copy(full, convOut)
	n := len(tail)
	if n > len(full) {
		n = len(full)
	}
	for i := 0; i < n; i++ {
		full[i] += tail[i]
	}

	out := make([]float64, blockLen)
	copy(out, full[:blockLen])
	newTail := make([]float64, len(full)-blockLen)
	copy(newTail, full[blockLen:])
	return out, newTail
}

func init() {
	registerEffectFactory("reverb", availBoth, func(params map[string]any) Processor {
		return NewReverbProcessor(
			paramF32(params, "mix", 0.3),
			paramF32(params, "size", 0.5),
			paramF32(params, "decay", 0.5),
		)
	})
}
