package effects

// SliceProcessor reorders equal-sized frame segments, either in
// declared order or via a per-call shuffle. Ported from
// original_source/.../effects/processors/slice.rs. The Rust original
// seeds its shuffle from `rand::thread_rng()`; this module instead uses
// the xorshift32 PRNG idiom the teacher corpus uses for its own
// non-cryptographic per-voice randomness (piano/control.go's hammer
// attack-noise burst). Every instance starts from the same fixed seed,
// so fresh instances produce the same shuffle sequence; the state
// advances on each Process call, and SetSeed replaces the seed.
type SliceProcessor struct {
	segments  int
	mode      string
	crossfade float32
	rngState  uint32
}

func NewSliceProcessor(segments int, mode string, crossfade float32) *SliceProcessor {
	if segments < 1 {
		segments = 1
	}
	if segments > 16 {
		segments = 16
	}
	return &SliceProcessor{
		segments:  segments,
		mode:      mode,
		crossfade: clampF32(crossfade, 0.0, 1.0),
		rngState:  0x9e3779b9,
	}
}

// SetSeed overrides the shuffle PRNG's seed; used by tests that need a
// reproducible random-mode ordering.
func (p *SliceProcessor) SetSeed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	p.rngState = seed
}

func (p *SliceProcessor) nextRand() uint32 {
	x := p.rngState
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	p.rngState = x
	return x
}

func (p *SliceProcessor) Process(samples []float32, _ uint32) {
	frames := len(samples) / 2
	if frames == 0 {
		return
	}
	segs := p.segments
	segLen := frames / segs
	if segLen < 1 {
		segLen = 1
	}

	order := make([]int, segs)
	for i := range order {
		order[i] = i
	}
	if p.mode == "random" {
		for i := len(order) - 1; i > 0; i-- {
			j := int(p.nextRand() % uint32(i+1))
			order[i], order[j] = order[j], order[i]
		}
	}

	out := make([]float32, frames*2)
	dst := 0
	for _, s := range order {
		start := s * segLen
		end := (s + 1) * segLen
		if end > frames {
			end = frames
		}
		for i := start; i < end && dst < frames; i++ {
			si := i * 2
			di := dst * 2
			out[di] = samples[si]
			if si+1 < len(samples) {
				out[di+1] = samples[si+1]
			} else {
				out[di+1] = samples[si]
			}
			dst++
		}
	}

	copy(samples[:frames*2], out)
}

func (p *SliceProcessor) Reset()        {}
func (p *SliceProcessor) Name() string { return "Slice" }

func init() {
	registerEffectFactory("slice", availTriggerOnly, func(params map[string]any) Processor {
		return NewSliceProcessor(
			paramInt(params, "segments", 4),
			paramString(params, "mode", "sequential"),
			paramF32(params, "crossfade", 0.01),
		)
	})
}
