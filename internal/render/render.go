// Package render implements the mixdown stage (C8): allocating the
// master stereo buffer, summing each timeline event's rendered voice
// into it at its start offset, running the master effect chain, and
// optionally peak-normalizing for float-only output.
package render

import (
	"math"

	"github.com/devaloop-labs/devalang-sub003/internal/dsp"
	"github.com/devaloop-labs/devalang-sub003/internal/effects"
	"github.com/devaloop-labs/devalang-sub003/internal/events"
)

// VoiceRenderer produces a stereo-interleaved buffer for a single
// timeline event. The renderer package is deliberately
// decoupled from how that buffer is produced (oscillator synth vs.
// sample playback) — internal/interp supplies the concrete callback.
type VoiceRenderer func(ev events.Event, sampleRate uint32) (stereo []float32, err error)

// Mix allocates a stereo buffer sized to round(totalDurationS*sampleRate)
// frames and sums every event's rendered voice into it at
// round(event.Time*sampleRate) frames, clamped to the buffer's bounds.
func Mix(timeline []events.Event, totalDurationS float32, sampleRate uint32, render VoiceRenderer) ([]float32, error) {
	totalFrames := int(math.Round(float64(totalDurationS) * float64(sampleRate)))
	if totalFrames < 0 {
		totalFrames = 0
	}
	buf := make([]float32, totalFrames*2)

	for _, ev := range timeline {
		voice, err := render(ev, sampleRate)
		if err != nil {
			return nil, err
		}
		startFrame := int(math.Round(float64(ev.Time) * float64(sampleRate)))
		sumInto(buf, voice, startFrame)
	}

	return buf, nil
}

// sumInto adds a stereo-interleaved voice buffer into dst starting at
// startFrame, clamped to dst's bounds.
func sumInto(dst, voice []float32, startFrame int) {
	if startFrame < 0 {
		startFrame = 0
	}
	dstFrames := len(dst) / 2
	voiceFrames := len(voice) / 2
	for i := 0; i < voiceFrames; i++ {
		frame := startFrame + i
		if frame >= dstFrames {
			break
		}
		dst[frame*2] += voice[i*2]
		dst[frame*2+1] += voice[i*2+1]
	}
}

// ApplyMasterChain runs the given effect declarations, in declared
// order, over the full mixed buffer as a single synth-context chain.
func ApplyMasterChain(buf []float32, sampleRate uint32, decls []effects.Decl) []string {
	chain, dropped := effects.NewChain(effects.ContextSynth, decls)
	chain.Apply(buf, sampleRate)
	return dropped
}

// NormalizePeak scales buf so its absolute peak sits at -1dBFS. It is a
// no-op on silence. Intended for float-only output per spec.md §4.8;
// fixed-bit-depth output already clips at full scale on encode and
// should not be normalized here.
func NormalizePeak(buf []float32) {
	peak := float32(0)
	for _, s := range buf {
		if a := abs32(s); a > peak {
			peak = a
		}
	}
	if peak <= 1e-9 {
		return
	}
	target := dsp.DBToLinear(-1.0)
	scale := target / peak
	for i := range buf {
		buf[i] *= scale
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
