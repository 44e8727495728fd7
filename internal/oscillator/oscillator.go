// Package oscillator implements the sample-generation primitives shared
// by every synth voice: waveform sampling, ADSR envelope evaluation, and
// MIDI-to-frequency conversion. Ported from
// original_source/.../engine/audio/synth.rs; MIDIToFrequency follows
// piano/utils.go's midiNoteToFreq, trading math.Pow for algo-approx's
// FastExp the way the teacher does for per-voice frequency lookups.
package oscillator

import (
	"math"

	approx "github.com/cwbudde/algo-approx"
)

// Waveform names recognized by Sample. Anything else renders silence,
// matching the original's "unknown waveform returns silence" behavior.
const (
	Sine     = "sine"
	Square   = "square"
	Saw      = "saw"
	Triangle = "triangle"
)

// Sample returns a single oscillator sample for the given waveform,
// frequency, and time offset in seconds.
func Sample(waveform string, frequencyHz, timeS float32) float32 {
	phase := 2.0 * math.Pi * float64(frequencyHz) * float64(timeS)

	switch waveform {
	case Sine:
		return float32(math.Sin(phase))

	case Square:
		if math.Sin(phase) >= 0.0 {
			return 1.0
		}
		return -1.0

	case Saw:
		ft := float64(frequencyHz) * float64(timeS)
		return float32(2.0 * (ft - math.Floor(ft+0.5)))

	case Triangle:
		ft := float64(frequencyHz) * float64(timeS)
		frac := ft - math.Floor(ft)
		return float32(math.Abs(2.0*(2.0*frac-1.0))*2.0 - 1.0)

	default:
		return 0.0
	}
}

// ADSREnvelope returns the amplitude multiplier (0..1) at sampleIndex
// given attack/decay/sustain/release phase lengths in samples.
func ADSREnvelope(sampleIndex, attackSamples, decaySamples, sustainSamples, releaseSamples int, sustainLevel float32) float32 {
	attackEnd := attackSamples
	decayEnd := attackSamples + decaySamples
	sustainEnd := attackSamples + decaySamples + sustainSamples
	releaseEnd := attackSamples + decaySamples + sustainSamples + releaseSamples

	switch {
	case sampleIndex < attackEnd && attackSamples > 0:
		return float32(sampleIndex) / float32(maxInt(attackSamples, 1))

	case sampleIndex < decayEnd && decaySamples > 0:
		progress := float32(sampleIndex-attackEnd) / float32(maxInt(decaySamples, 1))
		return 1.0 - (1.0-sustainLevel)*progress

	case sampleIndex < sustainEnd:
		return sustainLevel

	case sampleIndex < releaseEnd && releaseSamples > 0:
		progress := float32(sampleIndex-sustainEnd) / float32(maxInt(releaseSamples, 1))
		release := sustainLevel * (1.0 - progress)
		if release < 0 {
			release = 0
		}
		return release

	default:
		return 0.0
	}
}

// TimeToSamples converts a duration in seconds to a sample count,
// rounding to the nearest sample.
func TimeToSamples(timeS float32, sampleRate uint32) int {
	return int(math.Round(float64(timeS) * float64(sampleRate)))
}

// MIDIToFrequency converts a MIDI note number to frequency in Hz using
// equal temperament tuned to A4=440Hz.
func MIDIToFrequency(midiNote int) float32 {
	const a4Freq = 440.0
	const a4Note = 69
	exponent := float32(midiNote-a4Note) / 12.0
	return a4Freq * pow2Approx(exponent)
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
