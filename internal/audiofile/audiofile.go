// Package audiofile implements sample decoding (C3's decode_audio) and
// the bit-depth-aware PCM writer (C9). Adapted from
// internal/fitcommon/wav.go's ReadWAVMono/WriteMonoWAV/
// WriteStereoInterleavedWAV, generalized from the teacher's fixed
// mono/16-bit pair to decode_audio's (pcm,sr,channels) contract and the
// four output bit depths spec.md's output stage names.
package audiofile

import (
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/devaloop-labs/devalang-sub003/internal/dsp"
)

// Decode reads a WAV file and returns its interleaved PCM samples
// normalized to [-1, 1], its sample rate, and its channel count.
func Decode(path string) (pcm []float32, sampleRate int, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("audiofile: invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, 0, fmt.Errorf("audiofile: invalid wav buffer: %s", path)
	}

	floatBuf := buf.AsFloatBuffer()
	pcm = make([]float32, len(floatBuf.Data))
	for i, v := range floatBuf.Data {
		pcm[i] = float32(v)
	}
	return pcm, buf.Format.SampleRate, buf.Format.NumChannels, nil
}

// Resample converts one channel of PCM from fromRate to toRate. The input
// is treated as a single continuous signal; interleaved channels are not
// separated.
func Resample(pcm []float32, fromRate, toRate int) ([]float32, error) {
	if fromRate == toRate {
		return pcm, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	in64 := make([]float64, len(pcm))
	for i, v := range pcm {
		in64[i] = float64(v)
	}
	out64 := r.Process(in64)
	out := make([]float32, len(out64))
	for i, v := range out64 {
		out[i] = float32(v)
	}
	return out, nil
}

// BitDepth selects the output sample's on-disk integer/float encoding.
type BitDepth int

const (
	Float32 BitDepth = iota
	Bits24
	Bits16
	Bits8
)

// Write encodes interleaved float32 samples (in [-1, 1]) to a WAV file
// at the given bit depth, following spec.md's per-depth scale factors:
// Float32 passes through; 24-bit scales by 8388607; 16-bit by 32767
// (INT16_MAX); 8-bit by 127 (INT8_MAX).
func Write(path string, interleaved []float32, sampleRate, numChannels int, depth BitDepth) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch depth {
	case Float32:
		enc := wav.NewEncoder(f, sampleRate, 32, numChannels, 3)
		defer enc.Close()
		buf := &audio.Float32Buffer{
			Format:         &audio.Format{SampleRate: sampleRate, NumChannels: numChannels},
			Data:           interleaved,
			SourceBitDepth: 32,
		}
		return enc.Write(buf)

	case Bits24:
		return writeIntWAV(f, interleaved, sampleRate, numChannels, 24, 8388607.0)
	case Bits16:
		return writeIntWAV(f, interleaved, sampleRate, numChannels, 16, 32767.0)
	case Bits8:
		return writeIntWAV(f, interleaved, sampleRate, numChannels, 8, 127.0)
	default:
		return fmt.Errorf("audiofile: unknown bit depth %d", depth)
	}
}

func writeIntWAV(f *os.File, interleaved []float32, sampleRate, numChannels, bitDepth int, scale float64) error {
	enc := wav.NewEncoder(f, sampleRate, bitDepth, numChannels, 1)
	defer enc.Close()

	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		x := dsp.ClampF64(float64(v), -1.0, 1.0)
		data[i] = int(x * scale)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: numChannels},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	return enc.Write(buf)
}
