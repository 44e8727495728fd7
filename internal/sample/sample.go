// Package sample implements C3 sample playback: a process-wide decoded
// PCM cache guarded by an RWMutex (per spec.md §5's concurrency note),
// and the resample/fit/effect-chain path a Load/Trigger statement walks
// to produce a voice's output buffer.
package sample

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/devaloop-labs/devalang-sub003/internal/audiofile"
	"github.com/devaloop-labs/devalang-sub003/internal/effects"
)

// PCM holds decoded, cached sample data for one file.
type PCM struct {
	Interleaved []float32
	SampleRate  int
	Channels    int
}

// Cache decodes WAV files on first access and serves cached PCM on
// subsequent lookups. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*PCM
}

// NewCache returns an empty sample cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*PCM)}
}

// Load returns the decoded PCM for path, decoding and caching it on
// first access. Entries are keyed by the absolute form of path.
func (c *Cache) Load(path string) (*PCM, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[path]; ok {
		return entry, nil
	}

	pcm, sr, ch, err := audiofile.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("sample: load %s: %w", path, err)
	}
	entry = &PCM{Interleaved: pcm, SampleRate: sr, Channels: ch}
	c.entries[path] = entry
	return entry, nil
}

// Mono returns a mono (channel-averaged) view of p at its native rate.
func (p *PCM) Mono() []float32 {
	if p.Channels <= 1 {
		return p.Interleaved
	}
	frames := len(p.Interleaved) / p.Channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < p.Channels; c++ {
			sum += p.Interleaved[i*p.Channels+c]
		}
		out[i] = sum / float32(p.Channels)
	}
	return out
}

// Stereo returns an interleaved stereo view of p, duplicating a mono
// source or channel-averaging down from a multichannel source.
func (p *PCM) Stereo() []float32 {
	if p.Channels == 2 {
		return p.Interleaved
	}
	mono := p.Mono()
	out := make([]float32, len(mono)*2)
	for i, v := range mono {
		out[i*2] = v
		out[i*2+1] = v
	}
	return out
}

// Fit resamples stereo (interleaved L/R) to targetSampleRate, then
// truncates or loops it to exactly targetFrames stereo frames.
func Fit(stereo []float32, sourceRate, targetSampleRate, targetFrames int) ([]float32, error) {
	left, right := deinterleave(stereo)

	leftF32, err := audiofile.Resample(left, sourceRate, targetSampleRate)
	if err != nil {
		return nil, err
	}
	rightF32, err := audiofile.Resample(right, sourceRate, targetSampleRate)
	if err != nil {
		return nil, err
	}

	out := make([]float32, targetFrames*2)
	srcFrames := len(leftF32)
	if srcFrames == 0 {
		return out, nil
	}
	for i := 0; i < targetFrames; i++ {
		srcIdx := i % srcFrames
		out[i*2] = leftF32[srcIdx]
		out[i*2+1] = rightF32[srcIdx]
	}
	return out, nil
}

func deinterleave(stereo []float32) ([]float32, []float32) {
	frames := len(stereo) / 2
	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := 0; i < frames; i++ {
		left[i] = stereo[i*2]
		right[i] = stereo[i*2+1]
	}
	return left, right
}

// Render loads path via cache, fits it to durationFrames at
// sampleRate, and applies the effect chain described by decls in
// trigger context.
func Render(cache *Cache, path string, sampleRate uint32, durationFrames int, decls []effects.Decl) ([]float32, []string, error) {
	pcm, err := cache.Load(path)
	if err != nil {
		return nil, nil, err
	}

	fitted, err := Fit(pcm.Stereo(), pcm.SampleRate, int(sampleRate), durationFrames)
	if err != nil {
		return nil, nil, err
	}

	chain, dropped := effects.NewChain(effects.ContextTrigger, decls)
	chain.Apply(fitted, sampleRate)
	return fitted, dropped, nil
}
