package sample

import "testing"

func TestPCMMonoAveragesChannels(t *testing.T) {
	p := &PCM{Interleaved: []float32{1.0, -1.0, 0.5, 0.5}, Channels: 2}
	mono := p.Mono()
	if len(mono) != 2 {
		t.Fatalf("len(mono) = %d, want 2", len(mono))
	}
	if mono[0] != 0.0 {
		t.Fatalf("mono[0] = %v, want 0", mono[0])
	}
	if mono[1] != 0.5 {
		t.Fatalf("mono[1] = %v, want 0.5", mono[1])
	}
}

func TestPCMMonoPassthroughWhenAlreadyMono(t *testing.T) {
	p := &PCM{Interleaved: []float32{0.1, 0.2, 0.3}, Channels: 1}
	mono := p.Mono()
	if len(mono) != 3 || mono[1] != 0.2 {
		t.Fatalf("Mono() passthrough failed: %v", mono)
	}
}

func TestPCMStereoDuplicatesMono(t *testing.T) {
	p := &PCM{Interleaved: []float32{0.5, 0.25}, Channels: 1}
	st := p.Stereo()
	want := []float32{0.5, 0.5, 0.25, 0.25}
	if len(st) != len(want) {
		t.Fatalf("len(stereo) = %d, want %d", len(st), len(want))
	}
	for i := range want {
		if st[i] != want[i] {
			t.Fatalf("stereo[%d] = %v, want %v", i, st[i], want[i])
		}
	}
}

func TestFitLoopsShortSourceToTargetLength(t *testing.T) {
	stereo := []float32{1, 1, 2, 2}
	out, err := Fit(stereo, 44100, 44100, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 8 {
		t.Fatalf("len(out) = %d, want 8", len(out))
	}
}

func TestCacheLoadMissingFileErrors(t *testing.T) {
	c := NewCache()
	if _, err := c.Load("/nonexistent/file.wav"); err == nil {
		t.Fatal("expected error loading missing file")
	}
}
