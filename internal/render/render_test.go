package render

import (
	"testing"

	"github.com/devaloop-labs/devalang-sub003/internal/events"
)

func TestMixAllocatesRoundedBufferSize(t *testing.T) {
	buf, err := Mix(nil, 1.0, 44100, func(events.Event, uint32) ([]float32, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 44100*2 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), 44100*2)
	}
}

func TestMixSumsVoiceAtStartOffset(t *testing.T) {
	timeline := []events.Event{{Type: events.NoteOn, Time: 0.0}}
	voice := []float32{0.5, 0.5, 0.25, 0.25}

	buf, err := Mix(timeline, 0.01, 44100, func(ev events.Event, sr uint32) ([]float32, error) {
		return voice, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0.5 || buf[1] != 0.5 {
		t.Fatalf("buf[0:2] = %v, %v, want 0.5, 0.5", buf[0], buf[1])
	}
}

func TestMixClampsOutOfBoundsTail(t *testing.T) {
	timeline := []events.Event{{Type: events.NoteOn, Time: 0.0}}
	voice := make([]float32, 20)
	for i := range voice {
		voice[i] = 1.0
	}

	buf, err := Mix(timeline, 0.0001, 44100, func(events.Event, uint32) ([]float32, error) {
		return voice, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// buffer only has a handful of frames; Mix must not panic or grow
	// the buffer past its allocated size.
	if len(buf)%2 != 0 {
		t.Fatalf("len(buf) = %d, want even", len(buf))
	}
}

func TestNormalizePeakNoOpOnSilence(t *testing.T) {
	buf := make([]float32, 10)
	NormalizePeak(buf)
	for _, v := range buf {
		if v != 0 {
			t.Fatalf("expected silence to remain silent, got %v", v)
		}
	}
}

func TestNormalizePeakScalesToTarget(t *testing.T) {
	buf := []float32{0.1, -0.5, 0.3}
	NormalizePeak(buf)

	peak := float32(0)
	for _, v := range buf {
		a := v
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	if peak <= 0 || peak > 1.0 {
		t.Fatalf("peak after normalize = %v, want in (0, 1]", peak)
	}
}
