package dsp

import "testing"

func TestDelayLineReadWriteRoundTrip(t *testing.T) {
	d := NewDelayLine(4)
	for i, v := range []float32{1, 2, 3, 4} {
		d.Write(v)
		_ = i
	}
	if got := d.Read(1); got != 4 {
		t.Fatalf("Read(1) = %v, want 4", got)
	}
	if got := d.Read(4); got != 1 {
		t.Fatalf("Read(4) = %v, want 1", got)
	}
}

func TestDelayLineReset(t *testing.T) {
	d := NewDelayLine(4)
	d.Write(5)
	d.Reset()
	if got := d.Read(0); got != 0 {
		t.Fatalf("Read(0) after reset = %v, want 0", got)
	}
}

func TestOnePoleTracksTargetAndResets(t *testing.T) {
	p := NewOnePole(0.5)
	if got := p.Process(1.0); got != 0.5 {
		t.Fatalf("Process(1.0) = %v, want 0.5", got)
	}
	if got := p.Value(); got != 0.5 {
		t.Fatalf("Value() = %v, want 0.5", got)
	}
	p.Reset()
	if got := p.Value(); got != 0 {
		t.Fatalf("Value() after reset = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("Clamp(5,0,1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Fatalf("Clamp(-5,0,1) = %v, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Fatalf("Clamp(0.5,0,1) = %v, want 0.5", got)
	}
}

func TestClampF64(t *testing.T) {
	if got := ClampF64(5, 0, 1); got != 1 {
		t.Fatalf("ClampF64(5,0,1) = %v, want 1", got)
	}
	if got := ClampF64(-5, 0, 1); got != 0 {
		t.Fatalf("ClampF64(-5,0,1) = %v, want 0", got)
	}
}
