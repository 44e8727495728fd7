package synth

import "testing"

func TestNewVoiceUnknownTypeFallsBackToDefaults(t *testing.T) {
	v, err := NewVoice("nope", 60, 44100)
	if err != nil {
		t.Fatalf("unexpected error for unknown synth type: %v", err)
	}
	want := DefaultParams()
	got := v.params
	if got.Waveform != want.Waveform || got.Attack != want.Attack ||
		got.Decay != want.Decay || got.Sustain != want.Sustain || got.Release != want.Release {
		t.Fatalf("params = %+v, want DefaultParams() unmodified %+v", got, want)
	}
	// must not panic even though no type-specific PostProcess exists
	if out := v.Render(100, 1.0); len(out) != 100 {
		t.Fatalf("len(out) = %d, want 100", len(out))
	}
}

func TestGetTypeLowercasesName(t *testing.T) {
	st, ok := GetType("Pluck")
	if !ok || st.Name() != "pluck" {
		t.Fatalf("GetType(\"Pluck\") = (%v, %v), want a matched pluck type", st, ok)
	}
}

func TestVoiceRenderLength(t *testing.T) {
	v, err := NewVoice("pluck", 60, 44100)
	if err != nil {
		t.Fatal(err)
	}
	out := v.Render(1000, 1.0)
	if len(out) != 1000 {
		t.Fatalf("len(out) = %d, want 1000", len(out))
	}
}

func TestVoiceRenderZeroDuration(t *testing.T) {
	v, _ := NewVoice("bass", 40, 44100)
	if out := v.Render(0, 1.0); out != nil {
		t.Fatalf("Render(0) = %v, want nil", out)
	}
}

func TestVoiceRenderVelocityScalesAmplitude(t *testing.T) {
	v, _ := NewVoice("lead", 69, 44100)
	full := v.Render(500, 1.0)

	v2, _ := NewVoice("lead", 69, 44100)
	half := v2.Render(500, 0.5)

	var maxFull, maxHalf float32
	for i := range full {
		if a := abs32(full[i]); a > maxFull {
			maxFull = a
		}
		if a := abs32(half[i]); a > maxHalf {
			maxHalf = a
		}
	}
	if maxFull == 0 {
		t.Fatal("expected nonzero signal")
	}
	if maxHalf >= maxFull {
		t.Fatalf("half-velocity peak %v should be less than full-velocity peak %v", maxHalf, maxFull)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
