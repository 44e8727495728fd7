package synth

import "testing"

func TestPluckParams(t *testing.T) {
	p := DefaultParams()
	pluckType{}.ModifyParams(&p)

	if p.Attack >= 0.01 {
		t.Fatalf("pluck attack = %v, want < 0.01", p.Attack)
	}
	if p.Sustain != 0.0 {
		t.Fatalf("pluck sustain = %v, want 0", p.Sustain)
	}
}

func TestPadParams(t *testing.T) {
	p := DefaultParams()
	padType{}.ModifyParams(&p)

	if p.Attack <= 0.2 {
		t.Fatalf("pad attack = %v, want > 0.2", p.Attack)
	}
	if p.Sustain <= 0.8 {
		t.Fatalf("pad sustain = %v, want > 0.8", p.Sustain)
	}
	if p.Release <= 0.5 {
		t.Fatalf("pad release = %v, want > 0.5", p.Release)
	}
}

func TestBassParams(t *testing.T) {
	p := DefaultParams()
	bassType{}.ModifyParams(&p)

	if p.Attack >= 0.02 {
		t.Fatalf("bass attack = %v, want < 0.02", p.Attack)
	}
	if p.Sustain <= 0.7 {
		t.Fatalf("bass sustain = %v, want > 0.7", p.Sustain)
	}
	if p.Waveform != "square" {
		t.Fatalf("bass waveform = %v, want square", p.Waveform)
	}
}

func TestLeadParams(t *testing.T) {
	p := DefaultParams()
	leadType{}.ModifyParams(&p)

	if p.Attack >= 0.01 {
		t.Fatalf("lead attack = %v, want < 0.01", p.Attack)
	}
	if p.Waveform != "saw" {
		t.Fatalf("lead waveform = %v, want saw", p.Waveform)
	}
}

func TestArpParams(t *testing.T) {
	p := DefaultParams()
	arpType{}.ModifyParams(&p)

	if p.Attack >= 0.01 {
		t.Fatalf("arp attack = %v, want < 0.01", p.Attack)
	}
	if p.Release >= 0.05 {
		t.Fatalf("arp release = %v, want < 0.05", p.Release)
	}
}

func TestGetTypeUnknown(t *testing.T) {
	if _, ok := GetType("nonexistent"); ok {
		t.Fatalf("GetType(nonexistent) = ok, want not found")
	}
}

func TestGetTypeAllCatalogEntries(t *testing.T) {
	for _, name := range []string{"pluck", "arp", "pad", "bass", "lead", "keys"} {
		if _, ok := GetType(name); !ok {
			t.Fatalf("GetType(%q) not found", name)
		}
	}
}
