package audiofile

import "testing"

func TestDecodeMissingFile(t *testing.T) {
	if _, _, _, err := Decode("/nonexistent/path/does-not-exist.wav"); err == nil {
		t.Fatal("expected error decoding a missing file")
	}
}

func TestResampleNoOpWhenRatesMatch(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	out, err := Resample(in, 44100, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestWriteUnknownBitDepth(t *testing.T) {
	err := Write(t.TempDir()+"/out.wav", []float32{0, 0}, 44100, 1, BitDepth(99))
	if err == nil {
		t.Fatal("expected error for unknown bit depth")
	}
}
