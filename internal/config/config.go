// Package config implements the render-global configuration file: output
// sample rate/bit depth/directory, default tempo, and the master effect
// chain. Adapted from preset/json.go's pointer-optional-field File/Apply
// idiom (each field nil-checked and range-validated before landing on
// the destination struct) for devalang's render-wide settings instead of
// the teacher's per-note piano preset.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/devaloop-labs/devalang-sub003/internal/audiofile"
)

// Render holds the resolved render-global configuration.
type Render struct {
	SampleRate   int
	BitDepth     audiofile.BitDepth
	OutputDir    string
	DefaultTempo float32
	Normalize    bool
	MasterChain  []EffectDecl
}

// EffectDecl mirrors effects.Decl in a JSON-friendly shape. Params are
// numeric only (map[string]float32): bool and string effect params, such
// as monoizer's `enabled` or tremolo's `sync`, cannot be set from a
// config file and keep their defaults.
type EffectDecl struct {
	Name   string             `json:"name"`
	Params map[string]float32 `json:"params"`
}

// Default returns the render-global defaults used when no config file
// is supplied.
func Default() Render {
	return Render{
		SampleRate:   44100,
		BitDepth:     audiofile.Bits16,
		OutputDir:    "out",
		DefaultTempo: 120.0,
		Normalize:    false,
		MasterChain:  nil,
	}
}

// File is the JSON schema for a render-global config file; every field
// is optional and overrides the corresponding Default() value.
type File struct {
	SampleRate   *int         `json:"sample_rate"`
	BitDepth     *string      `json:"bit_depth"`
	OutputDir    *string      `json:"output_dir"`
	DefaultTempo *float32     `json:"default_tempo"`
	Normalize    *bool        `json:"normalize"`
	MasterChain  []EffectDecl `json:"master_chain"`
}

// LoadJSON reads a render-global config file and applies it on top of
// Default().
func LoadJSON(path string) (Render, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Render{}, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return Render{}, err
	}

	r := Default()
	if err := Apply(&r, &f); err != nil {
		return Render{}, err
	}
	return r, nil
}

// Apply validates and merges f onto dst.
func Apply(dst *Render, f *File) error {
	if dst == nil {
		return fmt.Errorf("config: nil destination")
	}
	if f == nil {
		return nil
	}

	if f.SampleRate != nil {
		if *f.SampleRate < 8000 || *f.SampleRate > 192000 {
			return fmt.Errorf("config: sample_rate must be in [8000, 192000]")
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.BitDepth != nil {
		depth, err := parseBitDepth(*f.BitDepth)
		if err != nil {
			return err
		}
		dst.BitDepth = depth
	}
	if f.OutputDir != nil {
		if *f.OutputDir == "" {
			return fmt.Errorf("config: output_dir must not be empty")
		}
		dst.OutputDir = *f.OutputDir
	}
	if f.DefaultTempo != nil {
		if *f.DefaultTempo <= 0 {
			return fmt.Errorf("config: default_tempo must be > 0")
		}
		dst.DefaultTempo = *f.DefaultTempo
	}
	if f.Normalize != nil {
		dst.Normalize = *f.Normalize
	}
	if f.MasterChain != nil {
		dst.MasterChain = f.MasterChain
	}
	return nil
}

func parseBitDepth(s string) (audiofile.BitDepth, error) {
	switch s {
	case "float32":
		return audiofile.Float32, nil
	case "24":
		return audiofile.Bits24, nil
	case "16":
		return audiofile.Bits16, nil
	case "8":
		return audiofile.Bits8, nil
	default:
		return 0, fmt.Errorf("config: unknown bit_depth %q", s)
	}
}
