// Command devalang-render is a standalone WAV-rendering CLI over the
// audio core. The lexer/parser/preprocessor are out of scope for this
// module (spec.md §1): this binary accepts a resolved statement list
// loaded from a small JSON program file rather than Devalang source
// text, mirroring cmd/piano-render/main.go's flag-driven render-to-WAV
// shape.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devaloop-labs/devalang-sub003/internal/audiofile"
	"github.com/devaloop-labs/devalang-sub003/internal/config"
	"github.com/devaloop-labs/devalang-sub003/internal/core"
	"github.com/devaloop-labs/devalang-sub003/internal/effects"
	"github.com/devaloop-labs/devalang-sub003/internal/interp"
	"github.com/devaloop-labs/devalang-sub003/internal/render"
	"github.com/devaloop-labs/devalang-sub003/internal/scope"
)

func main() {
	programPath := flag.String("program", "", "Path to a resolved-statement-list JSON program (demo sequence used if empty)")
	configPath := flag.String("config", "", "Render-global config JSON path (defaults used if empty)")
	sampleRate := flag.Int("sample-rate", 0, "Override config sample rate in Hz")
	bitDepth := flag.String("bit-depth", "", "Override config bit depth: float32, 24, 16, or 8")
	tempo := flag.Float64("tempo", 0, "Override config default tempo (BPM)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	eventsOut := flag.String("events-out", "", "Optional path to write the rendered event timeline as JSON")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadJSON(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config %q: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	override := config.File{}
	if *sampleRate > 0 {
		override.SampleRate = sampleRate
	}
	if *bitDepth != "" {
		override.BitDepth = bitDepth
	}
	if *tempo > 0 {
		t := float32(*tempo)
		override.DefaultTempo = &t
	}
	if err := config.Apply(&cfg, &override); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying CLI overrides: %v\n", err)
		os.Exit(1)
	}

	stmts, err := loadProgram(*programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program %q: %v\n", *programPath, err)
		os.Exit(1)
	}

	fmt.Printf("Rendering %d statement(s) at %d Hz, tempo %.1f (output: %s)...\n",
		len(stmts), cfg.SampleRate, cfg.DefaultTempo, *output)

	ip := interp.New(scope.New(), cfg.DefaultTempo, uint32(cfg.SampleRate))
	if err := ip.Run(stmts); err != nil {
		fmt.Fprintf(os.Stderr, "Error interpreting program: %v\n", err)
		os.Exit(1)
	}

	timeline := ip.Collector.Events()
	totalDuration := ip.Collector.TotalDuration()

	voiceRenderer := interp.VoiceRenderer(ip.Cache)
	mixed, err := render.Mix(timeline, totalDuration, uint32(cfg.SampleRate), voiceRenderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering timeline: %v\n", err)
		os.Exit(1)
	}

	if len(cfg.MasterChain) > 0 {
		decls := make([]effects.Decl, len(cfg.MasterChain))
		for i, d := range cfg.MasterChain {
			params := make(map[string]any, len(d.Params))
			for k, v := range d.Params {
				params[k] = v
			}
			decls[i] = effects.Decl{Name: d.Name, Params: params}
		}
		dropped := render.ApplyMasterChain(mixed, uint32(cfg.SampleRate), decls)
		for _, name := range dropped {
			fmt.Printf("Warning: master effect %q is not available, dropped\n", name)
		}
	}

	if cfg.Normalize && cfg.BitDepth == audiofile.Float32 {
		render.NormalizePeak(mixed)
	}

	if dir := filepath.Dir(*output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory %q: %v\n", dir, err)
			os.Exit(1)
		}
	}

	if err := audiofile.Write(*output, mixed, cfg.SampleRate, 2, cfg.BitDepth); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}

	if *eventsOut != "" {
		b, err := timelineJSON(ip)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling event timeline: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*eventsOut, b, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing event timeline %q: %v\n", *eventsOut, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Successfully wrote %s (%.3fs, %d events)\n", *output, totalDuration, len(timeline))
}

func timelineJSON(ip *interp.Interpreter) ([]byte, error) {
	return json.Marshal(ip.Collector)
}

// loadProgram reads a resolved statement list from a JSON file. With no
// path given it falls back to a small built-in demo sequence: a four-beat
// loop triggering a bound "kick" sample, at the default tempo.
func loadProgram(path string) ([]core.Statement, error) {
	if path == "" {
		return demoProgram(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stmts []core.Statement
	if err := json.Unmarshal(b, &stmts); err != nil {
		return nil, err
	}
	return stmts, nil
}

func demoProgram() []core.Statement {
	return []core.Statement{
		{
			Kind: core.StmtLet,
			Name: "kick",
			Value: core.String("samples/kick.wav"),
		},
		{
			Kind:  core.StmtLoop,
			Count: 4,
			Body: []core.Statement{
				{Kind: core.StmtTrigger, Entity: "kick", Duration: core.BeatsDuration(1)},
			},
		},
	}
}
