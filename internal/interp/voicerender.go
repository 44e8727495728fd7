package interp

import (
	"fmt"

	"github.com/devaloop-labs/devalang-sub003/internal/effects"
	"github.com/devaloop-labs/devalang-sub003/internal/events"
	"github.com/devaloop-labs/devalang-sub003/internal/oscillator"
	"github.com/devaloop-labs/devalang-sub003/internal/sample"
	"github.com/devaloop-labs/devalang-sub003/internal/synth"
)

// VoiceRenderer renders one timeline event (a NoteOn/NoteOff pair
// collapsed to its NoteOn, or a Sample event) into a stereo-interleaved
// buffer, running the event's declared effect chain. It is the callback
// internal/render.Mix drives per event (C8 step 2a-2c).
func VoiceRenderer(cache *sample.Cache) func(ev events.Event, sampleRate uint32) ([]float32, error) {
	return func(ev events.Event, sampleRate uint32) ([]float32, error) {
		switch ev.Type {
		case events.NoteOn:
			return renderSynthVoice(ev, sampleRate)
		case events.Sample:
			durationFrames := oscillator.TimeToSamples(ev.Duration, sampleRate)
			stereo, dropped, err := sample.Render(cache, ev.SampleName, sampleRate, durationFrames, ev.Effects)
			for _, name := range dropped {
				fmt.Printf("interp: effect %q not available for sample playback, dropped\n", name)
			}
			return stereo, err
		case events.NoteOff, events.Chord:
			return nil, nil
		default:
			return nil, nil
		}
	}
}

func renderSynthVoice(ev events.Event, sampleRate uint32) ([]float32, error) {
	typeName := ev.SynthID
	if typeName == "" {
		typeName = "pluck"
	}
	voice, err := synth.NewVoice(typeName, ev.MIDI, sampleRate)
	if err != nil {
		return nil, err
	}

	durationFrames := oscillator.TimeToSamples(ev.Duration, sampleRate)
	mono := voice.Render(durationFrames, ev.Velocity)

	stereo := make([]float32, len(mono)*2)
	for i, s := range mono {
		stereo[i*2] = s
		stereo[i*2+1] = s
	}

	chain, dropped := effects.NewChain(effects.ContextSynth, ev.Effects)
	for _, name := range dropped {
		fmt.Printf("interp: effect %q not available for synth voice, dropped\n", name)
	}
	chain.Apply(stereo, sampleRate)
	return stereo, nil
}
