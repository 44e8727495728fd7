// Package events implements the append-only event timeline (C5): the
// record of every NoteOn/NoteOff/Sample/Chord the interpreter emits
// while walking a program's statements, plus its JSON export format.
package events

import (
	"encoding/json"

	"github.com/devaloop-labs/devalang-sub003/internal/effects"
)

// Kind identifies the shape of an emitted timeline event.
type Kind int

const (
	NoteOn Kind = iota
	NoteOff
	Sample
	Chord
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	case Sample:
		return "sample"
	case Chord:
		return "chord"
	default:
		return "unknown"
	}
}

// Event is one entry on the render timeline: a note or sample trigger
// with its absolute start time and duration in seconds.
type Event struct {
	Type       Kind
	MIDI       int
	MIDINotes  []int // populated for Chord events
	Time       float32
	Duration   float32
	Velocity   float32
	SynthID    string
	SampleName string
	Effects    []effects.Decl
}

// Collector accumulates events in emission order. It never removes or
// reorders entries: ordering is the caller's (the interpreter's)
// responsibility, matching spec.md's event-ordering monotonicity
// property for a single cooperative walker.
type Collector struct {
	events []Event
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Append adds ev to the end of the timeline.
func (c *Collector) Append(ev Event) {
	c.events = append(c.events, ev)
}

// Events returns the accumulated timeline in emission order. The
// returned slice aliases the collector's internal storage and must not
// be mutated by callers.
func (c *Collector) Events() []Event {
	return c.events
}

// TotalDuration returns max(start+duration) across all events, or 0 if
// the timeline is empty.
func (c *Collector) TotalDuration() float32 {
	var total float32
	for _, ev := range c.events {
		if end := ev.Time + ev.Duration; end > total {
			total = end
		}
	}
	return total
}

// jsonEvent is the wire shape for event-stream export:
// {event_type, midi, time, velocity, synth_id}.
type jsonEvent struct {
	EventType string `json:"event_type"`
	MIDI      int    `json:"midi"`
	Time      float32 `json:"time"`
	Velocity  float32 `json:"velocity"`
	SynthID   string  `json:"synth_id"`
}

// MarshalJSON renders the timeline as a JSON array of
// {event_type, midi, time, velocity, synth_id} objects.
func (c *Collector) MarshalJSON() ([]byte, error) {
	out := make([]jsonEvent, len(c.events))
	for i, ev := range c.events {
		midi := ev.MIDI
		if ev.Type == Chord && len(ev.MIDINotes) > 0 {
			midi = ev.MIDINotes[0]
		}
		out[i] = jsonEvent{
			EventType: ev.Type.String(),
			MIDI:      midi,
			Time:      ev.Time,
			Velocity:  ev.Velocity,
			SynthID:   ev.SynthID,
		}
	}
	return json.Marshal(out)
}
