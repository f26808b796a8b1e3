// internal/timeline/smf.go
package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// ticksPerQuarter is the export resolution. One dot unit (a quarter
	// of a beat) is 240 ticks, so all nominal timings land on exact ticks.
	ticksPerQuarter = 960

	// DefaultTempo is assumed for files that carry no tempo event
	DefaultTempo = 120.0

	// sequenceName labels track 0 of exported files
	sequenceName = "morsemelody"
)

var (
	// ErrInvalidTempo indicates the timeline has no usable tempo
	ErrInvalidTempo = errors.New("timeline tempo must be positive")
	// ErrNoEvents indicates there is nothing to export
	ErrNoEvents = errors.New("timeline has no events")
	// ErrNotMetric indicates the MIDI file uses SMPTE time, which has no
	// beat grid to decode against
	ErrNotMetric = errors.New("MIDI file does not use metric time format")
)

// roleTrack fixes the MIDI identity of each role: track name, channel,
// and General MIDI program (melody piano, harmony strings, bass acoustic
// bass; percussion rides the dedicated drum channel).
type roleTrack struct {
	role       TrackRole
	channel    uint8
	program    uint8
	hasProgram bool
}

var roleTracks = []roleTrack{
	{role: Melody, channel: 0, program: 0, hasProgram: true},
	{role: Harmony, channel: 1, program: 48, hasProgram: true},
	{role: Bass, channel: 2, program: 32, hasProgram: true},
	{role: Percussion, channel: 9, hasProgram: false},
}

// Export converts a timeline to a Standard MIDI File: track 0 carries
// tempo and meter, then one track per populated role.
func Export(t *Timeline) (*smf.SMF, error) {
	if t.Tempo <= 0 {
		return nil, ErrInvalidTempo
	}
	if len(t.Events) == 0 {
		return nil, ErrNoEvents
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track0 smf.Track
	track0.Add(0, smf.MetaTrackSequenceName(sequenceName))
	track0.Add(0, smf.MetaMeter(4, 4))
	track0.Add(0, smf.MetaTempo(t.Tempo))
	track0.Close(0)
	if err := sm.Add(track0); err != nil {
		return nil, fmt.Errorf("add tempo track: %w", err)
	}

	for _, rt := range roleTracks {
		events := t.TrackEvents(rt.role)
		if len(events) == 0 {
			continue
		}
		track := buildTrack(rt, events)
		if err := sm.Add(track); err != nil {
			return nil, fmt.Errorf("add %s track: %w", rt.role, err)
		}
	}

	return sm, nil
}

// WriteFile exports the timeline and writes it to path.
func WriteFile(t *Timeline, path string) error {
	sm, err := Export(t)
	if err != nil {
		return err
	}
	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// tickEvent is a note-on or note-off pinned to an absolute tick.
type tickEvent struct {
	tick uint32
	off  bool
	key  uint8
	vel  uint8
}

func buildTrack(rt roleTrack, events []NoteEvent) smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(rt.role.String()))
	if rt.hasProgram {
		track.Add(0, midi.ProgramChange(rt.channel, rt.program))
	}

	ticked := make([]tickEvent, 0, len(events)*2)
	for _, e := range events {
		on := beatsToTicks(e.Start)
		off := beatsToTicks(e.End())
		if off <= on {
			off = on + 1 // a degenerate duration still needs an off event
		}
		ticked = append(ticked,
			tickEvent{tick: on, key: uint8(e.Pitch), vel: uint8(ClampVelocity(e.Velocity))},
			tickEvent{tick: off, off: true, key: uint8(e.Pitch)},
		)
	}
	// Offs sort before ons at the same tick so back-to-back chords do not
	// leave stuck notes.
	sort.SliceStable(ticked, func(i, j int) bool {
		if ticked[i].tick != ticked[j].tick {
			return ticked[i].tick < ticked[j].tick
		}
		return ticked[i].off && !ticked[j].off
	})

	last := uint32(0)
	for _, te := range ticked {
		delta := te.tick - last
		last = te.tick
		if te.off {
			track.Add(delta, midi.NoteOff(rt.channel, te.key))
		} else {
			track.Add(delta, midi.NoteOn(rt.channel, te.key, te.vel))
		}
	}
	track.Close(0)
	return track
}

func beatsToTicks(beats float64) uint32 {
	if beats < 0 {
		return 0
	}
	return uint32(math.Round(beats * ticksPerQuarter))
}

// Import converts a Standard MIDI File back into a timeline. Roles are
// recovered from the track names Export writes; for foreign files the
// first note-bearing track becomes the melody and channel 10 is always
// percussion.
func Import(sm *smf.SMF) (*Timeline, error) {
	metric, ok := sm.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrNotMetric
	}
	resolution := float64(metric.Ticks4th())

	tempo := DefaultTempo
	if changes := sm.TempoChanges(); len(changes) > 0 && changes[0].BPM > 0 {
		tempo = changes[0].BPM
	}

	t := &Timeline{Tempo: tempo}
	sawMelody := false
	for _, track := range sm.Tracks {
		events, name := collectTrackNotes(track, resolution)
		if len(events) == 0 {
			continue
		}
		role, named := roleForName(name)
		if !named {
			if events[0].Role == Percussion {
				role = Percussion
			} else if !sawMelody {
				role = Melody
			} else {
				role = Harmony
			}
		}
		if role == Melody {
			sawMelody = true
		}
		for i := range events {
			if events[i].Role == Percussion && role != Percussion {
				continue // channel 10 notes stay percussion
			}
			events[i].Role = role
		}
		t.Events = append(t.Events, events...)
	}

	t.Sort()
	return t, nil
}

// ReadFile reads an SMF file from path and imports it.
func ReadFile(path string) (*Timeline, error) {
	sm, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Import(sm)
}

// openNote tracks a sounding note awaiting its off event.
type openNote struct {
	tick uint32
	vel  uint8
}

// collectTrackNotes pairs note-on/note-off events (a zero-velocity
// note-on counts as an off) into NoteEvents with beat times. Notes left
// open at the end of the track are dropped.
func collectTrackNotes(track smf.Track, resolution float64) ([]NoteEvent, string) {
	var (
		events []NoteEvent
		name   string
		abs    uint32
	)
	open := make(map[[2]uint8][]openNote)

	for _, ev := range track {
		abs += ev.Delta
		msg := ev.Message

		var text string
		if msg.GetMetaTrackName(&text) && name == "" {
			name = text
			continue
		}

		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			open[[2]uint8{ch, key}] = append(open[[2]uint8{ch, key}], openNote{tick: abs, vel: vel})
		case msg.GetNoteEnd(&ch, &key):
			id := [2]uint8{ch, key}
			pending := open[id]
			if len(pending) == 0 {
				continue // off without on; ignore
			}
			on := pending[0]
			open[id] = pending[1:]
			if abs <= on.tick {
				continue // zero-length note; nothing to decode from it
			}
			role := Melody
			if ch == 9 {
				role = Percussion
			}
			events = append(events, NoteEvent{
				Pitch:    int(key),
				Start:    float64(on.tick) / resolution,
				Duration: float64(abs-on.tick) / resolution,
				Velocity: int(on.vel),
				Role:     role,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Start < events[j].Start })
	return events, name
}

func roleForName(name string) (TrackRole, bool) {
	for _, role := range Roles() {
		if name == role.String() {
			return role, true
		}
	}
	return Melody, false
}
