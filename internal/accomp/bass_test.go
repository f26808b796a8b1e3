package accomp

import (
	"testing"

	"github.com/ColonelBlimp/morsemelody/internal/seed"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

func testPlan(t *testing.T, windows int) []ChordWindow {
	t.Helper()
	plan := make([]ChordWindow, windows)
	for i := range plan {
		plan[i] = ChordWindow{
			Start:   float64(i) * 4,
			Root:    48,
			Quality: mustQuality(t, "major"),
		}
	}
	return plan
}

func TestBass_RootFifthFigure(t *testing.T) {
	g := testGenerator(t, "folk")
	events := g.Bass(testPlan(t, 1), seed.Stream(1))

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	root, fifth := events[0], events[1]
	if root.Pitch != 36 || root.Start != 0 || root.Duration != 2 {
		t.Errorf("root note = %+v, want pitch 36 at 0 for 2 beats", root)
	}
	if fifth.Pitch != 43 || fifth.Start != 2 || fifth.Duration != 2 {
		t.Errorf("fifth note = %+v, want pitch 43 at 2 for 2 beats", fifth)
	}
	for i, ev := range events {
		if ev.Role != timeline.Bass {
			t.Errorf("events[%d].Role = %v, want Bass", i, ev.Role)
		}
		if ev.Velocity != 82 { // 96 scaled by 0.85
			t.Errorf("events[%d].Velocity = %d, want 82", i, ev.Velocity)
		}
	}
}

func TestBass_WalkingApproachesNextRoot(t *testing.T) {
	g := testGenerator(t, "blues")
	plan := []ChordWindow{
		{Start: 0, Root: 48, Quality: mustQuality(t, "dominant7")},
		{Start: 4, Root: 53, Quality: mustQuality(t, "dominant7")},
	}

	events := g.Bass(plan, seed.Stream(2))
	if len(events) != 8 {
		t.Fatalf("len(events) = %d, want 8 quarters", len(events))
	}

	// First window walks root-third-fifth, then leans into the next root.
	want := []int{36, 40, 43}
	for i, pitch := range want {
		if events[i].Pitch != pitch {
			t.Errorf("events[%d].Pitch = %d, want %d", i, events[i].Pitch, pitch)
		}
	}
	if p := events[3].Pitch; p != 40 && p != 42 { // next root 41 approached from either side
		t.Errorf("approach pitch = %d, want 40 or 42", p)
	}

	// Final window has no next chord: it resolves back to its own root.
	if events[7].Pitch != 41 {
		t.Errorf("final quarter pitch = %d, want 41", events[7].Pitch)
	}
	for i, ev := range events {
		if ev.Duration != 1 {
			t.Errorf("events[%d].Duration = %v, want 1", i, ev.Duration)
		}
		if want := float64(i); ev.Start != want {
			t.Errorf("events[%d].Start = %v, want %v", i, ev.Start, want)
		}
	}
}

func TestBass_ArpeggioCyclesChordTones(t *testing.T) {
	g := testGenerator(t, "classical")
	events := g.Bass(testPlan(t, 1), seed.Stream(1))

	want := []int{36, 40, 43, 40, 36, 40, 43, 40}
	if len(events) != len(want) {
		t.Fatalf("len(events) = %d, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Pitch != want[i] {
			t.Errorf("events[%d].Pitch = %d, want %d", i, ev.Pitch, want[i])
		}
		if ev.Duration != 0.5 {
			t.Errorf("events[%d].Duration = %v, want 0.5", i, ev.Duration)
		}
		if start := 0.5 * float64(i); ev.Start != start {
			t.Errorf("events[%d].Start = %v, want %v", i, ev.Start, start)
		}
	}
}

func TestBass_PedalHoldsWholeWindow(t *testing.T) {
	g := testGenerator(t, "pop")
	events := g.Bass(testPlan(t, 1), seed.Stream(1))

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if ev := events[0]; ev.Pitch != 36 || ev.Start != 0 || ev.Duration != 4 {
		t.Errorf("pedal note = %+v, want pitch 36 held 4 beats", ev)
	}
}

func TestBass_ApproachTrimsFigureTail(t *testing.T) {
	g := testGenerator(t, "pop")
	plan := []ChordWindow{
		{Start: 0, Root: 48, Quality: mustQuality(t, "major")},
		{Start: 4, Root: 53, Quality: mustQuality(t, "major")},
	}

	sawApproach, sawPlain := false, false
	for s := int64(0); s < 200; s++ {
		events := g.Bass(plan, seed.Stream(s))

		var window0 []timeline.NoteEvent
		for _, ev := range events {
			if ev.Start < 4 {
				window0 = append(window0, ev)
			}
		}

		switch len(window0) {
		case 1:
			sawPlain = true
			if window0[0].Duration != 4 {
				t.Fatalf("seed %d: plain pedal duration = %v, want 4", s, window0[0].Duration)
			}
		case 2:
			sawApproach = true
			if window0[0].Duration != 3.5 {
				t.Fatalf("seed %d: trimmed pedal duration = %v, want 3.5", s, window0[0].Duration)
			}
			app := window0[1]
			if app.Start != 3.5 || app.Duration != 0.5 {
				t.Fatalf("seed %d: approach note = %+v, want start 3.5 duration 0.5", s, app)
			}
			if app.Pitch != 40 && app.Pitch != 42 { // next bass root is 41
				t.Fatalf("seed %d: approach pitch = %d, want 40 or 42", s, app.Pitch)
			}
		default:
			t.Fatalf("seed %d: window 0 note count = %d, want 1 or 2", s, len(window0))
		}
	}
	if !sawApproach || !sawPlain {
		t.Error("200 seeds never produced both the plain and the approach variants")
	}
}
