package accomp

import (
	"math"
	"testing"

	"github.com/ColonelBlimp/morsemelody/internal/seed"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

func TestPercussion_NoneIsSilent(t *testing.T) {
	g := testGenerator(t, "classical")
	if events := g.Percussion(testPlan(t, 2), seed.Stream(1)); events != nil {
		t.Errorf("Percussion() = %d events, want none", len(events))
	}
}

func TestPercussion_BackbeatGroove(t *testing.T) {
	g := testGenerator(t, "folk")
	events := g.Percussion(testPlan(t, 1), seed.Stream(1))

	if len(events) != 8 {
		t.Fatalf("len(events) = %d, want 8", len(events))
	}

	starts := map[int][]float64{}
	for _, ev := range events {
		if ev.Role != timeline.Percussion {
			t.Fatalf("event role = %v, want Percussion", ev.Role)
		}
		if ev.Duration != hitBeats {
			t.Errorf("hit duration = %v, want %v", ev.Duration, hitBeats)
		}
		starts[ev.Pitch] = append(starts[ev.Pitch], ev.Start)
	}

	wantStarts := map[int][]float64{
		kickKey:      {0, 2},
		snareKey:     {1, 3},
		closedHatKey: {0, 1, 2, 3},
	}
	for key, want := range wantStarts {
		got := starts[key]
		if len(got) != len(want) {
			t.Fatalf("key %d hit count = %d, want %d", key, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("key %d hit %d at %v, want %v", key, i, got[i], want[i])
			}
		}
	}
}

func TestPercussion_FourFloorKicksEveryBeat(t *testing.T) {
	g := testGenerator(t, "pop")
	events := g.Percussion(testPlan(t, 1), seed.Stream(1))

	var kicks []float64
	for _, ev := range events {
		if ev.Pitch == kickKey {
			kicks = append(kicks, ev.Start)
		}
	}
	want := []float64{0, 1, 2, 3}
	if len(kicks) != len(want) {
		t.Fatalf("kick count = %d, want %d", len(kicks), len(want))
	}
	for i := range want {
		if kicks[i] != want[i] {
			t.Errorf("kick %d at %v, want %v", i, kicks[i], want[i])
		}
	}
}

func TestPercussion_SwingRidesInTriplets(t *testing.T) {
	g := testGenerator(t, "jazz")
	events := g.Percussion(testPlan(t, 1), seed.Stream(1))

	var rides []float64
	for _, ev := range events {
		if ev.Pitch == rideKey {
			rides = append(rides, ev.Start)
		}
	}
	want := []float64{0, 1, 1 + swingSkip, 2, 3, 3 + swingSkip}
	if len(rides) != len(want) {
		t.Fatalf("ride count = %d, want %d", len(rides), len(want))
	}
	for i := range want {
		if math.Abs(rides[i]-want[i]) > 1e-12 {
			t.Errorf("ride %d at %v, want %v", i, rides[i], want[i])
		}
	}
}

func TestPercussion_FillTakesFourthMeasureLastBeat(t *testing.T) {
	g := testGenerator(t, "folk")
	plan := testPlan(t, 4)

	sawFill, sawPlain := false, false
	for s := int64(0); s < 300; s++ {
		events := g.Percussion(plan, seed.Stream(s))

		// Hits on the last beat of the fourth measure.
		var tail []timeline.NoteEvent
		for _, ev := range events {
			if ev.Start >= 15 {
				tail = append(tail, ev)
			}
		}

		switch len(tail) {
		case 2: // the groove's snare and hat on beat 3
			sawPlain = true
		case 4:
			sawFill = true
			for k, ev := range tail {
				if ev.Pitch != snareKey {
					t.Fatalf("seed %d: fill hit %d pitch = %d, want snare", s, k, ev.Pitch)
				}
				if want := 15 + 0.25*float64(k); ev.Start != want {
					t.Fatalf("seed %d: fill hit %d at %v, want %v", s, k, ev.Start, want)
				}
			}
		default:
			t.Fatalf("seed %d: last-beat hit count = %d, want 2 or 4", s, len(tail))
		}
	}
	if !sawFill || !sawPlain {
		t.Error("300 seeds never produced both the plain groove and the fill")
	}
}

func TestPercussion_EarlierMeasuresNeverFill(t *testing.T) {
	g := testGenerator(t, "folk")
	plan := testPlan(t, 3)

	for s := int64(0); s < 50; s++ {
		events := g.Percussion(plan, seed.Stream(s))
		if len(events) != 3*8 {
			t.Fatalf("seed %d: event count = %d, want 24", s, len(events))
		}
	}
}
