package accomp

import (
	"testing"

	"github.com/ColonelBlimp/morsemelody/internal/seed"
	"github.com/ColonelBlimp/morsemelody/internal/theory"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

func mustStyle(t *testing.T, name string) theory.StyleProfile {
	t.Helper()
	style, err := theory.StyleByName(name)
	if err != nil {
		t.Fatalf("StyleByName(%q) error = %v", name, err)
	}
	return style
}

func mustProgression(t *testing.T, name string) theory.Progression {
	t.Helper()
	prog, err := theory.ProgressionByName(name)
	if err != nil {
		t.Fatalf("ProgressionByName(%q) error = %v", name, err)
	}
	return prog
}

func mustQuality(t *testing.T, name string) theory.Quality {
	t.Helper()
	q, err := theory.QualityByName(name)
	if err != nil {
		t.Fatalf("QualityByName(%q) error = %v", name, err)
	}
	return q
}

func melodyNote(pitch int, start, duration float64) timeline.NoteEvent {
	return timeline.NoteEvent{
		Pitch:    pitch,
		Start:    start,
		Duration: duration,
		Velocity: 96,
		Role:     timeline.Melody,
	}
}

func testGenerator(t *testing.T, styleName string) *Generator {
	t.Helper()
	return NewGenerator(mustStyle(t, styleName), mustProgression(t, "folk"), 60, 96)
}

func TestPlan_WindowCount(t *testing.T) {
	g := testGenerator(t, "folk")

	melody := []timeline.NoteEvent{
		melodyNote(60, 0, 1),
		melodyNote(62, 8, 1.5), // ends at 9.5: three 4-beat windows
	}
	plan := g.Plan(melody)
	if len(plan) != 3 {
		t.Fatalf("len(plan) = %d, want 3", len(plan))
	}
	for i, w := range plan {
		if want := float64(i) * 4; w.Start != want {
			t.Errorf("plan[%d].Start = %v, want %v", i, w.Start, want)
		}
	}
}

func TestPlan_EmptyMelody(t *testing.T) {
	g := testGenerator(t, "folk")
	if plan := g.Plan(nil); plan != nil {
		t.Errorf("Plan(nil) = %v, want nil", plan)
	}
}

func TestPlan_RootsFollowProgression(t *testing.T) {
	g := testGenerator(t, "folk")

	// Five windows: the four-step folk progression cycles back to I.
	melody := []timeline.NoteEvent{melodyNote(60, 0, 17)}
	plan := g.Plan(melody)
	if len(plan) != 5 {
		t.Fatalf("len(plan) = %d, want 5", len(plan))
	}

	want := []int{48, 53, 55, 48, 48} // key 60, offsets 0 5 7 0, octave down
	for i, w := range plan {
		if w.Root != want[i] {
			t.Errorf("plan[%d].Root = %d, want %d", i, w.Root, want[i])
		}
	}
}

func TestWindowQuality_MajorityMatch(t *testing.T) {
	tests := []struct {
		name   string
		style  string
		melody []timeline.NoteEvent
		want   string
	}{
		{
			name:  "major triad tones pick major",
			style: "folk",
			melody: []timeline.NoteEvent{
				melodyNote(60, 0, 1), melodyNote(64, 1, 1), melodyNote(67, 2, 1),
			},
			want: "major",
		},
		{
			name:  "flat third picks minor",
			style: "folk",
			melody: []timeline.NoteEvent{
				melodyNote(60, 0, 1), melodyNote(63, 1, 1), melodyNote(67, 2, 1),
			},
			want: "minor",
		},
		{
			name:   "tie falls to the home quality",
			style:  "folk",
			melody: []timeline.NoteEvent{melodyNote(60, 0, 1)},
			want:   "major",
		},
		{
			name:   "blues home quality wins ties",
			style:  "blues",
			melody: []timeline.NoteEvent{melodyNote(60, 0, 1)},
			want:   "dominant7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGenerator(t, tt.style)
			got := g.windowQuality(48, tt.melody, 0, 4)
			if got.Name != tt.want {
				t.Errorf("windowQuality() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestWindowQuality_SilentWindowUsesHome(t *testing.T) {
	g := testGenerator(t, "folk")
	melody := []timeline.NoteEvent{melodyNote(60, 0, 1)}
	if got := g.windowQuality(48, melody, 100, 104); got.Name != "major" {
		t.Errorf("windowQuality(silent) = %q, want %q", got.Name, "major")
	}
}

func TestHarmony_SustainsChordPerWindow(t *testing.T) {
	g := testGenerator(t, "folk")
	plan := []ChordWindow{
		{Start: 0, Root: 48, Quality: mustQuality(t, "major")},
		{Start: 4, Root: 53, Quality: mustQuality(t, "minor")},
	}

	events := g.Harmony(plan)
	if len(events) != 6 {
		t.Fatalf("len(events) = %d, want 6", len(events))
	}

	wantPitches := []int{48, 52, 55, 53, 56, 60}
	for i, ev := range events {
		if ev.Pitch != wantPitches[i] {
			t.Errorf("events[%d].Pitch = %d, want %d", i, ev.Pitch, wantPitches[i])
		}
		if ev.Role != timeline.Harmony {
			t.Errorf("events[%d].Role = %v, want Harmony", i, ev.Role)
		}
		if ev.Duration != 4 {
			t.Errorf("events[%d].Duration = %v, want 4", i, ev.Duration)
		}
		if ev.Velocity != 67 { // 96 scaled by 0.70
			t.Errorf("events[%d].Velocity = %d, want 67", i, ev.Velocity)
		}
	}
	if events[3].Start != 4 {
		t.Errorf("second window start = %v, want 4", events[3].Start)
	}
}

func TestBassRoot_FoldsIntoRange(t *testing.T) {
	tests := []struct {
		chordRoot int
		want      int
	}{
		{48, 36},
		{40, 40}, // dropping an octave would fall off the window
		{36, 36},
		{59, 47},
	}
	for _, tt := range tests {
		if got := bassRoot(tt.chordRoot); got != tt.want {
			t.Errorf("bassRoot(%d) = %d, want %d", tt.chordRoot, got, tt.want)
		}
	}
}

func TestScaledVelocity(t *testing.T) {
	tests := []struct {
		base  int
		scale float64
		want  int
	}{
		{96, 0.70, 67},
		{96, 0.85, 82},
		{127, 2.0, 127},
		{1, 0.1, 1},
	}
	for _, tt := range tests {
		if got := scaledVelocity(tt.base, tt.scale); got != tt.want {
			t.Errorf("scaledVelocity(%d, %v) = %d, want %d", tt.base, tt.scale, got, tt.want)
		}
	}
}

func TestApproachPitch_NeighborsNextRoot(t *testing.T) {
	rng := seed.Stream(5)
	sawBelow, sawAbove := false, false
	for i := 0; i < 50; i++ {
		switch p := approachPitch(50, rng); p {
		case 49:
			sawBelow = true
		case 51:
			sawAbove = true
		default:
			t.Fatalf("approachPitch(50) = %d, want 49 or 51", p)
		}
	}
	if !sawBelow || !sawAbove {
		t.Error("approachPitch never used one of its two directions")
	}
}

func TestApproachPitch_ClampsAtWindowEdge(t *testing.T) {
	rng := seed.Stream(5)
	for i := 0; i < 50; i++ {
		p := approachPitch(theory.MinPitch, rng)
		if p != theory.MinPitch && p != theory.MinPitch+1 {
			t.Fatalf("approachPitch(MinPitch) = %d, out of window", p)
		}
	}
}
