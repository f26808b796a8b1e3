package theory

import (
	"errors"
	"math"
	"testing"
)

func TestStyleByName(t *testing.T) {
	s, err := StyleByName("folk")
	if err != nil {
		t.Fatalf("StyleByName(\"folk\") error = %v", err)
	}
	if s.Name != "folk" {
		t.Errorf("Name = %q, want %q", s.Name, "folk")
	}
	if s.Bass != BassRootFifth {
		t.Errorf("Bass = %v, want %v", s.Bass, BassRootFifth)
	}
	if s.Drums != DrumBackbeat {
		t.Errorf("Drums = %v, want %v", s.Drums, DrumBackbeat)
	}
}

func TestStyleByName_Unknown(t *testing.T) {
	_, err := StyleByName("baroque")
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("StyleByName() error = %v, want %v", err, ErrUnknownStyle)
	}
}

func TestStyleNames(t *testing.T) {
	names := StyleNames()
	if len(names) != 5 {
		t.Fatalf("StyleNames() returned %d names, want 5", len(names))
	}
	for _, name := range names {
		if _, err := StyleByName(name); err != nil {
			t.Errorf("StyleByName(%q) error = %v", name, err)
		}
	}
}

func TestStyle_DefaultTempoInRange(t *testing.T) {
	for _, name := range StyleNames() {
		s, _ := StyleByName(name)
		tempo := s.DefaultTempo()
		if tempo < s.TempoMin || tempo > s.TempoMax {
			t.Errorf("%s: DefaultTempo() = %v, outside [%v, %v]", name, tempo, s.TempoMin, s.TempoMax)
		}
	}
}

func TestStyle_TablesWellFormed(t *testing.T) {
	for _, name := range StyleNames() {
		s, _ := StyleByName(name)
		for _, table := range [][]StepWeight{s.DotSteps, s.DashSteps} {
			if len(table) == 0 {
				t.Errorf("%s: empty interval table", name)
				continue
			}
			sum := 0.0
			for _, sw := range table {
				if sw.Steps < 1 {
					t.Errorf("%s: interval of %d scale steps, want >= 1", name, sw.Steps)
				}
				if sw.Weight <= 0 {
					t.Errorf("%s: non-positive weight %v", name, sw.Weight)
				}
				sum += sw.Weight
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("%s: weights sum to %v, want 1.0", name, sum)
			}
		}
		if s.ArcSpan < 1 {
			t.Errorf("%s: ArcSpan = %d, want >= 1", name, s.ArcSpan)
		}
		if s.ChromaticChance < 0 || s.ChromaticChance > 0.2 {
			t.Errorf("%s: ChromaticChance = %v, want small probability", name, s.ChromaticChance)
		}
		if s.TendencyChance < 0 || s.TendencyChance > 1 {
			t.Errorf("%s: TendencyChance = %v, want probability", name, s.TendencyChance)
		}
	}
}

func TestStyle_ReferencesResolve(t *testing.T) {
	// Every style must point at a real quality and progression.
	for _, name := range StyleNames() {
		s, _ := StyleByName(name)
		if _, err := QualityByName(s.HomeQuality); err != nil {
			t.Errorf("%s: HomeQuality %q: %v", name, s.HomeQuality, err)
		}
		if _, err := ProgressionByName(s.Progression); err != nil {
			t.Errorf("%s: Progression %q: %v", name, s.Progression, err)
		}
	}
}

func TestStyleByName_ReturnsCopy(t *testing.T) {
	s, _ := StyleByName("folk")
	s.DotSteps[0].Weight = 99

	again, _ := StyleByName("folk")
	if again.DotSteps[0].Weight == 99 {
		t.Error("StyleByName() shares interval tables between calls")
	}
}
