// internal/render/synth.go
package render

import (
	"math"
	"math/rand"

	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

const (
	// DefaultSampleRate is used when a renderer's SampleRate is zero.
	DefaultSampleRate = 44100

	// tailSeconds of silence after the last note so decays finish.
	tailSeconds = 0.5

	// attackSeconds of linear ramp at note start to avoid clicks.
	attackSeconds = 0.005

	// toneDecay and noiseDecay set how far the exponential envelope has
	// fallen by the end of the note (e.g. e^-4 is about 2%).
	toneDecay  = 4.0
	noiseDecay = 6.0

	peakCeiling = 0.99
)

// roleGain balances the tracks in the mono mix. The melody carries the
// message, so it sits on top.
func roleGain(role timeline.TrackRole) float64 {
	switch role {
	case timeline.Melody:
		return 1.0
	case timeline.Harmony:
		return 0.35
	case timeline.Bass:
		return 0.7
	case timeline.Percussion:
		return 0.5
	default:
		return 0.5
	}
}

// synthesize mixes every event into a mono float buffer. Pitched roles
// are decaying sine voices; percussion hits are short noise bursts seeded
// per event, so the result is deterministic regardless of event order.
func synthesize(t *timeline.Timeline, rate int) []float64 {
	tempo := t.Tempo
	if tempo <= 0 {
		tempo = 120
	}
	secPerBeat := 60.0 / tempo

	total := t.End()*secPerBeat + tailSeconds
	out := make([]float64, int(math.Ceil(total*float64(rate))))

	for _, ev := range t.Events {
		if ev.Role == timeline.Percussion {
			addNoise(out, ev, rate, secPerBeat)
		} else {
			addTone(out, ev, rate, secPerBeat)
		}
	}

	normalize(out)
	return out
}

func addTone(out []float64, ev timeline.NoteEvent, rate int, secPerBeat float64) {
	dur := ev.Duration * secPerBeat
	if dur <= 0 {
		return
	}
	freq := pitchFrequency(ev.Pitch)
	amp := roleGain(ev.Role) * float64(ev.Velocity) / 127
	begin := int(ev.Start * secPerBeat * float64(rate))

	n := int(dur * float64(rate))
	for i := 0; i < n && begin+i < len(out); i++ {
		tt := float64(i) / float64(rate)
		env := math.Exp(-toneDecay * tt / dur)
		if tt < attackSeconds {
			env *= tt / attackSeconds
		}
		out[begin+i] += amp * env * math.Sin(2*math.Pi*freq*tt)
	}
}

func addNoise(out []float64, ev timeline.NoteEvent, rate int, secPerBeat float64) {
	dur := ev.Duration * secPerBeat
	if dur <= 0 {
		return
	}
	amp := roleGain(ev.Role) * float64(ev.Velocity) / 127
	begin := int(ev.Start * secPerBeat * float64(rate))
	rng := rand.New(rand.NewSource(noiseSeed(ev)))

	n := int(dur * float64(rate))
	for i := 0; i < n && begin+i < len(out); i++ {
		tt := float64(i) / float64(rate)
		env := math.Exp(-noiseDecay * tt / dur)
		out[begin+i] += amp * env * (2*rng.Float64() - 1)
	}
}

// noiseSeed derives a stable seed from the hit's key and grid position.
func noiseSeed(ev timeline.NoteEvent) int64 {
	return int64(ev.Pitch)*1_000_003 + int64(math.Round(ev.Start*960))
}

// pitchFrequency converts a MIDI note number to Hz (A4 = 69 = 440 Hz).
func pitchFrequency(pitch int) float64 {
	return 440 * math.Exp2((float64(pitch)-69)/12)
}

// normalize scales the mix down if summed voices exceed the ceiling.
func normalize(samples []float64) {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak <= peakCeiling {
		return
	}
	scale := peakCeiling / peak
	for i := range samples {
		samples[i] *= scale
	}
}
