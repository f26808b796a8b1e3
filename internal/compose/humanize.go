// internal/compose/humanize.go
package compose

import (
	"math"
	"math/rand"

	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

// maxHumanizeAmount caps the jitter so a humanized dash still clears the
// dot ceiling and every gap stays on the right side of its threshold.
const maxHumanizeAmount = 0.05

// humanize wobbles every event in place: duration by ±amount, start by
// ±amount/2 of a unit, velocity by ±⌈amount×100⌉ percent. The events
// must already be in canonical order so the draws are reproducible.
func humanize(t *timeline.Timeline, amount float64, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	if amount > maxHumanizeAmount {
		amount = maxHumanizeAmount
	}
	velocityAmount := math.Ceil(amount*100) / 100

	for i := range t.Events {
		ev := &t.Events[i]

		ev.Duration *= 1 + amount*spread(rng)
		ev.Start += amount / 2 * unitBeats * spread(rng)
		if ev.Start < 0 {
			ev.Start = 0
		}
		ev.Velocity = timeline.ClampVelocity(int(math.Round(
			float64(ev.Velocity) * (1 + velocityAmount*spread(rng)))))
	}
}

// spread returns a uniform draw in [-1, 1).
func spread(rng *rand.Rand) float64 {
	return 2*rng.Float64() - 1
}
