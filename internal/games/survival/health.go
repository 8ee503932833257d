package survival

import (
	"math"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

// Health is the survival meter. Once Dead it ignores every change
// until Restore is called for a new session.
type Health struct {
	Current float64
	Max     float64
	dead    bool
}

// Dead reports whether the meter has hit zero.
func (h *Health) Dead() bool {
	return h.dead
}

// Fraction returns Current/Max in [0, 1].
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return core.ClampF(h.Current/h.Max, 0, 1)
}

// Rounded returns the displayed integer value.
func (h *Health) Rounded() int {
	return int(math.Round(h.Current))
}

// Advance applies rate*dt and clamps to [0, Max]. It returns true only on
// the tick that takes the meter to zero.
func (h *Health) Advance(rate, dt float64) (died bool) {
	return h.add(rate * dt)
}

// Bonus adds a discrete amount, clamped to Max.
func (h *Health) Bonus(amount float64) (died bool) {
	return h.add(amount)
}

func (h *Health) add(delta float64) bool {
	if h.dead {
		return false
	}
	h.Current = core.ClampF(h.Current+delta, 0, h.Max)
	if h.Current <= 0 {
		h.Current = 0
		h.dead = true
		return true
	}
	return false
}

// Restore fills the meter and leaves the Dead state.
func (h *Health) Restore() {
	h.Current = h.Max
	h.dead = false
}

// setMax changes the cap, keeping the fraction already held.
func (h *Health) setMax(limit float64) {
	if limit <= 0 || limit == h.Max {
		return
	}
	if h.Max > 0 {
		h.Current = h.Current / h.Max * limit
	} else {
		h.Current = limit
	}
	h.Max = limit
}

// maxFor returns the health cap a biome implies under the given mode.
func maxFor(cfg config.HealthConfig, b Biome) float64 {
	if cfg.Mode == config.HealthBiomeScaled && b.Cap > 0 {
		return b.Cap
	}
	return cfg.FixedMax
}
