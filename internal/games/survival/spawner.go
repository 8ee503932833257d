package survival

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

// Spawner places new items on an irregular cadence.
type Spawner struct {
	cfg      config.SpawnerConfig
	rng      *rand.Rand
	accumMS  float64
	interval float64 // ms until the next attempt
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg config.SpawnerConfig, rng *rand.Rand) *Spawner {
	s := &Spawner{cfg: cfg, rng: rng}
	s.Reset()
	return s
}

// Reset clears the accumulator and draws a fresh interval.
func (s *Spawner) Reset() {
	s.accumMS = 0
	s.redraw()
}

func (s *Spawner) redraw() {
	lo, hi := s.cfg.MinIntervalMS, s.cfg.MaxIntervalMS
	s.interval = math.Floor(lo + s.rng.Float64()*(hi-lo))
}

// Advance accumulates dt and fires one spawn attempt when the interval
// elapses, then redraws the interval. Returns whether an attempt fired.
func (s *Spawner) Advance(sess *Session, dt float64) bool {
	s.accumMS += dt * 1000
	if s.accumMS < s.interval {
		return false
	}
	s.accumMS = 0
	s.TrySpawn(sess)
	s.redraw()
	return true
}

// TrySpawn attempts to place one item. It is a no-op at the population
// cap, and gives up silently when no clear spot is found within the
// placement budget. Returns the placed item, if any.
func (s *Spawner) TrySpawn(sess *Session) (Item, bool) {
	if len(sess.Items) >= s.cfg.MaxItems || len(sess.kinds) == 0 {
		return Item{}, false
	}
	kind := chooseKind(sess.kinds, s.rng)
	pad := s.cfg.Padding

	for try := 0; try < s.cfg.PlacementTries; try++ {
		pos := core.Vec{
			X: pad + s.rng.Float64()*(sess.Width-2*pad),
			Y: pad + s.rng.Float64()*(sess.Height-2*pad),
		}
		if !s.canPlace(sess, pos, kind.Radius) {
			continue
		}
		sess.nextItemID++
		it := Item{
			ID:      sess.nextItemID,
			Kind:    kind.Kind,
			Pos:     pos,
			Radius:  kind.Radius,
			Color:   kind.Color,
			Glyph:   kind.Glyph,
			SpawnAt: sess.Elapsed,
		}
		sess.Items = append(sess.Items, it)
		return it, true
	}
	return Item{}, false
}

// canPlace checks the world edge, player and item clearances for a
// candidate position.
func (s *Spawner) canPlace(sess *Session, pos core.Vec, radius float64) bool {
	pad := s.cfg.Padding
	if pos.X < pad+radius || pos.X > sess.Width-pad-radius {
		return false
	}
	if pos.Y < pad+radius || pos.Y > sess.Height-pad-radius {
		return false
	}

	minPlayer := sess.Player.Radius + radius + s.cfg.PlayerClearance
	if core.Dist2(pos, sess.Player.Pos) < minPlayer*minPlayer {
		return false
	}

	for _, it := range sess.Items {
		minItem := radius + it.Radius + s.cfg.ItemClearance
		if core.Dist2(pos, it.Pos) < minItem*minItem {
			return false
		}
	}
	return true
}
