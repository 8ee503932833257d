package survival

import "github.com/vovakirdan/biome-survival/internal/core"

// resolveCollisions collects every item overlapping the player: the
// inventory count goes up, a particle burst is emitted, the kind's health
// bonus is applied and the item is removed. Items are walked back to front
// so removal never skips a neighbor. Returns the kinds collected, in
// collection order.
func (s *Session) resolveCollisions() []ItemKind {
	var collected []ItemKind
	p := s.Player
	for i := len(s.Items) - 1; i >= 0; i-- {
		it := s.Items[i]
		reach := p.Radius + it.Radius
		if core.Dist2(p.Pos, it.Pos) > reach*reach {
			continue
		}

		s.Inventory[it.Kind]++
		s.effects.Burst(it.Pos, it.Color, s.rng)
		if spec, ok := s.kind(it.Kind); ok {
			s.Health.Bonus(spec.Bonus)
		}
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		collected = append(collected, it.Kind)
	}
	return collected
}
