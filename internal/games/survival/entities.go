package survival

import (
	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

// ItemKind names a collectible resource.
type ItemKind string

const (
	KindFood  ItemKind = "food"
	KindWater ItemKind = "water"
	KindWood  ItemKind = "wood"
)

// KindSpec is the resolved description of one item kind.
type KindSpec struct {
	Kind   ItemKind
	Glyph  rune
	Color  core.Color
	Radius float64
	Weight float64
	Bonus  float64 // Health restored on collection
}

// kindsFromConfig resolves item kinds, keeping config order.
func kindsFromConfig(items []config.ItemKindConfig) []KindSpec {
	kinds := make([]KindSpec, 0, len(items))
	for _, it := range items {
		glyph := '*'
		for _, r := range it.Glyph {
			glyph = r
			break
		}
		color, _ := core.ParseColor(it.Color)
		kinds = append(kinds, KindSpec{
			Kind:   ItemKind(it.Kind),
			Glyph:  glyph,
			Color:  color,
			Radius: it.Radius,
			Weight: it.Weight,
			Bonus:  it.HealthBonus,
		})
	}
	return kinds
}

// Player is the avatar. Target is nil when there is nowhere to go.
type Player struct {
	Pos    core.Vec
	Vel    core.Vec
	Target *core.Vec
	Radius float64
	Speed  float64
	MaxVel float64
}

// Item is a collectible resting in the world.
type Item struct {
	ID      uint64
	Kind    ItemKind
	Pos     core.Vec
	Radius  float64
	Color   core.Color
	Glyph   rune
	SpawnAt float64 // Session seconds
}

// Particle is a cosmetic spark emitted on collection.
type Particle struct {
	Pos   core.Vec
	Vel   core.Vec
	Life  float64
	TTL   float64
	Color core.Color
}

// Indicator marks a point the player was sent to.
type Indicator struct {
	Pos   core.Vec
	Color core.Color
	Life  float64
	TTL   float64
}

// Progress returns how far the indicator is through its lifetime, in [0, 1].
func (in Indicator) Progress() float64 {
	if in.TTL <= 0 {
		return 1
	}
	return core.ClampF(in.Life/in.TTL, 0, 1)
}

// Inventory counts collected items per kind.
type Inventory map[ItemKind]int

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Total returns the number of items collected across all kinds.
func (inv Inventory) Total() int {
	n := 0
	for _, v := range inv {
		n += v
	}
	return n
}

// reset zeroes every known kind.
func (inv Inventory) reset(kinds []KindSpec) {
	for k := range inv {
		delete(inv, k)
	}
	for _, k := range kinds {
		inv[k.Kind] = 0
	}
}
