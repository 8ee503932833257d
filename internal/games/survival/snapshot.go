package survival

import (
	"math"
	"sort"
)

// Snapshot contains the simulation state relevant for determinism checks.
// Floats are kept exact; cosmetic effects are reduced to counts.
type Snapshot struct {
	Running   bool
	Elapsed   float64
	Biome     string
	Health    float64
	MaxHealth float64

	PlayerX, PlayerY float64
	VelX, VelY       float64
	HasTarget        bool

	// Items flattened as ID, X, Y, Radius per item
	ItemCount int
	ItemData  []float64

	Inventory map[ItemKind]int

	ParticleCount  int
	IndicatorCount int
	NextItemID     uint64
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	data := make([]float64, 0, len(s.Items)*4)
	for _, it := range s.Items {
		data = append(data, float64(it.ID), it.Pos.X, it.Pos.Y, it.Radius)
	}

	return Snapshot{
		Running:        s.running,
		Elapsed:        s.Elapsed,
		Biome:          s.Biome.Name,
		Health:         s.Health.Current,
		MaxHealth:      s.Health.Max,
		PlayerX:        s.Player.Pos.X,
		PlayerY:        s.Player.Pos.Y,
		VelX:           s.Player.Vel.X,
		VelY:           s.Player.Vel.Y,
		HasTarget:      s.Player.Target != nil,
		ItemCount:      len(s.Items),
		ItemData:       data,
		Inventory:      s.Inventory.Clone(),
		ParticleCount:  len(s.effects.Particles),
		IndicatorCount: len(s.effects.Indicators),
		NextItemID:     s.nextItemID,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(0)
	if snap.Running {
		h = 1
	}
	h = h*31 + math.Float64bits(snap.Elapsed)
	for _, r := range snap.Biome {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	h = h*31 + math.Float64bits(snap.Health)
	h = h*31 + math.Float64bits(snap.MaxHealth)
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + math.Float64bits(snap.VelX)
	h = h*31 + math.Float64bits(snap.VelY)
	if snap.HasTarget {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.ItemCount) //#nosec G115 -- hash computation

	for _, v := range snap.ItemData {
		h = h*31 + math.Float64bits(v)
	}

	kinds := make([]string, 0, len(snap.Inventory))
	for k := range snap.Inventory {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		h = h*31 + uint64(snap.Inventory[ItemKind(k)]) //#nosec G115 -- hash computation
	}

	h = h*31 + uint64(snap.ParticleCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.IndicatorCount) //#nosec G115 -- hash computation
	h = h*31 + snap.NextItemID

	return h
}
