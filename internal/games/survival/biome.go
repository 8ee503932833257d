package survival

import (
	"math"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

// Biome is the environment a session takes place in.
type Biome struct {
	Name        string
	Description string
	Color       core.Color
	Hex         string
	Rate        float64 // Health per second
	Cap         float64 // Max health in biome-scaled mode
	Weight      float64
	Soundscape  string
}

// Odds returns the survival-odds percentage shown for this biome.
func (b Biome) Odds() int {
	return SurvivalOdds(b.Rate)
}

// SurvivalOdds maps a health rate to a display percentage:
// healing biomes 95, neutral 75, hazardous 85-10|rate| floored at 15.
func SurvivalOdds(rate float64) int {
	switch {
	case rate > 0:
		return 95
	case rate == 0:
		return 75
	default:
		return int(math.Max(15, 85-10*math.Abs(rate)))
	}
}

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// ChooseBiome draws a biome by weight with a cumulative scan.
// If rounding exhausts the scan, the first biome is returned.
// Panics on an empty list; config validation rules that out.
func ChooseBiome(biomes []Biome, src Source) Biome {
	total := 0.0
	for _, b := range biomes {
		total += b.Weight
	}
	r := src.Float64() * total
	for _, b := range biomes {
		r -= b.Weight
		if r <= 0 {
			return b
		}
	}
	return biomes[0]
}

// chooseKind draws an item kind by weight; if rounding exhausts the
// scan, the last kind is returned.
func chooseKind(kinds []KindSpec, src Source) KindSpec {
	total := 0.0
	for _, k := range kinds {
		total += k.Weight
	}
	r := src.Float64() * total
	for _, k := range kinds {
		r -= k.Weight
		if r <= 0 {
			return k
		}
	}
	return kinds[len(kinds)-1]
}

func biomesFromConfig(list []config.BiomeConfig) []Biome {
	biomes := make([]Biome, 0, len(list))
	for _, b := range list {
		color, _ := core.ParseColor(b.Color)
		biomes = append(biomes, Biome{
			Name:        b.Name,
			Description: b.Description,
			Color:       color,
			Hex:         b.Hex,
			Rate:        b.Rate,
			Cap:         b.Cap,
			Weight:      b.Weight,
			Soundscape:  b.SoundscapeKey(),
		})
	}
	return biomes
}
