package survival

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

const (
	testWorldW = 960
	testWorldH = 480
)

// recordingSink captures everything the session publishes.
type recordingSink struct {
	inventories []Inventory
	healths     []int
	fractions   []float64
	fps         []int
	biomes      []string
	odds        []int
	gameOvers   []Summary
}

func (r *recordingSink) Inventory(inv Inventory) { r.inventories = append(r.inventories, inv) }
func (r *recordingSink) Health(fraction float64, rounded int) {
	r.fractions = append(r.fractions, fraction)
	r.healths = append(r.healths, rounded)
}
func (r *recordingSink) FPS(fps int)              { r.fps = append(r.fps, fps) }
func (r *recordingSink) Biome(name, _ string)     { r.biomes = append(r.biomes, name) }
func (r *recordingSink) SurvivalOdds(percent int) { r.odds = append(r.odds, percent) }
func (r *recordingSink) GameOver(summary Summary) { r.gameOvers = append(r.gameOvers, summary) }

// recordingAmbience captures biome changes.
type recordingAmbience struct {
	biomes []string
}

func (r *recordingAmbience) SetBiome(b Biome) { r.biomes = append(r.biomes, b.Name) }

// fixedSource always returns the same draw.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newTestSession(t *testing.T, mode config.HealthMode, seed int64) (*Session, *recordingSink, *recordingAmbience) {
	t.Helper()
	cfg := config.DefaultSurvivalConfig()
	config.ApplyHealthMode(&cfg, mode)

	s := NewSession(cfg, testWorldW, testWorldH, rand.New(rand.NewSource(seed)))
	sink := &recordingSink{}
	amb := &recordingAmbience{}
	s.Attach(sink, amb)
	return s, sink, amb
}

// placeItem drops an item of the given kind at pos, bypassing the spawner.
func placeItem(s *Session, kind ItemKind, pos core.Vec) {
	spec, _ := s.kind(kind)
	s.nextItemID++
	s.Items = append(s.Items, Item{
		ID:     s.nextItemID,
		Kind:   kind,
		Pos:    pos,
		Radius: spec.Radius,
		Color:  spec.Color,
		Glyph:  spec.Glyph,
	})
}

func testBiomes() []Biome {
	return biomesFromConfig(config.DefaultSurvivalConfig().Biomes)
}
