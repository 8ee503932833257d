package survival

import (
	"testing"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

func TestCollectOverlappingItems(t *testing.T) {
	s, _, _ := newTestSession(t, config.HealthFixed, 1)
	s.Start()
	s.Items = s.Items[:0]
	s.Health.Current = 10

	at := s.Player.Pos
	for i := 0; i < 5; i++ {
		placeItem(s, KindFood, at)
	}
	placeItem(s, KindWater, core.Vec{X: 40, Y: 40})

	got := s.resolveCollisions()

	if len(got) != 5 {
		t.Fatalf("collected %d items, expected 5", len(got))
	}
	if s.Inventory[KindFood] != 5 || s.Inventory[KindWater] != 0 || s.Inventory[KindWood] != 0 {
		t.Errorf("inventory = %v, expected 5 food only", s.Inventory)
	}
	if len(s.Items) != 1 || s.Items[0].Kind != KindWater {
		t.Errorf("remaining items = %+v, expected the distant water", s.Items)
	}
	if len(s.Particles()) != 50 {
		t.Errorf("particles = %d, expected a burst of 10 per item", len(s.Particles()))
	}
	// 10 + 5*15, clamped at 100
	if s.Health.Current != 85 {
		t.Errorf("health = %v, expected 85", s.Health.Current)
	}
}

func TestCollectBonusClampsAtMax(t *testing.T) {
	s, _, _ := newTestSession(t, config.HealthFixed, 1)
	s.Start()
	s.Items = s.Items[:0]
	s.Health.Current = 95

	placeItem(s, KindFood, s.Player.Pos)
	s.resolveCollisions()

	if s.Health.Current != s.Health.Max {
		t.Errorf("health = %v, expected max %v", s.Health.Current, s.Health.Max)
	}
}

func TestCollisionReach(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		collected bool
	}{
		{"touching", 26, true}, // player 14 + food 12
		{"just apart", 26.5, false},
		{"inside", 10, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, config.HealthFixed, 1)
			s.Start()
			s.Items = s.Items[:0]

			placeItem(s, KindFood, s.Player.Pos.Add(core.Vec{X: tc.offset}))
			got := len(s.resolveCollisions()) == 1
			if got != tc.collected {
				t.Errorf("collected = %v, expected %v", got, tc.collected)
			}
		})
	}
}
