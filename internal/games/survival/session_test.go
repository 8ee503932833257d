package survival

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

func TestSessionStart(t *testing.T) {
	s, sink, amb := newTestSession(t, config.HealthFixed, 42)

	if s.Running() {
		t.Fatal("new session should not be running")
	}
	s.Start()

	if !s.Running() {
		t.Fatal("session not running after Start()")
	}
	if s.Biome.Name == "" {
		t.Error("no biome drawn")
	}
	if s.Health.Current != 100 || s.Health.Max != 100 {
		t.Errorf("health = %v/%v, expected 100/100", s.Health.Current, s.Health.Max)
	}
	center := core.Vec{X: testWorldW / 2, Y: testWorldH / 2}
	if s.Player.Pos != center || s.Player.Vel != (core.Vec{}) || s.Player.Target != nil {
		t.Errorf("player not centered at rest: %+v", s.Player)
	}
	if s.Inventory.Total() != 0 || len(s.Inventory) != 3 {
		t.Errorf("inventory = %v, expected three empty kinds", s.Inventory)
	}
	if len(s.Items) != 12 {
		t.Errorf("initial items = %d, expected 12", len(s.Items))
	}
	if s.Elapsed != 0 {
		t.Errorf("Elapsed = %v, expected 0", s.Elapsed)
	}

	if len(sink.biomes) != 1 || sink.biomes[0] != s.Biome.Name {
		t.Errorf("sink biomes = %v", sink.biomes)
	}
	if len(amb.biomes) != 1 {
		t.Errorf("ambience calls = %d, expected 1 in fixed mode", len(amb.biomes))
	}
	if len(sink.odds) != 0 {
		t.Errorf("odds published in fixed mode: %v", sink.odds)
	}
	if len(sink.inventories) == 0 || len(sink.healths) == 0 {
		t.Error("Start() did not publish inventory and health")
	}
}

func TestSessionCommand(t *testing.T) {
	s, _, _ := newTestSession(t, config.HealthFixed, 1)

	s.Command(core.Vec{X: 10, Y: 10}, core.PointerPrimary)
	if s.Player.Target != nil || len(s.Indicators()) != 0 {
		t.Fatal("command accepted before Start()")
	}

	s.Start()
	s.Command(core.Vec{X: 100, Y: 100}, core.PointerPrimary)
	s.Command(core.Vec{X: 5000, Y: -20}, core.PointerSecondary)

	if s.Player.Target == nil {
		t.Fatal("no target after command")
	}
	expected := core.Vec{X: testWorldW, Y: 0}
	if *s.Player.Target != expected {
		t.Errorf("target = %+v, expected last command clamped to %+v", *s.Player.Target, expected)
	}
	if len(s.Indicators()) != 2 {
		t.Errorf("indicators = %d, expected 2", len(s.Indicators()))
	}
}

func TestSessionTickNotRunning(t *testing.T) {
	s, sink, _ := newTestSession(t, config.HealthFixed, 1)
	res := s.Tick(0.1)

	if res.GameOver || len(res.Collected) != 0 || s.Elapsed != 0 {
		t.Errorf("Tick() before Start() changed state: %+v elapsed=%v", res, s.Elapsed)
	}
	if len(sink.healths) != 0 {
		t.Error("Tick() before Start() published health")
	}
}

func TestSessionCollectBeforeDrain(t *testing.T) {
	s, _, _ := newTestSession(t, config.HealthFixed, 1)
	s.Start()
	s.Items = s.Items[:0]
	s.Biome.Rate = -5
	s.Health.Current = 0.1

	placeItem(s, KindFood, s.Player.Pos)
	res := s.Tick(1.0 / 30)

	if res.GameOver {
		t.Fatal("session ended although the bonus lands before the drain")
	}
	if len(res.Collected) != 1 || res.Collected[0] != KindFood {
		t.Errorf("collected = %v, expected [food]", res.Collected)
	}
	expected := 0.1 + 15 - 5.0/30
	if math.Abs(s.Health.Current-expected) > 1e-9 {
		t.Errorf("health = %v, expected %v", s.Health.Current, expected)
	}
}

func TestSessionGameOver(t *testing.T) {
	s, sink, _ := newTestSession(t, config.HealthFixed, 1)
	s.Start()
	s.Items = s.Items[:0]
	s.Biome.Rate = -50
	s.Health.Current = 5
	s.Inventory[KindWater] = 2
	s.Command(core.Vec{X: 10, Y: 10}, core.PointerPrimary)

	res := s.Tick(0.1)

	if !res.GameOver {
		t.Fatal("expected game over when health reaches zero")
	}
	if s.Running() {
		t.Error("session still running after game over")
	}

	zeroSeen := false
	for _, h := range sink.healths {
		if h == 0 {
			zeroSeen = true
		}
	}
	if !zeroSeen {
		t.Error("health 0 was never published before game over")
	}

	if len(sink.gameOvers) != 1 {
		t.Fatalf("GameOver published %d times, expected 1", len(sink.gameOvers))
	}
	summary := sink.gameOvers[0]
	if summary.Biome != s.Biome.Name || summary.Inventory[KindWater] != 2 || summary.Survived != 0.1 {
		t.Errorf("summary = %+v", summary)
	}
	if last, ok := s.LastSummary(); !ok || last.Inventory[KindWater] != 2 {
		t.Errorf("LastSummary() = %+v, %v", last, ok)
	}

	// Back in the pre-game state with everything reset.
	if s.Health.Current != s.Health.Max || s.Health.Dead() {
		t.Errorf("health not restored: %v/%v", s.Health.Current, s.Health.Max)
	}
	if s.Inventory.Total() != 0 {
		t.Errorf("inventory not reset: %v", s.Inventory)
	}
	if s.Player.Target != nil {
		t.Error("target survived game over")
	}

	s.Tick(1)
	if len(sink.gameOvers) != 1 {
		t.Error("GameOver published again while stopped")
	}

	s.Start()
	if !s.Running() {
		t.Error("session did not restart")
	}
}

func TestSessionBiomeScaledHealth(t *testing.T) {
	s, sink, amb := newTestSession(t, config.HealthBiomeScaled, 4)
	s.Start()

	if s.Health.Max != s.Biome.Cap {
		t.Fatalf("max health %v does not follow biome cap %v", s.Health.Max, s.Biome.Cap)
	}
	if len(amb.biomes) != 0 {
		t.Errorf("ambience started in biome-scaled mode: %v", amb.biomes)
	}
	if len(sink.odds) != 1 || sink.odds[0] != s.Biome.Odds() {
		t.Errorf("odds = %v, expected [%d]", sink.odds, s.Biome.Odds())
	}

	var next Biome
	for _, b := range s.Biomes() {
		if b.Cap != s.Health.Max {
			next = b
			break
		}
	}
	s.Health.Current = s.Health.Max / 2
	s.SetBiome(next)

	if s.Health.Max != next.Cap {
		t.Errorf("max = %v, expected %v", s.Health.Max, next.Cap)
	}
	if math.Abs(s.Health.Current-next.Cap/2) > 1e-9 {
		t.Errorf("current = %v, expected half of %v", s.Health.Current, next.Cap)
	}
}

func TestSessionFixedHealthIgnoresBiomeCap(t *testing.T) {
	s, _, amb := newTestSession(t, config.HealthFixed, 4)
	s.Start()

	for _, b := range s.Biomes() {
		s.SetBiome(b)
		if s.Health.Max != 100 {
			t.Errorf("%s changed max health to %v", b.Name, s.Health.Max)
		}
	}
	if len(amb.biomes) != 1+len(s.Biomes()) {
		t.Errorf("ambience calls = %d, expected one per biome change", len(amb.biomes))
	}
}

func TestSessionFPSReport(t *testing.T) {
	s, sink, _ := newTestSession(t, config.HealthFixed, 1)
	s.Start()
	s.Biome.Rate = 0

	for i := 0; i < 4; i++ {
		s.Tick(0.125)
	}
	if len(sink.fps) != 1 || sink.fps[0] != 8 {
		t.Errorf("fps reports = %v, expected [8]", sink.fps)
	}
}

func TestSessionInvariantsOverLongRun(t *testing.T) {
	s, _, _ := newTestSession(t, config.HealthFixed, 99)
	s.Start()
	s.Biome.Rate = 0

	rng := rand.New(rand.NewSource(5))
	lo := s.Player.Radius + s.movement.Margin

	for i := 0; i < 3000; i++ {
		if i%25 == 0 {
			s.Command(core.Vec{X: rng.Float64() * testWorldW, Y: rng.Float64() * testWorldH}, core.PointerPrimary)
		}
		s.Tick(rng.Float64() / 30)

		p := s.Player
		if p.Pos.X < lo || p.Pos.X > testWorldW-lo || p.Pos.Y < lo || p.Pos.Y > testWorldH-lo {
			t.Fatalf("tick %d: player out of bounds at %+v", i, p.Pos)
		}
		if p.Vel.Len() > p.MaxVel+1e-9 {
			t.Fatalf("tick %d: speed %v over cap", i, p.Vel.Len())
		}
		if len(s.Items) > 60 {
			t.Fatalf("tick %d: %d items over cap", i, len(s.Items))
		}
		if s.Health.Current < 0 || s.Health.Current > s.Health.Max {
			t.Fatalf("tick %d: health %v outside [0, %v]", i, s.Health.Current, s.Health.Max)
		}
	}

	if s.Inventory.Total() == 0 {
		t.Error("a long run of random targets collected nothing")
	}
}

func TestSessionResize(t *testing.T) {
	s, _, _ := newTestSession(t, config.HealthFixed, 8)
	s.Start()
	s.Player.Pos = core.Vec{X: 900, Y: 400}
	s.Command(core.Vec{X: 950, Y: 470}, core.PointerPrimary)

	s.Resize(480, 240)

	if s.Player.Pos.X > 480-16 || s.Player.Pos.Y > 240-16 {
		t.Errorf("player not clamped into the new world: %+v", s.Player.Pos)
	}
	if s.Player.Target.X > 480 || s.Player.Target.Y > 240 {
		t.Errorf("target not clamped: %+v", *s.Player.Target)
	}
	for _, it := range s.Items {
		if it.Pos.X+it.Radius > 480 || it.Pos.Y+it.Radius > 240 {
			t.Errorf("item %d left outside the resized world", it.ID)
		}
	}
}
