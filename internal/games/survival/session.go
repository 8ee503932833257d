package survival

import (
	"math/rand"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

// Summary describes a finished run.
type Summary struct {
	Biome     string
	Inventory Inventory
	Survived  float64 // Seconds the session was alive
}

// UISink receives display values from the simulation.
type UISink interface {
	Inventory(inv Inventory)
	Health(fraction float64, rounded int)
	FPS(fps int)
	Biome(name, description string)
	SurvivalOdds(percent int)
	GameOver(summary Summary)
}

// Ambience starts a biome's soundscape when the biome changes.
type Ambience interface {
	SetBiome(b Biome)
}

// NopSink discards every update.
type NopSink struct{}

func (NopSink) Inventory(Inventory)  {}
func (NopSink) Health(float64, int)  {}
func (NopSink) FPS(int)              {}
func (NopSink) Biome(string, string) {}
func (NopSink) SurvivalOdds(int)     {}
func (NopSink) GameOver(Summary)     {}

type nopAmbience struct{}

func (nopAmbience) SetBiome(Biome) {}

// TickResult reports what happened during one tick.
type TickResult struct {
	Collected []ItemKind
	GameOver  bool
}

// Session is the single live game: the entity store plus the state
// machine driving it. It is not safe for concurrent use; the platform
// calls it from one loop.
type Session struct {
	cfg      config.SurvivalConfig
	kinds    []KindSpec
	biomes   []Biome
	movement Movement
	spawner  *Spawner
	effects  *Effects
	meter    *core.FrameMeter
	rng      *rand.Rand
	sink     UISink
	ambience Ambience

	Width, Height float64

	Player    Player
	Items     []Item
	Inventory Inventory
	Health    Health
	Biome     Biome
	Elapsed   float64 // Seconds since Start

	running    bool
	nextItemID uint64
	last       *Summary
}

// NewSession creates a session in the pre-game state for a world of
// width×height units.
func NewSession(cfg config.SurvivalConfig, width, height float64, rng *rand.Rand) *Session {
	s := &Session{
		cfg:       cfg,
		kinds:     kindsFromConfig(cfg.Items),
		biomes:    biomesFromConfig(cfg.Biomes),
		movement:  movementFromConfig(cfg.Movement, cfg.Player.Margin),
		effects:   newEffects(cfg.Effects),
		meter:     core.NewFrameMeter(0.5),
		rng:       rng,
		sink:      NopSink{},
		ambience:  nopAmbience{},
		Width:     width,
		Height:    height,
		Inventory: make(Inventory),
	}
	s.spawner = NewSpawner(cfg.Spawner, rng)
	s.Inventory.reset(s.kinds)
	s.resetPlayer()
	return s
}

// Attach wires the UI sink and ambience collaborators. Nil values
// select no-op implementations.
func (s *Session) Attach(sink UISink, amb Ambience) {
	if sink == nil {
		sink = NopSink{}
	}
	if amb == nil {
		amb = nopAmbience{}
	}
	s.sink = sink
	s.ambience = amb
}

// Running reports whether the session is live.
func (s *Session) Running() bool {
	return s.running
}

// Kinds returns the item kinds in display order.
func (s *Session) Kinds() []KindSpec {
	return s.kinds
}

// Biomes returns the draw pool.
func (s *Session) Biomes() []Biome {
	return s.biomes
}

// Particles returns the live particles.
func (s *Session) Particles() []Particle {
	return s.effects.Particles
}

// Indicators returns the live target indicators.
func (s *Session) Indicators() []Indicator {
	return s.effects.Indicators
}

// LastSummary returns the summary of the most recent finished run.
func (s *Session) LastSummary() (Summary, bool) {
	if s.last == nil {
		return Summary{}, false
	}
	return *s.last, true
}

// Start draws a biome and begins a fresh run: full health, empty
// inventory, player centered and at rest, and an initial scatter of items.
func (s *Session) Start() {
	s.SetBiome(ChooseBiome(s.biomes, s.rng))
	s.Health.Restore()

	s.resetPlayer()
	s.Inventory.reset(s.kinds)
	s.Items = s.Items[:0]
	s.effects.Clear()
	s.Elapsed = 0

	for i := 0; i < s.cfg.Spawner.InitialItems; i++ {
		s.spawner.TrySpawn(s)
	}
	s.spawner.Reset()
	s.meter.Reset()
	s.running = true

	s.sink.Inventory(s.Inventory.Clone())
	s.sink.Health(s.Health.Fraction(), s.Health.Rounded())
}

// SetBiome switches the environment. In biome-scaled mode the health cap
// follows the biome and the current value keeps its fraction.
func (s *Session) SetBiome(b Biome) {
	s.Biome = b
	s.Health.setMax(maxFor(s.cfg.Health, b))

	s.sink.Biome(b.Name, b.Description)
	if s.cfg.Health.ShowOdds {
		s.sink.SurvivalOdds(b.Odds())
	}
	if s.cfg.Health.Ambience {
		s.ambience.SetBiome(b)
	}
	s.sink.Health(s.Health.Fraction(), s.Health.Rounded())
}

// Command sets the movement target to pos and leaves an indicator there.
// The latest command wins. Ignored outside a running session.
func (s *Session) Command(pos core.Vec, kind core.PointerKind) {
	if !s.running {
		return
	}
	pos.X = core.ClampF(pos.X, 0, s.Width)
	pos.Y = core.ClampF(pos.Y, 0, s.Height)
	s.Player.Target = &pos
	s.effects.Mark(pos, kind)
}

// Tick advances the running session by dt seconds in fixed order:
// spawn, move, collect, effects, health, frame rate.
func (s *Session) Tick(dt float64) TickResult {
	var res TickResult
	if !s.running {
		return res
	}
	s.Elapsed += dt

	s.spawner.Advance(s, dt)
	s.movement.Advance(&s.Player, s.Width, s.Height, dt)

	res.Collected = s.resolveCollisions()
	if len(res.Collected) > 0 {
		s.sink.Inventory(s.Inventory.Clone())
	}

	s.effects.Advance(dt)

	s.Health.Advance(s.Biome.Rate, dt)
	s.sink.Health(s.Health.Fraction(), s.Health.Rounded())
	if s.Health.Dead() {
		s.gameOver()
		res.GameOver = true
		return res
	}

	if fps, ok := s.meter.Frame(dt); ok {
		s.sink.FPS(fps)
	}
	return res
}

// Resize changes the world dimensions, keeping the player inside and
// dropping items that no longer fit.
func (s *Session) Resize(width, height float64) {
	s.Width, s.Height = width, height

	pad := s.Player.Radius + s.movement.Margin
	s.Player.Pos.X = clampAxis(s.Player.Pos.X, pad, width-pad)
	s.Player.Pos.Y = clampAxis(s.Player.Pos.Y, pad, height-pad)
	if t := s.Player.Target; t != nil {
		t.X = core.ClampF(t.X, 0, width)
		t.Y = core.ClampF(t.Y, 0, height)
	}

	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.Pos.X+it.Radius <= width && it.Pos.Y+it.Radius <= height {
			kept = append(kept, it)
		}
	}
	s.Items = kept
}

// gameOver freezes the run, publishes its summary and returns to the
// pre-game state with health and inventory reset.
func (s *Session) gameOver() {
	s.running = false
	summary := Summary{
		Biome:     s.Biome.Name,
		Inventory: s.Inventory.Clone(),
		Survived:  s.Elapsed,
	}
	s.last = &summary
	s.sink.GameOver(summary)

	s.Health.Restore()
	s.Inventory.reset(s.kinds)
	s.Player.Target = nil
	s.sink.Inventory(s.Inventory.Clone())
	s.sink.Health(s.Health.Fraction(), s.Health.Rounded())
}

func (s *Session) resetPlayer() {
	s.Player = Player{
		Pos:    core.Vec{X: s.Width / 2, Y: s.Height / 2},
		Radius: s.cfg.Player.Radius,
		Speed:  s.cfg.Player.Speed,
		MaxVel: s.cfg.Player.MaxSpeed,
	}
}

func (s *Session) kind(k ItemKind) (KindSpec, bool) {
	for _, spec := range s.kinds {
		if spec.Kind == k {
			return spec, true
		}
	}
	return KindSpec{}, false
}
