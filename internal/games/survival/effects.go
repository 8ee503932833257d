package survival

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

// Effects owns the cosmetic particles and indicators of a session.
type Effects struct {
	cfg            config.EffectsConfig
	primaryColor   core.Color
	secondaryColor core.Color

	Particles  []Particle
	Indicators []Indicator
}

func newEffects(cfg config.EffectsConfig) *Effects {
	primary, _ := core.ParseColor(cfg.PrimaryColor)
	secondary, _ := core.ParseColor(cfg.SecondaryColor)
	return &Effects{cfg: cfg, primaryColor: primary, secondaryColor: secondary}
}

// Clear drops every live effect.
func (e *Effects) Clear() {
	e.Particles = e.Particles[:0]
	e.Indicators = e.Indicators[:0]
}

// Burst emits a ring of particles at pos in random directions.
func (e *Effects) Burst(pos core.Vec, color core.Color, rng *rand.Rand) {
	for i := 0; i < e.cfg.BurstCount; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := e.cfg.BurstSpeedMin + rng.Float64()*(e.cfg.BurstSpeedMax-e.cfg.BurstSpeedMin)
		ttl := e.cfg.BurstTTLMin + rng.Float64()*(e.cfg.BurstTTLMax-e.cfg.BurstTTLMin)
		e.Particles = append(e.Particles, Particle{
			Pos:   pos,
			Vel:   core.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			TTL:   ttl,
			Color: color,
		})
	}
}

// Mark adds a target indicator colored by command kind.
func (e *Effects) Mark(pos core.Vec, kind core.PointerKind) {
	color := e.primaryColor
	if kind == core.PointerSecondary {
		color = e.secondaryColor
	}
	e.Indicators = append(e.Indicators, Indicator{Pos: pos, Color: color, TTL: e.cfg.IndicatorTTL})
}

// Advance ages particles and indicators by dt and prunes the expired ones.
// Particles also drift and slow down under drag.
func (e *Effects) Advance(dt float64) {
	drag := 1 - e.cfg.ParticleDrag*dt
	live := e.Particles[:0]
	for _, p := range e.Particles {
		p.Life += dt
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel = p.Vel.Scale(drag)
		if p.Life < p.TTL {
			live = append(live, p)
		}
	}
	e.Particles = live

	marks := e.Indicators[:0]
	for _, in := range e.Indicators {
		in.Life += dt
		if in.Progress() < 1 {
			marks = append(marks, in)
		}
	}
	e.Indicators = marks
}
