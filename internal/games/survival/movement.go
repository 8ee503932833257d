package survival

import (
	"math"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
)

// Movement holds the arrival/acceleration parameters of the player.
type Movement struct {
	Accel          float64
	Decel          float64
	ArriveRadius   float64
	StopRadius     float64
	MinArriveScale float64
	Margin         float64 // Gap between the body and the world edge
}

func movementFromConfig(mv config.MovementConfig, margin float64) Movement {
	return Movement{
		Accel:          mv.Accel,
		Decel:          mv.Decel,
		ArriveRadius:   mv.ArriveRadius,
		StopRadius:     mv.StopRadius,
		MinArriveScale: mv.MinArriveScale,
		Margin:         margin,
	}
}

// Advance moves the player one step of dt seconds inside a w×h world.
//
// With a target, desired velocity points at it at cruise speed, damped
// inside the arrive radius; inside the stop radius the target is cleared.
// Velocity chases the desired velocity with a per-axis clamped step.
// Without a target, speed bleeds toward zero by Decel*dt, scaling both
// axes so the velocity never flips sign. Speed is then capped, the
// position integrated, and the body clamped inside the world.
func (m Movement) Advance(p *Player, w, h, dt float64) {
	var desired core.Vec
	if p.Target != nil {
		to := p.Target.Sub(p.Pos)
		d := to.Len()
		if d > 1e-3 {
			desired = to.Scale(p.Speed / d)
		}
		if d < m.ArriveRadius {
			desired = desired.Scale(core.ClampF(d/m.ArriveRadius, m.MinArriveScale, 1.0))
		}
		if d < m.StopRadius {
			p.Target = nil
			desired = core.Vec{}
		}
	}

	ax := core.ClampF(desired.X-p.Vel.X, -m.Accel, m.Accel)
	ay := core.ClampF(desired.Y-p.Vel.Y, -m.Accel, m.Accel)
	p.Vel.X += ax * dt
	p.Vel.Y += ay * dt

	if p.Target == nil {
		if v := p.Vel.Len(); v > 0 {
			nv := math.Max(0, v-m.Decel*dt)
			p.Vel = p.Vel.Scale(nv / v)
		}
	}

	if v := p.Vel.Len(); v > p.MaxVel {
		p.Vel = p.Vel.Scale(p.MaxVel / v)
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	pad := p.Radius + m.Margin
	p.Pos.X = clampAxis(p.Pos.X, pad, w-pad)
	p.Pos.Y = clampAxis(p.Pos.Y, pad, h-pad)
}

// clampAxis clamps v to [lo, hi]; a world narrower than the body pins
// it to the midpoint.
func clampAxis(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return core.ClampF(v, lo, hi)
}
