package sim

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Player is the flying character. X never changes.
type Player struct {
	X, Y          float64
	Width, Height float64
	Velocity      float64 // Pixels per second, negative = up
	Frame         int     // Wing animation frame
	AnimTimer     float64 // Seconds since the last frame change
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Physics integrates the player's single vertical degree of freedom.
type Physics struct {
	Gravity       float64
	FlapImpulse   float64
	DiveImpulse   float64
	DiveDamping   float64
	MaxVelocity   float64
	CeilingMargin float64
	GroundY       float64
}

// NewPhysics builds the integrator from the game configuration.
func NewPhysics(cfg config.FlappyConfig) Physics {
	return Physics{
		Gravity:       cfg.Physics.Gravity,
		FlapImpulse:   cfg.Physics.FlapImpulse,
		DiveImpulse:   cfg.Physics.DiveImpulse,
		DiveDamping:   cfg.Physics.DiveDamping,
		MaxVelocity:   cfg.Physics.MaxVelocity,
		CeilingMargin: cfg.World.CeilingMargin,
		GroundY:       cfg.GroundY(),
	}
}

// Integrate advances the player by dt seconds and applies the world bounds.
// The ceiling stops the player harmlessly; touching the ground is fatal and
// reported by returning true with the player resting on the ground line.
func (ph Physics) Integrate(p *Player, dt float64) (grounded bool) {
	p.Velocity = ph.clamp(p.Velocity + ph.Gravity*dt)
	p.Y += p.Velocity * dt

	if p.Y < ph.CeilingMargin {
		p.Y = ph.CeilingMargin
		p.Velocity = 0
	}
	if p.Y+p.Height > ph.GroundY {
		p.Y = ph.GroundY - p.Height
		return true
	}
	return false
}

// Flap replaces the velocity with the upward impulse.
func (ph Physics) Flap(p *Player) {
	p.Velocity = ph.FlapImpulse
}

// Dive adds a damped downward impulse.
func (ph Physics) Dive(p *Player) {
	p.Velocity = min(p.Velocity+ph.DiveImpulse*ph.DiveDamping, ph.MaxVelocity)
}

func (ph Physics) clamp(v float64) float64 {
	return core.ClampF(v, -ph.MaxVelocity, ph.MaxVelocity)
}
