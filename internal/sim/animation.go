package sim

import "github.com/vovakirdan/tui-flappy/internal/config"

// Wing frames.
const (
	FrameWingUp   = 0
	FrameWingDown = 1
)

// Animator cycles the wing frames. It runs on every tick regardless of the
// game state so the idle and game-over screens stay alive.
type Animator struct {
	Frames int
	Fast   float64 // Seconds per frame while running
	Slow   float64 // Seconds per frame otherwise
}

// NewAnimator builds the animator from the game configuration.
func NewAnimator(cfg config.FlappyConfig) Animator {
	return Animator{
		Frames: max(cfg.Animation.Frames, 1),
		Fast:   cfg.FastPeriod().Seconds(),
		Slow:   cfg.SlowPeriod().Seconds(),
	}
}

// Step advances the animation timer by dt seconds.
func (a Animator) Step(p *Player, dt float64, running bool) {
	period := a.Slow
	if running {
		period = a.Fast
	}

	p.AnimTimer += dt
	if p.AnimTimer >= period {
		p.AnimTimer = 0
		p.Frame = (p.Frame + 1) % a.Frames
	}
}

// Reset restarts the cycle at the given frame.
func (a Animator) Reset(p *Player, frame int) {
	p.Frame = frame % a.Frames
	p.AnimTimer = 0
}
