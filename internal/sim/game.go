// Package sim implements the flappy game simulation: a single owned aggregate
// advanced by Tick(dt) from an external frame driver. It has no rendering,
// no I/O and no locking; the caller owns the only execution context.
package sim

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// HighScoreStore persists the best score across processes.
// Implementations are best-effort: Load returns 0 when nothing usable is
// stored and Save swallows (and reports elsewhere) its own failures.
type HighScoreStore interface {
	Load() int
	Save(score int)
}

type nopHighScores struct{}

func (nopHighScores) Load() int { return 0 }
func (nopHighScores) Save(int)  {}

// Game implements the simulation state.
type Game struct {
	world     World
	maxDelta  time.Duration
	physics   Physics
	animator  Animator
	spawner   *Spawner
	obstacles *ObstacleManager
	scores    HighScoreStore

	player    Player
	state     State
	score     int
	highScore int
	result    *SessionResult
	tick      uint64        // Ticks simulated in the current session
	elapsed   time.Duration // Running time of the current session
}

// New creates a game in the Idle state. The high score is loaded from
// scores exactly once, here. A nil scores disables persistence.
func New(cfg config.FlappyConfig, rng RandSource, scores HighScoreStore) *Game {
	if scores == nil {
		scores = nopHighScores{}
	}

	g := &Game{
		world: World{
			Width:   cfg.World.Width,
			Height:  cfg.World.Height,
			GroundY: cfg.GroundY(),
		},
		maxDelta:  cfg.MaxDelta(),
		physics:   NewPhysics(cfg),
		animator:  NewAnimator(cfg),
		spawner:   NewSpawner(cfg, rng),
		obstacles: NewObstacleManager(cfg),
		scores:    scores,
		player: Player{
			X:      cfg.Player.X,
			Width:  cfg.Player.Width,
			Height: cfg.Player.Height,
		},
	}
	g.highScore = max(scores.Load(), 0)
	g.reset()
	return g
}

// State returns the current state.
func (g *Game) State() State {
	return g.state
}

// Score returns the current session score.
func (g *Game) Score() int {
	return g.score
}

// HighScore returns the best score known to this process.
func (g *Game) HighScore() int {
	return g.highScore
}

// Apply routes a platform action to the matching command. Actions the
// simulation does not understand, or that are illegal in the current state,
// are ignored. Returns true when the action had an effect.
func (g *Game) Apply(a core.Action) bool {
	switch a {
	case core.ActionFlap:
		return g.Flap()
	case core.ActionDive:
		return g.Dive()
	case core.ActionRestart:
		return g.Restart()
	default:
		return false
	}
}

// Flap sets the upward impulse, starting the session from Idle.
func (g *Game) Flap() bool {
	if !g.prepareImpulse() {
		return false
	}
	g.physics.Flap(&g.player)
	g.animator.Reset(&g.player, FrameWingUp)
	return true
}

// Dive adds the damped downward impulse, starting the session from Idle.
func (g *Game) Dive() bool {
	if !g.prepareImpulse() {
		return false
	}
	g.physics.Dive(&g.player)
	g.animator.Reset(&g.player, FrameWingDown)
	return true
}

// Restart returns a finished session to Idle. It does nothing in any other state.
func (g *Game) Restart() bool {
	if g.state != StateOver {
		return false
	}
	g.reset()
	return true
}

// prepareImpulse reports whether an impulse may be applied, starting the
// session first when the game is idle.
func (g *Game) prepareImpulse() bool {
	switch g.state {
	case StateIdle:
		g.start()
		return true
	case StateRunning:
		return true
	default:
		return false
	}
}

// Tick advances the simulation by dt and returns the resulting snapshot.
// Negative steps are treated as zero and long steps are cut to the
// configured maximum.
func (g *Game) Tick(dt time.Duration) Snapshot {
	dt = max(dt, 0)
	if g.maxDelta > 0 {
		dt = min(dt, g.maxDelta)
	}
	secs := dt.Seconds()

	g.animator.Step(&g.player, secs, g.state == StateRunning)

	if g.state != StateRunning {
		return g.Snapshot()
	}

	g.tick++
	g.elapsed += dt

	if o, ok := g.spawner.Advance(dt); ok {
		g.obstacles.Add(o)
	}

	if grounded := g.physics.Integrate(&g.player, secs); grounded {
		g.gameOver()
		return g.Snapshot()
	}

	g.score += g.obstacles.Scroll(secs, g.player.X)
	g.obstacles.Cull()

	if _, hit := FirstCollision(g.player.Rect(), g.obstacles.Obstacles()); hit {
		g.gameOver()
	}

	return g.Snapshot()
}

// start moves Idle -> Running.
func (g *Game) start() {
	g.state = StateRunning
	g.spawner.Prime()
}

// gameOver moves Running -> Over: freezes the world, settles the high
// score and publishes the session result.
func (g *Game) gameOver() {
	g.state = StateOver

	newBest := g.score > g.highScore
	if newBest {
		g.highScore = g.score
		g.scores.Save(g.score)
	}

	g.result = &SessionResult{
		Score:     g.score,
		HighScore: g.highScore,
		NewBest:   newBest,
		Duration:  g.elapsed,
	}
}

// reset puts the game into a fresh Idle state.
func (g *Game) reset() {
	g.state = StateIdle
	g.obstacles.Clear()
	g.spawner.Reset()
	g.score = 0
	g.result = nil
	g.tick = 0
	g.elapsed = 0

	g.player.Y = g.world.Height / 2
	g.player.Velocity = 0
	g.player.Frame = 0
	g.player.AnimTimer = 0
}
