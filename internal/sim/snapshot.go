package sim

import (
	"slices"
	"time"
)

// World describes the static playfield geometry.
type World struct {
	Width   float64
	Height  float64
	GroundY float64
}

// SessionResult is published when a session ends. It is a pure read of
// values already settled by the simulation, suitable for a share card.
type SessionResult struct {
	Score     int
	HighScore int
	NewBest   bool
	Duration  time.Duration
}

// Snapshot is everything a stateless renderer needs to draw one frame.
// It never aliases the simulation's internal storage.
type Snapshot struct {
	State     State
	Tick      uint64
	Elapsed   time.Duration
	World     World
	Player    Player
	Obstacles []Obstacle
	Score     int
	HighScore int
	Result    *SessionResult // Non-nil only while Over
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	var result *SessionResult
	if g.result != nil {
		r := *g.result
		result = &r
	}

	return Snapshot{
		State:     g.state,
		Tick:      g.tick,
		Elapsed:   g.elapsed,
		World:     g.world,
		Player:    g.player,
		Obstacles: slices.Clone(g.obstacles.Obstacles()),
		Score:     g.score,
		HighScore: g.highScore,
		Result:    result,
	}
}
