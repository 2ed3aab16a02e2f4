package sim

import (
	"slices"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a vertical barrier with a gap the player must fly through.
type Obstacle struct {
	X       float64 // Left edge, decreases as the world scrolls
	Width   float64
	GapY    float64 // Center of the gap
	GapSize float64
	Passed  bool // Set once the player has cleared it, never reset
}

// Right returns the x-coordinate of the right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// GapTop returns the upper bound of the gap band.
func (o Obstacle) GapTop() float64 {
	return o.GapY - o.GapSize/2
}

// GapBottom returns the lower bound of the gap band.
func (o Obstacle) GapBottom() float64 {
	return o.GapY + o.GapSize/2
}

// TopRect returns the solid part above the gap.
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, max(o.GapTop(), 0))
}

// BottomRect returns the solid part between the gap and the ground.
func (o Obstacle) BottomRect(groundY float64) core.Rect {
	return core.NewRect(o.X, o.GapBottom(), o.Width, max(groundY-o.GapBottom(), 0))
}

// RandSource supplies uniformly distributed values in [0, 1).
// *math/rand.Rand satisfies it; tests inject fixed sequences.
type RandSource interface {
	Float64() float64
}

// Spawner emits obstacles at a fixed cadence using a time accumulator.
// Leftover time is carried over so the long-run spawn rate stays exact
// under variable frame timing.
type Spawner struct {
	rng      RandSource
	interval time.Duration
	preload  float64
	acc      time.Duration

	spawnX  float64
	width   float64
	gapSize float64
	minGapY float64
	maxGapY float64
}

// NewSpawner creates a spawner that places gaps using rng.
func NewSpawner(cfg config.FlappyConfig, rng RandSource) *Spawner {
	return &Spawner{
		rng:      rng,
		interval: cfg.SpawnInterval(),
		preload:  cfg.Speed.SpawnPreload,
		spawnX:   cfg.World.Width + cfg.Obstacles.Width,
		width:    cfg.Obstacles.Width,
		gapSize:  cfg.Obstacles.GapSize,
		minGapY:  cfg.Obstacles.GapMargin,
		maxGapY:  cfg.GroundY() - cfg.Obstacles.GapMargin,
	}
}

// Reset empties the accumulator.
func (s *Spawner) Reset() {
	s.acc = 0
}

// Prime preloads the accumulator so the first obstacle of a session
// arrives sooner than a full interval after the start.
func (s *Spawner) Prime() {
	s.acc = time.Duration(float64(s.interval) * s.preload)
}

// pending returns the time accumulated towards the next spawn.
func (s *Spawner) pending() time.Duration {
	return s.acc
}

// Advance adds dt to the accumulator and returns a new obstacle when the
// interval has been reached.
func (s *Spawner) Advance(dt time.Duration) (Obstacle, bool) {
	s.acc += dt
	if s.acc < s.interval {
		return Obstacle{}, false
	}
	s.acc -= s.interval
	return s.spawn(), true
}

func (s *Spawner) spawn() Obstacle {
	return Obstacle{
		X:       s.spawnX,
		Width:   s.width,
		GapY:    s.minGapY + s.rng.Float64()*(s.maxGapY-s.minGapY),
		GapSize: s.gapSize,
	}
}

// ObstacleManager owns the ordered obstacle collection: oldest first,
// which is also right-to-left order since every obstacle scrolls at the
// same speed.
type ObstacleManager struct {
	obstacles []Obstacle
	speed     float64
	despawnX  float64
}

// NewObstacleManager creates an empty collection.
func NewObstacleManager(cfg config.FlappyConfig) *ObstacleManager {
	return &ObstacleManager{
		obstacles: make([]Obstacle, 0, 8),
		speed:     cfg.Speed.World,
		despawnX:  -cfg.Obstacles.DespawnMargin,
	}
}

// Add appends a freshly spawned obstacle.
func (om *ObstacleManager) Add(o Obstacle) {
	om.obstacles = append(om.obstacles, o)
}

// Clear removes every obstacle.
func (om *ObstacleManager) Clear() {
	om.obstacles = om.obstacles[:0]
}

// Obstacles returns the live obstacles. The slice is reused between ticks.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}

// Scroll moves every obstacle left by dt seconds of world speed and returns
// how many were cleared by the player this tick (right edge left of playerX).
func (om *ObstacleManager) Scroll(dt, playerX float64) (passed int) {
	moveBy := om.speed * dt
	for i := range om.obstacles {
		o := &om.obstacles[i]
		o.X -= moveBy
		if !o.Passed && o.Right() < playerX {
			o.Passed = true
			passed++
		}
	}
	return passed
}

// Cull drops obstacles that have scrolled fully past the left despawn line.
func (om *ObstacleManager) Cull() {
	om.obstacles = slices.DeleteFunc(om.obstacles, func(o Obstacle) bool {
		return o.Right() <= om.despawnX
	})
}
