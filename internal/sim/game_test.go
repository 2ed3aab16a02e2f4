package sim

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

type recordingScores struct {
	loaded int
	saved  []int
}

func (r *recordingScores) Load() int { return r.loaded }
func (r *recordingScores) Save(score int) {
	r.saved = append(r.saved, score)
	r.loaded = score
}

func newTestGame(scores HighScoreStore) *Game {
	return New(config.DefaultFlappyConfig(), fixedRand(0.5), scores)
}

func TestNewGameIsIdle(t *testing.T) {
	g := newTestGame(nil)
	snap := g.Snapshot()

	if snap.State != StateIdle {
		t.Errorf("Expected Idle, got %s", snap.State)
	}
	if snap.Player.Y != snap.World.Height/2 {
		t.Errorf("Expected player at vertical center %.1f, got %.1f", snap.World.Height/2, snap.Player.Y)
	}
	if snap.Player.Velocity != 0 {
		t.Errorf("Expected zero velocity, got %.1f", snap.Player.Velocity)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("Expected no obstacles, got %d", len(snap.Obstacles))
	}
	if snap.Result != nil {
		t.Error("Expected no session result while Idle")
	}
}

func TestIdleTickDoesNotMoveWorld(t *testing.T) {
	g := newTestGame(nil)
	before := g.Snapshot()

	for range 100 {
		g.Tick(16 * time.Millisecond)
	}

	after := g.Snapshot()
	if after.State != StateIdle {
		t.Fatalf("Expected Idle, got %s", after.State)
	}
	if after.Player.Y != before.Player.Y || after.Tick != 0 {
		t.Errorf("Idle ticks moved the simulation: y %.1f -> %.1f, tick %d", before.Player.Y, after.Player.Y, after.Tick)
	}
	if after.Player.Frame == before.Player.Frame && after.Player.AnimTimer == before.Player.AnimTimer {
		t.Error("Expected idle animation to keep running")
	}
}

func TestFlapStartsSession(t *testing.T) {
	g := newTestGame(nil)

	if !g.Flap() {
		t.Fatal("Flap from Idle should be accepted")
	}
	if g.State() != StateRunning {
		t.Errorf("Expected Running, got %s", g.State())
	}
	if g.spawner.pending() == 0 {
		t.Error("Expected spawner to be primed on start")
	}
}

func TestDiveStartsSession(t *testing.T) {
	g := newTestGame(nil)

	if !g.Dive() {
		t.Fatal("Dive from Idle should be accepted")
	}
	if g.State() != StateRunning {
		t.Errorf("Expected Running, got %s", g.State())
	}

	snap := g.Snapshot()
	want := 520 * 0.6
	if math.Abs(snap.Player.Velocity-want) > 1e-9 {
		t.Errorf("Expected dive velocity %.1f, got %.1f", want, snap.Player.Velocity)
	}
	if snap.Player.Frame != FrameWingDown {
		t.Errorf("Expected wing-down frame after dive, got %d", snap.Player.Frame)
	}
}

func TestVelocityStaysClamped(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	limit := cfg.Physics.MaxVelocity

	tests := []struct {
		name  string
		input func(g *Game)
	}{
		{"dive every tick", func(g *Game) { g.Dive() }},
		{"flap every tick", func(g *Game) { g.Flap() }},
		{"free fall", func(g *Game) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(cfg, fixedRand(0.5), nil)
			g.start()
			for i := 0; i < 2000 && g.State() == StateRunning; i++ {
				tt.input(g)
				snap := g.Tick(16 * time.Millisecond)
				if v := snap.Player.Velocity; v < -limit || v > limit {
					t.Fatalf("tick %d: velocity %.1f outside [%.0f, %.0f]", i, v, -limit, limit)
				}
			}
		})
	}
}

func TestFreeFallEndsSession(t *testing.T) {
	g := newTestGame(nil)
	g.start()

	var snap Snapshot
	for i := 0; i < 2000 && g.State() == StateRunning; i++ {
		snap = g.Tick(time.Millisecond)
	}

	if snap.State != StateOver {
		t.Fatalf("Expected Over, got %s", snap.State)
	}

	// Drop from the center until the bottom edge reaches the ground line.
	cfg := config.DefaultFlappyConfig()
	drop := cfg.GroundY() - cfg.World.Height/2 - cfg.Player.Height
	want := math.Sqrt(2 * drop / cfg.Physics.Gravity)
	if got := snap.Elapsed.Seconds(); math.Abs(got-want) > 0.005 {
		t.Errorf("Expected impact after %.4fs, got %.4fs", want, got)
	}

	if snap.Score != 0 {
		t.Errorf("No obstacle reaches the player before impact, expected score 0, got %d", snap.Score)
	}
	if snap.Result == nil {
		t.Fatal("Expected a session result on Over")
	}
	if snap.Result.Score != snap.Score {
		t.Errorf("Result score %d does not match score %d", snap.Result.Score, snap.Score)
	}
	if snap.Player.Y+snap.Player.Height != cfg.GroundY() {
		t.Errorf("Expected player resting on the ground, bottom at %.1f", snap.Player.Y+snap.Player.Height)
	}
}

func TestFreeFallScoresPassedObstacles(t *testing.T) {
	g := newTestGame(nil)
	g.start()

	// Two obstacles about to clear the player and one that never reaches it.
	// The gap band covers the whole fall, so only the ground ends the session.
	g.obstacles.Add(Obstacle{X: 60, Width: 64, GapY: 250, GapSize: 480})
	g.obstacles.Add(Obstacle{X: 100, Width: 64, GapY: 250, GapSize: 480})
	g.obstacles.Add(Obstacle{X: 600, Width: 64, GapY: 250, GapSize: 480})

	var snap Snapshot
	for i := 0; i < 2000 && g.State() == StateRunning; i++ {
		snap = g.Tick(time.Millisecond)
	}

	if snap.State != StateOver {
		t.Fatalf("Expected Over, got %s", snap.State)
	}

	passed := 0
	for _, o := range snap.Obstacles {
		if o.Passed {
			passed++
		}
	}
	if passed != 2 {
		t.Errorf("Expected 2 obstacles passed before impact, got %d", passed)
	}
	if snap.Result == nil {
		t.Fatal("Expected a session result on Over")
	}
	if snap.Result.Score != passed {
		t.Errorf("Expected result score %d, got %d", passed, snap.Result.Score)
	}

	cfg := config.DefaultFlappyConfig()
	if snap.Player.Y+snap.Player.Height != cfg.GroundY() {
		t.Errorf("Expected the ground to end the session, bottom at %.1f", snap.Player.Y+snap.Player.Height)
	}
}

func TestOverFreezesWorld(t *testing.T) {
	g := newTestGame(nil)
	g.start()
	for i := 0; i < 2000 && g.State() == StateRunning; i++ {
		g.Tick(10 * time.Millisecond)
	}
	if g.State() != StateOver {
		t.Fatalf("Expected Over, got %s", g.State())
	}

	before := g.Snapshot()
	if g.Flap() {
		t.Error("Flap must be ignored while Over")
	}
	if g.Dive() {
		t.Error("Dive must be ignored while Over")
	}
	after := g.Tick(50 * time.Millisecond)

	if after.Player.Y != before.Player.Y || after.Player.Velocity != before.Player.Velocity {
		t.Error("Player moved after game over")
	}
	if after.Tick != before.Tick || after.Elapsed != before.Elapsed {
		t.Error("Session clock advanced after game over")
	}
}

func TestRestartFromOver(t *testing.T) {
	g := newTestGame(nil)
	g.start()
	for i := 0; i < 2000 && g.State() == StateRunning; i++ {
		g.Tick(10 * time.Millisecond)
	}

	if !g.Restart() {
		t.Fatal("Restart from Over should be accepted")
	}

	snap := g.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("Expected Idle after restart, got %s", snap.State)
	}
	if snap.Score != 0 || snap.Tick != 0 || snap.Elapsed != 0 {
		t.Errorf("Expected a fresh session, got score=%d tick=%d elapsed=%s", snap.Score, snap.Tick, snap.Elapsed)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("Expected obstacles cleared, got %d", len(snap.Obstacles))
	}
	if snap.Player.Y != snap.World.Height/2 || snap.Player.Velocity != 0 {
		t.Errorf("Expected player recentered at rest, got y=%.1f v=%.1f", snap.Player.Y, snap.Player.Velocity)
	}
	if snap.Result != nil {
		t.Error("Expected session result cleared")
	}
	if g.spawner.pending() != 0 {
		t.Errorf("Expected spawner reset, pending %s", g.spawner.pending())
	}
}

func TestRestartWhileIdleIsNoop(t *testing.T) {
	g := newTestGame(nil)
	before := g.Snapshot()

	if g.Restart() {
		t.Error("Restart while Idle should report no effect")
	}

	after := g.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Restart while Idle changed state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRestartWhileRunningIsNoop(t *testing.T) {
	g := newTestGame(nil)
	g.Flap()
	g.Tick(16 * time.Millisecond)
	before := g.Snapshot()

	if g.Restart() {
		t.Error("Restart while Running should report no effect")
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("Restart while Running changed state")
	}
}

func TestDoubleFlapResetsAnimation(t *testing.T) {
	g := newTestGame(nil)
	cfg := config.DefaultFlappyConfig()

	g.Dive()
	if g.player.Frame != FrameWingDown {
		t.Fatalf("Expected wing-down frame after dive, got %d", g.player.Frame)
	}

	g.Flap()
	if g.player.Frame != FrameWingUp || g.player.AnimTimer != 0 {
		t.Errorf("First flap: expected frame 0 with reset timer, got frame %d timer %.3f", g.player.Frame, g.player.AnimTimer)
	}

	g.Tick(50 * time.Millisecond)
	g.Flap()

	if g.player.Frame != FrameWingUp || g.player.AnimTimer != 0 {
		t.Errorf("Second flap: expected frame 0 with reset timer, got frame %d timer %.3f", g.player.Frame, g.player.AnimTimer)
	}
	if g.player.Velocity != cfg.Physics.FlapImpulse {
		t.Errorf("Expected velocity exactly %.1f, got %v", cfg.Physics.FlapImpulse, g.player.Velocity)
	}
}

func TestPassedObstacleScoresOnce(t *testing.T) {
	g := newTestGame(nil)
	g.start()

	// Wide gap around the player, right edge just ahead of the player's x.
	g.obstacles.Add(Obstacle{
		X:       g.player.X - 64 + 1,
		Width:   64,
		GapY:    g.player.Y + g.player.Height/2,
		GapSize: 300,
	})

	snap := g.Tick(10 * time.Millisecond)
	if snap.Score != 1 {
		t.Fatalf("Expected score 1 after clearing the obstacle, got %d", snap.Score)
	}
	if !snap.Obstacles[0].Passed {
		t.Error("Expected obstacle marked passed")
	}

	for range 5 {
		g.Flap()
		snap = g.Tick(10 * time.Millisecond)
	}
	if snap.Score != 1 {
		t.Errorf("Obstacle scored more than once, score %d", snap.Score)
	}
}

func TestCollisionEndsSession(t *testing.T) {
	g := newTestGame(nil)
	g.start()

	// Gap far above the player, overlapping horizontally.
	g.obstacles.Add(Obstacle{X: g.player.X, Width: 64, GapY: 60, GapSize: 40})

	snap := g.Tick(10 * time.Millisecond)
	if snap.State != StateOver {
		t.Errorf("Expected Over after hitting an obstacle, got %s", snap.State)
	}
}

func TestHighScoreSavedOnNewBest(t *testing.T) {
	scores := &recordingScores{}
	g := newTestGame(scores)
	g.start()
	g.obstacles.Add(Obstacle{X: g.player.X - 63, Width: 64, GapY: g.player.Y, GapSize: 300})

	for i := 0; i < 2000 && g.State() == StateRunning; i++ {
		g.Tick(10 * time.Millisecond)
	}

	snap := g.Snapshot()
	if snap.Score != 1 {
		t.Fatalf("Expected score 1, got %d", snap.Score)
	}
	if !reflect.DeepEqual(scores.saved, []int{1}) {
		t.Errorf("Expected exactly one save of 1, got %v", scores.saved)
	}
	if snap.Result == nil || !snap.Result.NewBest || snap.Result.HighScore != 1 {
		t.Errorf("Expected new best result, got %+v", snap.Result)
	}

	// A later process sees the stored value.
	next := newTestGame(scores)
	if next.HighScore() != 1 {
		t.Errorf("Expected high score 1 loaded at startup, got %d", next.HighScore())
	}
}

func TestHighScoreKeptWhenNotBeaten(t *testing.T) {
	scores := &recordingScores{loaded: 7}
	g := newTestGame(scores)
	g.start()

	for i := 0; i < 2000 && g.State() == StateRunning; i++ {
		g.Tick(10 * time.Millisecond)
	}

	if len(scores.saved) != 0 {
		t.Errorf("Expected no save, got %v", scores.saved)
	}
	res := g.Snapshot().Result
	if res == nil || res.NewBest || res.HighScore != 7 {
		t.Errorf("Expected high score 7 kept, got %+v", res)
	}
}

func TestApplyRoutesActions(t *testing.T) {
	g := newTestGame(nil)

	if g.Apply(core.ActionQuit) {
		t.Error("Quit is not a simulation command")
	}
	if g.Apply(core.ActionRestart) {
		t.Error("Restart while Idle should be ignored")
	}
	if !g.Apply(core.ActionFlap) || g.State() != StateRunning {
		t.Error("Flap action should start the session")
	}
	if !g.Apply(core.ActionDive) {
		t.Error("Dive action should be accepted while Running")
	}
}

func TestTickClampsDelta(t *testing.T) {
	g := newTestGame(nil)
	g.Flap()

	snap := g.Tick(5 * time.Second)
	if snap.Elapsed != config.DefaultFlappyConfig().MaxDelta() {
		t.Errorf("Expected step clamped to %s, got %s", config.DefaultFlappyConfig().MaxDelta(), snap.Elapsed)
	}

	snap = g.Tick(-time.Second)
	if snap.Elapsed != config.DefaultFlappyConfig().MaxDelta() {
		t.Errorf("Negative step advanced the clock to %s", snap.Elapsed)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestGame(nil)
	g.start()
	g.obstacles.Add(Obstacle{X: 500, Width: 64, GapY: 200, GapSize: 120})

	snap := g.Snapshot()
	snap.Obstacles[0].X = -1000

	if g.obstacles.Obstacles()[0].X != 500 {
		t.Error("Mutating a snapshot changed the simulation")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New(config.DefaultFlappyConfig(), rand.New(rand.NewSource(12345)), nil)
		var snap Snapshot
		for i := range 600 {
			if i%22 == 0 {
				g.Flap()
			}
			snap = g.Tick(16 * time.Millisecond)
			if snap.State == StateOver {
				break
			}
		}
		return snap
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Determinism failed:\nrun1 %+v\nrun2 %+v", a, b)
	}
}
