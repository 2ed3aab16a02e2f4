package tui

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Screen layout: one HUD row on top of the playfield.
const (
	hudRows   = 1
	minFieldH = 6
	minFieldW = 24
	starCount = 18
)

// Idle prompt and game-over card text.
const (
	titleText   = "FLAPPY BIRD"
	startText   = "Press ↑ to start"
	hintText    = "Hold ↑ to soar • Press ↓ to dive"
	overText    = "GAME OVER"
	newBestText = "NEW BEST!"
	againText   = "enter restart • s share"
)

// birdSprites holds one sprite per wing frame, tail to beak.
var birdSprites = [][]rune{
	sim.FrameWingUp:   []rune("<^o>"),
	sim.FrameWingDown: []rune("<vo>"),
}

var birdColors = []core.Color{core.ColorBirdBody, core.ColorBirdWing, core.ColorBirdEye, core.ColorBirdBeak}

type star struct {
	x, y float64 // World coordinates
	big  bool
}

// HUD carries the platform state drawn around the playfield.
type HUD struct {
	ShowFPS bool
	FPS     float64
	Frames  uint64
	Status  string // Transient message, e.g. where a share card was saved
}

// Renderer draws simulation snapshots into a character screen.
// It keeps no simulation state, only its own decorative starfield.
type Renderer struct {
	stars []star
}

// NewRenderer creates a renderer with a starfield placed by seed over the
// upper half of the world.
func NewRenderer(seed int64, world sim.World) *Renderer {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]star, starCount)
	for i := range stars {
		stars[i] = star{
			x:   rng.Float64() * world.Width,
			y:   rng.Float64() * world.Height / 2,
			big: rng.Float64() > 0.7,
		}
	}
	return &Renderer{stars: stars}
}

// viewport maps world pixels to screen cells.
type viewport struct {
	x0, y0 int
	w, h   int
	sx, sy float64
}

func newViewport(scr *core.Screen, world sim.World) viewport {
	w := scr.Width()
	h := scr.Height() - hudRows
	return viewport{
		x0: 0,
		y0: hudRows,
		w:  w,
		h:  h,
		sx: float64(w) / world.Width,
		sy: float64(h) / world.Height,
	}
}

func (v viewport) col(x float64) int {
	return v.x0 + int(math.Floor(x*v.sx))
}

func (v viewport) row(y float64) int {
	return v.y0 + int(math.Floor(y*v.sy))
}

// Draw renders one frame.
func (r *Renderer) Draw(scr *core.Screen, snap sim.Snapshot, hud HUD) {
	scr.Clear()

	if scr.Width() < minFieldW || scr.Height()-hudRows < minFieldH {
		scr.DrawTextColored(0, 0, "Terminal too small", core.ColorTextDim)
		return
	}

	vp := newViewport(scr, snap.World)

	r.drawBackground(scr, vp, snap.World)
	for _, o := range snap.Obstacles {
		drawObstacle(scr, vp, o, snap.World.GroundY)
	}
	if snap.State != sim.StateOver {
		drawBird(scr, vp, snap.Player)
	}

	switch snap.State {
	case sim.StateIdle:
		drawIdlePrompt(scr, vp)
	case sim.StateOver:
		drawOverCard(scr, vp, snap)
	}

	drawHUD(scr, snap, hud)
}

func (r *Renderer) drawBackground(scr *core.Screen, vp viewport, world sim.World) {
	for _, s := range r.stars {
		ch := '.'
		if s.big {
			ch = '*'
		}
		scr.SetColored(vp.col(s.x), vp.row(s.y), ch, core.ColorStar)
	}

	ground := vp.row(world.GroundY)
	scr.DrawHLine(vp.x0, ground, vp.w, '▔', core.ColorGround)
	scr.FillRect(vp.x0, ground+1, vp.x0+vp.w, vp.y0+vp.h, '░', core.ColorGround)
}

// drawObstacle fills the solid parts the simulation collides with, each
// with a darker lip facing the gap.
func drawObstacle(scr *core.Screen, vp viewport, o sim.Obstacle, groundY float64) {
	top := o.TopRect()
	bottom := o.BottomRect(groundY)

	x0 := vp.col(top.Left())
	x1 := max(vp.col(top.Right()), x0+1)

	gapTop := vp.row(top.Bottom())
	scr.FillRect(x0, vp.row(top.Top()), x1, gapTop, '█', core.ColorPipe)
	scr.FillRect(x0, max(gapTop-1, vp.y0), x1, gapTop, '▀', core.ColorPipeCap)

	gapBottom := vp.row(bottom.Top())
	scr.FillRect(x0, gapBottom+1, x1, vp.row(bottom.Bottom()), '█', core.ColorPipe)
	scr.FillRect(x0, gapBottom, x1, gapBottom+1, '▄', core.ColorPipeCap)
}

func drawBird(scr *core.Screen, vp viewport, p sim.Player) {
	sprite := birdSprites[p.Frame%len(birdSprites)]
	x := vp.col(p.X)
	y := vp.row(p.Y + p.Height/2)
	for i, ch := range sprite {
		scr.SetColored(x+i, y, ch, birdColors[i%len(birdColors)])
	}
}

func drawIdlePrompt(scr *core.Screen, vp viewport) {
	mid := vp.y0 + vp.h/2
	scr.DrawTextCentered(mid-2, titleText, core.ColorText)
	scr.DrawTextCentered(mid, startText, core.ColorTextDim)
	scr.DrawTextCentered(mid+1, hintText, core.ColorTextDim)
}

type cardLine struct {
	text  string
	color core.Color
}

func drawOverCard(scr *core.Screen, vp viewport, snap sim.Snapshot) {
	lines := []cardLine{
		{overText, core.ColorText},
		{fmt.Sprintf("Score %05d", snap.Score), core.ColorTextDim},
		{fmt.Sprintf("Best  %05d", snap.HighScore), core.ColorTextDim},
	}
	if snap.Result != nil && snap.Result.NewBest {
		lines = append(lines, cardLine{newBestText, core.ColorAccent})
	}
	lines = append(lines, cardLine{againText, core.ColorTextDim})

	w := len([]rune(againText)) + 4
	h := len(lines) + 2
	x := (scr.Width() - w) / 2
	y := vp.y0 + (vp.h-h)/2

	scr.FillRect(x, y, x+w, y+h, ' ', core.ColorDefault)
	scr.DrawBox(x, y, w, h, core.ColorTextDim)
	for i, l := range lines {
		scr.DrawTextCentered(y+1+i, l.text, l.color)
	}
}

func drawHUD(scr *core.Screen, snap sim.Snapshot, hud HUD) {
	left := fmt.Sprintf("SCORE %05d  BEST %05d", snap.Score, snap.HighScore)
	scr.DrawTextColored(1, 0, left, core.ColorText)

	right := ""
	if hud.ShowFPS {
		right = fmt.Sprintf("%3.0f fps  #%d", hud.FPS, hud.Frames)
	}
	if hud.Status != "" {
		if right != "" {
			right = hud.Status + "  " + right
		} else {
			right = hud.Status
		}
	}
	if right != "" {
		scr.DrawTextColored(scr.Width()-len([]rune(right))-1, 0, right, core.ColorTextDim)
	}
}
