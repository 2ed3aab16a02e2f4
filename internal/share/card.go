// Package share renders the end-of-session share card as a PNG image and as
// plain text, and exports both to disk.
package share

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Card geometry in pixels.
const (
	Width  = 480
	Height = 270

	inset  = 14
	border = 4
)

// Card text.
const (
	Title  = "FLAPPY BIRD"
	Tag    = "#FlappyBird"
	Slogan = "terminal vibes - offline flaps"
)

// FilePrefix starts every exported file name.
const FilePrefix = "flappy-bird-"

var (
	colorBackground = color.RGBA{0x12, 0x12, 0x12, 0xff}
	colorPanelTop   = color.RGBA{0x1c, 0x1c, 0x1c, 0xff}
	colorBorder     = color.RGBA{0x2d, 0x2d, 0x2d, 0xff}
	colorTitle      = color.RGBA{0xf2, 0xf2, 0xf2, 0xff}
	colorScore      = color.RGBA{0x9d, 0x9d, 0x9d, 0xff}
	colorFooter     = color.RGBA{0x66, 0x66, 0x66, 0xff}
)

// Card holds the values printed on a share card.
type Card struct {
	Score     int
	HighScore int
	NewBest   bool
	When      time.Time
}

// FromResult builds a card from a finished session.
func FromResult(r sim.SessionResult, when time.Time) Card {
	return Card{
		Score:     r.Score,
		HighScore: r.HighScore,
		NewBest:   r.NewBest,
		When:      when,
	}
}

// ScoreLine returns the zero-padded score line.
func (c Card) ScoreLine() string {
	return fmt.Sprintf("Score %05d", c.Score)
}

// BestLine returns the zero-padded high score line.
func (c Card) BestLine() string {
	return fmt.Sprintf("Best  %05d", c.HighScore)
}

// Text renders the card as bordered text with the same layout as Image.
// It carries no escape sequences, so it is safe to write to files.
func (c Card) Text() string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	lines := []string{Title, "", c.ScoreLine(), c.BestLine()}
	if c.NewBest {
		lines = append(lines, "", "NEW BEST!")
	}
	lines = append(lines, "", Tag, Slogan)

	return r.NewStyle().
		Border(lipgloss.ThickBorder()).
		Padding(1, 4).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// Image renders the card as an RGBA image.
func (c Card) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	panel := image.Rect(inset, inset, Width-inset, Height-inset)
	for y := panel.Min.Y; y < panel.Max.Y; y++ {
		t := float64(y-panel.Min.Y) / float64(panel.Dy())
		row := image.Rect(panel.Min.X, y, panel.Max.X, y+1)
		draw.Draw(img, row, image.NewUniform(lerp(colorPanelTop, colorBackground, t)), image.Point{}, draw.Src)
	}
	strokeRect(img, panel, border, colorBorder)

	center := Width / 2
	drawText(img, Title, center, 86, 3, colorTitle)
	drawText(img, c.ScoreLine(), center, 148, 2, colorScore)
	drawText(img, c.BestLine(), center, 192, 2, colorScore)
	drawText(img, Tag, center, Height-48, 1, colorFooter)
	drawText(img, Slogan, center, Height-28, 1, colorFooter)

	return img
}

// EncodePNG writes the card image as PNG.
func (c Card) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("share: cannot encode png: %w", err)
	}
	return nil
}

// Files lists the paths written by Export.
type Files struct {
	PNG  string
	Text string
}

// Export writes the card as <dir>/flappy-bird-<unix-ms>.png and a matching
// .txt next to it. dir is used as given; callers expand ~.
func Export(dir string, c Card) (Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("share: cannot create directory %s: %w", dir, err)
	}

	when := c.When
	if when.IsZero() {
		when = time.Now()
	}
	base := filepath.Join(dir, fmt.Sprintf("%s%d", FilePrefix, when.UnixMilli()))
	files := Files{PNG: base + ".png", Text: base + ".txt"}

	f, err := os.Create(files.PNG)
	if err != nil {
		return Files{}, fmt.Errorf("share: cannot create %s: %w", files.PNG, err)
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return Files{}, err
	}
	if err := f.Close(); err != nil {
		return Files{}, fmt.Errorf("share: cannot write %s: %w", files.PNG, err)
	}

	if err := os.WriteFile(files.Text, []byte(c.Text()+"\n"), 0o644); err != nil {
		return Files{}, fmt.Errorf("share: cannot write %s: %w", files.Text, err)
	}

	return files, nil
}

// drawText draws s horizontally centered on cx with its baseline at y,
// upscaling the bitmap font by an integer factor.
func drawText(dst *image.RGBA, s string, cx, y, scale int, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face, Src: image.NewUniform(col)}

	w := d.MeasureString(s).Ceil()
	ascent := face.Ascent
	descent := face.Descent

	glyphs := image.NewRGBA(image.Rect(0, 0, w, ascent+descent))
	d.Dst = glyphs
	d.Dot = fixed.P(0, ascent)
	d.DrawString(s)

	x0 := cx - w*scale/2
	target := image.Rect(x0, y-ascent*scale, x0+w*scale, y+descent*scale)
	xdraw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, width int, col color.Color) {
	src := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}
