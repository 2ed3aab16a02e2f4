package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorBirdBody: lipgloss.NewStyle().Foreground(lipgloss.Color("#f9d64c")).Bold(true),
	core.ColorBirdWing: lipgloss.NewStyle().Foreground(lipgloss.Color("#f4b641")),
	core.ColorBirdBeak: lipgloss.NewStyle().Foreground(lipgloss.Color("#f79d2a")),
	core.ColorBirdEye:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
	core.ColorPipe:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f2f2f2")),
	core.ColorPipeCap:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6b6b6b")),
	core.ColorGround:   lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")),
	core.ColorStar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#eaeaea")),
	core.ColorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f0f0f0")).Bold(true),
	core.ColorTextDim:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9d9d9d")),
	core.ColorAccent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c542")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
