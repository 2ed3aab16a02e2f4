package core

// Color is a semantic palette entry for a screen cell.
// The platform layer decides how each entry maps to terminal colors.
type Color uint8

// Palette entries used by the renderer.
const (
	ColorDefault Color = iota
	ColorBirdBody
	ColorBirdWing
	ColorBirdBeak
	ColorBirdEye
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorStar
	ColorText
	ColorTextDim
	ColorAccent
)
