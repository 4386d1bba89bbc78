package core

// Color is a foreground color for a screen cell, mapped to ANSI 256-color codes by the platform.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Roles used by the game renderer.
const (
	ColorStaff    = ColorGray
	ColorNote     = ColorBrightWhite
	ColorDanger   = ColorBrightRed
	ColorCorrect  = ColorBrightGreen
	ColorMiss     = ColorRed
	ColorReveal   = ColorBrightYellow
	ColorHUD      = ColorCyan
	ColorHint     = ColorGray
	ColorGameOver = ColorOrange
)
