package core

// Color represents a foreground color for a screen cell.
// The TUI maps each value onto an ANSI 256-color code.
type Color uint8

const (
	ColorDefault       Color = iota
	ColorRed                 // ability counter while active
	ColorGreen               // plain platforms
	ColorYellow              // countdown
	ColorCyan                // spring platforms
	ColorOrange              // breakable platforms
	ColorBrightYellow        // springs, score
	ColorBrightMagenta       // player while floating
	ColorBrightWhite         // player
	ColorGray                // status lines and hints
)
