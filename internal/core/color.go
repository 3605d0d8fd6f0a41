package core

// Color is the foreground color of a screen cell.
// The terminal shell maps each value to an ANSI 256-color style.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tileColors cycles through the palette by tile exponent: 2 -> index 0, 4 -> 1...
var tileColors = [...]Color{
	ColorWhite,
	ColorBrightYellow,
	ColorYellow,
	ColorOrange,
	ColorBrightRed,
	ColorRed,
	ColorBrightMagenta,
	ColorMagenta,
	ColorBrightCyan,
	ColorCyan,
	ColorBrightGreen,
	ColorGreen,
	ColorBrightBlue,
	ColorBlue,
}

// TileColor returns the color used to draw a tile of the given value.
// Empty cells are gray.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	exp := 0
	for v := value; v > 1; v >>= 1 {
		exp++
	}
	if exp == 0 {
		return ColorDefault
	}
	return tileColors[(exp-1)%len(tileColors)]
}
