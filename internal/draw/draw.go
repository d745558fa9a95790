// Package draw renders world coordinates onto a terminal using half-block cells.
package draw

// Point is a position in world coordinates (y grows upwards).
type Point struct {
	X, Y float64
}

// Shade characters from lightest to darkest.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return shades[0]
	}
	if intensity >= 1 {
		return shades[len(shades)-1]
	}
	idx := int(intensity * float64(len(shades)-1))
	return shades[idx]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// cell is the half-block content of a single terminal cell.
type cell uint8

const (
	cellEmpty cell = iota
	cellUpper
	cellLower
	cellFull
	cellDirty // Never produced by pixels; forces a repaint
)

func (c cell) rune() rune {
	switch c {
	case cellUpper:
		return BlockUpperHalf
	case cellLower:
		return BlockLowerHalf
	case cellFull:
		return BlockFull
	}
	return BlockEmpty
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
