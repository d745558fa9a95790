package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps a fixed world rectangle with the origin at the bottom-left onto
// the terminal, flipping the y axis.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x]
	shown          []cell // What the terminal currently displays, per cell
	forceRedraw    bool

	worldWidth  float64
	worldHeight float64
	scaleX      float64 // termWidth / worldWidth
	scaleY      float64 // subPixelHeight / worldHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas of termWidth x termHeight cells showing a
// worldWidth x worldHeight area.
func NewCanvas(termWidth, termHeight int, worldWidth, worldHeight float64) *Canvas {
	c := &Canvas{
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the world size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.shown = make([]cell, termHeight*termWidth)
		c.forceRedraw = true
	}

	c.scaleX = float64(c.termWidth) / c.worldWidth
	c.scaleY = float64(c.subPixelHeight) / c.worldHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels in the canvas. The terminal keeps showing the
// previous frame until the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty makes the next Render repaint width cells starting at the
// 1-based canvas position (col, row), so text drawn over the canvas is
// erased once it is no longer written.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+width; x++ {
		if x >= 0 && x < c.termWidth {
			c.shown[row*c.termWidth+x] = cellDirty
		}
	}
}

// toPixel converts world coordinates to sub-pixel coordinates.
func (c *Canvas) toPixel(x, y float64) (float64, float64) {
	return x * c.scaleX, (c.worldHeight - y) * c.scaleY
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Set sets the pixel covering the world position (x, y).
func (c *Canvas) Set(x, y float64) {
	px, py := c.toPixel(x, y)
	c.setPixel(int(math.Floor(px)), int(math.Floor(py)))
}

// DrawLine draws a line between two world points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	fx1, fy1 := c.toPixel(p1.X, p1.Y)
	fx2, fy2 := c.toPixel(p2.X, p2.Y)
	x1, y1 := int(math.Floor(fx1)), int(math.Floor(fy1))
	x2, y2 := int(math.Floor(fx2)), int(math.Floor(fy2))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a closed polygon given in world coordinates.
// If filled is true, the interior is filled using a scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon in sub-pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		x, y := c.toPixel(p.X, p.Y)
		scaled[i] = Point{X: x, Y: y}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Floor(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the cells that changed since the previous Render.
// Cleared cells are overwritten with spaces.
func (c *Canvas) Render(w io.Writer) error {
	var out []byte

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			var cur cell
			if c.pixels[topOffset+col] {
				cur |= cellUpper
			}
			if c.pixels[bottomOffset+col] {
				cur |= cellLower
			}

			idx := row*c.termWidth + col
			if cur == c.shown[idx] && !c.forceRedraw {
				continue
			}
			c.shown[idx] = cur

			out = append(out, "\033["...)
			out = append(out, strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10)...)
			out = append(out, ';')
			out = append(out, strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10)...)
			out = append(out, 'H')
			out = append(out, string(cur.rune())...)
		}
	}
	c.forceRedraw = false

	if len(out) == 0 {
		return nil
	}
	_, err := w.Write(out)
	return err
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions in absolute 1-based terminal coordinates
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	line := make([]rune, c.termWidth)
	for i := range line {
		line[i] = '─'
	}
	horizontal := string(line)

	if hasV {
		if hasH {
			MoveCursor(cw, left, top)
			cw.WriteString("┌" + horizontal + "┐")
			MoveCursor(cw, left, bottom)
			cw.WriteString("└" + horizontal + "┘")
		} else {
			MoveCursor(cw, c.offsetCol+1, top)
			cw.WriteString(horizontal)
			MoveCursor(cw, c.offsetCol+1, bottom)
			cw.WriteString(horizontal)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			MoveCursor(cw, left, row)
			cw.WriteString("│")
			MoveCursor(cw, right, row)
			cw.WriteString("│")
		}
	}
}

// WorldToTerminal converts world coordinates to a 1-based (col, row) inside
// the canvas, suitable for ChunkWriter.WriteAt.
func (c *Canvas) WorldToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return int(math.Floor(px)) + 1, int(math.Floor(py))/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
