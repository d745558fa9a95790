package physics

import (
	"math"
	"slices"
)

// SpatialGrid is a uniform grid for broad-phase collision detection.
// Items are inserted by position and index, then nearby items can be
// queried via a 3x3 neighborhood lookup.
//
// Cell size must be >= the largest reach (sum of radii) between any two
// items tested against each other, so every overlapping pair lands in
// neighboring cells.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int
}

// NewSpatialGrid creates a grid covering a width x height playfield.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item index at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item in the 3x3 neighborhood of (x, y).
// The neighborhood wraps at the playfield edges. Returning true from fn
// stops the iteration.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	// Small grids would visit the same cell twice when wrapping.
	seen := [9]int{}
	n := 0

	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			cell := r*g.cols + c
			if slices.Contains(seen[:n], cell) {
				continue
			}
			seen[n] = cell
			n++

			for _, item := range g.cells[cell] {
				if fn(item) {
					return
				}
			}
		}
	}
}

// Candidates appends the indices near (x, y) to buf in ascending order.
// Sorting keeps collection order for first-match rules.
func (g *SpatialGrid) Candidates(x, y float64, buf []int) []int {
	buf = buf[:0]
	g.QueryAround(x, y, func(index int) bool {
		buf = append(buf, index)
		return false
	})
	slices.Sort(buf)
	return buf
}

// posToCell converts a position to cell coordinates, clamping
// out-of-range values onto the border cells.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
