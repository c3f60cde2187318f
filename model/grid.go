package model

import (
	"math/rand"
	"time"

	"github.com/sheikhrachel/go-life/rules"
)

// Cell is the state of a single grid position
type Cell bool

const (
	Dead  Cell = false
	Alive Cell = true
)

// DefaultDensity is the share of live cells produced by NewRandomGrid when callers
// have no preference.
const DefaultDensity = 0.3

// NeighborOffsets are the (row, col) deltas of the Moore neighborhood.
var NeighborOffsets = [8][2]int{
	{0, 1},
	{0, -1},
	{1, -1},
	{-1, 1},
	{1, 1},
	{-1, -1},
	{1, 0},
	{-1, 0},
}

// Grid is an immutable game board. Every operation that changes cells returns a new
// Grid; rows that did not change may be shared between grids, so no row is ever
// written after construction.
type Grid struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewEmptyGrid creates a grid with every cell dead. Dimensions below 1 are raised to 1.
func NewEmptyGrid(rows, cols int) *Grid {
	rows, cols = max(rows, 1), max(cols, 1)
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// NewRandomGrid creates a grid where each cell is independently alive with the given
// probability. A nil rng falls back to a time-seeded source.
func NewRandomGrid(rows, cols int, density float64, rng *rand.Rand) *Grid {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := NewEmptyGrid(rows, cols)
	for r := range g.rows {
		for c := range g.cols {
			g.cells[r][c] = Cell(rng.Float64() < density)
		}
	}
	return g
}

// NewGridFromCells creates a grid whose live cells are exactly the given (row, col)
// coordinates.
func NewGridFromCells(rows, cols int, alive [][2]int) (*Grid, error) {
	g := NewEmptyGrid(rows, cols)
	for _, rc := range alive {
		if !g.InBounds(rc[0], rc[1]) {
			return nil, outOfRange(g, rc[0], rc[1])
		}
		g.cells[rc[0]][rc[1]] = Alive
	}
	return g, nil
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (row, col) addresses a cell of the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the state of a cell, Dead for coordinates outside the grid
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Dead
	}
	return g.cells[row][col]
}

// Cells returns a copy of the cell matrix, indexed [row][col]
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, g.rows)
	for r := range out {
		out[r] = append([]Cell(nil), g.cells[r]...)
	}
	return out
}

// Toggle returns a new grid with the cell at (row, col) flipped. The receiver is left
// untouched.
func (g *Grid) Toggle(row, col int) (*Grid, error) {
	if !g.InBounds(row, col) {
		return nil, outOfRange(g, row, col)
	}
	next := g.shallowCopy()
	line := append([]Cell(nil), g.cells[row]...)
	line[col] = !line[col]
	next.cells[row] = line
	return next, nil
}

// CountLiveNeighbors counts living cells in the Moore neighborhood of (row, col).
// Offsets that fall outside the grid count as dead.
func (g *Grid) CountLiveNeighbors(row, col int) int {
	count := 0
	for _, off := range NeighborOffsets {
		r, c := row+off[0], col+off[1]
		if g.InBounds(r, c) && g.cells[r][c] == Alive {
			count++
		}
	}
	return count
}

// Step calculates the next generation. Every cell is evaluated against the receiver,
// never against partially updated output.
func (g *Grid) Step() *Grid {
	next := NewEmptyGrid(g.rows, g.cols)
	for r := range g.rows {
		for c := range g.cols {
			alive := rules.Next(bool(g.cells[r][c]), g.CountLiveNeighbors(r, c))
			next.cells[r][c] = Cell(alive)
		}
	}
	return next
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] {
				count++
			}
		}
	}
	return
}

// Equal reports whether both grids have the same dimensions and cell values
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// shallowCopy returns a grid sharing all rows with g; callers replace the rows they change.
func (g *Grid) shallowCopy() *Grid {
	cells := make([][]Cell, g.rows)
	copy(cells, g.cells)
	return &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: cells,
	}
}
