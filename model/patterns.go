package model

// Pattern is a small shape of live cells, stored as (row, col) offsets from its top-left corner.
type Pattern struct {
	Name  string
	Cells [][2]int
}

var (
	// Glider travels one cell diagonally down-right every four generations.
	Glider = Pattern{
		Name:  "glider",
		Cells: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}
	// Blinker is the horizontal period-2 oscillator.
	Blinker = Pattern{
		Name:  "blinker",
		Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}},
	}
	// Block is the 2x2 still life.
	Block = Pattern{
		Name:  "block",
		Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}
)

// Place returns a new grid with the pattern's cells set alive, anchored at (row, col).
// Cells landing outside the grid are dropped.
func (g *Grid) Place(p Pattern, row, col int) *Grid {
	next := g.shallowCopy()
	copied := make(map[int]bool)
	for _, off := range p.Cells {
		r, c := row+off[0], col+off[1]
		if !g.InBounds(r, c) {
			continue
		}
		if !copied[r] {
			next.cells[r] = append([]Cell(nil), g.cells[r]...)
			copied[r] = true
		}
		next.cells[r][c] = Alive
	}
	return next
}
