package model

import "github.com/pkg/errors"

// ErrOutOfRange is returned when a coordinate falls outside the grid.
var ErrOutOfRange = errors.New("coordinate out of range")

func outOfRange(g *Grid, row, col int) error {
	return errors.Wrapf(ErrOutOfRange, "(%d,%d) not in %dx%d grid", row, col, g.rows, g.cols)
}
