package rules

/*
Next applies Conway's Game of Life rules to determine the next state of a cell.

Fewer than 2 or more than 3 live neighbors kill the cell, a dead cell with exactly 3
comes alive, and anything else keeps its current state.
*/
func Next(alive bool, neighbors int) bool {
	if neighbors < 2 || neighbors > 3 {
		return false
	}
	if !alive && neighbors == 3 {
		return true
	}
	return alive
}
