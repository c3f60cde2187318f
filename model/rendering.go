package model

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClear = "\033[H\033[2J"
)

// TextRenderer draws grids as text, two characters per cell
type TextRenderer struct {
	Out io.Writer
}

// NewTerminalRenderer returns a renderer writing to stdout
func NewTerminalRenderer() *TextRenderer {
	return &TextRenderer{Out: os.Stdout}
}

// Display renders the grid, one line per row
func (r *TextRenderer) Display(g *Grid) error {
	w := bufio.NewWriter(r.Out)
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	return errors.Wrap(w.Flush(), "[Display] failed to write grid")
}

// Clear moves the cursor home and clears the terminal screen
func (r *TextRenderer) Clear() error {
	_, err := io.WriteString(r.Out, ansiClear)
	return errors.Wrap(err, "[Clear] failed to clear terminal")
}
