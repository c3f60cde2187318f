package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/sim"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	title       = "Conway's Game of Life"
	helpLine    = "[space] start/stop  [n] step  [r] random  [c] clear  [g] glider  [q] quit  (click toggles a cell)"
	headerLines = 3
)

var (
	aliveStyle = tcell.StyleDefault.Background(tcell.ColorGray)
	deadStyle  = tcell.StyleDefault.Background(tcell.ColorBlack)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// view draws a board on a tcell screen and turns input events into board commands
type view struct {
	screen    tcell.Screen
	board     *sim.Board
	mouseDown bool
}

// runInteractive opens the terminal view and blocks until the user quits or ctx ends
func runInteractive(ctx context.Context, config utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runInteractive] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runInteractive] failed to initialize screen")
	}
	screen.EnableMouse()

	board := sim.NewBoard(config, sim.WithOnChange(func(*model.Grid) {
		// A full queue already holds a redraw
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}))
	v := &view{screen: screen, board: board}

	ctx, cancel := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)

	// Finalizing the screen unblocks PollEvent
	eg.Go(func() error {
		<-ctx.Done()
		board.Stop()
		screen.Fini()
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		return v.run(ctx)
	})

	return eg.Wait()
}

func (v *view) run(ctx context.Context) error {
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		}
		v.draw()
	}
}

// handleKey applies a key command and reports whether the user asked to quit
func (v *view) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		v.board.SetRunning(!v.board.IsRunning())
	case 'n':
		v.board.Step()
	case 'r':
		v.board.Randomize()
	case 'c':
		v.board.Clear()
	case 'g':
		g := v.board.Snapshot()
		v.board.Place(model.Glider, g.Rows()/2-1, g.Cols()/2-1)
	}
	return false
}

// handleMouse toggles the cell under the pointer when the left button goes down
func (v *view) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	if pressed && !v.mouseDown {
		x, y := ev.Position()
		row, col := y-headerLines, x/2
		if v.board.Snapshot().InBounds(row, col) {
			_ = v.board.Toggle(row, col)
		}
	}
	v.mouseDown = pressed
}

func (v *view) draw() {
	grid := v.board.Snapshot()

	v.screen.Clear()
	drawText(v.screen, 0, 0, title)
	drawText(v.screen, 0, 1, helpLine)
	drawText(v.screen, 0, 2, statusLine(v.board.Generation(), grid, v.board.Stats(), v.board.IsRunning()))

	for row := range grid.Rows() {
		for col := range grid.Cols() {
			style := deadStyle
			if grid.At(row, col) == model.Alive {
				style = aliveStyle
			}
			v.screen.SetContent(col*2, row+headerLines, ' ', nil, style)
			v.screen.SetContent(col*2+1, row+headerLines, ' ', nil, style)
		}
	}
	v.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, s string) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, textStyle)
	}
}
