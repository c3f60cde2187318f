package sim

import (
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// Board owns the current grid and the loop animating it. It is what a front end talks
// to: commands go in through its methods, snapshots come out through Snapshot and the
// OnChange callback.
//
// Published grids are never modified, so Snapshot may be called from any goroutine.
type Board struct {
	rows     int
	cols     int
	density  float64
	rng      *rand.Rand
	onChange func(*model.Grid)
	logger   *log.Logger

	grid  atomic.Pointer[model.Grid]
	loop  *Loop
	stats *utils.Stats
}

// NewBoard creates a stopped board with an empty grid sized from cfg
func NewBoard(cfg utils.Config, opts ...Option) *Board {
	o := newOptions(opts)
	if o.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.rng = rand.New(rand.NewSource(seed))
	}

	b := &Board{
		rows:     cfg.Rows,
		cols:     cfg.Cols,
		density:  cfg.RandomDensity,
		rng:      o.rng,
		onChange: o.onChange,
		logger:   o.logger,
		stats:    utils.NewStats(),
	}
	b.grid.Store(model.NewEmptyGrid(cfg.Rows, cfg.Cols))

	userHook := o.tickHook
	o.tickHook = func(generation int, g *model.Grid, elapsed time.Duration) {
		b.stats.Update(generation, g.CountLivingCells(), elapsed)
		if userHook != nil {
			userHook(generation, g, elapsed)
		}
	}
	b.loop = newLoop(cfg.TickInterval, o)
	return b
}

// Snapshot returns the current grid
func (b *Board) Snapshot() *model.Grid {
	return b.grid.Load()
}

// Start animates the board from its current grid
func (b *Board) Start() {
	b.loop.Start(b.Snapshot, b.publish)
}

// Stop halts the animation, keeping the current grid
func (b *Board) Stop() {
	b.loop.Stop()
}

// SetRunning starts or stops the animation
func (b *Board) SetRunning(running bool) {
	if running {
		b.Start()
		return
	}
	b.Stop()
}

// IsRunning reports whether the board is animating
func (b *Board) IsRunning() bool {
	return b.loop.IsRunning()
}

// Generation returns the number of generations computed so far
func (b *Board) Generation() int {
	return b.loop.Generation()
}

// Stats returns the current run statistics
func (b *Board) Stats() utils.StatsSnapshot {
	return b.stats.Snapshot()
}

// Step advances a single generation, whether or not the board is running
func (b *Board) Step() {
	b.loop.StepOnce(b.Snapshot, b.publish)
}

// Randomize replaces the grid with a random one at the configured density
func (b *Board) Randomize() {
	b.loop.Exclusive(func() {
		b.publish(model.NewRandomGrid(b.rows, b.cols, b.density, b.rng))
	})
}

// Clear stops the animation and empties the grid
func (b *Board) Clear() {
	b.Stop()
	b.loop.Exclusive(func() {
		b.publish(model.NewEmptyGrid(b.rows, b.cols))
	})
	b.stats.Reset()
}

// Toggle flips a single cell
func (b *Board) Toggle(row, col int) error {
	var err error
	b.loop.Exclusive(func() {
		var next *model.Grid
		if next, err = b.Snapshot().Toggle(row, col); err == nil {
			b.publish(next)
		}
	})
	return err
}

// Place stamps a pattern with its top-left corner at (row, col)
func (b *Board) Place(p model.Pattern, row, col int) {
	b.loop.Exclusive(func() {
		b.publish(b.Snapshot().Place(p, row, col))
	})
}

func (b *Board) publish(g *model.Grid) {
	b.grid.Store(g)
	if b.onChange != nil {
		b.onChange(g)
	}
}
