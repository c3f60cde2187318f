package sim

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// MinInterval is the shortest delay allowed between two ticks
const MinInterval = utils.MinTickInterval

// Loop advances a grid one generation per interval until stopped. Each tick reschedules
// the next one, so there is never more than one pending timer per run.
//
// The grid itself is owned by the caller and exchanged through the getGrid and setGrid
// functions passed to Start.
type Loop struct {
	interval time.Duration
	clock    Clock
	logger   *log.Logger
	tickHook TickHook

	running    atomic.Bool
	generation atomic.Int64

	// tickMu serializes ticks and Exclusive sections
	tickMu    sync.Mutex
	lastEpoch uint64
	lastTick  time.Time

	// stateMu guards the run epoch and the pending timer
	stateMu sync.Mutex
	epoch   uint64
	timer   Timer
}

// NewLoop creates a stopped loop. Intervals below MinInterval are raised to it.
func NewLoop(interval time.Duration, opts ...Option) *Loop {
	return newLoop(interval, newOptions(opts))
}

func newLoop(interval time.Duration, o options) *Loop {
	return &Loop{
		interval: max(interval, MinInterval),
		clock:    o.clock,
		logger:   o.logger,
		tickHook: o.tickHook,
	}
}

// Interval returns the delay between ticks
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Start sets the loop running and schedules the first tick without delay. It returns
// immediately; calling it on a running loop does nothing.
func (l *Loop) Start(getGrid func() *model.Grid, setGrid func(*model.Grid)) {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()

	if l.running.Load() {
		return
	}
	l.epoch++
	epoch := l.epoch
	l.running.Store(true)
	l.timer = l.clock.AfterFunc(0, func() { l.tick(epoch, getGrid, setGrid) })
	l.logger.Printf("loop started (run %d, every %v)", epoch, l.interval)
}

// Stop clears the run flag and cancels the pending tick. A tick that is already
// executing completes, but it will not schedule another.
func (l *Loop) Stop() {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()

	if !l.running.Swap(false) {
		return
	}
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.logger.Printf("loop stopped after %d generations", l.generation.Load())
}

// IsRunning reports the run flag
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Generation returns the number of generations computed since the loop was created
func (l *Loop) Generation() int {
	return int(l.generation.Load())
}

// StepOnce computes a single generation outside the timer chain. It never overlaps with
// a tick.
func (l *Loop) StepOnce(getGrid func() *model.Grid, setGrid func(*model.Grid)) {
	l.Exclusive(func() {
		l.advance(getGrid, setGrid, 0)
	})
}

// Exclusive runs f while no tick can execute
func (l *Loop) Exclusive(f func()) {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()
	f()
}

func (l *Loop) tick(epoch uint64, getGrid func() *model.Grid, setGrid func(*model.Grid)) {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()

	if !l.current(epoch) {
		return
	}

	now := l.clock.Now()
	var elapsed time.Duration
	if l.lastEpoch == epoch {
		elapsed = now.Sub(l.lastTick)
	}
	l.lastEpoch, l.lastTick = epoch, now

	if !l.advance(getGrid, setGrid, elapsed) {
		l.Stop()
		return
	}

	l.stateMu.Lock()
	defer l.stateMu.Unlock()
	if !l.running.Load() || epoch != l.epoch {
		return
	}
	l.timer = l.clock.AfterFunc(l.interval, func() { l.tick(epoch, getGrid, setGrid) })
}

// advance publishes the successor of the current grid. It reports false when there is
// no grid to advance.
func (l *Loop) advance(getGrid func() *model.Grid, setGrid func(*model.Grid), elapsed time.Duration) bool {
	g := getGrid()
	if g == nil {
		l.logger.Printf("no grid to advance")
		return false
	}
	next := g.Step()
	setGrid(next)

	gen := int(l.generation.Add(1))
	if l.tickHook != nil {
		l.tickHook(gen, next, elapsed)
	}
	return true
}

func (l *Loop) current(epoch uint64) bool {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()
	return l.running.Load() && epoch == l.epoch
}
