package sim

import (
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/sheikhrachel/go-life/model"
)

// TickHook observes every generation produced by a Loop. elapsed is the time since the
// previous tick of the same run, zero for the first one.
type TickHook func(generation int, g *model.Grid, elapsed time.Duration)

type options struct {
	clock    Clock
	logger   *log.Logger
	tickHook TickHook
	rng      *rand.Rand
	onChange func(*model.Grid)
}

// Option configures a Loop or a Board
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		clock:  SystemClock,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the clock used to schedule ticks
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets where run state transitions are logged
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTickHook registers a callback run after every generation
func WithTickHook(h TickHook) Option {
	return func(o *options) { o.tickHook = h }
}

// WithRand sets the random source a Board uses to randomize its grid
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithOnChange registers a callback run after a Board publishes a new grid. It runs
// while the board is locked and must not call back into the board synchronously.
func WithOnChange(f func(*model.Grid)) Option {
	return func(o *options) { o.onChange = f }
}
