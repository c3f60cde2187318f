package sim

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/sheikhrachel/go-life/model"
)

// gridHolder plays the part of the front end that owns the current grid
type gridHolder struct {
	grid atomic.Pointer[model.Grid]
}

func newGridHolder(g *model.Grid) *gridHolder {
	h := &gridHolder{}
	h.grid.Store(g)
	return h
}

func (h *gridHolder) get() *model.Grid  { return h.grid.Load() }
func (h *gridHolder) set(g *model.Grid) { h.grid.Store(g) }

func blinkers(t *testing.T) (vertical, horizontal *model.Grid) {
	t.Helper()
	var err error
	if vertical, err = model.NewGridFromCells(3, 3, [][2]int{{0, 1}, {1, 1}, {2, 1}}); err != nil {
		t.Fatalf("NewGridFromCells: %v", err)
	}
	if horizontal, err = model.NewGridFromCells(3, 3, [][2]int{{1, 0}, {1, 1}, {1, 2}}); err != nil {
		t.Fatalf("NewGridFromCells: %v", err)
	}
	return vertical, horizontal
}

func TestNewLoopClampsInterval(t *testing.T) {
	if got := NewLoop(10 * time.Millisecond).Interval(); got != MinInterval {
		t.Fatalf("interval = %v, want %v", got, MinInterval)
	}
	if got := NewLoop(time.Second).Interval(); got != time.Second {
		t.Fatalf("interval = %v, want 1s", got)
	}
}

func TestLoopTicksAtFixedInterval(t *testing.T) {
	vertical, horizontal := blinkers(t)
	clock := newManualClock()
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval, WithClock(clock))

	loop.Start(holder.get, holder.set)
	if !loop.IsRunning() {
		t.Fatal("loop not running after Start")
	}
	if loop.Generation() != 0 {
		t.Fatal("Start ran a tick synchronously")
	}

	clock.Advance(0)
	if loop.Generation() != 1 || !holder.get().Equal(horizontal) {
		t.Fatalf("after first tick: generation %d, grid %v", loop.Generation(), holder.get().Cells())
	}

	clock.Advance(MinInterval - time.Millisecond)
	if loop.Generation() != 1 {
		t.Fatalf("tick ran early, generation %d", loop.Generation())
	}

	clock.Advance(time.Millisecond)
	if loop.Generation() != 2 || !holder.get().Equal(vertical) {
		t.Fatalf("after second tick: generation %d, grid %v", loop.Generation(), holder.get().Cells())
	}

	clock.Advance(10 * MinInterval)
	if loop.Generation() != 12 {
		t.Fatalf("generation = %d, want 12", loop.Generation())
	}
}

func TestLoopStopHaltsTicks(t *testing.T) {
	vertical, _ := blinkers(t)
	clock := newManualClock()
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval, WithClock(clock))

	loop.Start(holder.get, holder.set)
	clock.Advance(0)
	clock.Advance(MinInterval)

	loop.Stop()
	loop.Stop()
	if loop.IsRunning() {
		t.Fatal("loop still running after Stop")
	}
	if clock.Pending() != 0 {
		t.Fatalf("%d timers still pending after Stop", clock.Pending())
	}

	clock.Advance(time.Second)
	if loop.Generation() != 2 {
		t.Fatalf("generation = %d after Stop, want 2", loop.Generation())
	}
}

func TestLoopStopDuringTickFinishesThatTickOnly(t *testing.T) {
	vertical, horizontal := blinkers(t)
	clock := newManualClock()
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval, WithClock(clock))

	loop.Start(holder.get, func(g *model.Grid) {
		holder.set(g)
		loop.Stop()
	})
	clock.Advance(time.Second)

	if loop.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", loop.Generation())
	}
	if !holder.get().Equal(horizontal) {
		t.Fatal("in-flight tick did not publish its grid")
	}
}

func TestLoopRestartResumesFromPublishedGrid(t *testing.T) {
	vertical, horizontal := blinkers(t)
	clock := newManualClock()
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval, WithClock(clock))

	loop.Start(holder.get, holder.set)
	clock.Advance(0)
	loop.Stop()
	if !holder.get().Equal(horizontal) {
		t.Fatal("first run did not advance the grid")
	}

	loop.Start(holder.get, holder.set)
	clock.Advance(0)
	if !holder.get().Equal(vertical) {
		t.Fatalf("restart did not continue from the published grid: %v", holder.get().Cells())
	}
	if loop.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", loop.Generation())
	}
}

func TestLoopStartWhileRunningKeepsOneChain(t *testing.T) {
	vertical, _ := blinkers(t)
	clock := newManualClock()
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval, WithClock(clock))

	loop.Start(holder.get, holder.set)
	loop.Start(holder.get, holder.set)
	clock.Advance(0)
	clock.Advance(MinInterval)

	if loop.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", loop.Generation())
	}
}

func TestLoopStaleTimerFromEarlierRunIsIgnored(t *testing.T) {
	vertical, _ := blinkers(t)
	clock := newManualClock()
	clock.ignoreStop = true
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval, WithClock(clock))

	loop.Start(holder.get, holder.set)
	loop.Stop()
	loop.Start(holder.get, holder.set)

	clock.Advance(0)
	if loop.Generation() != 1 {
		t.Fatalf("generation = %d after first tick, want 1", loop.Generation())
	}
	clock.Advance(MinInterval)
	if loop.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", loop.Generation())
	}
}

func TestLoopTickHookReportsElapsed(t *testing.T) {
	vertical, _ := blinkers(t)
	clock := newManualClock()
	holder := newGridHolder(vertical)

	var elapsed []time.Duration
	loop := NewLoop(MinInterval, WithClock(clock), WithTickHook(func(_ int, _ *model.Grid, d time.Duration) {
		elapsed = append(elapsed, d)
	}))

	loop.Start(holder.get, holder.set)
	clock.Advance(2 * MinInterval)
	loop.Stop()

	want := []time.Duration{0, MinInterval, MinInterval}
	if len(elapsed) != len(want) {
		t.Fatalf("hook ran %d times, want %d", len(elapsed), len(want))
	}
	for i := range want {
		if elapsed[i] != want[i] {
			t.Fatalf("elapsed[%d] = %v, want %v", i, elapsed[i], want[i])
		}
	}
}

func TestLoopStopsWithoutGrid(t *testing.T) {
	clock := newManualClock()
	loop := NewLoop(MinInterval, WithClock(clock))

	loop.Start(func() *model.Grid { return nil }, func(*model.Grid) {
		t.Fatal("published a grid that was never read")
	})
	clock.Advance(time.Second)

	if loop.IsRunning() {
		t.Fatal("loop kept running without a grid")
	}
	if loop.Generation() != 0 {
		t.Fatalf("generation = %d, want 0", loop.Generation())
	}
}

func TestLoopStepOnce(t *testing.T) {
	vertical, horizontal := blinkers(t)
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval, WithClock(newManualClock()))

	loop.StepOnce(holder.get, holder.set)
	if !holder.get().Equal(horizontal) || loop.Generation() != 1 {
		t.Fatalf("StepOnce: generation %d, grid %v", loop.Generation(), holder.get().Cells())
	}
	if loop.IsRunning() {
		t.Fatal("StepOnce started the loop")
	}
}

func TestLoopWithSystemClock(t *testing.T) {
	if testing.Short() {
		t.Skip("uses real timers")
	}
	vertical, _ := blinkers(t)
	holder := newGridHolder(vertical)
	loop := NewLoop(MinInterval)

	loop.Start(holder.get, holder.set)
	time.Sleep(350 * time.Millisecond)
	loop.Stop()

	stoppedAt := loop.Generation()
	if stoppedAt < 2 || stoppedAt > 5 {
		t.Fatalf("generation = %d after 350ms, want between 2 and 5", stoppedAt)
	}

	time.Sleep(3 * MinInterval)
	if after := loop.Generation(); after > stoppedAt+1 {
		t.Fatalf("%d ticks ran after Stop, want at most 1", after-stoppedAt)
	}
}
