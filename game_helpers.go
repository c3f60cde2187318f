package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/sim"
	"github.com/sheikhrachel/go-life/utils"
)

// seedBoard fills the board with random life plus a couple of known patterns
func seedBoard(board *sim.Board, config utils.Config) {
	board.Randomize()

	if config.Rows >= 10 && config.Cols >= 10 {
		board.Place(model.Glider, 1, 1)
		board.Place(model.Blinker, config.Rows/4, config.Cols/4)
	}
}

// changeNotifier returns a channel that receives a value whenever the board publishes
// a grid. Bursts of changes collapse into one notification.
func changeNotifier() (chan struct{}, func(*model.Grid)) {
	changed := make(chan struct{}, 1)
	return changed, func(*model.Grid) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
}

// runHeadless animates a random board on stdout until interrupted or until
// config.MaxGenerations is reached
func runHeadless(ctx context.Context, config utils.Config) error {
	logger := log.New(os.Stderr, "go-life: ", log.LstdFlags)
	changed, notify := changeNotifier()
	board := sim.NewBoard(config, sim.WithLogger(logger), sim.WithOnChange(notify))
	renderer := model.NewTerminalRenderer()

	seedBoard(board, config)
	displayGameInfo(config, board.Snapshot())

	ctx, cancel := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()
		board.Stop()
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		board.Start()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changed:
			}

			grid := board.Snapshot()
			if err := renderer.Clear(); err != nil {
				return err
			}
			displayGameStatus(board.Generation(), grid, board.Stats(), board.IsRunning())
			if err := renderer.Display(grid); err != nil {
				return err
			}

			if config.MaxGenerations > 0 && board.Generation() >= config.MaxGenerations {
				fmt.Printf("\nReached maximum generations limit (%d)\n", config.MaxGenerations)
				return nil
			}
		}
	})

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "[runHeadless] render failed")
	}

	stats := board.Stats()
	fmt.Printf("Final stats: %d generations in %.1f seconds, %.1f avg population\n",
		board.Generation(), time.Since(stats.StartTime).Seconds(), stats.AveragePopulation)
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, grid *model.Grid) {
	fmt.Printf("Grid: %dx%d | Tick: %v | Initial living cells: %d\n",
		grid.Rows(), grid.Cols(), config.TickInterval, grid.CountLivingCells())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// displayGameStatus shows the current game status
func displayGameStatus(generation int, grid *model.Grid, stats utils.StatsSnapshot, running bool) {
	fmt.Println(statusLine(generation, grid, stats, running))
	fmt.Println()
}

func statusLine(generation int, grid *model.Grid, stats utils.StatsSnapshot, running bool) string {
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.Rows()*grid.Cols()) * 100

	status := "Stopped"
	switch {
	case livingCells == 0:
		status = "Extinct"
	case running:
		status = "Running"
	}

	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Avg Pop: %.1f | %.1f gen/sec | %s",
		generation, livingCells, density, stats.AveragePopulation, stats.GenerationsPerSecond, status)
}
