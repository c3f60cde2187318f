package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

func main() {
	var (
		configPath  = flag.String("config", "config.json", "path to a JSON config file")
		headless    = flag.Bool("headless", false, "print generations to stdout instead of opening the interactive view")
		generations = flag.Int("generations", -1, "headless only: stop after n generations, overrides max_generations")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "go-life: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Using default configuration (%s not found)\n", *configPath)
		config = utils.DefaultConfig()
	}
	if *generations >= 0 {
		config.MaxGenerations = *generations
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *headless {
		err = runHeadless(ctx, config)
	} else {
		err = runInteractive(ctx, config)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "go-life: %v\n", err)
		os.Exit(1)
	}
}
