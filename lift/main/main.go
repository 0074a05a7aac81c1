package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/xyproto/randomstring"

	"github.com/McebisiMK/ElevatorChallenge/config"
	"github.com/McebisiMK/ElevatorChallenge/console"
	"github.com/McebisiMK/ElevatorChallenge/lift"
	"github.com/McebisiMK/ElevatorChallenge/logger"
)

const nameLen = 8

var Logger = logger.GetLogger()

func main() {
	configPath := flag.String("config", "elevator_config.yaml", "YAML configuration file")
	envPath := flag.String("env", ".env", "dotenv file with ELEVATOR_* overrides")
	auto := flag.Bool("auto", false, "Generate random passengers instead of reading requests")
	passengers := flag.Int("passengers", 5, "Number of passenger groups to generate with -auto")
	name := flag.String("name", "", "Name of this run, used in logs. Defaults to a random string")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		Logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		Logger.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("Invalid log level")
	}
	logger.SetLevel(level)

	if *name == "" {
		*name = randomstring.EnglishFrequencyString(nameLen)
	}
	Logger.Info().Str("run", *name).Int("elevators", cfg.Elevators).Int("capacity", cfg.Capacity).
		Dur("tick", cfg.TickInterval).Bool("auto", *auto).Msg("Starting elevator simulation")

	fleet := lift.NewFleet(cfg.Elevators, cfg.Capacity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *auto {
		err = runAuto(ctx, fleet, cfg, *passengers)
	} else {
		c := console.New(fleet, os.Stdin, os.Stdout)
		c.Pause = cfg.TickInterval
		err = c.Run(ctx)
	}
	if err != nil {
		Logger.Error().Err(err).Str("run", *name).Msg("Simulation stopped")
		os.Exit(1)
	}
	Logger.Info().Str("run", *name).Msg("Simulation finished")
}

// runAuto feeds randomly generated passenger groups to the fleet, a few ticks apart,
// and returns once all of them have been delivered.
func runAuto(ctx context.Context, fleet *lift.Fleet, cfg config.Config, groups int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interval := cfg.TickInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	requests := make(chan lift.Request)
	var fed atomic.Bool
	go func() {
		defer close(requests)
		defer fed.Store(true)
		for i := 0; i < groups; i++ {
			select {
			case requests <- randomRequest(cfg.Floors, cfg.Capacity):
			case <-ctx.Done():
				return
			}
			time.Sleep(2 * interval)
		}
	}()

	r := lift.NewRunner(fleet, interval)
	r.OnTick = func(tick int, snaps []lift.Snapshot) {
		fmt.Printf("Tick %d\n", tick)
		console.Render(os.Stdout, snaps)
		if fed.Load() && fleet.Idle() {
			cancel()
		}
	}
	r.OnReject = func(req lift.Request, err error) {
		Logger.Warn().Err(err).Stringer("request", req).Msg("Request rejected")
	}

	err := r.Run(ctx, requests)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func randomRequest(floors, capacity int) lift.Request {
	pickup := lift.Floor(1 + rand.Intn(floors-1))
	dest := lift.Floor(1 + rand.Intn(floors-2))
	if dest >= pickup {
		dest++
	}
	return lift.NewRequest(pickup, dest, 1+rand.Intn(capacity))
}
