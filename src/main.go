package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/presenter"
	"liftsim/src/timer"
	"liftsim/src/utils"
)

func main() {
	envFile := flag.String("env", config.DefaultEnv, "Path to .env settings file")
	source := flag.String("config", "", "Building config file or http(s) URL (overrides "+config.EnvConfig+")")
	logFile := flag.String("log", "", "Also write logs to this file (overrides "+config.EnvLogFile+")")
	calls := flag.String("calls", "", "Comma separated floor calls to run without keyboard input, e.g. 4,2,5")
	interval := flag.Duration("interval", time.Second, "Delay between scripted calls")
	flag.Parse()

	if err := run(*envFile, *source, *logFile, *calls, *interval); err != nil {
		slog.Error("Simulator stopped", "err", err)
		os.Exit(1)
	}
}

func run(envFile, source, logFile, calls string, interval time.Duration) error {
	settings, err := config.LoadSettings(envFile)
	if err != nil {
		return err
	}
	if source != "" {
		settings.ConfigSource = source
	}
	if logFile != "" {
		settings.LogFile = logFile
	}

	closeLog, err := utils.InitLogger(settings.LogLevel, settings.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	building, err := config.Load(settings.ConfigSource)
	if err != nil {
		return err
	}
	slog.Info("Building loaded",
		"source", settings.ConfigSource,
		"floors", building.FloorCount,
		"cars", len(building.Cars),
		"travelPerFloor", building.TravelPerFloor(),
		"doorCycle", building.DoorCycle())

	console := presenter.NewConsole(timer.Real{}, building.DoorCycle(), slog.Default())
	d := dispatcher.New(building, dispatcher.WithObserver(console))
	defer d.Close()

	floorCh := make(chan int)
	if calls != "" {
		floors, err := parseCalls(calls)
		if err != nil {
			return err
		}
		go func() {
			defer close(floorCh)
			for i, floor := range floors {
				if i > 0 {
					time.Sleep(interval)
				}
				floorCh <- floor
			}
		}()
	} else {
		fmt.Printf("Enter a floor (1-%d) and press Enter. Esc or q quits.\n", building.FloorCount)
		keyErr := make(chan error, 1)
		go func() { keyErr <- presenter.ReadKeys(floorCh) }()
		defer func() {
			if err := <-keyErr; err != nil {
				slog.Error("Keyboard input failed", "err", err)
			}
		}()
	}

	for floor := range floorCh {
		assignment, err := d.RequestFloor(floor)
		switch {
		case errors.Is(err, dispatcher.ErrInvalidFloor), errors.Is(err, dispatcher.ErrAllCarsBusy):
			fmt.Printf("\nCannot call floor %d: %v\n", floor, err)
			continue
		case err != nil:
			return err
		}
		slog.Debug("Call accepted",
			"request", assignment.RequestID,
			"car", assignment.Car,
			"eta", assignment.TravelTime)
	}

	// Let in-flight moves finish and doors close before exiting.
	console.WaitSettled()
	if cars, err := d.Fleet(); err == nil {
		slog.Info("Final positions", "fleet", utils.FormatFleet(cars))
	}
	return nil
}

func parseCalls(s string) ([]int, error) {
	var floors []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		floor, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad floor %q in -calls: %w", part, err)
		}
		floors = append(floors, floor)
	}
	return floors, nil
}
