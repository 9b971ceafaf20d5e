// cmd/simlink/main.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// cmd/simlink exercises the client library against the built-in loopback
// simulator.
//
// Usage:
//
//	# Read variables
//	go run ./cmd/simlink -get "PLANE LATITUDE,PLANE LONGITUDE,TITLE"
//
//	# Write a variable
//	go run ./cmd/simlink -set "KOHLSMAN SETTING HG=30.12"
//
//	# Airport database queries
//	go run ./cmd/simlink -get "ALL AIRPORTS"
//	go run ./cmd/simlink -get "NEARBY AIRPORTS:50"
//	go run ./cmd/simlink -get "AIRPORT:KSEA"
//
//	# Fire a client event
//	go run ./cmd/simlink -trigger GEAR_TOGGLE
//
//	# Poll variables until interrupted
//	go run ./cmd/simlink -watch "AIRSPEED INDICATED,GROUND VELOCITY" -interval 1s
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/simlink/simlink/client"
	"github.com/simlink/simlink/facility"
	"github.com/simlink/simlink/log"
	"github.com/simlink/simlink/sim"
	"github.com/simlink/simlink/simconnect"
	"github.com/simlink/simlink/util"
)

func main() {
	level := flag.String("level", "info", "logging level: debug, info, warn, error")
	logDir := flag.String("logdir", "", "directory for the log file (empty: no file logging)")
	snapshot := flag.String("snapshot", "", "airport snapshot path (empty: default cache location)")
	get := flag.String("get", "", "comma-separated variable names (or one airport query) to read")
	set := flag.String("set", "", "NAME=value to write")
	trigger := flag.String("trigger", "", "client event to fire")
	watch := flag.String("watch", "", "comma-separated variable names to poll until interrupted")
	interval := flag.Duration("interval", time.Second, "polling interval for -watch")
	retries := flag.Int("retries", 2, "connection retry count")
	retryInterval := flag.Duration("retry-interval", time.Second, "wait between connection attempts")
	flag.Parse()

	if *get == "" && *set == "" && *trigger == "" && *watch == "" {
		fmt.Fprintf(os.Stderr, "usage: simlink [flags] with at least one of -get, -set, -trigger, -watch\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	lg := log.New(*level, *logDir)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snapPath := *snapshot
	if snapPath == "" {
		var err error
		snapPath, err = util.CachePath(facility.SnapshotFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cache directory: %v\n", err)
			os.Exit(1)
		}
	}

	c, err := client.Connect(ctx,
		func() (simconnect.Transport, error) { return sim.New(lg), nil },
		client.ConnectOptions{
			Retries:       *retries,
			RetryInterval: *retryInterval,
			OnRetry: func(attempt int, err error) {
				fmt.Fprintf(os.Stderr, "connection attempt %d failed: %v; retrying\n", attempt, err)
			},
			SnapshotPath: snapPath,
		}, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	switch {
	case *get != "":
		runGet(ctx, c, splitNames(*get))
	case *set != "":
		runSet(c, *set)
	case *trigger != "":
		if err := c.Trigger(*trigger, 0); err != nil {
			fmt.Fprintf(os.Stderr, "trigger %s: %v\n", *trigger, err)
			os.Exit(1)
		}
		fmt.Printf("fired %s\n", *trigger)
	case *watch != "":
		runWatch(ctx, c, splitNames(*watch), *interval)
	}
}

func splitNames(s string) []string {
	names := util.MapSlice(strings.Split(s, ","), strings.TrimSpace)
	return util.FilterSliceInPlace(names, func(n string) bool { return n != "" })
}

func runGet(ctx context.Context, c *client.Client, names []string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	values, err := c.Get(ctx, names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get: %v\n", err)
		os.Exit(1)
	}
	printValues(values)
}

func printValues(values map[string]any) {
	for _, name := range util.SortedMapKeys(values) {
		switch v := values[name].(type) {
		case []facility.Airport:
			fmt.Printf("%s: %d airports\n", name, len(v))
			for _, ap := range v {
				printAirport(ap, "")
			}
		case []facility.NearbyAirport:
			fmt.Printf("%s: %d airports\n", name, len(v))
			for _, ap := range v {
				printAirport(ap.Airport, fmt.Sprintf(" %.1fnm", ap.DistanceNM))
			}
		case facility.Airport:
			printAirport(v, "")
			for _, rwy := range v.Runways {
				app := rwy.Approaches[0]
				fmt.Printf("    rwy %s%s %.0f° %s", app.Designation,
					markingSuffix(app.Marking), rwy.Heading, rwy.Surface)
				if app.ILS.Type != "" && app.ILS.Type != "none" {
					fmt.Printf(" ILS %s", app.ILS.ICAO)
				}
				fmt.Printf("\n")
			}
		default:
			fmt.Printf("%s: %v\n", name, v)
		}
	}
}

func markingSuffix(marking string) string {
	switch marking {
	case "left":
		return "L"
	case "right":
		return "R"
	case "center":
		return "C"
	default:
		return ""
	}
}

func printAirport(ap facility.Airport, extra string) {
	fmt.Printf("  %-4s %-28s %s %.0fft%s\n", ap.ICAO, ap.Name,
		ap.Location().DDString(), ap.Altitude, extra)
}

func runSet(c *client.Client, arg string) {
	name, valueStr, ok := strings.Cut(arg, "=")
	if !ok {
		fmt.Fprintf(os.Stderr, "-set wants NAME=value, got %q\n", arg)
		os.Exit(1)
	}
	name = strings.TrimSpace(name)

	var value any
	if f, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64); err == nil {
		value = f
	} else {
		value = strings.TrimSpace(valueStr)
	}

	if err := c.Set(name, value); err != nil {
		fmt.Fprintf(os.Stderr, "set %s: %v\n", name, err)
		os.Exit(1)
	}
	fmt.Printf("%s = %v\n", name, value)

	// Writes are unacknowledged; give the deferred cleanup time to run
	// before tearing the connection down.
	time.Sleep(time.Second)
}

func runWatch(ctx context.Context, c *client.Client, names []string, interval time.Duration) {
	stop, err := c.Schedule(interval, printValues, names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
	defer stop()

	<-ctx.Done()
}
