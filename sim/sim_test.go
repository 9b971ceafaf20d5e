// sim/sim_test.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/simlink/simlink/client"
	"github.com/simlink/simlink/facility"
	"github.com/simlink/simlink/log"
	"github.com/simlink/simlink/sim"
	"github.com/simlink/simlink/simconnect"
)

func connect(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.Connect(context.Background(),
		func() (simconnect.Transport, error) { return sim.New(log.Discard()), nil },
		client.ConnectOptions{SnapshotPath: filepath.Join(t.TempDir(), facility.SnapshotFile)},
		log.Discard())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLoopbackGet(t *testing.T) {
	c := connect(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := c.Get(ctx, "PLANE LATITUDE", "SIM ON GROUND", "TITLE")
	if err != nil {
		t.Fatal(err)
	}
	if lat := got["PLANE LATITUDE"].(float64); lat < 47 || lat > 48 {
		t.Errorf("latitude %v", lat)
	}
	if og := got["SIM ON GROUND"].(int32); og != 1 {
		t.Errorf("on ground %v", og)
	}
	if title := got["TITLE"].(string); title == "" {
		t.Error("empty aircraft title")
	}
}

func TestLoopbackSetReadsBack(t *testing.T) {
	c := connect(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Set("KOHLSMAN SETTING HG", 30.12); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(ctx, "KOHLSMAN SETTING HG")
	if err != nil {
		t.Fatal(err)
	}
	if v := got["KOHLSMAN SETTING HG"].(float64); v != 30.12 {
		t.Errorf("read back %v after write", v)
	}
}

func TestLoopbackTrigger(t *testing.T) {
	c := connect(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	before, err := c.Get(ctx, "GEAR HANDLE POSITION")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Trigger("GEAR_TOGGLE", 0); err != nil {
		t.Fatal(err)
	}
	after, err := c.Get(ctx, "GEAR HANDLE POSITION")
	if err != nil {
		t.Fatal(err)
	}
	if before["GEAR HANDLE POSITION"] == after["GEAR HANDLE POSITION"] {
		t.Errorf("gear handle unchanged by toggle: %v", after["GEAR HANDLE POSITION"])
	}
}

func TestLoopbackAirports(t *testing.T) {
	c := connect(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	all, err := c.Get(ctx, "ALL AIRPORTS")
	if err != nil {
		t.Fatal(err)
	}
	airports := all["ALL AIRPORTS"].([]facility.Airport)
	if len(airports) < 8 {
		t.Fatalf("only %d airports in the built-in world", len(airports))
	}

	one, err := c.Get(ctx, "AIRPORT:KSEA")
	if err != nil {
		t.Fatal(err)
	}
	ap := one["AIRPORT:KSEA"].(facility.Airport)
	if len(ap.Runways) != 2 {
		t.Fatalf("KSEA has %d runways", len(ap.Runways))
	}
	if app := ap.Runways[0].Approaches[0]; app.Designation != "16" || app.Marking != "left" {
		t.Errorf("KSEA runway 1 approach %s/%s", app.Designation, app.Marking)
	}
	if ils := ap.Runways[0].Approaches[0].ILS; ils.ICAO != "ISZN" {
		t.Errorf("KSEA ILS %q", ils.ICAO)
	}

	// The aircraft starts at KSEA; KPDX is over 100nm out.
	near, err := c.Get(ctx, "NEARBY AIRPORTS:50")
	if err != nil {
		t.Fatal(err)
	}
	for _, ap := range near["NEARBY AIRPORTS:50"].([]facility.NearbyAirport) {
		if ap.ICAO == "KPDX" || ap.ICAO == "CYVR" {
			t.Errorf("%s inside a 50nm radius of KSEA", ap.ICAO)
		}
	}
}

func TestLoopbackPauseEvent(t *testing.T) {
	c := connect(t)

	events := make(chan uint32, 4)
	l, err := c.On("Pause", func(v uint32) { events <- v })
	if err != nil {
		t.Fatal(err)
	}
	defer c.Off(l)

	// State events replay their current value on subscription.
	select {
	case v := <-events:
		if v != 0 {
			t.Errorf("initial pause state %d", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial pause state delivered")
	}

	if err := c.Trigger("PAUSE_TOGGLE", 0); err != nil {
		t.Fatal(err)
	}
	select {
	case v := <-events:
		if v != 1 {
			t.Errorf("pause state %d after toggle", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no pause event after toggle")
	}
}
