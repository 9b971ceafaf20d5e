// facility/geo_test.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package facility

import (
	gomath "math"
	"testing"
)

func TestNearby(t *testing.T) {
	const lat, lon = 47.0, -122.0

	// One degree of latitude is 60nm, so pure-latitude offsets give known
	// distances.
	airports := []Airport{
		{ICAO: "FAR", Latitude: lat + 20.0/60, Longitude: lon},
		{ICAO: "NEAR", Latitude: lat + 5.0/60, Longitude: lon},
		{ICAO: "MID", Latitude: lat + 10.0/60, Longitude: lon},
	}

	got := Nearby(airports, lat, lon, 15)
	if len(got) != 2 {
		t.Fatalf("got %d airports, want 2: %+v", len(got), got)
	}
	if got[0].ICAO != "NEAR" || got[1].ICAO != "MID" {
		t.Errorf("order [%s %s], want [NEAR MID]", got[0].ICAO, got[1].ICAO)
	}
	if gomath.Abs(got[0].DistanceNM-5) > 0.1 || gomath.Abs(got[1].DistanceNM-10) > 0.1 {
		t.Errorf("distances [%f %f], want [~5 ~10]", got[0].DistanceNM, got[1].DistanceNM)
	}
}

func TestNearbyStableTies(t *testing.T) {
	const lat, lon = 47.0, -122.0
	// Two airports at the same distance, north and south.
	airports := []Airport{
		{ICAO: "NORTH", Latitude: lat + 5.0/60, Longitude: lon},
		{ICAO: "SOUTH", Latitude: lat - 5.0/60, Longitude: lon},
	}

	got := Nearby(airports, lat, lon, 10)
	if len(got) != 2 || got[0].ICAO != "NORTH" || got[1].ICAO != "SOUTH" {
		t.Errorf("tied airports not in input order: %+v", got)
	}
}

func TestNearbyEmpty(t *testing.T) {
	if got := Nearby(nil, 47, -122, 200); len(got) != 0 {
		t.Errorf("Nearby over empty set returned %+v", got)
	}
}

func TestByICAO(t *testing.T) {
	airports := []Airport{
		{ICAO: "KPDX", Name: "Portland Intl"},
		{ICAO: "KSEA", Name: "Seattle-Tacoma Intl"},
	}

	ap, ok := ByICAO(airports, "KSEA")
	if !ok || ap.Name != "Seattle-Tacoma Intl" {
		t.Errorf("ByICAO(KSEA) = %+v, %v", ap, ok)
	}

	if _, ok := ByICAO(airports, "KLAX"); ok {
		t.Errorf("ByICAO(KLAX) unexpectedly found an airport")
	}

	// Matching is case-sensitive.
	if _, ok := ByICAO(airports, "ksea"); ok {
		t.Errorf("ByICAO(ksea) matched despite case difference")
	}
}
