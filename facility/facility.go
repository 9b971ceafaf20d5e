// facility/facility.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package facility maintains the durable airport database: decoding the
// simulator's fixed-layout facility records, building and persisting the
// full airport set, and answering geographic queries over it.
package facility

import (
	"errors"

	"github.com/simlink/simlink/math"
)

var (
	ErrTruncatedRecord = errors.New("facility record truncated")
	ErrBadSnapshot     = errors.New("unusable airport snapshot")
	ErrUnknownAirport  = errors.New("no airport with that ICAO code")
)

// Airport is a fully-decoded facility record. It is immutable once
// constructed; the store hands out copies.
type Airport struct {
	ICAO        string
	Latitude    float64 // degrees
	Longitude   float64 // degrees
	Altitude    float64 // feet
	Declination float64 // degrees
	Name        string
	Name64      string
	Region      string
	Runways     []Runway
}

// Location returns the airport's reference point.
func (ap Airport) Location() math.Point2LL {
	return math.Point2LL{ap.Longitude, ap.Latitude}
}

type Runway struct {
	Latitude        float64 // degrees
	Longitude       float64 // degrees
	Altitude        float64 // feet
	Heading         float64 // degrees
	Length          float64 // meters
	Width           float64 // meters
	PatternAltitude float64 // meters
	Slope           float64 // degrees
	SlopeTrue       float64 // degrees
	Surface         string
	Approaches      [2]Approach
}

// Approach describes one end of a runway: its number/designator marking and
// any ILS serving it.
type Approach struct {
	Designation string
	Marking     string
	ILS         ILS
}

type ILS struct {
	Type   string
	ICAO   string
	Region string
}
