// facility/query.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package facility

import (
	"strconv"
	"strings"
)

// QueryKind enumerates the special airport-database queries that are
// expressed as variable names on the client's Get surface.
type QueryKind int

const (
	// QueryAll returns the complete airport set ("ALL AIRPORTS").
	QueryAll QueryKind = iota
	// QueryNearby returns airports within a radius of the user aircraft
	// ("NEARBY AIRPORTS" or "NEARBY AIRPORTS:150" with a radius in nm).
	QueryNearby
	// QueryAirport returns a single airport by code ("AIRPORT:KSEA").
	QueryAirport
)

// DefaultNearbyRadiusNM is the radius used when a NEARBY AIRPORTS query
// doesn't specify one.
const DefaultNearbyRadiusNM = 200

type Query struct {
	Kind     QueryKind
	RadiusNM float64 // QueryNearby
	ICAO     string  // QueryAirport
}

// ParseQuery recognizes the special airport-database variable names. The
// boolean result is false for anything else, i.e. for names that should be
// treated as plain simulator variables.
func ParseQuery(name string) (Query, bool) {
	switch {
	case name == "ALL AIRPORTS":
		return Query{Kind: QueryAll}, true

	case strings.HasPrefix(name, "NEARBY AIRPORTS"):
		q := Query{Kind: QueryNearby, RadiusNM: DefaultNearbyRadiusNM}
		if rest, ok := strings.CutPrefix(name, "NEARBY AIRPORTS:"); ok {
			if r, err := strconv.ParseFloat(strings.TrimSpace(rest), 64); err == nil && r > 0 {
				q.RadiusNM = r
			}
		}
		return q, true

	case strings.HasPrefix(name, "AIRPORT:"):
		return Query{Kind: QueryAirport, ICAO: strings.TrimPrefix(name, "AIRPORT:")}, true
	}
	return Query{}, false
}
