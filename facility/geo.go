// facility/geo.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package facility

import (
	"sort"

	"github.com/simlink/simlink/math"
)

// NearbyAirport is an Airport annotated with its great-circle distance from
// the reference point of a radius query.
type NearbyAirport struct {
	Airport
	DistanceNM float64
}

// Nearby returns the airports within radiusNM nautical miles of the given
// position, sorted by increasing distance. The sort is stable, so airports
// at equal distance keep their input order.
func Nearby(airports []Airport, lat, lon, radiusNM float64) []NearbyAirport {
	ref := math.Point2LL{lon, lat}
	radiusKM := radiusNM * math.KilometersPerNauticalMile

	var result []NearbyAirport
	for _, ap := range airports {
		d := math.NMDistance2LL(ref, ap.Location())
		if d*math.KilometersPerNauticalMile <= radiusKM {
			result = append(result, NearbyAirport{Airport: ap, DistanceNM: d})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceNM < result[j].DistanceNM
	})
	return result
}

// ByICAO returns the first airport whose ICAO code matches exactly
// (case-sensitive).
func ByICAO(airports []Airport, code string) (Airport, bool) {
	for _, ap := range airports {
		if ap.ICAO == code {
			return ap, true
		}
	}
	return Airport{}, false
}
