// facility/encode.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package facility

import (
	"encoding/binary"
	gomath "math"
	"slices"

	"github.com/simlink/simlink/math"
)

// AppendAirportRecord appends the wire encoding of ap to b, inverting
// DecodeAirport. It exists for the loopback simulator and for tests; a real
// simulator produces these records itself.
func AppendAirportRecord(b []byte, ap Airport) []byte {
	b = appendF64(b, ap.Latitude)
	b = appendF64(b, ap.Longitude)
	b = appendF64(b, ap.Altitude/math.MetersToFeet)
	b = appendF32(b, ap.Declination)
	b = appendStr(b, ap.Name, 32)
	b = appendStr(b, ap.Name64, 64)
	b = appendStr(b, ap.Region, 8)
	b = appendI32(b, int32(len(ap.Runways)))

	for _, rwy := range ap.Runways {
		b = appendF64(b, rwy.Latitude)
		b = appendF64(b, rwy.Longitude)
		b = appendF64(b, rwy.Altitude/math.MetersToFeet)
		b = appendF32(b, rwy.Heading)
		b = appendF32(b, rwy.Length)
		b = appendF32(b, rwy.Width)
		b = appendF32(b, rwy.PatternAltitude)
		b = appendF32(b, math.Radians(rwy.Slope))
		b = appendF32(b, math.Radians(rwy.SlopeTrue))
		b = appendI32(b, surfaceIndex(rwy.Surface))
		for _, app := range rwy.Approaches {
			b = appendI32(b, int32(slices.Index(runwayNumbers[:], app.Designation)))
			b = appendI32(b, int32(slices.Index(runwayDesignators[:], app.Marking)))
			b = appendI32(b, ilsTypeIndex(app.ILS.Type))
			b = appendStr(b, app.ILS.ICAO, 8)
			b = appendStr(b, app.ILS.Region, 8)
		}
	}
	return b
}

func surfaceIndex(name string) int32 {
	if name == "unknown" {
		return surfaceUnknown
	}
	return int32(slices.Index(runwaySurfaces[:], name))
}

func ilsTypeIndex(name string) int32 {
	for idx, n := range ilsTypes {
		if n == name {
			return idx
		}
	}
	return -1
}

func appendF64(b []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(b, gomath.Float64bits(v))
}

func appendF32(b []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint32(b, gomath.Float32bits(float32(v)))
}

func appendI32(b []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(v))
}

func appendStr(b []byte, s string, n int) []byte {
	for i := 0; i < n; i++ {
		if i < len(s) {
			b = append(b, s[i])
		} else {
			b = append(b, 0)
		}
	}
	return b
}
