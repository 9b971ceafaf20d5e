// facility/decode.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package facility

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/simlink/simlink/math"
)

// cursor walks a little-endian facility record. The first decode past the
// end of the buffer latches err; subsequent reads return zeros so that a
// decode function can run to completion and report the error once.
type cursor struct {
	b   []byte
	off int
	err error
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if c.off+n > len(c.b) {
		c.err = fmt.Errorf("%w: %d bytes at offset %d", ErrTruncatedRecord, n, c.off)
		return nil
	}
	b := c.b[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) f64() float64 {
	if b := c.take(8); b != nil {
		return gomath.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return 0
}

func (c *cursor) f32() float64 {
	if b := c.take(4); b != nil {
		return float64(gomath.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
	return 0
}

func (c *cursor) i32() int32 {
	if b := c.take(4); b != nil {
		return int32(binary.LittleEndian.Uint32(b))
	}
	return 0
}

func (c *cursor) str(n int) string {
	b := c.take(n)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// DecodeAirport decodes one complete facility-detail record: the airport
// header followed by its runway records. icao is the code the record was
// requested for; the record itself does not repeat it.
func DecodeAirport(icao string, b []byte) (Airport, error) {
	c := &cursor{b: b}

	ap := Airport{
		ICAO:        icao,
		Latitude:    c.f64(),
		Longitude:   c.f64(),
		Altitude:    c.f64() * math.MetersToFeet,
		Declination: c.f32(),
		Name:        c.str(32),
		Name64:      c.str(64),
		Region:      c.str(8),
	}

	n := c.i32()
	for i := int32(0); i < n && c.err == nil; i++ {
		ap.Runways = append(ap.Runways, decodeRunway(c))
	}

	if c.err != nil {
		return Airport{}, fmt.Errorf("%s: %w", icao, c.err)
	}
	return ap, nil
}

func decodeRunway(c *cursor) Runway {
	rwy := Runway{
		Latitude:        c.f64(),
		Longitude:       c.f64(),
		Altitude:        c.f64() * math.MetersToFeet,
		Heading:         c.f32(),
		Length:          c.f32(),
		Width:           c.f32(),
		PatternAltitude: c.f32(),
		Slope:           math.Degrees(c.f32()),
		SlopeTrue:       math.Degrees(c.f32()),
		Surface:         surfaceName(c.i32()),
	}
	for i := range rwy.Approaches {
		rwy.Approaches[i] = decodeApproach(c)
	}
	return rwy
}

func decodeApproach(c *cursor) Approach {
	return Approach{
		Designation: runwayNumber(c.i32()),
		Marking:     runwayDesignator(c.i32()),
		ILS: ILS{
			Type:   ilsTypes[c.i32()],
			ICAO:   c.str(8),
			Region: c.str(8),
		},
	}
}
