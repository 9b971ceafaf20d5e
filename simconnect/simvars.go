// simconnect/simvars.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simconnect

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSimVar = errors.New("unknown simulator variable")

// SimVar describes how a named simulator variable is requested on the wire:
// the units string that accompanies the data definition, the payload
// encoding, and whether the simulator accepts writes to it.
type SimVar struct {
	Units    string
	Type     DataType
	Settable bool
}

// This is nowhere near the simulator's full catalog; it covers the commonly
// used variables. Unlisted names fail lookup and surface as an error to the
// caller rather than being passed through, since a bogus name in a data
// definition otherwise shows up as an opaque protocol exception.
var simVars = map[string]SimVar{
	"ATC ID":                     {"", DataTypeString32, true},
	"ATC AIRLINE":                {"", DataTypeString64, true},
	"ATC FLIGHT NUMBER":          {"", DataTypeString8, true},
	"TITLE":                      {"", DataTypeString128, false},
	"PLANE LATITUDE":             {"degrees", DataTypeFloat64, true},
	"PLANE LONGITUDE":            {"degrees", DataTypeFloat64, true},
	"PLANE ALTITUDE":             {"feet", DataTypeFloat64, true},
	"PLANE ALT ABOVE GROUND":     {"feet", DataTypeFloat64, true},
	"PLANE HEADING DEGREES TRUE": {"degrees", DataTypeFloat64, true},
	"PLANE HEADING DEGREES MAGNETIC": {"degrees", DataTypeFloat64, true},
	"PLANE PITCH DEGREES":            {"degrees", DataTypeFloat64, true},
	"PLANE BANK DEGREES":             {"degrees", DataTypeFloat64, true},
	"MAGVAR":                         {"degrees", DataTypeFloat64, false},
	"INDICATED ALTITUDE":             {"feet", DataTypeFloat64, true},
	"AIRSPEED INDICATED":             {"knots", DataTypeFloat64, true},
	"AIRSPEED TRUE":                  {"knots", DataTypeFloat64, true},
	"GROUND VELOCITY":                {"knots", DataTypeFloat64, false},
	"VERTICAL SPEED":                 {"feet per minute", DataTypeFloat64, true},
	"SIM ON GROUND":                  {"bool", DataTypeInt32, false},
	"ON ANY RUNWAY":                  {"bool", DataTypeInt32, false},
	"AMBIENT TEMPERATURE":            {"celsius", DataTypeFloat64, false},
	"AMBIENT WIND DIRECTION":         {"degrees", DataTypeFloat64, false},
	"AMBIENT WIND VELOCITY":          {"knots", DataTypeFloat64, false},
	"BAROMETER PRESSURE":             {"millibars", DataTypeFloat64, false},
	"KOHLSMAN SETTING HG":            {"inHg", DataTypeFloat64, true},
	"FUEL TOTAL QUANTITY":            {"gallons", DataTypeFloat64, true},
	"FUEL TOTAL CAPACITY":            {"gallons", DataTypeFloat64, false},
	"GENERAL ENG THROTTLE LEVER POSITION:1": {"percent", DataTypeFloat64, true},
	"GENERAL ENG RPM:1":                     {"rpm", DataTypeFloat64, false},
	"FLAPS HANDLE INDEX":                    {"number", DataTypeInt32, true},
	"FLAPS HANDLE PERCENT":                  {"percent", DataTypeFloat64, false},
	"GEAR HANDLE POSITION":                  {"bool", DataTypeInt32, true},
	"BRAKE PARKING POSITION":                {"bool", DataTypeInt32, true},
	"LIGHT LANDING":                         {"bool", DataTypeInt32, true},
	"LIGHT TAXI":                            {"bool", DataTypeInt32, true},
	"LIGHT BEACON":                          {"bool", DataTypeInt32, true},
	"LIGHT NAV":                             {"bool", DataTypeInt32, true},
	"LIGHT STROBE":                          {"bool", DataTypeInt32, true},
	"AUTOPILOT MASTER":                      {"bool", DataTypeInt32, true},
	"AUTOPILOT HEADING LOCK DIR":            {"degrees", DataTypeFloat64, true},
	"AUTOPILOT ALTITUDE LOCK VAR":           {"feet", DataTypeFloat64, true},
	"COM ACTIVE FREQUENCY:1":                {"MHz", DataTypeFloat32, false},
	"COM STANDBY FREQUENCY:1":               {"MHz", DataTypeFloat32, false},
	"NAV ACTIVE FREQUENCY:1":                {"MHz", DataTypeFloat32, false},
	"TRANSPONDER CODE:1":                    {"number", DataTypeInt32, false},
	"ELECTRICAL MASTER BATTERY":             {"bool", DataTypeInt32, true},
	"SIMULATION RATE":                       {"number", DataTypeInt32, false},
	"LOCAL TIME":                            {"seconds", DataTypeFloat64, false},
	"ZULU TIME":                             {"seconds", DataTypeFloat64, false},
}

// LookupSimVar returns the request description for the named variable.
// Names are case-insensitive.
func LookupSimVar(name string) (SimVar, error) {
	v, ok := simVars[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return SimVar{}, fmt.Errorf("%s: %w", name, ErrUnknownSimVar)
	}
	return v, nil
}
