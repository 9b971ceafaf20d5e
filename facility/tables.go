// facility/tables.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package facility

// The tables below mirror the simulator's index assignments exactly; they
// are part of the wire contract. An index outside a table decodes to the
// empty string.

const surfaceUnknown = 254

var runwaySurfaces = [...]string{
	"concrete",
	"grass",
	"water fsx",
	"grass bumpy",
	"asphalt",
	"short grass",
	"long grass",
	"hard turf",
	"snow",
	"ice",
	"urban",
	"forest",
	"dirt",
	"coral",
	"gravel",
	"oil treated",
	"steel mats",
	"bituminus",
	"brick",
	"macadam",
	"planks",
	"sand",
	"shale",
	"tarmac",
	"wright flyer track",
	"ocean",
	"water",
	"pond",
	"lake",
	"river",
	"waste water",
	"paved",
}

// Runway "numbers" include the cardinal and intercardinal directions used
// for unnumbered strips.
var runwayNumbers = [...]string{
	"none",
	"1", "2", "3", "4", "5", "6", "7", "8", "9",
	"10", "11", "12", "13", "14", "15", "16", "17", "18",
	"19", "20", "21", "22", "23", "24", "25", "26", "27",
	"28", "29", "30", "31", "32", "33", "34", "35", "36",
	"N", "NE", "E", "SE", "S", "SW", "W", "NW",
}

var runwayDesignators = [...]string{
	"none",
	"left",
	"right",
	"center",
	"water",
	"a",
	"b",
	"last",
}

// ILS type indices are the ASCII codes of the protocol's route-type
// characters.
var ilsTypes = map[int32]string{
	0:   "none",
	65:  "airport",  // 'A'
	86:  "VOR",      // 'V'
	78:  "NDB",      // 'N'
	87:  "waypoint", // 'W'
}

func surfaceName(index int32) string {
	if index == surfaceUnknown {
		return "unknown"
	}
	if index < 0 || int(index) >= len(runwaySurfaces) {
		return ""
	}
	return runwaySurfaces[index]
}

func runwayNumber(index int32) string {
	if index < 0 || int(index) >= len(runwayNumbers) {
		return ""
	}
	return runwayNumbers[index]
}

func runwayDesignator(index int32) string {
	if index < 0 || int(index) >= len(runwayDesignators) {
		return ""
	}
	return runwayDesignators[index]
}
