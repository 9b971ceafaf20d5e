// sim/world.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import "github.com/simlink/simlink/facility"

// The built-in world: a Cessna parked at KSEA with a handful of Pacific
// Northwest airports around it.

func defaultVars() map[string]float64 {
	return map[string]float64{
		"PLANE LATITUDE":                 47.4502,
		"PLANE LONGITUDE":                -122.3088,
		"PLANE ALTITUDE":                 433,
		"PLANE ALT ABOVE GROUND":         0,
		"INDICATED ALTITUDE":             433,
		"PLANE HEADING DEGREES TRUE":     340,
		"PLANE HEADING DEGREES MAGNETIC": 325,
		"PLANE PITCH DEGREES":            0,
		"PLANE BANK DEGREES":             0,
		"MAGVAR":                         15.3,
		"AIRSPEED INDICATED":             0,
		"AIRSPEED TRUE":                  0,
		"GROUND VELOCITY":                0,
		"VERTICAL SPEED":                 0,
		"SIM ON GROUND":                  1,
		"ON ANY RUNWAY":                  0,
		"SIMULATION RATE":                1,
		"KOHLSMAN SETTING HG":            29.92,
		"BAROMETER PRESSURE":             1013.25,
		"AMBIENT TEMPERATURE":            12,
		"AMBIENT WIND DIRECTION":         220,
		"AMBIENT WIND VELOCITY":          7,
		"GEAR HANDLE POSITION":           1,
		"BRAKE PARKING POSITION":         1,
		"FLAPS HANDLE INDEX":             0,
		"FLAPS HANDLE PERCENT":           0,
		"GENERAL ENG RPM:1":              0,
		"GENERAL ENG THROTTLE LEVER POSITION:1": 0,
		"FUEL TOTAL CAPACITY":            56,
		"FUEL TOTAL QUANTITY":            48,
		"ELECTRICAL MASTER BATTERY":      0,
		"AUTOPILOT MASTER":               0,
		"AUTOPILOT ALTITUDE LOCK VAR":    0,
		"AUTOPILOT HEADING LOCK DIR":     0,
		"LIGHT BEACON":                   0,
		"LIGHT LANDING":                  0,
		"LIGHT NAV":                      0,
		"LIGHT STROBE":                   0,
		"LIGHT TAXI":                     0,
		"COM ACTIVE FREQUENCY:1":         119.9,
		"COM STANDBY FREQUENCY:1":        121.5,
		"NAV ACTIVE FREQUENCY:1":         116.8,
		"TRANSPONDER CODE:1":             1200,
		"LOCAL TIME":                     9 * 3600,
		"ZULU TIME":                      17 * 3600,
		"ABSOLUTE TIME":                  0,
		"PAUSE STATE":                    0,
		"SIM STATE":                      1,
	}
}

func defaultStrings() map[string]string {
	return map[string]string{
		"TITLE":             "Cessna 172 Skyhawk",
		"ATC ID":            "N172SL",
		"ATC AIRLINE":       "",
		"ATC FLIGHT NUMBER": "",
	}
}

func runway(lat, lon, alt, hdg, length, width float64, surface, num1, mark1, num2, mark2 string, ils facility.ILS) facility.Runway {
	return facility.Runway{
		Latitude: lat, Longitude: lon, Altitude: alt,
		Heading: hdg, Length: length, Width: width,
		PatternAltitude: 305, // 1000ft AGL, in meters
		Surface:         surface,
		Approaches: [2]facility.Approach{
			{Designation: num1, Marking: mark1, ILS: ils},
			{Designation: num2, Marking: mark2},
		},
	}
}

func builtinAirports() []facility.Airport {
	return []facility.Airport{
		{
			ICAO: "KSEA", Latitude: 47.4502, Longitude: -122.3088, Altitude: 433,
			Declination: 15.3, Name: "Seattle-Tacoma Intl",
			Name64: "Seattle-Tacoma International Airport", Region: "K1",
			Runways: []facility.Runway{
				runway(47.4637, -122.3079, 432, 163, 3627, 46, "concrete",
					"16", "left", "34", "right",
					facility.ILS{Type: "airport", ICAO: "ISZN", Region: "K1"}),
				runway(47.4635, -122.3101, 430, 163, 2873, 46, "concrete",
					"16", "center", "34", "center", facility.ILS{Type: "none"}),
			},
		},
		{
			ICAO: "KBFI", Latitude: 47.53, Longitude: -122.302, Altitude: 21,
			Declination: 15.3, Name: "Boeing Field",
			Name64: "Boeing Field King County International", Region: "K1",
			Runways: []facility.Runway{
				runway(47.5321, -122.3031, 18, 136, 3050, 61, "asphalt",
					"14", "right", "32", "left",
					facility.ILS{Type: "airport", ICAO: "IBFI", Region: "K1"}),
			},
		},
		{
			ICAO: "KRNT", Latitude: 47.4931, Longitude: -122.2157, Altitude: 32,
			Declination: 15.3, Name: "Renton Muni",
			Name64: "Renton Municipal Airport", Region: "K1",
			Runways: []facility.Runway{
				runway(47.4931, -122.2157, 32, 153, 1640, 61, "asphalt",
					"16", "none", "34", "none", facility.ILS{Type: "none"}),
			},
		},
		{
			ICAO: "KPAE", Latitude: 47.9063, Longitude: -122.2816, Altitude: 606,
			Declination: 15.4, Name: "Paine Field",
			Name64: "Snohomish County Airport Paine Field", Region: "K1",
			Runways: []facility.Runway{
				runway(47.9063, -122.2816, 606, 162, 2746, 46, "asphalt",
					"16", "right", "34", "left",
					facility.ILS{Type: "airport", ICAO: "IPAE", Region: "K1"}),
			},
		},
		{
			ICAO: "KTIW", Latitude: 47.2679, Longitude: -122.5781, Altitude: 294,
			Declination: 15.3, Name: "Tacoma Narrows",
			Name64: "Tacoma Narrows Airport", Region: "K1",
			Runways: []facility.Runway{
				runway(47.2679, -122.5781, 294, 173, 1525, 30, "asphalt",
					"17", "none", "35", "none", facility.ILS{Type: "none"}),
			},
		},
		{
			ICAO: "KOLM", Latitude: 46.9694, Longitude: -122.9026, Altitude: 209,
			Declination: 15.2, Name: "Olympia Regional",
			Name64: "Olympia Regional Airport", Region: "K1",
			Runways: []facility.Runway{
				runway(46.9694, -122.9026, 209, 171, 1652, 46, "asphalt",
					"17", "none", "35", "none", facility.ILS{Type: "none"}),
			},
		},
		{
			ICAO: "KPDX", Latitude: 45.5887, Longitude: -122.5975, Altitude: 31,
			Declination: 15.1, Name: "Portland Intl",
			Name64: "Portland International Airport", Region: "K1",
			Runways: []facility.Runway{
				runway(45.5887, -122.5975, 31, 117, 3353, 46, "asphalt",
					"10", "right", "28", "left",
					facility.ILS{Type: "airport", ICAO: "IPDX", Region: "K1"}),
			},
		},
		{
			ICAO: "CYVR", Latitude: 49.1939, Longitude: -123.1844, Altitude: 14,
			Declination: 16.1, Name: "Vancouver Intl",
			Name64: "Vancouver International Airport", Region: "CY",
			Runways: []facility.Runway{
				runway(49.1939, -123.1844, 14, 100, 3030, 61, "asphalt",
					"8", "left", "26", "right",
					facility.ILS{Type: "airport", ICAO: "IVR", Region: "CY"}),
			},
		},
		{
			ICAO: "S43", Latitude: 47.9083, Longitude: -122.1054, Altitude: 22,
			Declination: 15.4, Name: "Harvey Field",
			Name64: "Harvey Field Airport", Region: "K1",
			Runways: []facility.Runway{
				runway(47.9083, -122.1054, 22, 147, 814, 11, "grass",
					"15", "right", "33", "left", facility.ILS{Type: "none"}),
			},
		},
	}
}
