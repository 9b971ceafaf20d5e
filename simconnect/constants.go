// simconnect/constants.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simconnect

// DataType identifies the wire encoding of a single variable in a data
// definition. The numeric values are part of the protocol.
type DataType uint32

const (
	DataTypeInvalid DataType = iota
	DataTypeInt32
	DataTypeInt64
	DataTypeFloat32
	DataTypeFloat64
	DataTypeString8
	DataTypeString32
	DataTypeString64
	DataTypeString128
	DataTypeString256
	DataTypeString260
	DataTypeStringV
)

// Size returns the number of bytes the type occupies in a packed data
// block, or -1 for variable-length strings.
func (t DataType) Size() int {
	switch t {
	case DataTypeInt32, DataTypeFloat32:
		return 4
	case DataTypeInt64, DataTypeFloat64:
		return 8
	case DataTypeString8:
		return 8
	case DataTypeString32:
		return 32
	case DataTypeString64:
		return 64
	case DataTypeString128:
		return 128
	case DataTypeString256:
		return 256
	case DataTypeString260:
		return 260
	default:
		return -1
	}
}

func (t DataType) String() string {
	switch t {
	case DataTypeInt32:
		return "int32"
	case DataTypeInt64:
		return "int64"
	case DataTypeFloat32:
		return "float32"
	case DataTypeFloat64:
		return "float64"
	case DataTypeString8, DataTypeString32, DataTypeString64, DataTypeString128,
		DataTypeString256, DataTypeString260:
		return "string"
	case DataTypeStringV:
		return "stringv"
	default:
		return "invalid"
	}
}

// FacilityType selects which facility database a list request returns.
type FacilityType uint32

const (
	FacilityAirport FacilityType = iota
	FacilityWaypoint
	FacilityNDB
	FacilityVOR
)
