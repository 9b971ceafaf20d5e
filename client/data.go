// client/data.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package client

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/simlink/simlink/simconnect"
)

// packValue encodes a value for a single-variable data definition of the
// given type. Numeric values accept any Go numeric type plus bool (1/0).
func packValue(v any, t simconnect.DataType) ([]byte, error) {
	if n := t.Size(); n > 0 && t >= simconnect.DataTypeString8 {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%T: need a string for %s", v, t)
		}
		b := make([]byte, n)
		copy(b, s) // truncate to fit; the field is fixed-width
		return b, nil
	}

	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}

	switch t {
	case simconnect.DataTypeInt32:
		return binary.LittleEndian.AppendUint32(nil, uint32(int32(f))), nil
	case simconnect.DataTypeInt64:
		return binary.LittleEndian.AppendUint64(nil, uint64(int64(f))), nil
	case simconnect.DataTypeFloat32:
		return binary.LittleEndian.AppendUint32(nil, gomath.Float32bits(float32(f))), nil
	case simconnect.DataTypeFloat64:
		return binary.LittleEndian.AppendUint64(nil, gomath.Float64bits(f)), nil
	default:
		return nil, fmt.Errorf("%s: unencodable datatype", t)
	}
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%T: not a numeric value", v)
	}
}

// unpackValues decodes a packed response block for a data definition with
// the given member types, in definition order. Floats decode to float64,
// ints to int32/int64, strings to NUL-trimmed string.
func unpackValues(b []byte, types []simconnect.DataType) ([]any, error) {
	values := make([]any, 0, len(types))
	off := 0
	for _, t := range types {
		n := t.Size()
		if n < 0 || off+n > len(b) {
			return nil, fmt.Errorf("data block too short: %d bytes for %v", len(b), types)
		}
		field := b[off : off+n]
		off += n

		switch t {
		case simconnect.DataTypeInt32:
			values = append(values, int32(binary.LittleEndian.Uint32(field)))
		case simconnect.DataTypeInt64:
			values = append(values, int64(binary.LittleEndian.Uint64(field)))
		case simconnect.DataTypeFloat32:
			values = append(values, float64(gomath.Float32frombits(binary.LittleEndian.Uint32(field))))
		case simconnect.DataTypeFloat64:
			values = append(values, gomath.Float64frombits(binary.LittleEndian.Uint64(field)))
		default: // fixed-width string
			if i := bytes.IndexByte(field, 0); i >= 0 {
				field = field[:i]
			}
			values = append(values, string(field))
		}
	}
	return values, nil
}
