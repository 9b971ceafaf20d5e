// sim/sim.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package sim is an in-process loopback simulator that speaks the same
// transport contract as a live simulator connection. It serves a small
// synthetic world so that the client (and the command-line tool) can run
// without a flight simulator on the other end.
package sim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"
	"strings"
	"sync"
	"time"

	"github.com/simlink/simlink/facility"
	"github.com/simlink/simlink/log"
	"github.com/simlink/simlink/simconnect"
)

// Sim implements simconnect.Transport against a synthetic world: a variable
// store seeded with a parked aircraft, a fixed set of airports, and periodic
// system events.
type Sim struct {
	lg *log.Logger

	mu     sync.Mutex
	recv   chan simconnect.Recv
	closed bool

	vars map[string]float64
	strs map[string]string

	airports []facility.Airport

	defs   map[uint32][]defMember
	subs   map[uint32]string
	events map[uint32]string // Trigger-side client event map

	stop chan struct{}
}

type defMember struct {
	name string
	typ  simconnect.DataType
}

// listPageSize is how many airports go in one facility-list page; small
// enough that the built-in world always paginates.
const listPageSize = 8

// New starts a loopback simulator. The world begins with the aircraft
// parked at Seattle-Tacoma and the clock running.
func New(lg *log.Logger) *Sim {
	s := &Sim{
		lg:       lg,
		recv:     make(chan simconnect.Recv, 256),
		vars:     defaultVars(),
		strs:     defaultStrings(),
		airports: builtinAirports(),
		defs:     make(map[uint32][]defMember),
		subs:     make(map[uint32]string),
		events:   make(map[uint32]string),
		stop:     make(chan struct{}),
	}
	s.recv <- simconnect.RecvOpen{ApplicationName: "simlink loopback"}
	go s.run()
	return s
}

// run advances the world: a gentle taxi drift so that position and speed
// variables change over time, plus the periodic system events.
func (s *Sim) run() {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.tick()
		}
	}
}

func (s *Sim) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// Creep north-east at the current ground speed.
	gs := s.vars["GROUND VELOCITY"]
	s.vars["PLANE LATITUDE"] += gs / 3600 / 60
	s.vars["PLANE LONGITUDE"] += gs / 3600 / 60 / gomath.Cos(s.vars["PLANE LATITUDE"]*gomath.Pi/180)
	s.vars["ABSOLUTE TIME"] += 1

	for id, name := range s.subs {
		if name == "1sec" {
			s.send(simconnect.RecvEvent{EventID: id, Data: uint32(s.vars["ABSOLUTE TIME"])})
		}
	}
}

func (s *Sim) SubscribeToSystemEvent(id uint32, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[id] = name

	switch name {
	case "Pause", "Sim":
		// State events report their current value immediately.
		s.send(simconnect.RecvEvent{EventID: id, Data: uint32(s.vars[strings.ToUpper(name)+" STATE"])})
	}
	return nil
}

func (s *Sim) MapClientEventToSimEvent(id uint32, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[id] = name
	return nil
}

func (s *Sim) TransmitClientEvent(id uint32, data uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.events[id]
	if !ok {
		return fmt.Errorf("event id %d not mapped", id)
	}

	switch name {
	case "GEAR_TOGGLE":
		s.vars["GEAR HANDLE POSITION"] = 1 - s.vars["GEAR HANDLE POSITION"]
	case "PAUSE_TOGGLE":
		s.vars["PAUSE STATE"] = 1 - s.vars["PAUSE STATE"]
		for sid, sname := range s.subs {
			if sname == "Pause" {
				s.send(simconnect.RecvEvent{EventID: sid, Data: uint32(s.vars["PAUSE STATE"])})
			}
		}
	case "PARKING_BRAKES":
		s.vars["BRAKE PARKING POSITION"] = 1 - s.vars["BRAKE PARKING POSITION"]
	default:
		s.lg.Debugf("client event %s(%d) ignored", name, data)
	}
	return nil
}

func (s *Sim) AddToDataDefinition(defID uint32, name, units string, t simconnect.DataType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[defID] = append(s.defs[defID], defMember{name: name, typ: t})
	return nil
}

func (s *Sim) ClearDataDefinition(defID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.defs, defID)
	return nil
}

func (s *Sim) RequestDataOnSimObject(reqID, defID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf []byte
	for _, m := range s.defs[defID] {
		b, err := s.encodeVar(m)
		if err != nil {
			return err
		}
		buf = append(buf, b...)
	}
	s.send(simconnect.RecvSimObjectData{RequestID: reqID, DefineID: defID, Data: buf})
	return nil
}

func (s *Sim) SetDataOnSimObject(defID uint32, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	off := 0
	for _, m := range s.defs[defID] {
		n := m.typ.Size()
		if n < 0 || off+n > len(data) {
			return fmt.Errorf("definition %d: write block too short", defID)
		}
		s.storeVar(m, data[off:off+n])
		off += n
	}
	return nil
}

func (s *Sim) RequestFacilitiesList(typ simconnect.FacilityType, reqID uint32) error {
	if typ != simconnect.FacilityAirport {
		return fmt.Errorf("facility type %d not served", typ)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.airports)
	outOf := max(1, (n+listPageSize-1)/listPageSize)
	for i := 0; i < outOf; i++ {
		page := simconnect.RecvAirportList{RequestID: reqID, EntryNumber: i, OutOf: outOf}
		for j := i * listPageSize; j < min(n, (i+1)*listPageSize); j++ {
			ap := s.airports[j]
			page.Airports = append(page.Airports, simconnect.FacilityListEntry{
				ICAO: ap.ICAO, Region: ap.Region,
				Latitude: ap.Latitude, Longitude: ap.Longitude,
			})
		}
		s.send(page)
	}
	return nil
}

func (s *Sim) RequestFacilityData(defID, reqID uint32, icao string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ap := range s.airports {
		if ap.ICAO == icao {
			s.send(simconnect.RecvFacilityData{RequestID: reqID,
				Data: facility.AppendAirportRecord(nil, ap)})
			s.send(simconnect.RecvFacilityDataEnd{RequestID: reqID})
			return nil
		}
	}
	return fmt.Errorf("%s: not in the built-in world", icao)
}

func (s *Sim) Recv() <-chan simconnect.Recv { return s.recv }

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.stop)
		close(s.recv)
	}
	return nil
}

// send drops messages once closed; callers hold s.mu.
func (s *Sim) send(m simconnect.Recv) {
	if s.closed {
		return
	}
	select {
	case s.recv <- m:
	default:
		s.lg.Warn("loopback recv queue full; message dropped")
	}
}

func (s *Sim) encodeVar(m defMember) ([]byte, error) {
	if n := m.typ.Size(); m.typ >= simconnect.DataTypeString8 {
		b := make([]byte, n)
		copy(b, s.strs[m.name])
		return b, nil
	}

	v := s.vars[m.name]
	switch m.typ {
	case simconnect.DataTypeInt32:
		return binary.LittleEndian.AppendUint32(nil, uint32(int32(v))), nil
	case simconnect.DataTypeInt64:
		return binary.LittleEndian.AppendUint64(nil, uint64(int64(v))), nil
	case simconnect.DataTypeFloat32:
		return binary.LittleEndian.AppendUint32(nil, gomath.Float32bits(float32(v))), nil
	case simconnect.DataTypeFloat64:
		return binary.LittleEndian.AppendUint64(nil, gomath.Float64bits(v)), nil
	default:
		return nil, fmt.Errorf("%s: unencodable datatype %s", m.name, m.typ)
	}
}

func (s *Sim) storeVar(m defMember, b []byte) {
	if m.typ >= simconnect.DataTypeString8 {
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		s.strs[m.name] = string(b)
		return
	}

	switch m.typ {
	case simconnect.DataTypeInt32:
		s.vars[m.name] = float64(int32(binary.LittleEndian.Uint32(b)))
	case simconnect.DataTypeInt64:
		s.vars[m.name] = float64(int64(binary.LittleEndian.Uint64(b)))
	case simconnect.DataTypeFloat32:
		s.vars[m.name] = float64(gomath.Float32frombits(binary.LittleEndian.Uint32(b)))
	case simconnect.DataTypeFloat64:
		s.vars[m.name] = gomath.Float64frombits(binary.LittleEndian.Uint64(b))
	}
}
