// client/transport_test.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package client

import (
	"fmt"
	"sync"

	"github.com/simlink/simlink/facility"
	"github.com/simlink/simlink/simconnect"
)

// fakeTransport is a scripted in-memory Transport. Simulator variables are
// served from varValues; airports from airports. One-shot data requests and
// facility requests are answered immediately on the recv channel.
type fakeTransport struct {
	mu sync.Mutex

	recv   chan simconnect.Recv
	closed bool

	varValues    map[string][]byte // packed value per variable name
	airports     []facility.Airport
	listPageSize int

	mute bool // if set, data requests go unanswered

	subscribes  []string          // system event names, in call order
	subIDs      map[string]uint32 // system event name -> id
	defs        map[uint32][]string
	sets        map[uint32][]byte
	cleared     []uint32
	mapped      map[string]uint32
	transmitted []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		recv:         make(chan simconnect.Recv, 64),
		varValues:    make(map[string][]byte),
		subIDs:       make(map[string]uint32),
		defs:         make(map[uint32][]string),
		sets:         make(map[uint32][]byte),
		mapped:       make(map[string]uint32),
		listPageSize: 2,
	}
}

func (f *fakeTransport) SubscribeToSystemEvent(id uint32, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribes = append(f.subscribes, name)
	f.subIDs[name] = id
	return nil
}

func (f *fakeTransport) MapClientEventToSimEvent(id uint32, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mapped[name] = id
	return nil
}

func (f *fakeTransport) TransmitClientEvent(id uint32, data uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, mid := range f.mapped {
		if mid == id {
			f.transmitted = append(f.transmitted, fmt.Sprintf("%s=%d", name, data))
			return nil
		}
	}
	return fmt.Errorf("transmit of unmapped event id %d", id)
}

func (f *fakeTransport) AddToDataDefinition(defID uint32, name, units string, t simconnect.DataType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defs[defID] = append(f.defs[defID], name)
	return nil
}

func (f *fakeTransport) ClearDataDefinition(defID uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, defID)
	delete(f.defs, defID)
	return nil
}

func (f *fakeTransport) RequestDataOnSimObject(reqID, defID uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mute {
		return nil
	}
	var payload []byte
	for _, name := range f.defs[defID] {
		v, ok := f.varValues[name]
		if !ok {
			return fmt.Errorf("%s: no canned value", name)
		}
		payload = append(payload, v...)
	}
	f.send(simconnect.RecvSimObjectData{RequestID: reqID, DefineID: defID, Data: payload})
	return nil
}

func (f *fakeTransport) SetDataOnSimObject(defID uint32, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets[defID] = data
	return nil
}

func (f *fakeTransport) RequestFacilitiesList(typ simconnect.FacilityType, reqID uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.airports)
	outOf := max(1, (n+f.listPageSize-1)/f.listPageSize)
	for i := 0; i < outOf; i++ {
		page := simconnect.RecvAirportList{RequestID: reqID, EntryNumber: i, OutOf: outOf}
		for j := i * f.listPageSize; j < min(n, (i+1)*f.listPageSize); j++ {
			ap := f.airports[j]
			page.Airports = append(page.Airports, simconnect.FacilityListEntry{
				ICAO: ap.ICAO, Region: ap.Region,
				Latitude: ap.Latitude, Longitude: ap.Longitude,
			})
		}
		f.send(page)
	}
	return nil
}

func (f *fakeTransport) RequestFacilityData(defID, reqID uint32, icao string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.airports {
		if ap.ICAO == icao {
			b := facility.AppendAirportRecord(nil, ap)
			// Deliver in two batches to exercise reassembly.
			half := len(b) / 2
			f.send(simconnect.RecvFacilityData{RequestID: reqID, Data: b[:half]})
			f.send(simconnect.RecvFacilityData{RequestID: reqID, Data: b[half:]})
			f.send(simconnect.RecvFacilityDataEnd{RequestID: reqID})
			return nil
		}
	}
	return fmt.Errorf("%s: unknown airport", icao)
}

func (f *fakeTransport) Recv() <-chan simconnect.Recv { return f.recv }

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.recv)
	}
	return nil
}

// send must be called with f.mu held.
func (f *fakeTransport) send(m simconnect.Recv) {
	if !f.closed {
		f.recv <- m
	}
}

// postEvent injects a system event for the named subscription.
func (f *fakeTransport) postEvent(name string, data uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.send(simconnect.RecvEvent{EventID: f.subIDs[name], Data: data})
}

func (f *fakeTransport) subscribeCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.subscribes {
		if s == name {
			n++
		}
	}
	return n
}

func (f *fakeTransport) clearedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cleared)
}
