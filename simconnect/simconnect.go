// simconnect/simconnect.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package simconnect defines the contract with the simulator's binary
// request/response protocol: the Transport interface that a concrete
// connection must provide, the messages it delivers, and the datatype and
// facility constants that are part of the wire format. The connection
// handshake and byte framing themselves are out of scope here; a Transport
// implementation supplies them.
package simconnect

// Transport is the low-level connection to the simulator. Implementations
// must deliver all inbound traffic on the channel returned by Recv; the
// channel is closed when the connection goes away.
//
// All calls are identified by small caller-chosen numeric IDs; matching
// responses carry the same ID. The protocol has no unsubscribe: an event
// subscription lives until the connection is torn down.
type Transport interface {
	// SubscribeToSystemEvent asks the simulator to deliver the named event
	// on the inbound stream, tagged with id, for the life of the connection.
	SubscribeToSystemEvent(id uint32, name string) error

	// MapClientEventToSimEvent binds id to the named simulator event so
	// that it can later be fired with TransmitClientEvent.
	MapClientEventToSimEvent(id uint32, name string) error
	TransmitClientEvent(id uint32, data uint32) error

	// AddToDataDefinition appends the named simulator variable to the data
	// definition identified by defID. A definition with several variables
	// yields response payloads with their values packed in definition
	// order.
	AddToDataDefinition(defID uint32, name string, units string, dataType DataType) error
	ClearDataDefinition(defID uint32) error

	// RequestDataOnSimObject requests a one-shot read of the given data
	// definition for the user aircraft; the response arrives as a
	// RecvSimObjectData carrying reqID.
	RequestDataOnSimObject(reqID uint32, defID uint32) error

	// SetDataOnSimObject writes a packed payload for the given data
	// definition to the user aircraft. The protocol sends no
	// acknowledgment.
	SetDataOnSimObject(defID uint32, data []byte) error

	// RequestFacilitiesList requests the simulator's current facility
	// database for the given type; the reply is a sequence of
	// RecvAirportList pages tagged with reqID.
	RequestFacilitiesList(typ FacilityType, reqID uint32) error

	// RequestFacilityData requests the full record for one facility; the
	// reply is one or more RecvFacilityData messages followed by a
	// RecvFacilityDataEnd, all tagged with reqID.
	RequestFacilityData(defID uint32, reqID uint32, icao string) error

	Recv() <-chan Recv
	Close() error
}

// Recv is implemented by all messages a Transport delivers.
type Recv interface {
	recv()
}

// RecvOpen reports a successfully established connection.
type RecvOpen struct {
	ApplicationName string
}

// RecvQuit reports that the simulator is shutting down.
type RecvQuit struct{}

// RecvException reports a protocol-level error for a previously sent call.
type RecvException struct {
	Exception uint32
	SendID    uint32
}

// RecvEvent delivers one occurrence of a subscribed system event.
type RecvEvent struct {
	EventID uint32
	Data    uint32
}

// RecvSimObjectData carries the packed values for a one-shot data request.
type RecvSimObjectData struct {
	RequestID uint32
	DefineID  uint32
	Data      []byte
}

// RecvAirportList is one page of a facility-list reply. EntryNumber is the
// zero-based index of this page and OutOf the total page count, so the final
// page is the one with EntryNumber == OutOf-1.
type RecvAirportList struct {
	RequestID   uint32
	EntryNumber int
	OutOf       int
	Airports    []FacilityListEntry
}

// FacilityListEntry is the summary record for one facility in a list page.
type FacilityListEntry struct {
	ICAO      string
	Region    string
	Latitude  float64
	Longitude float64
	Altitude  float64 // meters
}

// RecvFacilityData carries a batch of fields from a facility-detail reply.
type RecvFacilityData struct {
	RequestID uint32
	Data      []byte
}

// RecvFacilityDataEnd marks the end of a facility-detail reply.
type RecvFacilityDataEnd struct {
	RequestID uint32
}

func (RecvOpen) recv()            {}
func (RecvQuit) recv()            {}
func (RecvException) recv()       {}
func (RecvEvent) recv()           {}
func (RecvSimObjectData) recv()   {}
func (RecvAirportList) recv()     {}
func (RecvFacilityData) recv()    {}
func (RecvFacilityDataEnd) recv() {}
