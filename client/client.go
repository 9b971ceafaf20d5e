// client/client.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package client is the application-facing mediation layer over the
// simulator protocol: it multiplexes the protocol's small numeric id space
// across logical subscriptions and one-shot requests, correlates responses,
// and exposes the airport database built from the facility sub-protocol.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/simlink/simlink/facility"
	"github.com/simlink/simlink/log"
	"github.com/simlink/simlink/simconnect"
	"github.com/simlink/simlink/util"
)

// ConnectOptions controls connection establishment and client behavior.
type ConnectOptions struct {
	// Retries is how many additional connection attempts are made after
	// the first fails; RetryInterval is the wait between them.
	Retries       int
	RetryInterval time.Duration

	// OnRetry, if set, is called before each retry is scheduled.
	OnRetry func(attempt int, err error)

	// SnapshotPath overrides where the airport database snapshot is kept;
	// empty means the default location under the user cache directory.
	SnapshotPath string
}

// Client owns one simulator connection and the id allocator, event
// multiplexer, request correlator, and airport store bound to it.
type Client struct {
	tr    simconnect.Transport
	lg    *log.Logger
	alloc *IDAllocator
	mux   *eventMux
	corr  *correlator
	store *facility.Store

	mu       sync.Mutex
	eventIDs map[string]uint32 // client events mapped for Trigger
	listReqs map[uint32]chan facility.ListPage
	details  map[uint32]*detailCollector

	closed    chan struct{}
	closeOnce sync.Once
}

// detailCollector accumulates the field batches of one facility-detail
// reply until the end marker arrives.
type detailCollector struct {
	buf  []byte
	done chan []byte
}

// Connect dials the simulator, retrying per opts, and starts the dispatch
// loop. dial is the transport factory; it is invoked once per attempt.
func Connect(ctx context.Context, dial func() (simconnect.Transport, error), opts ConnectOptions, lg *log.Logger) (*Client, error) {
	var tr simconnect.Transport
	var err error
	for attempt := 0; ; attempt++ {
		tr, err = dial()
		if err == nil {
			break
		}
		if attempt >= opts.Retries {
			return nil, fmt.Errorf("%w after %d attempts: %v", ErrConnectionFailed, attempt+1, err)
		}
		if opts.OnRetry != nil {
			opts.OnRetry(attempt+1, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryInterval):
		}
	}

	alloc := NewIDAllocator()
	c := &Client{
		tr:       tr,
		lg:       lg,
		alloc:    alloc,
		mux:      newEventMux(alloc, tr, lg),
		corr:     newCorrelator(alloc, lg),
		eventIDs: make(map[string]uint32),
		listReqs: make(map[uint32]chan facility.ListPage),
		details:  make(map[uint32]*detailCollector),
		closed:   make(chan struct{}),
	}
	c.store = facility.NewStore(c, opts.SnapshotPath, lg)

	go c.dispatch()
	return c, nil
}

// Close tears down the connection. Deferred write cleanups are run
// immediately and all pending requests fail with ErrDisconnected.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		c.corr.close()
		err = c.tr.Close()
	})
	return err
}

// Airports exposes the airport database for direct queries; most callers
// use the special variable names on Get instead.
func (c *Client) Airports() *facility.Store {
	return c.store
}

// dispatch is the single inbound loop: every message the transport delivers
// is routed here, by id, to whichever subscription, pending request, or
// facility collector it belongs to.
func (c *Client) dispatch() {
	for msg := range c.tr.Recv() {
		switch m := msg.(type) {
		case simconnect.RecvOpen:
			c.lg.Infof("connected to %s", m.ApplicationName)

		case simconnect.RecvQuit:
			c.lg.Info("simulator is shutting down")

		case simconnect.RecvException:
			c.lg.Warn("protocol exception", slog.Uint64("exception", uint64(m.Exception)),
				slog.Uint64("send_id", uint64(m.SendID)))

		case simconnect.RecvEvent:
			if !c.mux.dispatch(m.EventID, m.Data) {
				c.lg.Warnf("event for id %d with no subscription; dropped", m.EventID)
			}

		case simconnect.RecvSimObjectData:
			if !c.corr.resolve(m.RequestID, m.Data) {
				c.lg.Warnf("data for request id %d with no pending request; dropped", m.RequestID)
			}

		case simconnect.RecvAirportList:
			c.handleListPage(m)

		case simconnect.RecvFacilityData:
			c.handleFacilityData(m)

		case simconnect.RecvFacilityDataEnd:
			c.handleFacilityDataEnd(m)
		}
	}

	// The transport is gone; fail everything that is still waiting.
	c.corr.disconnect()
	c.mu.Lock()
	for id, ch := range c.listReqs {
		close(ch)
		delete(c.listReqs, id)
	}
	for id, dc := range c.details {
		close(dc.done)
		delete(c.details, id)
	}
	c.mu.Unlock()
	c.Close()
}

///////////////////////////////////////////////////////////////////////////
// Get/Set and friends

// Get reads the named simulator variables, blocking until the simulator
// responds or ctx is done. All names are fetched with a single request.
// A single special airport-database name ("ALL AIRPORTS",
// "NEARBY AIRPORTS[:radius]", "AIRPORT:ICAO") is answered from the airport
// store, building it on first use.
func (c *Client) Get(ctx context.Context, names ...string) (map[string]any, error) {
	if len(names) == 1 {
		if q, ok := facility.ParseQuery(names[0]); ok {
			return c.facilityQuery(ctx, names[0], q)
		}
	}

	vars := make([]simconnect.SimVar, len(names))
	types := make([]simconnect.DataType, len(names))
	for i, name := range names {
		v, err := simconnect.LookupSimVar(name)
		if err != nil {
			return nil, err
		}
		vars[i], types[i] = v, v.Type
	}

	payload, err := c.corr.request(ctx,
		func(id uint32) error {
			for i, name := range names {
				if err := c.tr.AddToDataDefinition(id, name, vars[i].Units, vars[i].Type); err != nil {
					return err
				}
			}
			return c.tr.RequestDataOnSimObject(id, id)
		},
		func(id uint32) {
			if err := c.tr.ClearDataDefinition(id); err != nil {
				c.lg.Debugf("clear definition %d: %v", id, err)
			}
		})
	if err != nil {
		return nil, err
	}

	values, err := unpackValues(payload, types)
	if err != nil {
		return nil, err
	}
	result := make(map[string]any, len(names))
	for i, name := range names {
		result[name] = values[i]
	}
	return result, nil
}

func (c *Client) facilityQuery(ctx context.Context, name string, q facility.Query) (map[string]any, error) {
	if err := c.store.Build(ctx); err != nil {
		return nil, err
	}

	switch q.Kind {
	case facility.QueryAll:
		return map[string]any{name: c.store.All()}, nil

	case facility.QueryNearby:
		pos, err := c.Get(ctx, "PLANE LATITUDE", "PLANE LONGITUDE")
		if err != nil {
			return nil, err
		}
		lat, _ := pos["PLANE LATITUDE"].(float64)
		lon, _ := pos["PLANE LONGITUDE"].(float64)
		return map[string]any{name: c.store.Nearby(lat, lon, q.RadiusNM)}, nil

	default: // facility.QueryAirport
		ap, ok := c.store.ByICAO(q.ICAO)
		if !ok {
			return nil, fmt.Errorf("%s: %w", q.ICAO, facility.ErrUnknownAirport)
		}
		return map[string]any{name: ap}, nil
	}
}

// Set writes a value to the named simulator variable. The protocol offers
// no acknowledgment for writes, so Set returns once the write is issued;
// the transient data definition is cleared after a fixed delay.
func (c *Client) Set(name string, value any) error {
	v, err := simconnect.LookupSimVar(name)
	if err != nil {
		return err
	}
	if !v.Settable {
		return fmt.Errorf("%s: %w", name, ErrNotSettable)
	}
	payload, err := packValue(value, v.Type)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return c.corr.fireAndForget(
		func(id uint32) error {
			if err := c.tr.AddToDataDefinition(id, name, v.Units, v.Type); err != nil {
				return err
			}
			return c.tr.SetDataOnSimObject(id, payload)
		},
		func(id uint32) {
			if err := c.tr.ClearDataDefinition(id); err != nil {
				c.lg.Debugf("clear definition %d: %v", id, err)
			}
		})
}

// On registers handler for the named system event; the returned Listener
// removes it again via Off. If the event has already fired, handler is
// immediately invoked with the most recent value.
func (c *Client) On(name string, handler EventHandler) (*Listener, error) {
	return c.mux.addListener(name, handler)
}

// Off removes a listener registered with On.
func (c *Client) Off(l *Listener) {
	c.mux.removeListener(l)
}

// Trigger fires the named client event with the given value. The event is
// mapped to an id on first use and stays mapped for the connection's life.
func (c *Client) Trigger(name string, value uint32) error {
	c.mu.Lock()
	id, ok := c.eventIDs[name]
	if !ok {
		id = c.alloc.Next()
		if err := c.tr.MapClientEventToSimEvent(id, name); err != nil {
			c.mu.Unlock()
			c.alloc.Release(id)
			return err
		}
		c.eventIDs[name] = id
	}
	c.mu.Unlock()

	return c.tr.TransmitClientEvent(id, value)
}

// Schedule polls the named variables every interval, passing each result to
// handler. The returned stop function suppresses further ticks; a poll
// already in flight when stop is called still completes and reaches the
// handler. Unknown names are rejected up front, as is an airport query
// combined with other names; a lone airport query is polled like any
// variable.
func (c *Client) Schedule(interval time.Duration, handler func(map[string]any), names ...string) (func(), error) {
	for _, name := range names {
		if _, ok := facility.ParseQuery(name); ok {
			// Get only answers airport queries as a request's sole
			// name, so a mixed poll could never deliver a result.
			if len(names) > 1 {
				return nil, fmt.Errorf("%s: airport queries cannot be combined with other variables", name)
			}
			continue
		}
		if _, err := simconnect.LookupSimVar(name); err != nil {
			return nil, err
		}
	}

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-c.closed:
				return
			case <-t.C:
				values, err := c.Get(context.Background(), names...)
				if err != nil {
					c.lg.Warnf("scheduled poll: %v", err)
					continue
				}
				handler(values)
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

///////////////////////////////////////////////////////////////////////////
// facility.Source

// AirportList requests the paginated airport facility list; pages are
// delivered on the returned channel, which is closed (and its id released)
// after the final page.
func (c *Client) AirportList(ctx context.Context) (<-chan facility.ListPage, error) {
	id := c.alloc.Next()
	ch := make(chan facility.ListPage, 16)

	c.mu.Lock()
	c.listReqs[id] = ch
	c.mu.Unlock()

	if err := c.tr.RequestFacilitiesList(simconnect.FacilityAirport, id); err != nil {
		c.mu.Lock()
		delete(c.listReqs, id)
		c.mu.Unlock()
		c.alloc.Release(id)
		return nil, err
	}
	return ch, nil
}

// AirportDetail requests one airport's full facility record, blocking until
// the complete record has arrived. The store calls this strictly
// sequentially; the facility-data channel cannot be multiplexed.
func (c *Client) AirportDetail(ctx context.Context, icao string) ([]byte, error) {
	id := c.alloc.Next()
	dc := &detailCollector{done: make(chan []byte, 1)}

	c.mu.Lock()
	c.details[id] = dc
	c.mu.Unlock()

	drop := func() {
		c.mu.Lock()
		delete(c.details, id)
		c.mu.Unlock()
		c.alloc.Release(id)
	}

	if err := c.tr.RequestFacilityData(id, id, icao); err != nil {
		drop()
		return nil, err
	}

	select {
	case data, ok := <-dc.done:
		c.alloc.Release(id)
		if !ok {
			return nil, ErrDisconnected
		}
		return data, nil
	case <-ctx.Done():
		drop()
		return nil, ctx.Err()
	}
}

func (c *Client) handleListPage(m simconnect.RecvAirportList) {
	c.mu.Lock()
	ch, ok := c.listReqs[m.RequestID]
	last := m.EntryNumber >= m.OutOf-1
	if ok && last {
		delete(c.listReqs, m.RequestID)
	}
	c.mu.Unlock()

	if !ok {
		c.lg.Warnf("airport list page for id %d with no pending request; dropped", m.RequestID)
		return
	}

	ch <- facility.ListPage{
		EntryNumber: m.EntryNumber,
		OutOf:       m.OutOf,
		ICAOs: util.MapSlice(m.Airports,
			func(e simconnect.FacilityListEntry) string { return e.ICAO }),
	}

	if last {
		close(ch)
		c.alloc.Release(m.RequestID)
	}
}

func (c *Client) handleFacilityData(m simconnect.RecvFacilityData) {
	c.mu.Lock()
	dc, ok := c.details[m.RequestID]
	if ok {
		dc.buf = append(dc.buf, m.Data...)
	}
	c.mu.Unlock()

	if !ok {
		c.lg.Warnf("facility data for id %d with no pending request; dropped", m.RequestID)
	}
}

func (c *Client) handleFacilityDataEnd(m simconnect.RecvFacilityDataEnd) {
	c.mu.Lock()
	dc, ok := c.details[m.RequestID]
	delete(c.details, m.RequestID)
	c.mu.Unlock()

	if !ok {
		c.lg.Warnf("facility data end for id %d with no pending request; dropped", m.RequestID)
		return
	}
	dc.done <- dc.buf
}
