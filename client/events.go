// client/events.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package client

import (
	"slices"
	"sync"

	"github.com/simlink/simlink/log"
	"github.com/simlink/simlink/simconnect"
)

// EventHandler receives the value carried by a system event.
type EventHandler func(data uint32)

// Listener identifies one registered handler so that it can later be
// removed with Off.
type Listener struct {
	name    string
	handler EventHandler
}

// subscription is the single protocol-level subscription backing all
// listeners for one logical event name. The protocol has no unsubscribe, so
// a subscription is never torn down; removing the last listener just leaves
// it idle.
type subscription struct {
	name string
	id   uint32

	// The most recently dispatched value, replayed to listeners that
	// register after it arrived.
	lastValue uint32
	hasValue  bool

	listeners []*Listener
}

type eventMux struct {
	alloc *IDAllocator
	tr    simconnect.Transport
	lg    *log.Logger

	mu     sync.Mutex
	byName map[string]*subscription
	byID   map[uint32]*subscription
}

func newEventMux(alloc *IDAllocator, tr simconnect.Transport, lg *log.Logger) *eventMux {
	return &eventMux{
		alloc:  alloc,
		tr:     tr,
		lg:     lg,
		byName: make(map[string]*subscription),
		byID:   make(map[uint32]*subscription),
	}
}

// addListener registers handler for the named event, issuing the underlying
// protocol subscription only for the first listener on a given name. If a
// value has already been dispatched for the event, the handler is invoked
// with it immediately so late joiners don't wait for the next occurrence.
func (m *eventMux) addListener(name string, handler EventHandler) (*Listener, error) {
	l := &Listener{name: name, handler: handler}

	m.mu.Lock()
	if sub, ok := m.byName[name]; ok {
		sub.listeners = append(sub.listeners, l)
		replay, v := sub.hasValue, sub.lastValue
		m.mu.Unlock()

		if replay {
			handler(v)
		}
		return l, nil
	}

	id := m.alloc.Next()
	if err := m.tr.SubscribeToSystemEvent(id, name); err != nil {
		m.mu.Unlock()
		m.alloc.Release(id)
		return nil, err
	}
	sub := &subscription{name: name, id: id, listeners: []*Listener{l}}
	m.byName[name] = sub
	m.byID[id] = sub
	m.mu.Unlock()

	m.lg.Debugf("subscribed to system event %q with id %d", name, id)
	return l, nil
}

// removeListener removes the given listener; the underlying subscription
// stays in place.
func (m *eventMux) removeListener(l *Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.byName[l.name]
	if !ok {
		return
	}
	if i := slices.Index(sub.listeners, l); i >= 0 {
		sub.listeners = slices.Delete(sub.listeners, i, i+1)
	}
}

// dispatch routes an inbound event to the listeners subscribed to its id,
// in registration order, and caches the value for replay. It reports
// whether the id matched a subscription.
func (m *eventMux) dispatch(id uint32, data uint32) bool {
	m.mu.Lock()
	sub, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return false
	}
	sub.lastValue = data
	sub.hasValue = true
	listeners := slices.Clone(sub.listeners)
	m.mu.Unlock()

	for _, l := range listeners {
		l.handler(data)
	}
	return true
}
