// client/requests.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package client

import (
	"context"
	"sync"
	"time"

	"github.com/simlink/simlink/log"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// writeCleanupDelay is how long after a write the transient data definition
// is kept around. The protocol sends no acknowledgment for writes, so this
// has to comfortably exceed its worst-case processing latency.
const writeCleanupDelay = 500 * time.Millisecond

// correlator tracks in-flight one-shot requests by protocol id and resolves
// them when the matching response arrives.
type correlator struct {
	alloc *IDAllocator
	lg    *log.Logger

	mu      sync.Mutex
	pending map[uint32]chan []byte

	// Expiring registry of deferred cleanups: fire-and-forget writes and
	// quarantined ids from timed-out requests. The eviction callback runs
	// each cleanup once its delay has passed.
	cleanups *expirable.LRU[uint32, func()]
}

func newCorrelator(alloc *IDAllocator, lg *log.Logger) *correlator {
	return &correlator{
		alloc:   alloc,
		lg:      lg,
		pending: make(map[uint32]chan []byte),
		cleanups: expirable.NewLRU[uint32, func()](0,
			func(id uint32, cleanup func()) { cleanup() },
			writeCleanupDelay),
	}
}

// request allocates an id, registers for its response, and invokes issue to
// perform the protocol call. It blocks until the response arrives, ctx is
// done, or the connection is lost. finish, if non-nil, runs once the request
// is settled, before the id is released. When ctx expires the simulator may
// still answer later, so the id is quarantined for the cleanup delay rather
// than released immediately; recycling it right away could hand a stale
// payload to an unrelated request.
func (c *correlator) request(ctx context.Context, issue func(id uint32) error, finish func(id uint32)) ([]byte, error) {
	id := c.alloc.Next()
	ch := make(chan []byte, 1)

	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()

	settle := func() {
		if finish != nil {
			finish(id)
		}
		c.alloc.Release(id)
	}

	if err := issue(id); err != nil {
		c.drop(id)
		settle()
		return nil, err
	}

	select {
	case data, ok := <-ch:
		settle()
		if !ok {
			return nil, ErrDisconnected
		}
		return data, nil
	case <-ctx.Done():
		c.drop(id)
		if finish != nil {
			finish(id)
		}
		c.cleanups.Add(id, func() { c.alloc.Release(id) })
		return nil, ctx.Err()
	}
}

// fireAndForget issues a call whose completion the protocol never confirms.
// The id stays reserved, and cleanup deferred, for a fixed delay window;
// after it passes the cleanup runs and the id is released.
func (c *correlator) fireAndForget(issue func(id uint32) error, cleanup func(id uint32)) error {
	id := c.alloc.Next()
	if err := issue(id); err != nil {
		c.alloc.Release(id)
		return err
	}

	c.cleanups.Add(id, func() {
		cleanup(id)
		c.alloc.Release(id)
	})
	return nil
}

// resolve completes the pending request for id with the response payload,
// reporting whether such a request existed.
func (c *correlator) resolve(id uint32, data []byte) bool {
	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()

	if !ok {
		return false
	}
	ch <- data
	return true
}

func (c *correlator) drop(id uint32) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// disconnect fails every pending request; their waiters see ErrDisconnected.
func (c *correlator) disconnect() {
	c.mu.Lock()
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

// close runs all deferred write cleanups immediately.
func (c *correlator) close() {
	c.cleanups.Purge()
}
