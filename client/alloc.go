// client/alloc.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package client

import "sync"

// The protocol accepts ids in a small fixed range; everything the client
// sends (data definitions, requests, event subscriptions) draws from it.
const (
	idMin = 1
	idMax = 900
)

// IDAllocator hands out protocol ids, recycling released ones as the
// counter wraps. An id stays reserved until Release is called for it.
//
// Callers must bound the number of concurrently outstanding ids below the
// size of the range; Next spins if every id is reserved.
type IDAllocator struct {
	mu       sync.Mutex
	next     uint32
	reserved map[uint32]bool
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{
		next:     idMin,
		reserved: make(map[uint32]bool),
	}
}

// Next returns the next free id and marks it reserved.
func (a *IDAllocator) Next() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		id := a.next
		a.next++
		if a.next > idMax {
			a.next = idMin
		}
		if !a.reserved[id] {
			a.reserved[id] = true
			return id
		}
	}
}

// Release returns an id to the pool; releasing an id that isn't reserved is
// a no-op.
func (a *IDAllocator) Release(id uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.reserved, id)
}
