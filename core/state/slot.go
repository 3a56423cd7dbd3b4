// Package state provides a single-item container for publishing the latest
// sample from one writer to any number of readers.
package state

import (
	"sync"
	"sync/atomic"
)

// A Slot holds the most recent value written to it, together with a
// producer-defined timestamp. One logical writer and any number of readers
// may use it concurrently. Values are latched: once a write has been
// published the slot never reverts to empty, and staleness detection is the
// reader's business, by comparing the returned timestamp against its own
// clock.
//
// The payload is guarded by a reader/writer lock while the validity flag and
// timestamp are plain atomics. IsValid and the empty-slot fast path of Read
// never touch the lock, so they never contend with a writer, and readers
// never contend with each other. The writer updates payload, timestamp and
// flag while holding the write lock, so a reader that has observed the flag
// always copies a payload/timestamp pair that was written together.
type Slot[T any] struct {
	mu        sync.RWMutex
	payload   T
	timestamp atomic.Int64
	valid     atomic.Bool
}

// NewSlot returns an empty slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Write replaces the stored value and timestamp and marks the slot valid.
// The flag is stored last; Go atomics order the payload writes before it, so
// a reader that observes the flag also observes the payload (publish
// protocol, release side).
func (s *Slot[T]) Write(value T, timestamp int64) {
	s.mu.Lock()
	s.payload = value
	s.timestamp.Store(timestamp)
	s.valid.Store(true)
	s.mu.Unlock()
}

// Read returns the stored value and timestamp, or ok == false if nothing has
// been written yet. The flag is checked first (acquire side of the publish
// protocol), without taking the lock.
func (s *Slot[T]) Read() (value T, timestamp int64, ok bool) {
	if !s.valid.Load() {
		return value, 0, false
	}
	s.mu.RLock()
	value = s.payload
	timestamp = s.timestamp.Load()
	s.mu.RUnlock()
	return value, timestamp, true
}

// IsValid reports whether the slot has ever been written to.
func (s *Slot[T]) IsValid() bool {
	return s.valid.Load()
}
