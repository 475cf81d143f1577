package core

import "sync/atomic"

// Ring is a fixed-capacity circular store for the most recent unread
// readings. One slot is sacrificed to distinguish empty from full, so
// a ring created with capacity n holds at most n-1 values. The head
// index is owned by the tick context, the tail by the main loop; each
// side publishes its index atomically after finishing with the slot
// it guards.
type Ring struct {
	slots []uint32
	head  atomic.Uint32
	tail  atomic.Uint32
}

// NewRing creates a ring with the given slot count.
func NewRing(capacity int) *Ring {
	return &Ring{slots: make([]uint32, capacity)}
}

// Push appends a value. It fails when the ring is full; the producer
// drops the value in that case, it is never overwritten in place.
// Producer context only.
func (r *Ring) Push(v uint32) bool {
	head := r.head.Load()
	next := head + 1
	if next >= uint32(len(r.slots)) {
		next = 0
	}
	if next == r.tail.Load() {
		return false
	}
	// slot write precedes the head publication
	r.slots[head] = v
	r.head.Store(next)
	return true
}

// Pop removes and returns the oldest value. It fails when the ring is
// empty. Consumer context only.
func (r *Ring) Pop() (uint32, bool) {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return 0, false
	}
	v := r.slots[tail]
	next := tail + 1
	if next >= uint32(len(r.slots)) {
		next = 0
	}
	r.tail.Store(next)
	return v, true
}

// Len reports the number of unread values.
func (r *Ring) Len() int {
	head, tail := r.head.Load(), r.tail.Load()
	if head >= tail {
		return int(head - tail)
	}
	return len(r.slots) - int(tail-head)
}

// Cap reports the usable capacity.
func (r *Ring) Cap() int {
	return len(r.slots) - 1
}
