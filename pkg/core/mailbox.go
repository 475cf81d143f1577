package core

import (
	"sync/atomic"

	"github.com/robotalks/sense.go/pkg/bus"
)

// Mailbox is a single-slot, overwrite-on-arrival holder for the most
// recently received inbound command frame. One producer context (a bus
// receive callback) submits; one consumer (the main loop) takes.
// There is no queueing: a second arrival before the previous frame is
// taken discards it, last writer wins. That loss is visible through
// the overrun flag but never blocks further processing.
type Mailbox struct {
	frame   atomic.Pointer[bus.Frame]
	newFlag atomic.Bool
	overrun atomic.Bool
}

// Submit stores a frame from the producer context. The frame body is
// published before the new flag is set, so a consumer that observes
// the flag always reads a complete frame.
func (m *Mailbox) Submit(f bus.Frame) {
	m.frame.Store(&f)
	if m.newFlag.Load() {
		// the previous frame was never taken
		m.overrun.Store(true)
	}
	m.newFlag.Store(true)
}

// Take returns the stored frame if one is pending and clears the new
// flag. The flag is cleared only after the frame body is read.
func (m *Mailbox) Take() (bus.Frame, bool) {
	if !m.newFlag.Load() {
		return bus.Frame{}, false
	}
	f := *m.frame.Load()
	m.newFlag.Store(false)
	return f, true
}

// Overrun reports whether at least one frame was discarded before it
// was taken. It says nothing about the validity of the current frame.
func (m *Mailbox) Overrun() bool {
	return m.overrun.Load()
}

// ClearOverrun clears the overrun flag. Consumer only.
func (m *Mailbox) ClearOverrun() {
	m.overrun.Store(false)
}
