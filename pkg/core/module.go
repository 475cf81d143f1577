package core

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/sense.go/pkg/bus"
	"github.com/robotalks/sense.go/pkg/hw"
)

// BuildVersion is the immutable build identifier reported verbatim by
// ReadVersion.
const BuildVersion uint32 = 1002

// Module collects all state shared between execution contexts into one
// explicit structure. Writer ownership per field:
//
//	mailbox          bus receive contexts (producer), main loop (consumer)
//	ring head/slots  tick context; ring tail: main loop
//	ticks            tick context
//	mode, bufSize    main loop (dispatcher)
//	flash cursor     tick context advances, dispatcher resets (atomic)
//	heartbeatAt      main loop only
type Module struct {
	cfg Config

	mailbox Mailbox
	ring    *Ring
	log     *FlashLog
	acq     *Acquirer
	out     bus.FrameWriter

	mode    atomic.Uint32
	ticks   atomic.Uint32
	bufSize atomic.Uint32

	heartbeatAt uint32
}

func newModule(cfg Config, adc hw.ADC, flash hw.Flash, out bus.FrameWriter) *Module {
	m := &Module{
		cfg: cfg,
		// allocated once at the maximum; the active size caps it
		ring: NewRing(MaxBufferSize + 1),
		log:  NewFlashLog(flash, cfg.FlashBase, cfg.FlashSize),
		acq:  NewAcquirer(adc, cfg.Channels, cfg.SpinBudget),
		out:  out,
	}
	m.bufSize.Store(cfg.BufferSize)
	return m
}

// HandleFrame implements bus.FrameHandler. Frames are filtered by the
// addressing match here: a frame with a non-matching identifier is
// never submitted to the mailbox.
func (m *Module) HandleFrame(f bus.Frame) {
	if f.ID != m.cfg.BusID() {
		return
	}
	m.mailbox.Submit(f)
}

// Mode returns the current streaming mode.
func (m *Module) Mode() Mode {
	return Mode(m.mode.Load())
}

// Ticks returns the tick counter.
func (m *Module) Ticks() uint32 {
	return m.ticks.Load()
}

// Tick is the fixed-period sampling handler. It acquires one reading
// per channel, fans the packed pair out to the ring (always), the
// broadcast (Realtime) or the flash log (Buffered), and advances the
// tick counter. A conversion timeout means no sample this tick; it is
// not reported upstream and not retried. Tick context only.
func (m *Module) Tick() {
	readings, err := m.acq.Acquire()
	if err != nil {
		return
	}
	v := packReading(readings)
	if uint32(m.ring.Len()) < m.bufSize.Load() {
		m.ring.Push(v)
	}
	switch m.Mode() {
	case ModeRealtime:
		var ch2 uint16
		if len(readings) > 1 {
			ch2 = readings[1]
		}
		m.send(bus.NewReading(readings[0], ch2))
	case ModeBuffered:
		if err := m.log.Append(v); err != nil && err != ErrLogExhausted {
			glog.Errorf("flash append: %v", err)
		}
	}
	m.ticks.Add(1)
}

// Poll runs one cooperative main-loop iteration: consume a pending
// command frame, acknowledge any overrun, and emit a heartbeat when
// idle. It never blocks.
func (m *Module) Poll() {
	if f, ok := m.mailbox.Take(); ok {
		m.dispatch(f)
	}
	if m.mailbox.Overrun() {
		m.mailbox.ClearOverrun()
		glog.V(1).Info("inbound frame overrun")
	}
	if m.Mode() == ModeStopped {
		if now := m.ticks.Load(); now > m.heartbeatAt {
			m.send(bus.NewHeartbeat(m.cfg.BusID(), now))
			m.heartbeatAt = now + m.cfg.HeartbeatTicks
		}
	}
}

// Run drives the module until the context is canceled: the sample
// clock ticks in its own goroutine (the tick context) while this
// goroutine runs the main loop.
func (m *Module) Run(ctx context.Context) error {
	glog.Infof("module %03x up: build %d, tick %v", m.cfg.ID, BuildVersion, m.cfg.TickInterval)

	sampler := time.NewTicker(m.cfg.TickInterval)
	defer sampler.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-sampler.C:
				m.Tick()
			}
		}
	}()

	poll := time.NewTicker(m.cfg.TickInterval)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
			m.Poll()
		}
	}
}

// send transmits one frame. A failed or timed-out transmit abandons
// the frame; the bus controller may retry at the link level, which is
// a lower concern.
func (m *Module) send(f bus.Frame) {
	if err := m.out.WriteFrame(f); err != nil {
		if glog.V(1) {
			glog.Infof("drop frame to %03x: %v", uint16(f.ID), err)
		}
	}
}
