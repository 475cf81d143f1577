package core

import (
	"errors"
	"sync/atomic"

	"github.com/robotalks/sense.go/pkg/hw"
)

// ErrLogExhausted reports an append past the end of the recording
// window. The caller drops the sample; recording resumes only after an
// explicit reset.
var ErrLogExhausted = errors.New("flash log exhausted")

// FlashLog is an append-only sequential recorder over a reserved flash
// region [base, base+size). Samples are 4-byte words. The block
// containing the write cursor is erased when the cursor first enters
// it, before the program operation; programming unerased flash
// corrupts data silently at the hardware level, so the boundary check
// is exact.
//
// The cursor advances in the tick context and is reset by dispatcher
// commands from the main loop, so it is published atomically.
type FlashLog struct {
	dev  hw.Flash
	base uint32
	size uint32

	index  atomic.Uint32
	window atomic.Uint32 // sample-size window for status and dumps
}

// NewFlashLog creates a recorder over [base, base+size). The cursor
// starts parked at the end of the region: nothing is recorded until a
// reset command arrives. The sample-size window defaults to the full
// region.
func NewFlashLog(dev hw.Flash, base, size uint32) *FlashLog {
	l := &FlashLog{dev: dev, base: base, size: size}
	l.index.Store(base + size)
	l.window.Store(size)
	return l
}

// Append programs one sample at the cursor and advances it. Appends
// outside [base, base+size) report ErrLogExhausted and leave the
// cursor unchanged. Tick context only.
func (l *FlashLog) Append(sample uint32) error {
	idx := l.index.Load()
	if idx < l.base || idx >= l.base+l.size {
		return ErrLogExhausted
	}
	if idx%hw.FlashBlockSize == 0 {
		// cursor just crossed into a block not erased this pass
		if err := l.dev.EraseBlock(idx); err != nil {
			return err
		}
	}
	if err := l.dev.Program(idx, sample); err != nil {
		return err
	}
	l.index.Store(idx + hw.FlashWordSize)
	return nil
}

// Reset moves the cursor back to the region base and returns it.
func (l *FlashLog) Reset() uint32 {
	l.index.Store(l.base)
	return l.base
}

// Index returns the current cursor.
func (l *FlashLog) Index() uint32 {
	return l.index.Load()
}

// EraseAll erases every block of the reserved region and returns the
// region base address.
func (l *FlashLog) EraseAll() uint32 {
	for addr := l.base; addr < l.base+l.size; addr += hw.FlashBlockSize {
		if err := l.dev.EraseBlock(addr); err != nil {
			return l.base
		}
	}
	return l.base
}

// SetWindow clamps a requested sample-size window to (0, size],
// falling back to the full region when zero or out of range, stores
// it and returns the resulting window.
func (l *FlashLog) SetWindow(w uint32) uint32 {
	if w == 0 || w > l.size {
		w = l.size
	}
	l.window.Store(w)
	return w
}

// Window returns the active sample-size window.
func (l *FlashLog) Window() uint32 {
	return l.window.Load()
}

// Percent returns the completion fraction of the active window as an
// integer percentage: ((index-base)/window)*100 with integer division,
// so it reads 0 until the window fills and 100 from then on.
func (l *FlashLog) Percent() uint32 {
	w := l.window.Load()
	if w == 0 {
		return 0
	}
	return (l.index.Load() - l.base) / w * 100
}

// Dump reads the recorded window word by word and hands each word to
// emit. It stops at the first error from emit.
func (l *FlashLog) Dump(emit func(word uint32) error) error {
	end := l.base + l.window.Load()
	for addr := l.base; addr < end; addr += hw.FlashWordSize {
		if err := emit(l.dev.ReadWord(addr)); err != nil {
			return err
		}
	}
	return nil
}
