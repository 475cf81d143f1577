package sim

import (
	"fmt"
	"sync"

	"github.com/robotalks/sense.go/pkg/hw"
)

// Flash is a simulated NOR flash region. Erase fills a block with ones;
// program can only clear bits, so a word programmed over unerased space
// silently keeps the stale zero bits, exactly like the real part.
type Flash struct {
	base uint32
	size uint32

	lock   sync.Mutex
	words  []uint32
	erases []uint32
}

// NewFlash creates a simulated region covering [base, base+size).
// base and size must be block-aligned.
func NewFlash(base, size uint32) *Flash {
	f := &Flash{
		base:  base,
		size:  size,
		words: make([]uint32, size/hw.FlashWordSize),
	}
	for i := range f.words {
		f.words[i] = 0xFFFFFFFF
	}
	return f
}

// EraseBlock implements hw.Flash.
func (f *Flash) EraseBlock(addr uint32) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if addr < f.base || addr >= f.base+f.size {
		return fmt.Errorf("erase outside region: %#x", addr)
	}
	start := (addr - f.base) &^ (hw.FlashBlockSize - 1)
	for i := start / hw.FlashWordSize; i < (start+hw.FlashBlockSize)/hw.FlashWordSize; i++ {
		f.words[i] = 0xFFFFFFFF
	}
	f.erases = append(f.erases, f.base+start)
	return nil
}

// Program implements hw.Flash.
func (f *Flash) Program(addr uint32, word uint32) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if addr%hw.FlashWordSize != 0 {
		return fmt.Errorf("unaligned program: %#x", addr)
	}
	if addr < f.base || addr+hw.FlashWordSize > f.base+f.size {
		return fmt.Errorf("program outside region: %#x", addr)
	}
	// NOR programming clears bits, never sets them.
	f.words[(addr-f.base)/hw.FlashWordSize] &= word
	return nil
}

// ReadWord implements hw.Flash.
func (f *Flash) ReadWord(addr uint32) uint32 {
	f.lock.Lock()
	defer f.lock.Unlock()
	if addr < f.base || addr+hw.FlashWordSize > f.base+f.size {
		return 0xFFFFFFFF
	}
	return f.words[(addr-f.base)/hw.FlashWordSize]
}

// Erases returns the block addresses erased so far, in order.
func (f *Flash) Erases() []uint32 {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]uint32(nil), f.erases...)
}
