// Package hw defines the hardware interfaces the firmware core runs on.
package hw

// Conversion and flash geometry constants fixed by the hardware.
const (
	// ADCBits is the native resolution of a conversion result.
	ADCBits = 12
	// ADCMask masks a raw reading to the native resolution.
	ADCMask = (1 << ADCBits) - 1

	// FlashBlockSize is the erase granularity in bytes.
	FlashBlockSize = 0x400
	// FlashWordSize is the program granularity in bytes.
	FlashWordSize = 4
)

// ADC models the analog conversion hardware. A conversion covers all
// configured channels at once. All methods are called from the tick
// context only.
type ADC interface {
	// Trigger starts a conversion.
	Trigger()
	// Done reports the conversion-complete flag.
	Done() bool
	// ClearDone clears the conversion-complete flag.
	ClearDone()
	// Read copies the latest conversion results into dst, one raw
	// reading per channel, and returns the number of channels read.
	Read(dst []uint16) int
}

// Flash models the non-volatile memory controller. Erase and program
// block the calling context for a hardware-determined duration.
// Programming a word that was not erased since the last program to it
// corrupts data silently; the caller must erase first.
type Flash interface {
	// EraseBlock erases the fixed-size block containing addr.
	EraseBlock(addr uint32) error
	// Program writes one 4-byte word at a word-aligned address.
	Program(addr uint32, word uint32) error
	// ReadWord reads one 4-byte word at a word-aligned address.
	ReadWord(addr uint32) uint32
}
