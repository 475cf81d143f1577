package core

// Mode gates what happens to each tick's reading.
type Mode uint32

const (
	// ModeStopped discards readings; heartbeats run.
	ModeStopped Mode = 0
	// ModeRealtime broadcasts each reading pair immediately.
	ModeRealtime Mode = 1
	// ModeBuffered routes readings into the flash log.
	ModeBuffered Mode = 2
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStopped:
		return "Stopped"
	case ModeRealtime:
		return "Realtime"
	case ModeBuffered:
		return "Buffered"
	}
	return "Unknown"
}

// packReading packs a channel pair into one ring/log sample.
func packReading(readings []uint16) uint32 {
	v := uint32(readings[0]) << 16
	if len(readings) > 1 {
		v |= uint32(readings[1])
	}
	return v
}
