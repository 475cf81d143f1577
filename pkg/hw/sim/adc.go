// Package sim provides in-memory implementations of the hardware
// interfaces for development and tests.
package sim

// ADC is a simulated converter. Each Trigger captures one value per
// channel from Source; Done reports completion after Latency polls.
type ADC struct {
	// Source generates the raw reading for a channel. When nil, a
	// per-channel ramp is used.
	Source func(ch int) uint16
	// Latency is the number of Done polls before a triggered
	// conversion completes. Zero completes on the first poll.
	Latency int

	channels int
	samples  []uint16
	ramp     uint16
	pending  int
	done     bool
}

// NewADC creates a simulated ADC with the given channel count.
func NewADC(channels int) *ADC {
	return &ADC{
		channels: channels,
		samples:  make([]uint16, channels),
	}
}

// Trigger implements hw.ADC.
func (a *ADC) Trigger() {
	for ch := 0; ch < a.channels; ch++ {
		if a.Source != nil {
			a.samples[ch] = a.Source(ch)
		} else {
			a.samples[ch] = a.ramp + uint16(ch)<<8
		}
	}
	a.ramp++
	a.pending = a.Latency
	a.done = false
}

// Done implements hw.ADC.
func (a *ADC) Done() bool {
	if a.done {
		return true
	}
	if a.pending > 0 {
		a.pending--
		return false
	}
	a.done = true
	return true
}

// ClearDone implements hw.ADC.
func (a *ADC) ClearDone() {
	a.done = false
	a.pending = 0
}

// Read implements hw.ADC.
func (a *ADC) Read(dst []uint16) int {
	n := copy(dst, a.samples)
	return n
}
