package core

import (
	"errors"

	"github.com/robotalks/sense.go/pkg/hw"
)

// ErrAcquireTimeout reports a conversion that did not complete within
// the spin budget. The tick's sample is dropped; there is no retry.
var ErrAcquireTimeout = errors.New("conversion timed out")

// Acquirer performs one bounded-time multi-channel analog read per
// tick. Readings are masked to the converter's native resolution; no
// scaling or calibration happens in this layer.
type Acquirer struct {
	adc      hw.ADC
	budget   int
	readings []uint16
}

// NewAcquirer creates an acquirer for the given channel count. budget
// bounds the completion spin per conversion.
func NewAcquirer(adc hw.ADC, channels, budget int) *Acquirer {
	return &Acquirer{
		adc:      adc,
		budget:   budget,
		readings: make([]uint16, channels),
	}
}

// Acquire triggers a conversion and spins for completion within the
// budget. On timeout the conversion is abandoned and the completion
// flag cleared so a late result cannot leak into the next tick. The
// returned slice is reused across calls; tick context only.
func (a *Acquirer) Acquire() ([]uint16, error) {
	a.adc.Trigger()
	if !WaitBounded(a.budget, a.adc.Done) {
		a.adc.ClearDone()
		return nil, ErrAcquireTimeout
	}
	a.adc.ClearDone()
	n := a.adc.Read(a.readings)
	for i := 0; i < n; i++ {
		a.readings[i] &= hw.ADCMask
	}
	return a.readings[:n], nil
}
