// Package core implements the sampling/logging pipeline and the
// command dispatcher of the sensor module.
package core

// Two execution contexts touch the shared state: the tick context (the
// fixed-period sampler, run in its own goroutine) and the cooperative
// main loop. Bus receive callbacks are additional producer contexts
// that only ever submit into the Mailbox.
//
// No locks are used on the shared fields. Every field has exactly one
// writer context, and readers act only after observing an atomic
// flag or index the writer publishes after the payload is fully
// written. Each publication site documents the ordering it relies on.
