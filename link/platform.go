// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package link implements the EM4x70 carrier-synchronous transmit and
// receive primitives: the bit modulator, the listen-window detector, and
// the edge-timed demodulator. Everything here is timing-critical and talks
// to the tag only through the Platform contract, never directly to any
// particular piece of hardware.
package link

// Platform is the downward interface the link layer requires from whatever
// drives the physical antenna. A concrete implementation (see package
// gpioplatform for one built on periph.io/x/periph) supplies a
// free-running tick counter, busy-wait timing, field/modulation control and
// ADC sampling.
//
// All methods are expected to be called from a single goroutine; Platform
// implementations do not need to be safe for concurrent use.
type Platform interface {
	// NowTicks returns the current value of a monotonic, free-running tick
	// counter. One tick is 1/12 of a carrier period (see proto.TicksPerFC).
	NowTicks() uint32

	// WaitTicks busy-waits until NowTicks has advanced by at least n ticks
	// from the moment WaitTicks was called. It must not suspend/yield: the
	// transmit loop requires this to be a tight busy-wait.
	WaitTicks(n uint32)

	// Sample returns the latest ADC reading, centered on 127.
	Sample() int

	// SetModHigh and SetModLow drive the modulation pin. Driving it high
	// disables the field's amplitude modulation (the field stays on);
	// driving it low re-enables modulation (drops the field).
	SetModHigh()
	SetModLow()

	// FieldOn enables the carrier and blocks for the antenna's settling
	// time (50ms on real hardware).
	FieldOn()

	// WDTKick services the watchdog timer so long operations (bruteforce)
	// don't trip a hardware reset.
	WDTKick()

	// AbortRequested reports whether the host has asked the current
	// operation to stop (button press, host cancellation).
	AbortRequested() bool
}

// Signal thresholds: a sample is HIGH if it exceeds 127-13 and LOW if it's
// under 127+13. The bands deliberately overlap; interpretation comes from
// edge transitions observed over time, not from an absolute level.
const (
	noiseThreshold = 13
	sampleMidpoint = 127
	highThreshold  = sampleMidpoint - noiseThreshold
	lowThreshold   = sampleMidpoint + noiseThreshold
)

func isHigh(sample int) bool {
	return sample > highThreshold
}

func isLow(sample int) bool {
	return sample < lowThreshold
}
