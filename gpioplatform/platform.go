// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpioplatform implements link.Platform on top of
// periph.io/x/periph's gpio and physic packages, the way the driver in
// hostextra/d2xx talks to its bitbang GPIOs: plain gpio.PinIO/PinOut
// handles looked up once at Open time and driven directly, no interrupts.
package gpioplatform

import (
	"errors"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/physic"

	"github.com/lfrid/em4x70/link"
	"github.com/lfrid/em4x70/proto"
)

var _ link.Platform = &Platform{}

// SampleFunc reads the current ADC value, centered on 127. The analog
// front end is outside this engine's scope (it is consumed only through
// this callback); periph has no generic ADC conn type to bind to here, so
// the caller wires whatever converter its board uses.
type SampleFunc func() int

// AbortFunc reports whether the operator has requested the current
// operation stop (a button, a host cancellation).
type AbortFunc func() bool

// Platform drives a real antenna: Field enables the 125kHz carrier,
// Mod gates its amplitude modulation, and sampleFn reads the envelope.
// It implements link.Platform.
type Platform struct {
	Field gpio.PinOut
	Mod   gpio.PinOut

	sampleFn SampleFunc
	abortFn  AbortFunc
	start    time.Time
}

// Open validates the wiring and records the monotonic reference instant
// NowTicks is computed from.
func Open(field, mod gpio.PinOut, sample SampleFunc, abort AbortFunc) (*Platform, error) {
	if field == nil || mod == nil {
		return nil, errors.New("gpioplatform: field and mod pins are required")
	}
	if sample == nil {
		return nil, errors.New("gpioplatform: sample function is required")
	}
	if abort == nil {
		abort = func() bool { return false }
	}
	return &Platform{Field: field, Mod: mod, sampleFn: sample, abortFn: abort, start: time.Now()}, nil
}

// Sample implements link.Platform.
func (p *Platform) Sample() int { return p.sampleFn() }

// CarrierFrequency is the EM4x70 family's nominal LF carrier.
const CarrierFrequency = 125 * physic.KiloHertz

const tickDuration = time.Second / time.Duration(125000*proto.TicksPerFC)

// NowTicks returns elapsed ticks since Open, one tick being 1/12 of a
// 125kHz carrier period (see proto.TicksPerFC).
func (p *Platform) NowTicks() uint32 {
	return uint32(time.Since(p.start) / tickDuration)
}

// WaitTicks busy-waits, re-sampling NowTicks, until n ticks have elapsed.
// It deliberately never calls time.Sleep: the transmit loop's bit timing
// is tighter than the scheduler's wakeup granularity.
func (p *Platform) WaitTicks(n uint32) {
	target := p.NowTicks() + n
	for p.NowTicks() < target {
	}
}

func (p *Platform) SetModHigh() { p.Mod.Out(gpio.High) }
func (p *Platform) SetModLow()  { p.Mod.Out(gpio.Low) }

// FieldOn enables the carrier and blocks for the antenna's settling time.
func (p *Platform) FieldOn() {
	p.Field.Out(gpio.High)
	time.Sleep(50 * time.Millisecond)
}

// WDTKick is a no-op on this platform: there is no external watchdog to
// service outside the hardware this was modeled on.
func (p *Platform) WDTKick() {}

// AbortRequested implements link.Platform.
func (p *Platform) AbortRequested() bool { return p.abortFn() }
