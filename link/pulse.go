// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "github.com/lfrid/em4x70/proto"

// MeasurePulse times the interval between two successive edges of the
// requested polarity, busy-polling Sample against the HIGH/LOW predicates.
// It runs three phases, each bounded by proto.Timeout ticks: wait until the
// signal reaches the target level (marking the start edge), wait while it
// stays there, then wait until it returns to the target level again
// (marking the end edge). It reports ok=false on timeout in any phase.
// This is a literal translation of get_rising_pulse_length /
// get_falling_pulse_length in the reference firmware, which measure
// rising-to-rising or falling-to-falling intervals the same way.
//
// rising selects which edge MeasurePulse locks onto: true for HIGH, false
// for LOW.
func MeasurePulse(p Platform, rising bool) (pulse, bool) {
	atTarget := func() bool {
		s := p.Sample()
		if rising {
			return isHigh(s)
		}
		return isLow(s)
	}

	deadline := p.NowTicks() + proto.Timeout
	for !atTarget() {
		if p.NowTicks() > deadline {
			return pulse{}, false
		}
	}
	start := p.NowTicks()

	deadline = start + proto.Timeout
	for atTarget() {
		if p.NowTicks() > deadline {
			return pulse{}, false
		}
	}
	deadline = p.NowTicks() + proto.Timeout
	for !atTarget() {
		if p.NowTicks() > deadline {
			return pulse{}, false
		}
	}
	return pulse{length: p.NowTicks() - start, rising: rising}, true
}

// PulseSource adapts a Platform into the PulseFunc used by
// FindListenWindow, Receive and CheckACK.
func PulseSource(p Platform) PulseFunc {
	return func(rising bool) (pulse, bool) {
		return MeasurePulse(p, rising)
	}
}
