// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "github.com/lfrid/em4x70/proto"

// PulseFunc measures the next pulse of the requested polarity (true =
// rising). It is the single primitive FindListenWindow, Receive and
// CheckACK build on; PulseSource adapts a Platform into one.
type PulseFunc func(rising bool) (pulse, bool)

// Receive decodes the tag's biphase-like response into bits, given a tick
// waiter and a source of measured pulses. It first synchronizes on the
// header: it busy-waits 6 full bit periods to skip the leading Manchester
// ones, then searches up to proto.ReadHeaderPulses rising-edge pulses for a
// 3*HalfPeriod transition, then requires 3 more full-period rising-edge
// pulses before entering the steady-state bit loop, still starting on a
// rising edge (the edge polarity is never reset between header and body,
// only flipped by a 3*HalfPeriod pulse).
//
// In the steady state, a pulse of FullPeriod yields one bit, 1 on a falling
// edge and 0 on a rising one; a pulse of 3*HalfPeriod yields two equal bits
// (two 1s on a rising edge, two 0s on a falling one) and flips the edge
// polarity; a pulse of 2*FullPeriod yields two differing bits (1,0 on a
// rising edge, 0,1 on a falling one) without flipping. Any other pulse
// length ends the response.
//
// Receive stops once want bits have been produced or the pulse source is
// exhausted, whichever comes first.
func Receive(waitTicks func(uint32), nextPulse PulseFunc, want int) ([]byte, bool) {
	if !skipHeader(waitTicks, nextPulse) {
		return nil, false
	}

	bits := make([]byte, 0, want)
	rising := true
	for len(bits) < want {
		pl, ok := nextPulse(rising)
		if !ok {
			break
		}
		switch {
		case proto.WithinTolerance(pl.length, proto.FullPeriod):
			// One bit, edge unchanged: 1 if the edge was FALLING, else 0.
			bits = appendBit(bits, !rising)
		case proto.WithinTolerance(pl.length, 3*proto.HalfPeriod):
			// Two bits at the current polarity, then flip: FALLING emits
			// two 0s and switches to RISING; RISING emits two 1s and
			// switches to FALLING. The second bit only fits if want
			// still has room: a pair landing on the last expected bit
			// must not overflow the caller's buffer.
			bits = appendBit(bits, rising)
			if len(bits) < want {
				bits = appendBit(bits, rising)
			}
			rising = !rising
		case proto.WithinTolerance(pl.length, 2*proto.FullPeriod):
			// Two bits, edge unchanged: FALLING emits 0,1; RISING emits 1,0.
			bits = appendBit(bits, rising)
			if len(bits) < want {
				bits = appendBit(bits, !rising)
			}
		default:
			return bits, len(bits) >= want
		}
	}
	return bits, len(bits) >= want
}

func appendBit(bits []byte, one bool) []byte {
	if one {
		return append(bits, 1)
	}
	return append(bits, 0)
}

// skipHeader busy-waits past the leading Manchester ones, then times the
// rest of the header on rising edges (the polarity is never reset between
// header and body in the reference firmware — only a 3*HalfPeriod pulse
// ever flips it): it hunts for the 3*HalfPeriod "1->0" transition §4.6
// calls out, then requires 3 more FullPeriod confirmation pulses, aborting
// on the first one that doesn't match.
func skipHeader(waitTicks func(uint32), nextPulse PulseFunc) bool {
	waitTicks(6 * proto.FullPeriod)

	found := false
	for i := 0; i < proto.ReadHeaderPulses; i++ {
		pl, ok := nextPulse(true)
		if !ok {
			return false
		}
		if proto.WithinTolerance(pl.length, 3*proto.HalfPeriod) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := 0; i < 3; i++ {
		pl, ok := nextPulse(true)
		if !ok || !proto.WithinTolerance(pl.length, proto.FullPeriod) {
			return false
		}
	}
	return true
}
