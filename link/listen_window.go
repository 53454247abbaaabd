// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "github.com/lfrid/em4x70/proto"

// pulse is one measured half-cycle of the demodulated envelope: its length
// in ticks and which way the signal moved (true = rising).
type pulse struct {
	length uint32
	rising bool
}

// FindListenWindow hunts for the tag's listen window: a rising edge of
// ~2.5 bit periods, another rising edge of ~2.5 bit periods, a falling edge
// of ~3 bit periods, then a falling edge of ~2 bit periods, each within
// proto.Tolerance. It gives up after proto.WaitingForLIW candidate pulses.
//
// When found and emitRM is true (reader-mode transactions, i.e. every
// command but a bare listen), it waits the 40-tick-per-FC turnaround delay
// and emits two zero preamble bits before returning, matching the firmware
// placing a 2-bit zero header ahead of the command opcode.
func FindListenWindow(p Platform, nextPulse PulseFunc, emitRM bool) bool {
	targets := [4]struct {
		length uint32
		rising bool
	}{
		{uint32(2.5 * float64(proto.FullPeriod)), true},
		{uint32(2.5 * float64(proto.FullPeriod)), true},
		{3 * proto.FullPeriod, false},
		{2 * proto.FullPeriod, false},
	}

	matched := 0
	for i := 0; i < proto.WaitingForLIW; i++ {
		want := targets[matched]
		pl, ok := nextPulse(want.rising)
		if !ok {
			return false
		}
		if proto.WithinTolerance(pl.length, want.length) {
			matched++
			if matched == len(targets) {
				if emitRM {
					emitRMPreamble(p)
				}
				return true
			}
			continue
		}
		matched = 0
	}
	return false
}

// emitRMPreamble waits the reader-mode turnaround delay (40 ticks per FC)
// and then sends the two zero bits that precede every reader-mode command.
func emitRMPreamble(p Platform) {
	p.WaitTicks(40 * proto.TicksPerFC)
	start := p.NowTicks()
	start = SendBit(p, 0, start)
	SendBit(p, 0, start)
}
