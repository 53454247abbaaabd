// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "github.com/lfrid/em4x70/proto"

// SendBit transmits one bit using pulse-interval encoding. Both bit values
// occupy a full FullPeriod: a 0 bit drops the field for BitMod ticks,
// restores it until HalfPeriod, then drops it again until FullPeriod; a 1
// bit simply drops the field for the entire FullPeriod with no restore in
// between.
//
// This matches em4x70_send_bit in the reference firmware: the field is
// "dipped" once near the start of the period to mark a zero, and held low
// for the whole period to mark a one.
func SendBit(p Platform, bit byte, start uint32) uint32 {
	if bit == 0 {
		p.SetModLow()
		p.WaitTicks(proto.BitMod)
		p.SetModHigh()
		p.WaitTicks(proto.HalfPeriod - proto.BitMod)
		p.SetModLow()
		p.WaitTicks(proto.FullPeriod - proto.HalfPeriod)
		return start + proto.FullPeriod
	}
	p.SetModLow()
	p.WaitTicks(proto.FullPeriod)
	return start + proto.FullPeriod
}

// SendBitstream transmits every bit of bits in order, using p's modulation
// pin. It does not emit the listen-window preamble; call FindListenWindow
// (with emitRM) first.
func SendBitstream(p Platform, bits []byte) {
	for _, b := range bits {
		SendBit(p, b, p.NowTicks())
	}
}
