// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package proto

import "github.com/lfrid/em4x70/bitio"

// Bitstream is the pre-generated send/receive pair for one command
// transaction. ToSend excludes the 2 RM bits the listen-window detector
// emits; ReceiveBits is the exact bit count expected back from the tag (0
// for WRITE, which only expects two ACK pulses).
type Bitstream struct {
	Command     Command
	ToSend      bitio.Buffer
	ReceiveBits int
}

func newBitstream(cmd Command, parity bool) Bitstream {
	bs := Bitstream{Command: cmd}
	op := opcodeBits(cmd, parity)
	for _, b := range op {
		bs.ToSend.PushBit(b)
	}
	return bs
}

// BuildID returns the ID command bitstream: opcode only, 32-bit response.
func BuildID(parity bool) Bitstream {
	bs := newBitstream(CommandID, parity)
	bs.ReceiveBits = 32
	return bs
}

// BuildUM1 returns the UM1 command bitstream: opcode only, 32-bit response.
func BuildUM1(parity bool) Bitstream {
	bs := newBitstream(CommandUM1, parity)
	bs.ReceiveBits = 32
	return bs
}

// BuildUM2 returns the UM2 command bitstream: opcode only, 64-bit response.
func BuildUM2(parity bool) Bitstream {
	bs := newBitstream(CommandUM2, parity)
	bs.ReceiveBits = 64
	return bs
}

// BuildAuth returns the AUTH command bitstream: opcode, 56-bit nonce, 7 zero
// diversity bits, 28-bit f(RN); 20-bit g(RN) response (decoded as 24 bits,
// see bitio.PadToByteMultiple).
func BuildAuth(parity bool, rnd [7]byte, frnd [4]byte) Bitstream {
	bs := newBitstream(CommandAuth, parity)
	for _, b := range rnd {
		bs.ToSend.PushByte(b)
	}
	for i := 0; i < 7; i++ {
		bs.ToSend.PushBit(0)
	}
	bs.ToSend.PushByte(frnd[0])
	bs.ToSend.PushByte(frnd[1])
	bs.ToSend.PushByte(frnd[2])
	bs.ToSend.PushNibble(frnd[3] >> 4)
	bs.ReceiveBits = 20
	return bs
}

// BuildPIN returns the PIN command bitstream: opcode, then the tag ID in
// byte-reversed order (tagID[3..0]) and the PIN in little-endian byte order,
// each byte MSB-first; 32-bit response (the tag's new/confirmed ID).
func BuildPIN(parity bool, tagID [4]byte, pin uint32) Bitstream {
	bs := newBitstream(CommandPIN, parity)
	for i := 3; i >= 0; i-- {
		bs.ToSend.PushByte(tagID[i])
	}
	for i := 0; i < 4; i++ {
		bs.ToSend.PushByte(byte(pin >> uint(8*i)))
	}
	bs.ReceiveBits = 32
	return bs
}

// BuildWrite returns the WRITE command bitstream: opcode, 4-bit address with
// parity, the 16-bit word split into four nibbles (with the low/high bytes
// swapped before splitting) each with its own parity, a column-parity
// nibble, and a terminating zero bit. No response is expected; success is
// two ACK pulses.
func BuildWrite(parity bool, address byte, word uint16) Bitstream {
	bs := newBitstream(CommandWrite, parity)
	address &= 0x0F
	bs.ToSend.PushNibble(address)
	bs.ToSend.PushNibbleParity(address)

	lo := byte(word)
	hi := byte(word >> 8)
	nibbles := [4]byte{lo >> 4, lo & 0x0F, hi >> 4, hi & 0x0F}
	var columnParity byte
	for _, n := range nibbles {
		columnParity ^= n
	}
	for _, n := range nibbles {
		bs.ToSend.PushNibble(n)
		bs.ToSend.PushNibbleParity(n)
	}
	bs.ToSend.PushNibble(columnParity)
	bs.ToSend.PushBit(0)
	bs.ReceiveBits = 0
	return bs
}
