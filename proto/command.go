// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package proto

// Command identifies one of the six EM4x70 wire commands. The numeric value
// is the 3-bit opcode from the datasheet.
type Command byte

const (
	CommandID    Command = 1
	CommandUM1   Command = 2
	CommandAuth  Command = 3
	CommandPIN   Command = 4
	CommandWrite Command = 5
	CommandUM2   Command = 7
)

func (c Command) String() string {
	switch c {
	case CommandID:
		return "ID"
	case CommandUM1:
		return "UM1"
	case CommandUM2:
		return "UM2"
	case CommandAuth:
		return "AUTH"
	case CommandPIN:
		return "PIN"
	case CommandWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// opcodeBits returns the 4 bits that open every command's bitstream.
//
// Without command parity: 0, b2, b1, b0 (MSB forced to zero).
// With command parity: b2, b1, b0, p where p = b2^b1^b0 (even parity over
// all four bits). Every command, including AUTH, emits all four bits of the
// parity form identically: see spec §9's Open Question on AUTH parity.
func opcodeBits(c Command, parity bool) [4]byte {
	b2 := byte(c>>2) & 1
	b1 := byte(c>>1) & 1
	b0 := byte(c) & 1
	if !parity {
		return [4]byte{0, b2, b1, b0}
	}
	p := b2 ^ b1 ^ b0
	return [4]byte{b2, b1, b0, p}
}
