// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitio

// PackReverse packs bits (oldest-first, one bit per byte, MSB-first within
// each group of 8) into ceil(len(bits)/8) bytes, writing byte index
// N/8-1-k for bits [8k, 8k+8). This is the layout the EM4x70 tag uses for
// every multi-bit response: the *last* byte transmitted ends up as out[0].
//
// If len(bits) is not a multiple of 8, the short trailing group is treated
// as the MOST significant byte (out[0]) and its missing low bits are zero;
// callers that need AUTH's 20-bit response decoded as 24 bits should pad
// bits to a multiple of 8 before calling PackReverse, per §4.7.
func PackReverse(bits []byte) []byte {
	n := len(bits)
	out := make([]byte, (n+7)/8)
	full := n / 8
	for k := 0; k < full; k++ {
		out[len(out)-1-k] = packByte(bits[8*k : 8*k+8])
	}
	if rem := n % 8; rem != 0 {
		tail := make([]byte, 8)
		copy(tail, bits[8*full:])
		out[0] = packByte(tail)
	}
	return out
}

// PadToByteMultiple returns bits (oldest-first) extended with zero bits so
// its length is the next multiple of 8, or bits unchanged if it already is.
// This is the §4.7 rounding rule AUTH relies on: 20 received bits of g(RN)
// are decoded as if 24 bits had been received, the missing low bits zero.
func PadToByteMultiple(bits []byte) []byte {
	if len(bits)%8 == 0 {
		return bits
	}
	padded := make([]byte, (len(bits)/8+1)*8)
	copy(padded, bits)
	return padded
}

func packByte(bits []byte) byte {
	var b byte
	for _, bit := range bits {
		b <<= 1
		if bit != 0 {
			b |= 1
		}
	}
	return b
}
