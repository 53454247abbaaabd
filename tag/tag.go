// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tag models the EM4x70 tag's 32-byte memory image and the two
// device variants (V4070/EM4070 versus EM4170) the session layer needs to
// tell apart before it can pick safe defaults (command parity, PIN vs. no
// PIN support).
package tag

// Image is the tag's full memory, 16 words of 2 bytes each (word 0..15).
// Bytes 0-3 (words 0-1) hold UM1, with the two lock bits in the most
// significant bits of byte 0; bytes 4-7 (words 2-3) hold the ID; words 4-9
// hold the write-only 96-bit crypto key and words 10-11 the PIN; bytes
// 24-31 (words 12-15) hold UM2.
type Image [32]byte

// Word returns the 2-byte little-endian word at the given index (0..15).
func (img *Image) Word(index int) uint16 {
	off := index * 2
	return uint16(img[off]) | uint16(img[off+1])<<8
}

// SetWord stores a 2-byte little-endian word at the given index.
func (img *Image) SetWord(index int, word uint16) {
	off := index * 2
	img[off] = byte(word)
	img[off+1] = byte(word >> 8)
}

// Lock bit positions within word 0, i.e. the two most significant bits of
// byte 0: bit 7 locks the keys and the protected ID, bit 6 locks the EPROM
// config block.
const (
	lockKeyBit    = 1 << 7
	lockConfigBit = 1 << 6
)

// KeyLocked reports whether the keys/protected-ID block is read-locked.
func (img *Image) KeyLocked() bool { return img.Word(0)&lockKeyBit != 0 }

// ConfigLocked reports whether the config block is read-locked.
func (img *Image) ConfigLocked() bool { return img.Word(0)&lockConfigBit != 0 }

// ID returns the tag's 32-bit unique ID, word 2 and word 3.
func (img *Image) ID() [4]byte {
	w2 := img.Word(2)
	w3 := img.Word(3)
	return [4]byte{byte(w3 >> 8), byte(w3), byte(w2 >> 8), byte(w2)}
}

// Kind distinguishes the two EM4x70 variants the session layer supports.
type Kind int

const (
	// KindUnknown means no device has been identified yet.
	KindUnknown Kind = iota
	// KindV4070 is the V4070/EM4070 variant: command parity required,
	// SendPIN and brute-forceable.
	KindV4070
	// KindEM4170 is the EM4170 variant: no command parity, no PIN.
	KindEM4170
)

func (k Kind) String() string {
	switch k {
	case KindV4070:
		return "V4070/EM4070"
	case KindEM4170:
		return "EM4170"
	default:
		return "unknown"
	}
}

// RequiresParity reports whether commands sent to this kind of tag must
// carry the parity-augmented opcode.
func (k Kind) RequiresParity() bool { return k == KindV4070 }
