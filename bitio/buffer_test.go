// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitio

import "testing"

func TestPushByte(t *testing.T) {
	var b Buffer
	b.PushByte(0xA5)
	got := b.Bits()
	want := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	if len(got) != len(want) {
		t.Fatalf("Len() = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bit %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPushNibbleParity(t *testing.T) {
	for n := byte(0); n < 16; n++ {
		want := byte(0)
		for i := 0; i < 4; i++ {
			want ^= (n >> uint(i)) & 1
		}
		var b Buffer
		b.PushNibbleParity(n)
		if got := b.Bits()[0]; got != want {
			t.Errorf("PushNibbleParity(%#x) = %d, want %d", n, got, want)
		}
	}
}

func TestPackReverseRoundTrip(t *testing.T) {
	in := []byte{0x12, 0x34, 0x56}
	var bits []byte
	for _, v := range in {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (v>>uint(i))&1)
		}
	}
	out := PackReverse(bits)
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if got, want := out[i], in[len(in)-1-i]; got != want {
			t.Errorf("out[%d] = %#x, want %#x", i, got, want)
		}
	}
}

func TestPadToByteMultiple(t *testing.T) {
	bits := make([]byte, 20)
	for i := range bits {
		bits[i] = 1
	}
	padded := PadToByteMultiple(bits)
	if len(padded) != 24 {
		t.Fatalf("len(padded) = %d, want 24", len(padded))
	}
	for i := 20; i < 24; i++ {
		if padded[i] != 0 {
			t.Errorf("padded[%d] = %d, want 0", i, padded[i])
		}
	}
}
