// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tag

import "testing"

func TestWordRoundTrip(t *testing.T) {
	var img Image
	img.SetWord(5, 0xBEEF)
	if got := img.Word(5); got != 0xBEEF {
		t.Fatalf("Word(5) = %#x, want 0xBEEF", got)
	}
}

func TestLockBits(t *testing.T) {
	var img Image
	img.SetWord(0, 0)
	if img.KeyLocked() || img.ConfigLocked() {
		t.Fatal("expected both locks clear")
	}
	img.SetWord(0, lockKeyBit)
	if !img.KeyLocked() {
		t.Error("expected key lock set")
	}
	if img.ConfigLocked() {
		t.Error("expected config lock clear")
	}
	img.SetWord(0, lockKeyBit|lockConfigBit)
	if !img.KeyLocked() || !img.ConfigLocked() {
		t.Error("expected both locks set")
	}
}

func TestKindRequiresParity(t *testing.T) {
	if !KindV4070.RequiresParity() {
		t.Error("V4070 should require parity")
	}
	if KindEM4170.RequiresParity() {
		t.Error("EM4170 should not require parity")
	}
}
