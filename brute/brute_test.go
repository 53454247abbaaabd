// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package brute

import (
	"testing"

	"github.com/lfrid/em4x70/session"
)

func TestReflect8(t *testing.T) {
	if got := reflect8(0x01); got != 0x80 {
		t.Errorf("reflect8(0x01) = %#x, want 0x80", got)
	}
	if got := reflect8(0x80); got != 0x01 {
		t.Errorf("reflect8(0x80) = %#x, want 0x01", got)
	}
}

// TestMutateNonceCarryChain checks property 6: for address=9, temp_rnd byte
// 0 equals reflect8((reflect8(rnd[0]) + (rk & 0xFF)) & 0xFF).
func TestMutateNonceCarryChain(t *testing.T) {
	var rnd [7]byte
	k := uint16(0x1234)
	out := mutateNonce(rnd, k, 0)

	rk := reflect16(k)
	want0 := reflect8(byte((uint16(reflect8(rnd[0])) + uint16(byte(rk))) & 0xFF))
	if out[0] != want0 {
		t.Errorf("temp_rnd[0] = %#x, want %#x", out[0], want0)
	}
}

func TestMutateNonceNoCarryIsIdempotentOnZero(t *testing.T) {
	var rnd [7]byte
	out := mutateNonce(rnd, 0, 2)
	if out != rnd {
		t.Errorf("mutateNonce with k=0 changed rnd: got %v, want %v", out, rnd)
	}
}

// TestSearchOneShotHit reproduces scenario F: address=9, rnd all zero,
// oracle accepts only the candidate 0x1234.
func TestSearchOneShotHit(t *testing.T) {
	var rnd [7]byte
	var frnd [4]byte
	iterations := 0
	oracle := func(tempRND [7]byte, f [4]byte) bool {
		iterations++
		want := mutateNonce(rnd, 0x1234, 0)
		return tempRND == want
	}
	r := Search(9, rnd, frnd, 0, func() bool { return false }, func() {}, oracle)
	if r.Status != session.StatusOK {
		t.Fatalf("Status = %v, want StatusOK", r.Status)
	}
	if len(r.Payload) != 2 || r.Payload[0] != 0x12 || r.Payload[1] != 0x34 {
		t.Fatalf("Payload = %v, want [0x12 0x34]", r.Payload)
	}
	if iterations > 0x1234+1 {
		t.Errorf("iterations = %d, want <= %d", iterations, 0x1234+1)
	}
}

func TestSearchAborts(t *testing.T) {
	var rnd [7]byte
	var frnd [4]byte
	r := Search(9, rnd, frnd, 0, func() bool { return true }, func() {}, func([7]byte, [4]byte) bool { return false })
	if r.Status != session.StatusAborted {
		t.Fatalf("Status = %v, want StatusAborted", r.Status)
	}
}

func TestSearchInvalidAddress(t *testing.T) {
	var rnd [7]byte
	var frnd [4]byte
	r := Search(6, rnd, frnd, 0, func() bool { return false }, func() {}, func([7]byte, [4]byte) bool { return false })
	if r.Status != session.StatusSoftError {
		t.Fatalf("Status = %v, want StatusSoftError", r.Status)
	}
}
