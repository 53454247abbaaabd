// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package brute implements the 16-bit sub-key brute-force search: for each
// candidate key it mutates a 56-bit reference nonce by a reflected,
// carry-propagating addition and asks an external oracle (the id48 cipher,
// consumed as a pure function) whether that candidate authenticates.
package brute

import (
	"log"

	"github.com/lfrid/em4x70/session"
)

// Oracle runs one AUTH attempt with the given nonce and response and
// reports whether the tag accepted it. It is supplied by the caller so
// this package never depends on a live session or a live cipher directly
// (see the id48 Non-goal: the cipher is consumed only as a pure function).
type Oracle func(rnd [7]byte, frnd [4]byte) bool

// progressEvery is how many candidates elapse between progress reports and
// watchdog kicks, matching the reference firmware's cadence.
const progressEvery = 256

// startByteIndex maps a key block address to the first nonce byte the
// carry-chain addition touches; see §4.10.
func startByteIndex(address byte) (int, bool) {
	switch address {
	case 9:
		return 0, true
	case 8:
		return 2, true
	case 7:
		return 4, true
	default:
		return 0, false
	}
}

func reflect8(b byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= (b >> uint(i)) & 1
	}
	return r
}

func reflect16(v uint16) uint16 {
	var r uint16
	for i := 0; i < 16; i++ {
		r <<= 1
		r |= (v >> uint(i)) & 1
	}
	return r
}

// mutateNonce applies the reflected carry-chain addition of key k into rnd,
// starting at byte start and propagating the carry up through byte 6. Every
// touched byte is reflected on the way in and reflected again before being
// stored back, matching the reference firmware exactly (property 6).
func mutateNonce(rnd [7]byte, k uint16, start int) [7]byte {
	rk := reflect16(k)
	var rev [7]byte
	for i, b := range rnd {
		rev[i] = reflect8(b)
	}

	lo := byte(rk)
	hi := byte(rk >> 8)

	sum := uint16(rev[start]) + uint16(lo)
	rev[start] = byte(sum)
	carry := byte(sum >> 8)

	sum = uint16(rev[start+1]) + uint16(hi) + uint16(carry)
	rev[start+1] = byte(sum)
	carry = byte(sum >> 8)

	for i := start + 2; i <= 6 && carry != 0; i++ {
		sum = uint16(rev[i]) + uint16(carry)
		rev[i] = byte(sum)
		carry = byte(sum >> 8)
	}

	var out [7]byte
	for i, b := range rev {
		out[i] = reflect8(b)
	}
	return out
}

// Result is what Search returns: the status (reusing session.Status so
// callers can fold it into the same host-reply shape) and, on success, the
// recovered 16-bit key as a 2-byte big-endian payload.
type Result struct {
	Status  session.Status
	Payload []byte
}

// Search sweeps candidate keys from startKey to 0xFFFF, mutating rnd for
// the given block address and asking oracle whether each candidate
// authenticates. It is a one-shot linear sweep: no retry across
// iterations, a single AUTH attempt per candidate, matching §4.10's
// documented performance trade-off.
func Search(address byte, rnd [7]byte, frnd [4]byte, startKey uint16, abort func() bool, kick func(), oracle Oracle) Result {
	start, ok := startByteIndex(address)
	if !ok {
		return Result{Status: session.StatusSoftError}
	}

	k := uint32(startKey)
	for ; k <= 0xFFFF; k++ {
		if abort() {
			return Result{Status: session.StatusAborted}
		}
		if k%progressEvery == 0 {
			kick()
			log.Printf("em4x70: brute-force at key %#04x", k)
		}

		candidate := uint16(k)
		tempRND := mutateNonce(rnd, candidate, start)
		if oracle(tempRND, frnd) {
			return Result{Status: session.StatusOK, Payload: []byte{byte(candidate >> 8), byte(candidate)}}
		}
	}
	return Result{Status: session.StatusSoftError}
}
