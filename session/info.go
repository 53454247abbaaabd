// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import "github.com/lfrid/em4x70/tag"

// pinWordLo and pinWordHi are the word addresses SetPIN writes the new PIN
// into. This address is not pinned down by the wire contract itself (the
// PIN block is write-only and never read back), so it follows the block
// layout the reference firmware's write_pin host command implies without a
// byte-for-byte constant to cite (see DESIGN.md).
const (
	pinWordLo = 10
	pinWordHi = 11
)

// Info aggregates a UM1 + ID read, and — once the tag has been identified
// as an EM4170 — a UM2 read as well, matching the combined "info" host
// command (see §6: info returns tag.data[0..20) or [0..32) depending on
// tag kind).
func (s *Session) Info(cfg Config) Result {
	um1 := s.ReadUM1(cfg)
	if um1.Status != StatusOK {
		return Result{Status: um1.Status}
	}
	id := s.ReadID(cfg)
	if id.Status != StatusOK {
		return Result{Status: id.Status}
	}

	if s.Kind == tag.KindUnknown {
		s.detectKind()
	}

	if s.Kind == tag.KindEM4170 {
		um2 := s.ReadUM2(cfg)
		if um2.Status == StatusOK {
			out := make([]byte, 32)
			copy(out, s.Tag[:])
			return Result{Status: StatusOK, Payload: out}
		}
	}

	out := make([]byte, 20)
	copy(out, s.Tag[:20])
	return Result{Status: StatusOK, Payload: out}
}

// DetectTag identifies the tag variant in use, caching the result on the
// session: an EM4170 answers UM2 reads, a V4070/EM4070 does not and
// requires command parity.
func (s *Session) DetectTag(cfg Config) Result {
	s.detectKind()
	return Result{Status: StatusOK, Payload: []byte{byte(s.Kind)}}
}

func (s *Session) detectKind() {
	probe := s.ReadUM2(Config{})
	if probe.Status == StatusOK {
		s.Kind = tag.KindEM4170
		return
	}
	s.Kind = tag.KindV4070
}

// SetPIN writes a new PIN into the tag's PIN block via two WRITE commands,
// then confirms it by issuing the unlock sequence (SendPIN) with the new
// value, mirroring the reference firmware's write_pin host command
// (write, then prove the write by unlocking with it).
func (s *Session) SetPIN(cfg Config) Result {
	s.warnRiskyParityNamed("SETPIN")

	lo := Config{Address: pinWordLo, Word: uint16(cfg.PIN)}
	if r := s.Write(lo); r.Status != StatusOK {
		return r
	}
	hi := Config{Address: pinWordHi, Word: uint16(cfg.PIN >> 16)}
	if r := s.Write(hi); r.Status != StatusOK {
		return r
	}
	return s.SendPIN(cfg)
}

// SetKey writes a new 96-bit crypto key across the six crypto-block words,
// blocks 9 down to 4, matching the reference firmware's write_key host
// command exactly (`write(key_word, 9 - i)` for i in 0..5). The key blocks
// are write-only; the returned payload is the session's tag image as
// observed so far, per §6's "setkey" contract.
func (s *Session) SetKey(cfg Config) Result {
	s.warnRiskyParityNamed("SETKEY")
	for i := 0; i < 6; i++ {
		word := uint16(cfg.CryptKey[2*i]) | uint16(cfg.CryptKey[2*i+1])<<8
		wc := Config{Address: byte(9 - i), Word: word}
		if r := s.Write(wc); r.Status != StatusOK {
			return r
		}
	}
	out := make([]byte, len(s.Tag))
	copy(out, s.Tag[:])
	return Result{Status: StatusOK, Payload: out}
}
