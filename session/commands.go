// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import (
	"github.com/lfrid/em4x70/bitio"
	"github.com/lfrid/em4x70/link"
	"github.com/lfrid/em4x70/proto"
)

// transmit finds the listen window (with up to listenWindowRetries
// attempts) and then tight-loops send_bit over every bit of the command,
// recording each to the log. It returns false if no listen window could be
// found.
func (s *Session) transmit(bits []byte) bool {
	for attempt := 0; attempt < listenWindowRetries; attempt++ {
		feed := link.PulseSource(s.Platform)
		if !link.FindListenWindow(s.Platform, feed, true) {
			continue
		}
		tick := s.Platform.NowTicks()
		for _, b := range bits {
			s.Log.RecordTX(tick, b)
			tick = link.SendBit(s.Platform, b, tick)
		}
		return true
	}
	return false
}

// readCommand runs the shared shape of ID/UM1/UM2/AUTH: build the
// bitstream, transmit it, then receive the expected number of bits and
// pack them into bytes.
func (s *Session) readCommand(bs proto.Bitstream) (Status, []byte) {
	s.warnRiskyParity(bs.Command)
	if !s.transmit(bs.ToSend.Bits()) {
		return StatusSoftError, nil
	}

	want := bs.ReceiveBits
	feed := link.PulseSource(s.Platform)
	bits, ok := link.Receive(s.Platform.WaitTicks, feed, want)
	for _, b := range bits {
		s.Log.RecordRX(s.Platform.NowTicks(), b)
	}
	if !ok || len(bits) < want {
		return StatusSoftError, nil
	}

	padded := bitio.PadToByteMultiple(bits)
	return StatusOK, bitio.PackReverse(padded)
}

// ReadID issues the ID command and returns the tag's 32-bit identifier.
func (s *Session) ReadID(cfg Config) Result {
	status, payload := s.readCommand(proto.BuildID(s.Parity))
	if status == StatusOK {
		copy(s.Tag[4:8], payload)
	}
	return Result{Status: status, Payload: payload}
}

// ReadUM1 issues the UM1 command and returns user memory block 1.
func (s *Session) ReadUM1(cfg Config) Result {
	status, payload := s.readCommand(proto.BuildUM1(s.Parity))
	if status == StatusOK {
		copy(s.Tag[0:4], payload)
	}
	return Result{Status: status, Payload: payload}
}

// ReadUM2 issues the UM2 command (EM4170 only) and returns user memory
// block 2.
func (s *Session) ReadUM2(cfg Config) Result {
	status, payload := s.readCommand(proto.BuildUM2(s.Parity))
	if status == StatusOK {
		copy(s.Tag[24:32], payload)
	}
	return Result{Status: status, Payload: payload}
}

// Authenticate issues AUTH with the given nonce/response pair and returns
// the tag's 3-byte g(RN). A short read (fewer than 20 bits) is a soft
// error, not a retryable condition.
func (s *Session) Authenticate(cfg Config) Result {
	bs := proto.BuildAuth(s.Parity, cfg.RND, cfg.FRND)
	status, payload := s.readCommand(bs)
	if status != StatusOK {
		return Result{Status: status}
	}
	return Result{Status: StatusOK, Payload: payload[:3]}
}

// SendPIN issues the PIN/unlock sequence: opcode, reversed tag ID, PIN,
// then a TWALB wait, an ACK, a WEE wait, and finally the tag's new 32-bit
// ID. On success the session's tag image is updated with the new ID and
// the full image is returned (see §6, "unlock").
func (s *Session) SendPIN(cfg Config) Result {
	s.warnRiskyParity(proto.CommandPIN)
	var tagID [4]byte
	copy(tagID[:], s.Tag[4:8])
	bs := proto.BuildPIN(s.Parity, tagID, cfg.PIN)

	if !s.transmit(bs.ToSend.Bits()) {
		return Result{Status: StatusSoftError}
	}
	s.Platform.WaitTicks(proto.TWALB)

	if !link.CheckACK(link.PulseSource(s.Platform)) {
		return Result{Status: StatusSoftError}
	}
	s.Platform.WaitTicks(proto.WEE)

	feed := link.PulseSource(s.Platform)
	bits, ok := link.Receive(s.Platform.WaitTicks, feed, 32)
	if !ok || len(bits) < 32 {
		return Result{Status: StatusSoftError}
	}
	newID := bitio.PackReverse(bits)
	copy(s.Tag[4:8], newID)

	out := make([]byte, len(s.Tag))
	copy(out, s.Tag[:])
	return Result{Status: StatusOK, Payload: out}
}

// Write issues the WRITE command, 34 bits in all: opcode, address nibble
// and its parity, four data nibbles each with parity, the column-parity
// nibble and a stop bit. Success requires two ACKs separated by a WEE wait;
// no data is received.
func (s *Session) Write(cfg Config) Result {
	s.warnRiskyParity(proto.CommandWrite)
	bs := proto.BuildWrite(s.Parity, cfg.Address, cfg.Word)

	if !s.transmit(bs.ToSend.Bits()) {
		return Result{Status: StatusSoftError}
	}
	s.Platform.WaitTicks(proto.TWA)

	if !link.CheckACK(link.PulseSource(s.Platform)) {
		return Result{Status: StatusSoftError}
	}
	s.Platform.WaitTicks(proto.WEE)
	if !link.CheckACK(link.PulseSource(s.Platform)) {
		return Result{Status: StatusSoftError}
	}

	s.Tag.SetWord(int(cfg.Address), cfg.Word)

	out := make([]byte, len(s.Tag))
	copy(out, s.Tag[:])
	return Result{Status: StatusOK, Payload: out}
}
