// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import (
	"testing"

	"github.com/lfrid/em4x70/proto"
)

// pulseFeed replays a scripted pulse sequence regardless of the polarity
// requested, since these tests script both the length and the rising flag
// of every pulse up front.
func pulseFeed(pulses []pulse) PulseFunc {
	i := 0
	return func(rising bool) (pulse, bool) {
		if i >= len(pulses) {
			return pulse{}, false
		}
		p := pulses[i]
		i++
		return p, true
	}
}

func TestFindListenWindowAccepts(t *testing.T) {
	half := uint32(2.5 * float64(proto.FullPeriod))
	feed := pulseFeed([]pulse{
		{length: half, rising: true},
		{length: half, rising: true},
		{length: 3 * proto.FullPeriod, rising: false},
		{length: 2 * proto.FullPeriod, rising: false},
	})
	fp := &fakePlatform{}
	if !FindListenWindow(fp, feed, false) {
		t.Fatal("expected listen window to be recognized")
	}
}

func TestFindListenWindowRejectsGarbage(t *testing.T) {
	feed := pulseFeed([]pulse{
		{length: proto.FullPeriod, rising: true},
		{length: proto.FullPeriod, rising: false},
	})
	fp := &fakePlatform{}
	if FindListenWindow(fp, feed, false) {
		t.Fatal("did not expect listen window to be recognized")
	}
}

func TestCheckACK(t *testing.T) {
	feed := pulseFeed([]pulse{
		{length: 2 * proto.FullPeriod, rising: false},
		{length: 2 * proto.FullPeriod, rising: false},
	})
	if !CheckACK(feed) {
		t.Fatal("expected ACK to be recognized")
	}
}

func TestCheckACKRejectsWrongLength(t *testing.T) {
	feed := pulseFeed([]pulse{
		{length: proto.FullPeriod, rising: false},
		{length: 2 * proto.FullPeriod, rising: false},
	})
	if CheckACK(feed) {
		t.Fatal("did not expect ACK on a FullPeriod first pulse")
	}
}

func TestReceiveRoundTrip(t *testing.T) {
	var pulses []pulse
	for i := 0; i < 6; i++ {
		pulses = append(pulses, pulse{length: proto.FullPeriod})
	}
	pulses = append(pulses, pulse{length: 3 * proto.HalfPeriod})
	for i := 0; i < 3; i++ {
		pulses = append(pulses, pulse{length: proto.FullPeriod})
	}
	// Steady state: eight single-bit FullPeriod pulses.
	for i := 0; i < 8; i++ {
		pulses = append(pulses, pulse{length: proto.FullPeriod})
	}
	feed := pulseFeed(pulses)
	bits, ok := Receive(func(uint32) {}, feed, 8)
	if !ok {
		t.Fatal("expected a full 8-bit response")
	}
	if len(bits) != 8 {
		t.Fatalf("len(bits) = %d, want 8", len(bits))
	}
}

// TestReceiveDoesNotOverflowWant reproduces the case where a pulse that
// normally yields two bits lands on the last bit needed to satisfy want: a
// 3*HalfPeriod (header-style flip) pulse after 4 of 5 wanted bits must not
// push the result past 5, and a 2*FullPeriod pulse in the same spot must
// not either.
func TestReceiveDoesNotOverflowWant(t *testing.T) {
	header := func() []pulse {
		var p []pulse
		for i := 0; i < 6; i++ {
			p = append(p, pulse{length: proto.FullPeriod})
		}
		p = append(p, pulse{length: 3 * proto.HalfPeriod})
		for i := 0; i < 3; i++ {
			p = append(p, pulse{length: proto.FullPeriod})
		}
		return p
	}

	t.Run("threeHalfPeriodPair", func(t *testing.T) {
		pulses := header()
		for i := 0; i < 4; i++ {
			pulses = append(pulses, pulse{length: proto.FullPeriod})
		}
		pulses = append(pulses, pulse{length: 3 * proto.HalfPeriod})
		bits, ok := Receive(func(uint32) {}, pulseFeed(pulses), 5)
		if !ok {
			t.Fatal("expected 5 bits to be produced")
		}
		if len(bits) != 5 {
			t.Fatalf("len(bits) = %d, want 5", len(bits))
		}
	})

	t.Run("twoFullPeriodPair", func(t *testing.T) {
		pulses := header()
		for i := 0; i < 4; i++ {
			pulses = append(pulses, pulse{length: proto.FullPeriod})
		}
		pulses = append(pulses, pulse{length: 2 * proto.FullPeriod})
		bits, ok := Receive(func(uint32) {}, pulseFeed(pulses), 5)
		if !ok {
			t.Fatal("expected 5 bits to be produced")
		}
		if len(bits) != 5 {
			t.Fatalf("len(bits) = %d, want 5", len(bits))
		}
	})
}

// fakePlatform is a minimal Platform handed to FindListenWindow; the tests
// pass emitRM=false, so it is never driven. It records nothing and never
// blocks.
type fakePlatform struct {
	ticks uint32
}

func (f *fakePlatform) NowTicks() uint32      { return f.ticks }
func (f *fakePlatform) WaitTicks(n uint32)    { f.ticks += n }
func (f *fakePlatform) Sample() int           { return 127 }
func (f *fakePlatform) SetModHigh()           {}
func (f *fakePlatform) SetModLow()            {}
func (f *fakePlatform) FieldOn()              {}
func (f *fakePlatform) WDTKick()              {}
func (f *fakePlatform) AbortRequested() bool  { return false }
