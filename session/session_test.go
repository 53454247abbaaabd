// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import "testing"

// noSignalPlatform never produces a distinguishable edge: Sample returns a
// constant midpoint reading, so the signal never leaves the target level.
// NowTicks advances by one tick per call (and WaitTicks jumps ahead), so
// every pulse measurement against it runs into proto.Timeout, exercising
// the timeout path.
type noSignalPlatform struct {
	ticks uint32
}

func (f *noSignalPlatform) NowTicks() uint32     { f.ticks++; return f.ticks }
func (f *noSignalPlatform) WaitTicks(n uint32)   { f.ticks += n }
func (f *noSignalPlatform) Sample() int          { return 127 }
func (f *noSignalPlatform) SetModHigh()          {}
func (f *noSignalPlatform) SetModLow()           {}
func (f *noSignalPlatform) FieldOn()             {}
func (f *noSignalPlatform) WDTKick()             {}
func (f *noSignalPlatform) AbortRequested() bool { return false }

func TestReadIDNoSignalIsSoftError(t *testing.T) {
	s := New(&noSignalPlatform{}, false)
	r := s.ReadID(Config{})
	if r.Status != StatusSoftError {
		t.Fatalf("Status = %v, want StatusSoftError", r.Status)
	}
	if r.Payload != nil {
		t.Errorf("Payload = %v, want nil", r.Payload)
	}
}

func TestWriteNoSignalIsSoftError(t *testing.T) {
	s := New(&noSignalPlatform{}, false)
	r := s.Write(Config{Address: 3, Word: 0x1234})
	if r.Status != StatusSoftError {
		t.Fatalf("Status = %v, want StatusSoftError", r.Status)
	}
}

func TestDetectTagDefaultsToV4070WithoutSignal(t *testing.T) {
	s := New(&noSignalPlatform{}, false)
	s.DetectTag(Config{})
	if s.Kind.String() != "V4070/EM4070" {
		t.Errorf("Kind = %v, want V4070/EM4070", s.Kind)
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusOK:             "OK",
		StatusSoftError:      "SOFT_ERROR",
		StatusAborted:        "ABORTED",
		StatusNotImplemented: "NOT_IMPLEMENTED",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
