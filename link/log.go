// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "fmt"

// Event records one transmitted or received bit, tick-stamped relative to
// the start of the transaction.
type Event struct {
	Tick uint32
	Bit  byte
	TX   bool // true if this bit was sent, false if it was received
}

// Log accumulates the bit-level trace of a single host-command transaction.
// It is preallocated by NewLog and only ever appended to during the
// transaction; nothing here performs I/O, so it never perturbs the
// timing-critical transmit/receive loops. Render it with String or hand it
// to package bitviz once the transaction is over.
type Log struct {
	events []Event
}

// NewLog preallocates room for capacity events, matching the largest
// transaction this session expects to log (bounded by the longest command,
// AUTH, at 95 sent + 20 received bits).
func NewLog(capacity int) *Log {
	return &Log{events: make([]Event, 0, capacity)}
}

func (l *Log) RecordTX(tick uint32, bit byte) {
	l.events = append(l.events, Event{Tick: tick, Bit: bit, TX: true})
}

func (l *Log) RecordRX(tick uint32, bit byte) {
	l.events = append(l.events, Event{Tick: tick, Bit: bit, TX: false})
}

func (l *Log) Events() []Event { return l.events }

func (l *Log) Reset() { l.events = l.events[:0] }

func (l *Log) String() string {
	s := ""
	for _, e := range l.events {
		dir := "RX"
		if e.TX {
			dir = "TX"
		}
		s += fmt.Sprintf("%8d %s %d\n", e.Tick, dir, e.Bit)
	}
	return s
}
