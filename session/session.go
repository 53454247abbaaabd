// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package session implements the EM4x70 command engine: it composes the
// link and proto layers into full host-visible transactions, with ACK
// handshakes, wait-states, retries and status reporting. A Session is
// created fresh for every host command and torn down at the end of it; see
// §5 of the wire specification this engine implements for the resource
// policy (a Session is not safe for concurrent commands).
package session

import (
	"log"

	"github.com/lfrid/em4x70/link"
	"github.com/lfrid/em4x70/proto"
	"github.com/lfrid/em4x70/tag"
)

// Status is the result code returned to the host for every command.
type Status int

const (
	StatusOK Status = iota
	StatusSoftError
	StatusAborted
	StatusNotImplemented
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusSoftError:
		return "SOFT_ERROR"
	case StatusAborted:
		return "ABORTED"
	case StatusNotImplemented:
		return "NOT_IMPLEMENTED"
	default:
		return "UNKNOWN"
	}
}

// Result is what every host command returns: a status and a
// command-specific payload (see §6 for the per-command payload shape).
type Result struct {
	Status  Status
	Payload []byte
}

// Config is the union of arguments any single host command may need.
// Only the fields relevant to the command being issued are read.
// command_parity itself is not part of Config: per spec §3 it is session
// state, fixed for the lifetime of the Session (see New), not a per-command
// argument.
type Config struct {
	Word    uint16
	Address uint8

	PIN uint32

	RND  [7]byte
	FRND [4]byte

	StartKey uint16

	CryptKey [12]byte
}

const listenWindowRetries = 5

// Session holds the process-wide state a single host command operates on:
// the parity mode in effect, the tag's memory image and a log of the
// transaction's bit-level trace. The host dispatcher owns its lifetime.
type Session struct {
	Parity   bool
	Tag      tag.Image
	Kind     tag.Kind
	Log      *link.Log
	Platform link.Platform
}

// New creates a Session bound to the given platform. The tag image starts
// zeroed; callers that already know it (e.g. from a prior Info call) should
// set s.Tag directly before issuing further commands.
func New(p link.Platform, parity bool) *Session {
	return &Session{
		Parity:   parity,
		Kind:     tag.KindUnknown,
		Log:      link.NewLog(128),
		Platform: p,
	}
}

// warnRiskyParity logs the same warning the firmware emits when
// command_parity is combined with a command for which the combination is
// known to risk corrupting tag data (see §6, "Session flags"). The
// operation proceeds regardless; this is purely observable behavior.
func (s *Session) warnRiskyParity(cmd proto.Command) {
	if !s.Parity {
		return
	}
	switch cmd {
	case proto.CommandWrite, proto.CommandAuth, proto.CommandPIN:
		log.Printf("em4x70: command_parity=true with %s may corrupt tag data", cmd)
	}
}

// warnRiskyParityNamed is warnRiskyParity for operations that don't map to
// a single proto.Command (SETPIN and SETKEY repeat WRITE).
func (s *Session) warnRiskyParityNamed(name string) {
	if !s.Parity {
		return
	}
	log.Printf("em4x70: command_parity=true with %s may corrupt tag data", name)
}
