// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package em4x70 is the reader-side protocol engine for the EM4x70 family
// of 125kHz contactless tags (V4070/EM4070 and EM4170).
//
// The engine is split into the layers a transaction passes through on its
// way to the antenna and back: bitio (bit-per-byte symbol buffers), proto
// (opcode and bitstream construction), link (the modulator, listen-window
// detector and demodulator), session (the six command engines plus the
// host-facing Config/Result contract) and brute (the 16-bit sub-key
// search). gpioplatform supplies a link.Platform built on
// periph.io/x/periph; bitviz renders a transaction's bit trace to the
// terminal; cmd/em4x70ctl is the command-line front end.
package em4x70 // import "github.com/lfrid/em4x70"
