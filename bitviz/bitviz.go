// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitviz renders a transaction's bit-level trace (link.Log) to the
// terminal as a row of ANSI-colored blocks, adapted from the strip-emulator
// idiom in devices/screen: each bit becomes one pixel, sent bits rendered
// in one hue, received bits in another, zero and one bits distinguished by
// brightness.
package bitviz

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/lfrid/em4x70/link"
)

// Dev renders link.Log traces to a terminal stream.
type Dev struct {
	w   io.Writer
	buf bytes.Buffer
}

// New returns a Dev that writes to the console.
func New() *Dev {
	return &Dev{w: colorable.NewColorableStdout()}
}

func (d *Dev) String() string { return "BitViz" }

// Halt resets the terminal's color state.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

var (
	txZero = color.NRGBA{R: 0, G: 60, B: 160, A: 255}
	txOne  = color.NRGBA{R: 0, G: 160, B: 255, A: 255}
	rxZero = color.NRGBA{R: 160, G: 60, B: 0, A: 255}
	rxOne  = color.NRGBA{R: 255, G: 160, B: 0, A: 255}
)

func colorFor(e link.Event) color.NRGBA {
	switch {
	case e.TX && e.Bit == 0:
		return txZero
	case e.TX && e.Bit == 1:
		return txOne
	case !e.TX && e.Bit == 0:
		return rxZero
	default:
		return rxOne
	}
}

// Draw writes one block per event in l, in order, followed by a reset.
func (d *Dev) Draw(l *link.Log) (int, error) {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	events := l.Events()
	for _, e := range events {
		_, _ = io.WriteString(&d.buf, ansi256.Default.Block(colorFor(e)))
	}
	_, _ = d.buf.WriteString("\033[0m\n")
	_, err := d.buf.WriteTo(d.w)
	return len(events), err
}

var _ fmt.Stringer = &Dev{}
