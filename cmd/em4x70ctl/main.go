// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// em4x70ctl drives an EM4x70 LF RFID tag over a bit-banged antenna: read
// its memory blocks, authenticate, unlock with a PIN, write a word, or
// brute-force a 16-bit sub-key.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"

	"github.com/lfrid/em4x70/bitviz"
	"github.com/lfrid/em4x70/brute"
	"github.com/lfrid/em4x70/gpioplatform"
	"github.com/lfrid/em4x70/session"
)

func parseHex16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	return uint16(v), err
}

func parseHex32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	return uint32(v), err
}

func mainImpl() error {
	verbose := flag.Bool("v", false, "verbose mode")
	op := flag.String("op", "info", "operation: info, id, um1, um2, auth, unlock, write, setpin, setkey, brute")
	parity := flag.Bool("parity", false, "emit command_parity opcodes (required by V4070/EM4070)")
	fieldPin := flag.String("field-pin", "", "GPIO driving the antenna field enable")
	modPin := flag.String("mod-pin", "", "GPIO driving the modulation line")
	sensePin := flag.String("sense-pin", "", "GPIO used as a crude digital envelope sense")
	address := flag.Uint("address", 0, "word address for write")
	word := flag.String("word", "0x0000", "16-bit word for write (hex)")
	pin := flag.String("pin", "0x00000000", "32-bit PIN for unlock/setpin (hex)")
	startKey := flag.String("start-key", "0x0000", "starting key for brute (hex)")
	rnd := flag.String("rnd", "00000000000000", "56-bit nonce for auth/brute, 14 hex digits")
	frnd := flag.String("frnd", "00000000", "28-bit f(RN) for auth/brute, 8 hex digits")
	dump := flag.Bool("dump", false, "render the transaction's bit trace with bitviz")
	flag.Parse()

	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *fieldPin == "" || *modPin == "" {
		return errors.New("-field-pin and -mod-pin are required")
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	field := gpioreg.ByName(*fieldPin)
	if field == nil {
		return fmt.Errorf("no such GPIO: %s", *fieldPin)
	}
	mod := gpioreg.ByName(*modPin)
	if mod == nil {
		return fmt.Errorf("no such GPIO: %s", *modPin)
	}
	sample := func() int { return 127 }
	if *sensePin != "" {
		sense := gpioreg.ByName(*sensePin)
		if sense == nil {
			return fmt.Errorf("no such GPIO: %s", *sensePin)
		}
		in, ok := sense.(gpio.PinIn)
		if !ok {
			return fmt.Errorf("%s cannot be used as an input", *sensePin)
		}
		sample = func() int {
			if in.Read() == gpio.High {
				return 255
			}
			return 0
		}
	}

	p, err := gpioplatform.Open(field, mod, sample, nil)
	if err != nil {
		return err
	}
	p.FieldOn()

	s := session.New(p, *parity)

	w, err := parseHex16(*word)
	if err != nil {
		return fmt.Errorf("bad -word: %w", err)
	}
	pinVal, err := parseHex32(*pin)
	if err != nil {
		return fmt.Errorf("bad -pin: %w", err)
	}
	startKeyVal, err := parseHex16(*startKey)
	if err != nil {
		return fmt.Errorf("bad -start-key: %w", err)
	}
	rndBytes, err := hex.DecodeString(*rnd)
	if err != nil || len(rndBytes) != 7 {
		return errors.New("bad -rnd: want 14 hex digits")
	}
	frndBytes, err := hex.DecodeString(*frnd)
	if err != nil || len(frndBytes) != 4 {
		return errors.New("bad -frnd: want 8 hex digits")
	}
	cfg := session.Config{
		Address:  uint8(*address),
		Word:     w,
		PIN:      pinVal,
		StartKey: startKeyVal,
	}
	copy(cfg.RND[:], rndBytes)
	copy(cfg.FRND[:], frndBytes)

	var result session.Result
	switch *op {
	case "info":
		result = s.Info(cfg)
	case "id":
		result = s.ReadID(cfg)
	case "um1":
		result = s.ReadUM1(cfg)
	case "um2":
		result = s.ReadUM2(cfg)
	case "auth":
		result = s.Authenticate(cfg)
	case "unlock":
		result = s.SendPIN(cfg)
	case "write":
		result = s.Write(cfg)
	case "setpin":
		result = s.SetPIN(cfg)
	case "setkey":
		result = s.SetKey(cfg)
	case "brute":
		// The id48 cipher that computes f(RN) is out of scope here (see
		// spec §1): this oracle runs a live AUTH against the tag for every
		// candidate rather than a pure in-process cipher call.
		oracle := func(rnd [7]byte, frnd [4]byte) bool {
			return s.Authenticate(session.Config{RND: rnd, FRND: frnd}).Status == session.StatusOK
		}
		r := brute.Search(cfg.Address, cfg.RND, cfg.FRND, startKeyVal, p.AbortRequested, p.WDTKick, oracle)
		result = session.Result{Status: r.Status, Payload: r.Payload}
	default:
		return fmt.Errorf("unknown -op %q", *op)
	}

	fmt.Printf("status: %s\n", result.Status)
	if len(result.Payload) != 0 {
		fmt.Printf("payload: %x\n", result.Payload)
	}
	if *dump {
		viz := bitviz.New()
		if _, err := viz.Draw(s.Log); err != nil {
			return err
		}
		defer viz.Halt()
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "em4x70ctl: %s.\n", err)
		os.Exit(1)
	}
}
