// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "github.com/lfrid/em4x70/proto"

// CheckACK reports whether the next two pulses from nextPulse are both
// falling edges of 2*FullPeriod, within tolerance: the tag's acknowledgement
// of a WRITE or a SendPIN.
func CheckACK(nextPulse PulseFunc) bool {
	for i := 0; i < 2; i++ {
		pl, ok := nextPulse(false)
		if !ok {
			return false
		}
		if !proto.WithinTolerance(pl.length, 2*proto.FullPeriod) {
			return false
		}
	}
	return true
}
