// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, polling a status register until a condition holds.
package common

import (
	"time"
)

// Poller repeatedly evaluates a condition at a fixed interval until it holds
// or the cumulative wait reaches Timeout. The last wait is shortened so the
// total never exceeds Timeout.
//
// Time is accounted by summing the requested delays rather than reading a
// clock, so a fake Delay yields the same probe count as a real one.
type Poller struct {
	Interval time.Duration
	Timeout  time.Duration
	// Delay suspends the caller for the given duration. time.Sleep if nil.
	Delay func(time.Duration)
}

// Poll calls cond until it returns true, an error, or the time budget is
// spent. It returns false with a nil error on timeout. At most
// Timeout/Interval probes are made.
func (p *Poller) Poll(cond func() (bool, error)) (bool, error) {
	delay := p.Delay
	if delay == nil {
		delay = time.Sleep
	}
	interval := p.interval()
	for elapsed := time.Duration(0); elapsed < p.Timeout; elapsed += interval {
		ok, err := cond()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if left := p.Timeout - elapsed; left < interval {
			delay(left)
		} else {
			delay(interval)
		}
	}
	return false, nil
}

// attempts returns the maximum number of times Poll evaluates its condition.
func (p *Poller) attempts() int {
	i := p.interval()
	return int((p.Timeout + i - 1) / i)
}

func (p *Poller) interval() time.Duration {
	if p.Interval <= 0 {
		return time.Millisecond
	}
	return p.Interval
}
