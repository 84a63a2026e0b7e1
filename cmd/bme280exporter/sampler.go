// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"math"
	"sync"
	"time"

	"github.com/GermanBionicSystems/bme280/bme280"
)

type reader interface {
	Read() (bme280.Measurement, error)
}

// sampler shares one read between the gauges of a scrape. Within maxAge of
// the last attempt, successful or not, the device is not read again. A failed
// read keeps the previous measurement.
type sampler struct {
	r       reader
	maxAge  time.Duration
	now     func() time.Time
	onError func(error)

	mu    sync.Mutex
	last  bme280.Measurement
	valid bool
	at    time.Time
}

func newSampler(r reader, maxAge time.Duration) *sampler {
	return &sampler{r: r, maxAge: maxAge, now: time.Now, onError: func(error) {}}
}

// get returns the latest measurement. ok is false until a read succeeded.
func (s *sampler) get() (m bme280.Measurement, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !s.at.IsZero() && now.Sub(s.at) < s.maxAge {
		return s.last, s.valid
	}
	s.at = now
	m, err := s.r.Read()
	if err != nil {
		s.onError(err)
		return s.last, s.valid
	}
	s.last, s.valid = m, true
	return m, true
}

// gauge returns a GaugeFunc callback exporting one field of the measurement,
// NaN before the first successful read.
func (s *sampler) gauge(field func(bme280.Measurement) float32) func() float64 {
	return func() float64 {
		m, ok := s.get()
		if !ok {
			return math.NaN()
		}
		return round(float64(field(m)), 2)
	}
}
