// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"errors"
	"testing"
	"time"
)

type fakeDelay struct {
	calls int
	total time.Duration
}

func (f *fakeDelay) sleep(d time.Duration) {
	f.calls++
	f.total += d
}

func TestPollSucceeds(t *testing.T) {
	var fd fakeDelay
	p := Poller{Interval: 10 * time.Millisecond, Timeout: time.Second, Delay: fd.sleep}
	probes := 0
	ok, err := p.Poll(func() (bool, error) {
		probes++
		return probes == 3, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected condition to be met")
	}
	if probes != 3 || fd.calls != 2 {
		t.Errorf("probes=%d delays=%d, expected 3 and 2", probes, fd.calls)
	}
}

func TestPollTimeout(t *testing.T) {
	tests := []struct {
		interval, timeout time.Duration
		attempts          int
	}{
		{interval: 10 * time.Millisecond, timeout: time.Second, attempts: 100},
		{interval: time.Millisecond, timeout: 100 * time.Millisecond, attempts: 100},
		{interval: 3 * time.Millisecond, timeout: 10 * time.Millisecond, attempts: 4},
		{interval: 0, timeout: 5 * time.Millisecond, attempts: 5},
	}
	for _, test := range tests {
		var fd fakeDelay
		p := Poller{Interval: test.interval, Timeout: test.timeout, Delay: fd.sleep}
		probes := 0
		ok, err := p.Poll(func() (bool, error) {
			probes++
			return false, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("expected timeout")
		}
		if probes != test.attempts {
			t.Errorf("%v/%v: probes=%d expected %d", test.interval, test.timeout, probes, test.attempts)
		}
		if p.attempts() != test.attempts {
			t.Errorf("%v/%v: attempts()=%d expected %d", test.interval, test.timeout, p.attempts(), test.attempts)
		}
		if fd.total != test.timeout {
			t.Errorf("%v/%v: waited %v, expected the timeout", test.interval, test.timeout, fd.total)
		}
	}
}

func TestPollError(t *testing.T) {
	var fd fakeDelay
	p := Poller{Interval: time.Millisecond, Timeout: 100 * time.Millisecond, Delay: fd.sleep}
	errBus := errors.New("bus failure")
	ok, err := p.Poll(func() (bool, error) {
		return false, errBus
	})
	if ok || err != errBus {
		t.Errorf("got (%t, %v), expected (false, %v)", ok, err, errBus)
	}
	if fd.calls != 0 {
		t.Errorf("unexpected delay after error: %d", fd.calls)
	}
}

func TestPollZeroTimeout(t *testing.T) {
	p := Poller{Interval: time.Millisecond, Delay: func(time.Duration) { t.Fatal("unexpected delay") }}
	ok, err := p.Poll(func() (bool, error) {
		t.Fatal("unexpected probe")
		return true, nil
	})
	if ok || err != nil {
		t.Errorf("got (%t, %v)", ok, err)
	}
}
