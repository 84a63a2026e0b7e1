// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gobotbus exposes a gobot sysfs I²C character device as a periph
// i2c.Bus, so drivers in this module can run on hosts already using gobot.
//
// Each transaction selects the slave address, writes w and then reads r as
// two separate messages. A read returning fewer bytes than requested fails.
package gobotbus

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"gobot.io/x/gobot/sysfs"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Device is typically the value returned by sysfs.NewI2cDevice.
type Device interface {
	io.ReadWriteCloser
	SetAddress(address int) error
}

// Bus adapts a Device to i2c.Bus.
type Bus struct {
	mu   sync.Mutex
	dev  Device
	name string
	addr int
}

// Open opens the I²C character device at location, for example /dev/i2c-1.
func Open(location string) (*Bus, error) {
	d, err := sysfs.NewI2cDevice(location)
	if err != nil {
		return nil, fmt.Errorf("gobotbus: %w", err)
	}
	return New(d, location), nil
}

// New returns a Bus using d. name is returned by String.
func New(d Device, name string) *Bus {
	return &Bus{dev: d, name: name, addr: -1}
}

func (b *Bus) String() string {
	return "gobot(" + b.name + ")"
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if int(addr) != b.addr {
		if err := b.dev.SetAddress(int(addr)); err != nil {
			return err
		}
		b.addr = int(addr)
	}
	if len(w) != 0 {
		if _, err := b.dev.Write(w); err != nil {
			return err
		}
	}
	if len(r) != 0 {
		// A read is a single I²C message, it is not continued.
		n, err := b.dev.Read(r)
		if err != nil {
			return err
		}
		if n != len(r) {
			return fmt.Errorf("gobotbus: short read, %d of %d bytes", n, len(r))
		}
	}
	return nil
}

// SetSpeed implements i2c.Bus. The sysfs interface has no control over the
// bus clock.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return errors.New("gobotbus: SetSpeed is not supported")
}

// Close implements i2c.BusCloser.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dev.Close()
}

var _ i2c.BusCloser = &Bus{}
