// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygobus exposes a TinyGo drivers.I2C bus, such as a machine.I2C
// on a microcontroller, as a periph i2c.Bus.
package tinygobus

import (
	"errors"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// baudRateSetter is implemented by machine.I2C.
type baudRateSetter interface {
	SetBaudRate(br uint32) error
}

// Bus adapts a drivers.I2C to i2c.Bus.
type Bus struct {
	bus  drivers.I2C
	name string
}

// New returns a Bus using b. name is returned by String.
func New(b drivers.I2C, name string) *Bus {
	return &Bus{bus: b, name: name}
}

func (b *Bus) String() string {
	return "tinygo(" + b.name + ")"
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}

// SetSpeed implements i2c.Bus. It is only supported when the underlying bus
// can change its baud rate.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	s, ok := b.bus.(baudRateSetter)
	if !ok {
		return errors.New("tinygobus: SetSpeed is not supported")
	}
	if f < physic.Hertz {
		return errors.New("tinygobus: invalid speed")
	}
	return s.SetBaudRate(uint32(f / physic.Hertz))
}

var _ i2c.Bus = &Bus{}
