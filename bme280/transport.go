// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// transport encapsulates register access over either I²C or SPI.
//
// On SPI the chip uses bit 7 of the control byte as the read flag, register
// addresses are sent with bit 7 cleared for writes.
type transport struct {
	d     *i2c.Dev
	spi   spi.Conn
	debug DebugF
}

func newI2CTransport(b i2c.Bus, addr uint16, debug DebugF) *transport {
	return &transport{d: &i2c.Dev{Bus: b, Addr: addr}, debug: orNoop(debug)}
}

func newSPITransport(c spi.Conn, debug DebugF) *transport {
	return &transport{spi: c, debug: orNoop(debug)}
}

// readReg reads len(b) consecutive registers starting at reg. The chip
// auto-increments the address so this is a single bus transaction.
func (t *transport) readReg(reg byte, b []byte) error {
	t.debug("read register %#x len %d", reg, len(b))
	if t.spi != nil {
		w := make([]byte, len(b)+1)
		r := make([]byte, len(b)+1)
		w[0] = reg | 0x80
		if err := t.spi.Tx(w, r); err != nil {
			return err
		}
		copy(b, r[1:])
	} else if err := t.d.Tx([]byte{reg}, b); err != nil {
		return err
	}
	t.debug("register content % x", b)
	return nil
}

func (t *transport) readByte(reg byte) (byte, error) {
	var b [1]byte
	err := t.readReg(reg, b[:])
	return b[0], err
}

func (t *transport) writeByte(reg, value byte) error {
	t.debug("write register %#x value %#x", reg, value)
	if t.spi != nil {
		return t.spi.Tx([]byte{reg &^ 0x80, value}, nil)
	}
	return t.d.Tx([]byte{reg, value}, nil)
}

// writeMaskedReg replaces the bits of reg selected by mask with value,
// leaving the other bits as read from the device.
func (t *transport) writeMaskedReg(reg, mask, value byte) error {
	cur, err := t.readByte(reg)
	if err != nil {
		return err
	}
	next := cur&^mask | value&mask
	t.debug("masked %#x: %#x -> %#x", reg, cur, next)
	return t.writeByte(reg, next)
}

func orNoop(f DebugF) DebugF {
	if f == nil {
		return noop
	}
	return f
}

func noop(string, ...interface{}) {}
