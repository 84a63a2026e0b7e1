// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinygobus

import (
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/bme280/bme280"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// fakeBME280 is a register file answering like a BME280 at 0x76.
type fakeBME280 struct {
	regs      [256]byte
	measuring int
	baud      uint32
}

var _ drivers.I2C = (*fakeBME280)(nil)

func newFakeBME280() *fakeBME280 {
	f := &fakeBME280{}
	f.regs[0xd0] = 0x60
	copy(f.regs[0x88:], []byte{
		0x32, 0x70, 0xd0, 0x68, 0x32, 0x00, 0x3a, 0x8e, 0x1b, 0xd6, 0xd0, 0x0b, 0x15,
		0x24, 0x64, 0xff, 0xf9, 0xff, 0x0c, 0x30, 0x20, 0xd1, 0x88, 0x13, 0x00, 0x4b,
	})
	copy(f.regs[0xe1:], []byte{0x4c, 0x01, 0x00, 0x19, 0x20, 0x03, 0x1e})
	copy(f.regs[0xf7:], []byte{0x4e, 0xba, 0xc0, 0x7f, 0xe3, 0x00, 0x8e, 0x1a})
	return f
}

func (f *fakeBME280) Tx(addr uint16, w, r []byte) error {
	if addr != 0x76 {
		return errors.New("nack")
	}
	if len(w) == 0 {
		return errors.New("missing register")
	}
	reg := w[0]
	if len(w) == 2 {
		f.regs[reg] = w[1]
		if reg == 0xf4 && w[1]&3 == 1 {
			f.measuring = 2
		}
	}
	for i := range r {
		r[i] = f.regs[int(reg)+i]
	}
	if reg == 0xf3 && len(r) == 1 {
		if f.measuring > 0 {
			f.measuring--
			r[0] |= 0x08
		} else {
			f.regs[0xf4] &^= 3
		}
	}
	return nil
}

func (f *fakeBME280) SetBaudRate(br uint32) error {
	f.baud = br
	return nil
}

type txOnly struct{ drivers.I2C }

func TestBME280(t *testing.T) {
	f := newFakeBME280()
	b := New(f, "I2C0")
	opts := bme280.DefaultOpts
	opts.Delay = func(time.Duration) {}
	d, err := bme280.NewI2C(b, bme280.DefaultAddress, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "BME280{tinygo(I2C0)}" {
		t.Errorf("String() = %q", s)
	}
	if f.regs[0xf2] != 0x04 || f.regs[0xf4] != 0x90 {
		t.Errorf("ctrl_hum %#x ctrl_meas %#x", f.regs[0xf2], f.regs[0xf4])
	}
	for i := 0; i < 2; i++ {
		m, err := d.Read()
		if err != nil {
			t.Fatal(err)
		}
		want := bme280.Measurement{Temperature: 20.56, Pressure: 98456.1875, Humidity: 54.423828125}
		if m != want {
			t.Fatalf("Read() = %+v, want %+v", m, want)
		}
		if f.regs[0xf4] != 0x90 {
			t.Errorf("ctrl_meas %#x after measurement", f.regs[0xf4])
		}
	}
	if _, err := bme280.NewI2C(b, bme280.AlternateAddress, &opts); err == nil {
		t.Fatal("expected missing device to fail")
	}
}

func TestSetSpeed(t *testing.T) {
	f := newFakeBME280()
	if err := New(f, "I2C0").SetSpeed(400 * physic.KiloHertz); err != nil {
		t.Fatal(err)
	}
	if f.baud != 400000 {
		t.Errorf("baud rate %d", f.baud)
	}
	if err := New(f, "I2C0").SetSpeed(0); err == nil {
		t.Error("expected invalid speed to fail")
	}
	if err := New(txOnly{f}, "I2C0").SetSpeed(400 * physic.KiloHertz); err == nil {
		t.Error("expected SetSpeed to fail without SetBaudRate")
	}
}
