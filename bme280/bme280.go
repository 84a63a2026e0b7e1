// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/bme280/common"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Oversampling affects how much time is taken to measure each of temperature,
// pressure and humidity.
//
// Using high oversampling and low standby results in highest power
// consumption, but this is still below 1mA so we generally don't care.
type Oversampling uint8

// Possible oversampling values. Off skips the measurement of the channel.
const (
	Off  Oversampling = 0
	O1x  Oversampling = 1
	O2x  Oversampling = 2
	O4x  Oversampling = 3
	O8x  Oversampling = 4
	O16x Oversampling = 5
)

const oversamplingName = "Off1x2x4x8x16x"

var oversamplingIndex = [...]uint8{0, 3, 5, 7, 9, 11, 14}

func (o Oversampling) String() string {
	if o >= Oversampling(len(oversamplingIndex)-1) {
		return fmt.Sprintf("Oversampling(%d)", o)
	}
	return oversamplingName[oversamplingIndex[o]:oversamplingIndex[o+1]]
}

// samples returns the number of ADC samples averaged for one measurement.
func (o Oversampling) samples() int {
	if o == Off {
		return 0
	}
	return 1 << (o - 1)
}

// Filter specifies the IIR filter coefficient applied to temperature and
// pressure. Humidity is not filtered.
type Filter uint8

// Possible filtering values.
const (
	NoFilter Filter = 0
	F2       Filter = 1
	F4       Filter = 2
	F8       Filter = 3
	F16      Filter = 4
)

const (
	// DefaultAddress is the I²C address with SDO pulled to GND (0xEC in 8 bit
	// form).
	DefaultAddress uint16 = 0x76
	// AlternateAddress is the I²C address with SDO pulled to VDDIO (0xEE in 8
	// bit form).
	AlternateAddress uint16 = 0x77
)

// Probing budgets. The chip ID is polled when the device is opened, the
// status register after each measurement trigger.
const (
	chipIDPollInterval  = 10 * time.Millisecond
	chipIDPollTimeout   = time.Second
	measurePollInterval = time.Millisecond
	measurePollTimeout  = 100 * time.Millisecond
	startupTime         = 2 * time.Millisecond
	nvmCopyTimeout      = 10 * time.Millisecond
)

// Opts holds the configuration options for the device.
type Opts struct {
	// Temperature can only be oversampled on BME280, it cannot be Off since
	// pressure and humidity compensation depend on it.
	Temperature Oversampling
	// Pressure can be oversampled up to 16x, or skipped with Off, in which
	// case the reported pressure is 0.
	Pressure Oversampling
	// Humidity can be oversampled up to 16x, or skipped with Off, in which
	// case the reported humidity is 0.
	Humidity Oversampling
	// Filter is the IIR filter coefficient. The configuration register is
	// only written when it is not NoFilter.
	Filter Filter
	// Delay suspends the caller while polling the device. Defaults to
	// time.Sleep.
	Delay func(time.Duration)
	// Debug, if set, traces every register access.
	Debug DebugF
}

// DefaultOpts is the recommended default options: 8x oversampling on every
// channel and no filtering.
var DefaultOpts = Opts{
	Temperature: O8x,
	Pressure:    O8x,
	Humidity:    O8x,
}

// Dev is a handle to an initialized BME280 device.
//
// Calibration data is read once when the device is opened.
type Dev struct {
	t       *transport
	name    string
	opts    Opts
	cal     calibration
	measure common.Poller

	mu sync.Mutex
}

// NewI2C returns an object that communicates over I²C to a BME280
// environmental sensor. addr is DefaultAddress or AlternateAddress. The Opts
// can be nil.
//
// The device is probed until it reports the BME280 chip ID, then its
// calibration data is read and the oversampling configuration written. A
// *DeviceInaccessibleError is returned if the chip ID never matched. Bus
// errors are returned as is.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	switch addr {
	case DefaultAddress, AlternateAddress:
	default:
		return nil, errors.New("bme280: given address not supported by device")
	}
	o, err := checkOpts(opts)
	if err != nil {
		return nil, err
	}
	d := &Dev{t: newI2CTransport(b, addr, o.Debug), name: "BME280{" + b.String() + "}", opts: o}
	if err := d.makeDev(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewSPI returns an object that communicates over SPI to a BME280
// environmental sensor. The Opts can be nil.
//
// When using SPI, the CS line must be used.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	o, err := checkOpts(opts)
	if err != nil {
		return nil, err
	}
	c, err := p.Connect(5*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("bme280: %w", err)
	}
	d := &Dev{t: newSPITransport(c, o.Debug), name: "BME280{" + c.String() + "}", opts: o}
	if err := d.makeDev(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return d.name
}

// Read triggers a forced mode measurement, waits for it to complete and
// returns the compensated values.
//
// A *MeasurementTimeoutError is returned if the device did not finish in
// time; the call can be retried. Bus errors are returned as is.
func (d *Dev) Read() (Measurement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read()
}

// Sense implements physic.SenseEnv. It returns the same reading as Read in
// periph units.
func (d *Dev) Sense(e *physic.Env) error {
	m, err := d.Read()
	if err != nil {
		return err
	}
	e.Temperature = physic.ZeroCelsius + physic.Temperature(float64(m.Temperature)*float64(physic.Celsius))
	e.Pressure = physic.Pressure(float64(m.Pressure) * float64(physic.Pascal))
	e.Humidity = physic.RelativeHumidity(float64(m.Humidity) * float64(physic.PercentRH))
	return nil
}

// SenseContinuous implements physic.SenseEnv. The driver only supports
// forced mode, call Sense or Read at the desired interval instead.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	return nil, errors.New("bme280: continuous sensing is not supported")
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = 10 * physic.MilliKelvin
	e.Pressure = physic.Pascal / 256
	e.Humidity = physic.PercentRH / 1024
}

// Halt implements conn.Resource. The device returns to sleep mode by itself
// after each forced measurement so there is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

// Reset issues a soft reset, waits for the calibration data to be copied
// from NVM and restores the configuration from Opts.
func (d *Dev) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.writeByte(regReset, resetWord); err != nil {
		return err
	}
	delay := d.delay()
	delay(startupTime)
	p := common.Poller{Interval: measurePollInterval, Timeout: nvmCopyTimeout, Delay: delay}
	ok, err := p.Poll(func() (bool, error) {
		s, err := d.t.readByte(regStatus)
		return s&statusImUpdate == 0, err
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("bme280: NVM copy did not complete after reset")
	}
	return d.configure()
}

func (d *Dev) makeDev() error {
	if err := d.waitChipID(); err != nil {
		return err
	}
	cal, err := loadCalibration(d.t)
	if err != nil {
		return err
	}
	d.cal = cal
	d.measure = common.Poller{
		Interval: measurePollInterval,
		Timeout:  measureTimeout(&d.opts),
		Delay:    d.opts.Delay,
	}
	return d.configure()
}

// waitChipID polls the chip ID register until it reports a BME280. A bus
// error stops the polling and is returned as is.
func (d *Dev) waitChipID() error {
	p := common.Poller{Interval: chipIDPollInterval, Timeout: chipIDPollTimeout, Delay: d.opts.Delay}
	var id byte
	ok, err := p.Poll(func() (bool, error) {
		v, err := d.t.readByte(regChipID)
		if err != nil {
			return false, err
		}
		id = v
		return v == chipID, nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return &DeviceInaccessibleError{ID: id}
	}
	return nil
}

// configure writes the static oversampling and filter configuration. The
// device is left in sleep mode.
func (d *Dev) configure() error {
	if d.opts.Filter != NoFilter {
		if err := d.t.writeByte(regConfig, byte(d.opts.Filter)<<posFilter); err != nil {
			return err
		}
	}
	// ctrl_hum only takes effect after ctrl_meas is written.
	if err := d.t.writeByte(regCtrlHum, byte(d.opts.Humidity)); err != nil {
		return err
	}
	meas := byte(d.opts.Temperature)<<posTempOversampling | byte(d.opts.Pressure)<<posPressOversampling | modeSleep
	return d.t.writeByte(regCtrlMeas, meas)
}

// read must be called with d.mu held.
func (d *Dev) read() (Measurement, error) {
	if err := d.startForced(); err != nil {
		return Measurement{}, err
	}
	ok, err := d.measure.Poll(d.isIdle)
	if err != nil {
		return Measurement{}, err
	}
	if !ok {
		return Measurement{}, &MeasurementTimeoutError{}
	}
	var buf [dataLen]byte
	if err := d.t.readReg(regDataStart, buf[:]); err != nil {
		return Measurement{}, err
	}
	raw := newRawSample(buf[:])
	m := convert(&d.cal, raw)
	if d.opts.Pressure == Off || raw.press == skippedPressTemp {
		m.Pressure = 0
	}
	if d.opts.Humidity == Off || raw.hum == skippedHum {
		m.Humidity = 0
	}
	return m, nil
}

// startForced sets the mode field of ctrl_meas to forced, keeping the
// oversampling bits as they are.
func (d *Dev) startForced() error {
	return d.t.writeMaskedReg(regCtrlMeas, modeMask, modeForced)
}

func (d *Dev) isIdle() (bool, error) {
	s, err := d.t.readByte(regStatus)
	if err != nil {
		return false, err
	}
	return s&statusMeasuring == 0, nil
}

func (d *Dev) delay() func(time.Duration) {
	if d.opts.Delay == nil {
		return time.Sleep
	}
	return d.opts.Delay
}

func checkOpts(opts *Opts) (Opts, error) {
	if opts == nil {
		return DefaultOpts, nil
	}
	o := *opts
	if o.Temperature == Off {
		return o, errors.New("bme280: temperature measurement is required")
	}
	if o.Temperature > O16x || o.Pressure > O16x || o.Humidity > O16x {
		return o, errors.New("bme280: invalid oversampling")
	}
	if o.Filter > F16 {
		return o, errors.New("bme280: invalid filter")
	}
	return o, nil
}

// measureTimeout returns the status polling budget: the default 100ms, or the
// datasheet's maximum measurement time when the oversampling needs more.
func measureTimeout(o *Opts) time.Duration {
	us := 1250 + 2300*o.Temperature.samples()
	if n := o.Pressure.samples(); n != 0 {
		us += 2300*n + 575
	}
	if n := o.Humidity.samples(); n != 0 {
		us += 2300*n + 575
	}
	if t := time.Duration(us) * time.Microsecond; t > measurePollTimeout {
		return t.Round(measurePollInterval) + measurePollInterval
	}
	return measurePollTimeout
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
