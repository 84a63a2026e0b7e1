// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

// Measurement is a single compensated reading.
type Measurement struct {
	// Temperature in °C.
	Temperature float32
	// Pressure in Pa.
	Pressure float32
	// Humidity in %RH.
	Humidity float32
}

// rawSample holds the ADC counts of one burst read starting at 0xF7.
type rawSample struct {
	press int32 // 20 bits
	temp  int32 // 20 bits
	hum   int32 // 16 bits
}

// Offsets of each channel in the burst read.
const (
	offPress = int(regPressMSB - regDataStart)
	offTemp  = int(regTempMSB - regDataStart)
	offHum   = int(regHumMSB - regDataStart)
)

// newRawSample decodes the data registers. Pressure and temperature are
// MSB, LSB and the upper nibble of XLSB; humidity is MSB, LSB.
func newRawSample(b []byte) rawSample {
	return rawSample{
		press: int32(b[offPress])<<12 | int32(b[offPress+1])<<4 | int32(b[offPress+2])>>4,
		temp:  int32(b[offTemp])<<12 | int32(b[offTemp+1])<<4 | int32(b[offTemp+2])>>4,
		hum:   int32(b[offHum])<<8 | int32(b[offHum+1]),
	}
}

// convert compensates raw with the calibration data. Temperature is computed
// first since pressure and humidity depend on its fine resolution value.
func convert(c *calibration, raw rawSample) Measurement {
	tFine := c.compensateTempFine(raw.temp)
	return Measurement{
		Temperature: temperatureFromFine(tFine),
		Pressure:    c.compensatePressure(raw.press, tFine),
		Humidity:    c.compensateHumidity(raw.hum, tFine),
	}
}

// compensateTempFine returns the fine resolution temperature, the shared
// input of every other compensation formula.
//
// raw has 20 bits of resolution.
func (c *calibration) compensateTempFine(raw int32) int32 {
	x := ((raw >> 3) - (int32(c.t1) << 1)) * int32(c.t2) >> 11
	y := (raw >> 4) - int32(c.t1)
	y = ((y * y) >> 12) * int32(c.t3) >> 14
	return x + y
}

// temperatureFromFine returns the temperature in °C with a resolution of
// 0.01 °C.
func temperatureFromFine(tFine int32) float32 {
	centi := (tFine*5 + 128) >> 8
	return float32(centi) / 100
}

// compensatePressure returns pressure in Pa. It uses the 64 bits formula,
// which has 8 fractional bits before the final division.
//
// raw has 20 bits of resolution. It returns 0 when the calibration data
// would cause a division by zero.
func (c *calibration) compensatePressure(raw, tFine int32) float32 {
	x := int64(tFine) - 128000
	y := x * x * int64(c.p6)
	y += (x * int64(c.p5)) << 17
	y += int64(c.p4) << 35
	x = ((x * x * int64(c.p3)) >> 8) + ((x * int64(c.p2)) << 12)
	x = (((int64(1) << 47) + x) * int64(c.p1)) >> 33
	if x == 0 {
		return 0
	}
	p := 1048576 - int64(raw)
	p = (((p << 31) - y) * 3125) / x
	x = (int64(c.p9) * (p >> 13) * (p >> 13)) >> 25
	y = (int64(c.p8) * p) >> 19
	p = ((p + x + y) >> 8) + (int64(c.p7) << 4)
	return float32(float64(p) / 256)
}

// compensateHumidity returns humidity in %RH. The fixed point result is
// clamped to [0, 100] %RH (419430400 in Q22.10 shifted by 12) before scaling.
//
// raw has 16 bits of resolution.
func (c *calibration) compensateHumidity(raw, tFine int32) float32 {
	x := tFine - 76800
	a := ((raw << 14) - (int32(c.h4) << 20) - (int32(c.h5) * x) + 16384) >> 15
	b := ((x * int32(c.h6)) >> 10) * (((x * int32(c.h3)) >> 11) + 32768)
	b = (((b >> 10) + 2097152) * int32(c.h2) + 8192) >> 14
	x = a * b
	x -= ((((x >> 15) * (x >> 15)) >> 7) * int32(c.h1)) >> 4
	if x < 0 {
		x = 0
	} else if x > 419430400 {
		x = 419430400
	}
	return float32(x>>12) / 1024
}
