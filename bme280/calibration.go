// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

// calibration holds the factory trimming parameters. They are burned into
// NVM and read once when the device is opened.
type calibration struct {
	t1                             uint16
	t2, t3                         int16
	p1                             uint16
	p2, p3, p4, p5, p6, p7, p8, p9 int16
	h1                             uint8
	h2                             int16
	h3                             uint8
	h4, h5                         int16
	h6                             int8
}

// loadCalibration reads both calibration blocks. The humidity parameters
// dig_H4 and dig_H5 share the nibbles of 0xE5 so the second block cannot be
// decoded as plain words.
func loadCalibration(t *transport) (calibration, error) {
	tph := make([]byte, calib00Len)
	if err := t.readReg(regCalib00, tph); err != nil {
		return calibration{}, err
	}
	h := make([]byte, calib26Len)
	if err := t.readReg(regCalib26, h); err != nil {
		return calibration{}, err
	}
	return newCalibration(tph, h), nil
}

// newCalibration decodes calibration data from both buffers. tph starts at
// 0x88, h starts at 0xE1.
func newCalibration(tph, h []byte) (c calibration) {
	c.t1 = uint16(tph[0]) | uint16(tph[1])<<8
	c.t2 = int16(tph[2]) | int16(tph[3])<<8
	c.t3 = int16(tph[4]) | int16(tph[5])<<8
	c.p1 = uint16(tph[6]) | uint16(tph[7])<<8
	c.p2 = int16(tph[8]) | int16(tph[9])<<8
	c.p3 = int16(tph[10]) | int16(tph[11])<<8
	c.p4 = int16(tph[12]) | int16(tph[13])<<8
	c.p5 = int16(tph[14]) | int16(tph[15])<<8
	c.p6 = int16(tph[16]) | int16(tph[17])<<8
	c.p7 = int16(tph[18]) | int16(tph[19])<<8
	c.p8 = int16(tph[20]) | int16(tph[21])<<8
	c.p9 = int16(tph[22]) | int16(tph[23])<<8
	// tph[24] (0xA0) is reserved.
	c.h1 = tph[25]

	c.h2 = int16(h[0]) | int16(h[1])<<8
	c.h3 = h[2]
	// 0xE4 holds dig_H4[11:4], 0xE5[3:0] dig_H4[3:0], 0xE5[7:4] dig_H5[3:0]
	// and 0xE6 dig_H5[11:4]. The MSB bytes are signed.
	c.h4 = int16(int8(h[3]))<<4 | int16(h[4]&0x0F)
	c.h5 = int16(int8(h[5]))<<4 | int16(h[4]>>4)
	c.h6 = int8(h[6])
	return c
}
