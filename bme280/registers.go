// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

// Register addresses.
const (
	regCalib00   byte = 0x88 // dig_T1 LSB, start of the first calibration block
	regChipID    byte = 0xD0
	regReset     byte = 0xE0
	regCalib26   byte = 0xE1 // dig_H2 LSB, start of the second calibration block
	regCtrlHum   byte = 0xF2
	regStatus    byte = 0xF3
	regCtrlMeas  byte = 0xF4
	regConfig    byte = 0xF5
	regPressMSB  byte = 0xF7
	regTempMSB   byte = 0xFA
	regHumMSB    byte = 0xFD
	regDataStart      = regPressMSB
)

// Block sizes for burst reads.
const (
	calib00Len = 26 // 0x88..0xA1
	calib26Len = 7  // 0xE1..0xE7
	dataLen    = 8  // press[3], temp[3], hum[2]
)

// chipID is the value of regChipID on a BME280.
const chipID byte = 0x60

// resetWord triggers a power-on reset when written to regReset.
const resetWord byte = 0xB6

// ctrl_meas layout: osrs_t[7:5] osrs_p[4:2] mode[1:0].
const (
	posTempOversampling  = 5
	posPressOversampling = 2
	modeMask             byte = 0x03

	modeSleep  byte = 0x00
	modeForced byte = 0x01
)

// status bits.
const (
	statusMeasuring byte = 1 << 3
	statusImUpdate  byte = 1 << 0
)

// config layout: t_sb[7:5] filter[4:2] spi3w_en[0].
const posFilter = 2

// Raw values reported for a channel whose oversampling is Off.
const (
	skippedPressTemp int32 = 0x80000
	skippedHum       int32 = 0x8000
)
