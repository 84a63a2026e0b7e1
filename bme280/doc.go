// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bme280 controls a Bosch BME280 temperature, pressure and humidity
// sensor over I²C or SPI.
//
// Every measurement is taken in forced mode: the driver triggers a single
// conversion, polls the status register until it completes and converts the
// raw readings with the integer compensation formulas from the datasheet.
// The bme280.Dev type implements physic.SenseEnv.
//
// # Datasheet
//
// https://www.bosch-sensortec.com/media/boschsensortec/downloads/datasheets/bst-bme280-ds002.pdf
//
// # Reference code
//
// https://github.com/boschsensortec/BME280_SensorAPI
package bme280
