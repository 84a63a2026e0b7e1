// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import "fmt"

// DeviceInaccessibleError is returned when the chip ID register never
// reported a BME280 within the probing time budget. No device is returned
// along with it.
type DeviceInaccessibleError struct {
	// ID is the last value read from the chip ID register.
	ID byte
}

func (e *DeviceInaccessibleError) Error() string {
	return fmt.Sprintf("bme280: device inaccessible, chip id %#x != %#x", e.ID, chipID)
}

// MeasurementTimeoutError is returned when the status register kept
// reporting a conversion in progress. The device remains usable and the read
// can be retried.
type MeasurementTimeoutError struct{}

func (e *MeasurementTimeoutError) Error() string {
	return "bme280: timed out waiting for measurement to finish"
}
