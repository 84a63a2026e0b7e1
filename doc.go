// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensors is a container for the BME280 environmental sensor driver
// and the bus adapters that let it run on gobot and TinyGo buses.
//
// The driver lives in bme280, the adapters in gobotbus and tinygobus, and
// cmd/bme280exporter serves the measurements to Prometheus.
package sensors
