// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bme280exporter reads a BME280 and exports its measurements to Prometheus.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/GermanBionicSystems/bme280/bme280"
	"github.com/GermanBionicSystems/bme280/gobotbus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {
	backend := flag.String("backend", "periph", "I2C backend, periph or gobot")
	bus := flag.String("bus", "", "I2C bus name (periph backend)")
	device := flag.String("device", "/dev/i2c-1", "I2C device (gobot backend)")
	addr := flag.Uint("addr", uint(bme280.DefaultAddress), "I2C address")
	promaddr := flag.String("prometheus", ":9121", "Prometheus exporter address")
	maxAge := flag.Duration("max-age", time.Second, "Minimum time between two reads of the device")
	once := flag.Bool("once", false, "Print one measurement and exit")
	verbose := flag.Bool("v", false, "Trace register accesses")
	flag.Parse()

	b, err := openBus(*backend, *bus, *device)
	if err != nil {
		log.Fatalln("open I2C bus:", err)
	}
	defer b.Close()

	opts := bme280.DefaultOpts
	if *verbose {
		opts.Debug = log.Printf
	}
	dev, err := bme280.NewI2C(b, uint16(*addr), &opts)
	if err != nil {
		log.Fatalln("init BME280:", err)
	}

	if *once {
		m, err := dev.Read()
		if err != nil {
			log.Fatalln("read BME280:", err)
		}
		fmt.Printf("%.2f°C %.2fhPa %.2f%%RH\n", m.Temperature, m.Pressure/100, m.Humidity)
		return
	}

	servePrometheus(*promaddr, newSampler(dev, *maxAge))
}

func openBus(backend, bus, device string) (i2c.BusCloser, error) {
	switch backend {
	case "periph":
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		return i2creg.Open(bus)
	case "gobot":
		b, err := gobotbus.Open(device)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func servePrometheus(addr string, s *sampler) {
	readErrors := promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "read_errors_total",
	})
	s.onError = func(err error) {
		log.Println("read BME280:", err)
		readErrors.Inc()
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "temperature_celsius",
	}, s.gauge(func(m bme280.Measurement) float32 { return m.Temperature }))

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "pressure_pascal",
	}, s.gauge(func(m bme280.Measurement) float32 { return m.Pressure }))

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "humidity_percent",
	}, s.gauge(func(m bme280.Measurement) float32 { return m.Humidity }))

	http.Handle("/metrics", promhttp.Handler())
	log.Fatalln(http.ListenAndServe(addr, nil))
}

func round(x float64, prec int) float64 {
	p := math.Pow(10, float64(prec))
	return math.Round(x*p) / p
}
