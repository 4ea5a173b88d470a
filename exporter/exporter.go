// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package exporter publishes accelerometer readings as Prometheus metrics.
//
// The device is read synchronously on every scrape.
package exporter

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GermanBionicSystems/mma8451/mma8451"
)

// Reader is the part of *mma8451.Dev used by the Collector.
type Reader interface {
	Read() (mma8451.Sample, error)
	Orientation() (mma8451.Orientation, error)
}

// Collector implements prometheus.Collector.
type Collector struct {
	r      Reader
	errors uint64

	accel       *prometheus.Desc
	raw         *prometheus.Desc
	orientation *prometheus.Desc
	readErrors  *prometheus.Desc
}

// New returns a Collector reading from r. labels are added to every metric,
// for example to identify the bus and address.
func New(r Reader, labels prometheus.Labels) *Collector {
	return &Collector{
		r: r,
		accel: prometheus.NewDesc("mma8451_acceleration_g",
			"Acceleration in standard gravity units.", []string{"axis"}, labels),
		raw: prometheus.NewDesc("mma8451_raw_counts",
			"Raw 14 bit sample.", []string{"axis"}, labels),
		orientation: prometheus.NewDesc("mma8451_orientation",
			"Portrait/landscape state, 0 to 7.", []string{"name"}, labels),
		readErrors: prometheus.NewDesc("mma8451_read_errors_total",
			"Failed device reads.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.accel
	ch <- c.raw
	ch <- c.orientation
	ch <- c.readErrors
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if s, err := c.r.Read(); err != nil {
		atomic.AddUint64(&c.errors, 1)
	} else {
		for i, axis := range []string{"x", "y", "z"} {
			g := [3]float64{s.Acceleration.X, s.Acceleration.Y, s.Acceleration.Z}[i]
			raw := [3]int16{s.Raw.X, s.Raw.Y, s.Raw.Z}[i]
			ch <- prometheus.MustNewConstMetric(c.accel, prometheus.GaugeValue, g, axis)
			ch <- prometheus.MustNewConstMetric(c.raw, prometheus.GaugeValue, float64(raw), axis)
		}
	}
	if o, err := c.r.Orientation(); err != nil {
		atomic.AddUint64(&c.errors, 1)
	} else {
		ch <- prometheus.MustNewConstMetric(c.orientation, prometheus.GaugeValue, float64(o), o.String())
	}
	ch <- prometheus.MustNewConstMetric(c.readErrors, prometheus.CounterValue, float64(atomic.LoadUint64(&c.errors)))
}

var _ prometheus.Collector = &Collector{}
