// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"time"
)

// SensorType identifies the kind of reading carried by an Event.
type SensorType int

// SensorAccelerometer is the only type produced by this package.
const SensorAccelerometer SensorType = 1

// Event is a generic sensor reading.
type Event struct {
	SensorID  int32
	Type      SensorType
	Timestamp time.Time
	// Acceleration in m/s², X, Y then Z.
	Acceleration [3]float64
}

// Info describes the sensor behind a Sensor.
type Info struct {
	Name     string
	Version  int
	SensorID int32
	Type     SensorType
	// MinDelay is the shortest interval between two distinct samples.
	MinDelay time.Duration
}

// Sensor exposes a Dev as a generic event source.
type Sensor struct {
	d   *Dev
	id  int32
	now func() time.Time
}

// NewSensor returns a Sensor reporting readings of d under id.
func NewSensor(d *Dev, id int32) *Sensor {
	return &Sensor{d: d, id: id, now: time.Now}
}

// Event acquires a sample and returns it in m/s².
func (s *Sensor) Event() (Event, error) {
	smp, err := s.d.Read()
	if err != nil {
		return Event{}, err
	}
	return Event{
		SensorID:     s.id,
		Type:         SensorAccelerometer,
		Timestamp:    s.now(),
		Acceleration: smp.Acceleration.MetersPerSecond2(),
	}, nil
}

// Info returns the static description of the sensor.
func (s *Sensor) Info() Info {
	return Info{
		Name:     "MMA8451",
		Version:  1,
		SensorID: s.id,
		Type:     SensorAccelerometer,
		MinDelay: Rate800Hz.Frequency().Period(),
	}
}
