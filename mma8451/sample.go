// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/mma8451/common"
)

// StandardGravity is 1g expressed in m/s².
const StandardGravity = 9.80665

// RawSample holds the signed 14 bit counts of the three axes.
type RawSample struct {
	X, Y, Z int16
}

func (r RawSample) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", r.X, r.Y, r.Z)
}

// Acceleration is expressed in g.
type Acceleration struct {
	X, Y, Z float64
}

func (a Acceleration) String() string {
	return fmt.Sprintf("X:%.4fg Y:%.4fg Z:%.4fg", a.X, a.Y, a.Z)
}

// MetersPerSecond2 converts the acceleration to m/s².
func (a Acceleration) MetersPerSecond2() [3]float64 {
	return [3]float64{a.X * StandardGravity, a.Y * StandardGravity, a.Z * StandardGravity}
}

// Sample is a single acquisition.
type Sample struct {
	Raw          RawSample
	Acceleration Acceleration
	Range        Range
}

func (s Sample) String() string {
	return fmt.Sprintf("%s (%s) ±%s", s.Acceleration, s.Raw, s.Range)
}

// Read acquires the three axes in a single burst so they belong to the same
// sample, then scales them with the range held by the device.
func (d *Dev) Read() (Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read()
}

func (d *Dev) read() (Sample, error) {
	if d.state != Ready {
		return Sample{}, ErrNotReady
	}
	var b [outputLen]byte
	if err := d.t.ReadBlock(regOutXMSB, b[:]); err != nil {
		return Sample{}, err
	}
	raw := decodeRaw(b[:])
	r, err := d.readRange()
	if err != nil {
		return Sample{}, err
	}
	div, err := r.countsPerG()
	if err != nil {
		return Sample{}, err
	}
	s := Sample{
		Raw: raw,
		Acceleration: Acceleration{
			X: float64(raw.X) / div,
			Y: float64(raw.Y) / div,
			Z: float64(raw.Z) / div,
		},
		Range: r,
	}
	d.raw = s.Raw
	d.accel = s.Acceleration
	return s, nil
}

// decodeRaw converts the MSB,LSB pairs of the output registers.
func decodeRaw(b []byte) RawSample {
	return RawSample{
		X: common.LeftJustified(b[0], b[1], sampleBits),
		Y: common.LeftJustified(b[2], b[3], sampleBits),
		Z: common.LeftJustified(b[4], b[5], sampleBits),
	}
}

// Raw returns the counts of the last successful Read.
func (d *Dev) Raw() RawSample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Acceleration returns the scaled values of the last successful Read.
func (d *Dev) Acceleration() Acceleration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.accel
}

// SenseContinuous polls the device every interval and sends the samples on
// the returned channel. Failed reads send nothing; SenseErr reports the
// error of the last read. Call Halt() to stop; the channel is then closed.
//
// interval must not be shorter than the period of the output data rate.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("mma8451: SenseContinuous already running")
	}
	if d.state != Ready {
		return nil, ErrNotReady
	}
	v, err := d.t.ReadRegister(regCtrl1)
	if err != nil {
		return nil, err
	}
	rate := DataRate(common.Field(v, ctrl1DRMask, ctrl1DRShift))
	if p := rate.Frequency().Period(); interval < p {
		return nil, fmt.Errorf("mma8451: interval %s is shorter than the data rate period %s", interval, p)
	}
	d.stop = make(chan struct{})
	d.senseErr = nil
	ch := make(chan Sample, 16)
	go d.sense(interval, ch, d.stop)
	return ch, nil
}

// SenseErr returns the error of the last read done by SenseContinuous, nil
// once a read succeeds again.
func (d *Dev) SenseErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.senseErr
}

func (d *Dev) sense(interval time.Duration, ch chan<- Sample, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	defer close(ch)
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s, err := d.Read()
			d.mu.Lock()
			d.senseErr = err
			d.mu.Unlock()
			if err != nil {
				continue
			}
			select {
			case ch <- s:
			case <-stop:
				return
			}
		}
	}
}
