// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/mma8451/internal/config"
	"github.com/GermanBionicSystems/mma8451/mma8451"
)

// device is an initialized accelerometer and the bus it is on.
type device struct {
	*mma8451.Dev
	bus  i2c.BusCloser
	addr uint16
}

func (d *device) Close() error {
	if err := d.Halt(); err != nil {
		log.Warnf("halt: %v", err)
	}
	return d.bus.Close()
}

// openDevice opens the bus and initializes the accelerometer described by c.
func openDevice(c *config.Config) (*device, error) {
	addr, err := c.I2CAddress()
	if err != nil {
		return nil, err
	}
	opts, err := c.DriverOpts()
	if err != nil {
		return nil, err
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(c.Bus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I²C: %w", err)
	}
	d, err := initDevice(bus, addr, opts, c.Debug)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	log.Debugf("%s ready at %#x, range %s, rate %s", d, addr, opts.Range, opts.DataRate)
	return &device{Dev: d, bus: bus, addr: addr}, nil
}

func initDevice(bus i2c.Bus, addr uint16, opts *mma8451.Opts, debug bool) (*mma8451.Dev, error) {
	t := mma8451.NewI2CTransport(bus, addr)
	if debug {
		t.EnableDebug(log.Debugf)
	}
	d, err := mma8451.New(t, opts)
	if mma8451.IsIdentityMismatch(err) {
		other := mma8451.AlternateAddress
		if addr == mma8451.AlternateAddress {
			other = mma8451.DefaultAddress
		}
		log.Warnf("no MMA8451 at %#x, the other possible address is %#x", addr, other)
	}
	return d, err
}
