// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinybus exposes a TinyGo I²C bus as a periph.io i2c.Bus.
//
// This permits using the drivers of this repository on microcontrollers,
// where the bus is provided by the TinyGo machine package.
package tinybus

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// Bus adapts a drivers.I2C.
type Bus struct {
	b    drivers.I2C
	name string
}

// New returns a Bus wrapping b. The bus must already be configured; its
// speed cannot be changed through SetSpeed.
func New(b drivers.I2C, name string) *Bus {
	if name == "" {
		name = "tinygo"
	}
	return &Bus{b: b, name: name}
}

func (b *Bus) String() string {
	return fmt.Sprintf("tinybus(%s)", b.name)
}

// Tx writes w and then reads into r, in a single transaction.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if err := b.b.Tx(addr, w, r); err != nil {
		return fmt.Errorf("tinybus: %w", err)
	}
	return nil
}

// SetSpeed is not supported, the speed is set when configuring the
// machine.I2C.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return errors.New("tinybus: SetSpeed is not supported")
}

var _ i2c.Bus = &Bus{}
