// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"encoding/binary"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/mmr"
)

// Transport is the register access used by Dev.
//
// Reads select the register and read back without releasing the bus
// (repeated start). ReadBlock reads len(b) consecutive registers.
type Transport interface {
	WriteRegister(reg, value byte) error
	ReadRegister(reg byte) (byte, error)
	ReadBlock(reg byte, b []byte) error
}

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// I2CTransport implements Transport over an I²C bus.
type I2CTransport struct {
	d     *i2c.Dev
	regs  mmr.Dev8
	debug DebugF
}

// NewI2CTransport returns a Transport talking to the device at addr.
func NewI2CTransport(b i2c.Bus, addr uint16) *I2CTransport {
	d := &i2c.Dev{Bus: b, Addr: addr}
	return &I2CTransport{
		d:     d,
		regs:  mmr.Dev8{Conn: d, Order: binary.BigEndian},
		debug: noop,
	}
}

// EnableDebug Sets the debugging output using the local print function.
func (t *I2CTransport) EnableDebug(f DebugF) {
	if f == nil {
		f = noop
	}
	t.debug = f
}

// Addr returns the 7 bit device address.
func (t *I2CTransport) Addr() uint16 {
	return t.d.Addr
}

// WriteRegister sends [reg, value] in a single transaction.
func (t *I2CTransport) WriteRegister(reg, value byte) error {
	t.debug("write register %#02x value %#02x", reg, value)
	if err := t.regs.WriteUint8(reg, value); err != nil {
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

// ReadRegister reads a single register.
func (t *I2CTransport) ReadRegister(reg byte) (byte, error) {
	v, err := t.regs.ReadUint8(reg)
	if err != nil {
		return 0, &TransportError{Op: "read", Reg: reg, Err: err}
	}
	t.debug("read register %#02x value %#02x", reg, v)
	return v, nil
}

// ReadBlock reads len(b) registers starting at reg in one transaction.
func (t *I2CTransport) ReadBlock(reg byte, b []byte) error {
	if err := t.d.Tx([]byte{reg}, b); err != nil {
		return &TransportError{Op: "burst read", Reg: reg, Err: err}
	}
	t.debug("burst read %#02x % x", reg, b)
	return nil
}

func (t *I2CTransport) String() string {
	return t.d.String()
}

func noop(string, ...interface{}) {}

var _ Transport = &I2CTransport{}
