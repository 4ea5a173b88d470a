// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"errors"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

type regWrite struct {
	reg, value byte
}

// regBus emulates the register file of a MMA8451. Written bytes are stored
// and returned on read, with register auto increment. Writing the reset bit
// clears the registers and keeps the reset bit set for resetPolls reads.
type regBus struct {
	addr       uint16
	regs       [256]byte
	resetPolls int
	writes     []regWrite
	reads      int
	// fail, when set, is called before every transaction with the first
	// register and whether bytes are written. A non nil error fails it.
	fail func(reg byte, write bool) error
}

func newRegBus() *regBus {
	b := &regBus{addr: DefaultAddress, resetPolls: 2}
	b.regs[regWhoAmI] = DeviceID
	return b
}

func (b *regBus) String() string {
	return "regbus"
}

func (b *regBus) SetSpeed(f physic.Frequency) error {
	return nil
}

func (b *regBus) Tx(addr uint16, w, r []byte) error {
	if addr != b.addr {
		return errors.New("regbus: no ack")
	}
	if len(w) == 0 {
		return errors.New("regbus: no register address")
	}
	reg := w[0]
	if b.fail != nil {
		if err := b.fail(reg, len(w) > 1); err != nil {
			return err
		}
	}
	for i, v := range w[1:] {
		b.write(reg+byte(i), v)
	}
	if len(r) != 0 {
		b.reads++
	}
	for i := range r {
		r[i] = b.read(reg + byte(i))
	}
	return nil
}

func (b *regBus) write(reg, v byte) {
	b.writes = append(b.writes, regWrite{reg, v})
	if reg == regCtrl2 && v&ctrl2Reset != 0 {
		id := b.regs[regWhoAmI]
		b.regs = [256]byte{}
		b.regs[regWhoAmI] = id
		b.regs[regCtrl2] = ctrl2Reset
		return
	}
	b.regs[reg] = v
}

func (b *regBus) read(reg byte) byte {
	v := b.regs[reg]
	if reg == regCtrl2 && v&ctrl2Reset != 0 {
		if b.resetPolls <= 1 {
			b.regs[regCtrl2] &^= ctrl2Reset
		}
		b.resetPolls--
	}
	return v
}

// ctrl1Writes returns the values written to CTRL_REG1 since the last reset of
// the write log.
func (b *regBus) ctrl1Writes() []byte {
	var out []byte
	for _, w := range b.writes {
		if w.reg == regCtrl1 {
			out = append(out, w.value)
		}
	}
	return out
}

// failBus fails every transaction.
type failBus struct{}

func (failBus) String() string                    { return "failbus" }
func (failBus) SetSpeed(f physic.Frequency) error { return nil }
func (failBus) Tx(addr uint16, w, r []byte) error { return errors.New("failbus: nack") }

var _ i2c.Bus = &regBus{}
var _ i2c.Bus = failBus{}
