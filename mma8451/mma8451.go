// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"

	"github.com/GermanBionicSystems/mma8451/common"
)

// State is the initialization state of a Dev.
type State byte

const (
	Uninitialized State = iota
	Probing
	Configuring
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Probing:
		return "Probing"
	case Configuring:
		return "Configuring"
	case Ready:
		return "Ready"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

// Opts holds the configuration programmed by Init.
type Opts struct {
	Range    Range    // Full scale range.
	DataRate DataRate // Output data rate.
	// ResetPollAttempts bounds the number of CTRL_REG2 reads while waiting for
	// the reset bit to clear.
	ResetPollAttempts int
	// ResetPollInterval is the delay between two reset polls.
	ResetPollInterval time.Duration
}

// DefaultOpts is ±4g at 800Hz.
var DefaultOpts = Opts{
	Range:             Range4G,
	DataRate:          Rate800Hz,
	ResetPollAttempts: 100,
	ResetPollInterval: time.Millisecond,
}

// Dev is a handle to a MMA8451 accelerometer.
type Dev struct {
	t    Transport
	addr uint16
	opts Opts

	mu          sync.Mutex
	state       State
	initialized bool
	raw         RawSample
	accel       Acceleration
	stop        chan struct{}
	senseErr    error
}

// NewI2C returns a Dev for the device at addr on b, initialized with opts.
// A nil opts uses DefaultOpts.
//
// When the device at addr is not a MMA8451, an *IdentityMismatchError is
// returned and nothing is written to the bus.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	t := NewI2CTransport(b, addr)
	d := newDev(t, addr, opts)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// New returns an initialized Dev using a caller provided Transport.
func New(t Transport, opts *Opts) (*Dev, error) {
	var addr uint16
	if a, ok := t.(interface{ Addr() uint16 }); ok {
		addr = a.Addr()
	}
	d := newDev(t, addr, opts)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

func newDev(t Transport, addr uint16, opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Dev{t: t, addr: addr, opts: *opts}
}

// Init probes the device identity, resets it and programs the
// configuration. It may be called again after a failure.
func (d *Dev) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.init(); err != nil {
		d.state = Uninitialized
		return err
	}
	d.state = Ready
	d.initialized = true
	return nil
}

func (d *Dev) init() error {
	if !d.opts.Range.valid() {
		return fmt.Errorf("mma8451: invalid range %s", d.opts.Range)
	}
	if !d.opts.DataRate.valid() {
		return fmt.Errorf("mma8451: invalid data rate %d", byte(d.opts.DataRate))
	}
	d.state = Probing
	id, err := d.t.ReadRegister(regWhoAmI)
	if err != nil {
		return err
	}
	if id != DeviceID {
		return &IdentityMismatchError{Addr: d.addr, Got: id, Want: DeviceID}
	}

	d.state = Configuring
	if err := d.t.WriteRegister(regCtrl2, ctrl2Reset); err != nil {
		return err
	}
	if err := d.waitReset(); err != nil {
		return err
	}
	ctrl1 := common.SetField(ctrl1Active|ctrl1LNoise, ctrl1DRMask, ctrl1DRShift, byte(d.opts.DataRate))
	writes := []struct{ reg, value byte }{
		{regXYZDataCfg, byte(d.opts.Range)},
		{regCtrl2, ctrl2Mods},
		{regCtrl4, ctrl4IntEnDRDY},
		{regCtrl5, ctrl5IntCfgDRDY},
		{regPLCfg, plCfgEnable},
		{regCtrl1, ctrl1},
	}
	for _, w := range writes {
		if err := d.t.WriteRegister(w.reg, w.value); err != nil {
			return err
		}
	}
	return nil
}

// waitReset polls CTRL_REG2 until the device clears the reset bit.
func (d *Dev) waitReset() error {
	attempts := d.opts.ResetPollAttempts
	if attempts <= 0 {
		attempts = DefaultOpts.ResetPollAttempts
	}
	for i := 0; i < attempts; i++ {
		if i != 0 && d.opts.ResetPollInterval > 0 {
			time.Sleep(d.opts.ResetPollInterval)
		}
		v, err := d.t.ReadRegister(regCtrl2)
		if err != nil {
			return err
		}
		if v&ctrl2Reset == 0 {
			return nil
		}
	}
	return &ResetTimeoutError{Attempts: attempts}
}

// State returns the initialization state.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Range returns the full scale range currently held by the device.
func (d *Dev) Range() (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRange()
}

func (d *Dev) readRange() (Range, error) {
	v, err := d.t.ReadRegister(regXYZDataCfg)
	if err != nil {
		return 0, err
	}
	return Range(common.Field(v, xyzFSMask, 0)), nil
}

// SetRange changes the full scale range. The other bits of XYZ_DATA_CFG are
// preserved.
func (d *Dev) SetRange(r Range) error {
	if !r.valid() {
		return fmt.Errorf("mma8451: invalid range %s", r)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.t.ReadRegister(regXYZDataCfg)
	if err != nil {
		return err
	}
	return d.reconfigure(func(ctrl1 byte) (byte, error) {
		return ctrl1, d.t.WriteRegister(regXYZDataCfg, common.SetField(v, xyzFSMask, 0, byte(r)))
	})
}

// DataRate returns the output data rate currently held by the device.
func (d *Dev) DataRate() (DataRate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.t.ReadRegister(regCtrl1)
	if err != nil {
		return 0, err
	}
	return DataRate(common.Field(v, ctrl1DRMask, ctrl1DRShift)), nil
}

// SetDataRate changes the output data rate. The other CTRL_REG1 bits are
// preserved.
func (d *Dev) SetDataRate(r DataRate) error {
	if !r.valid() {
		return fmt.Errorf("mma8451: invalid data rate %d", byte(r))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reconfigure(func(ctrl1 byte) (byte, error) {
		return common.SetField(ctrl1, ctrl1DRMask, ctrl1DRShift, byte(r)), nil
	})
}

// reconfigure puts the device in standby and calls f with the prior
// CTRL_REG1 value. The value returned by f is then written to CTRL_REG1; its
// active bit is the prior one so an active device is reactivated and a device
// in standby stays there. When f fails, the prior CTRL_REG1 value is written
// back and f's error is returned.
func (d *Dev) reconfigure(f func(ctrl1 byte) (byte, error)) error {
	ctrl1, err := d.t.ReadRegister(regCtrl1)
	if err != nil {
		return err
	}
	if err := d.t.WriteRegister(regCtrl1, ctrl1&^ctrl1Active); err != nil {
		return err
	}
	next, err := f(ctrl1)
	if err != nil {
		if ctrl1&ctrl1Active != 0 {
			_ = d.t.WriteRegister(regCtrl1, ctrl1)
		}
		return err
	}
	return d.t.WriteRegister(regCtrl1, next&^ctrl1Active|ctrl1&ctrl1Active)
}

// Orientation returns the portrait/landscape state.
func (d *Dev) Orientation() (Orientation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return 0, ErrNotReady
	}
	v, err := d.t.ReadRegister(regPLStatus)
	if err != nil {
		return 0, err
	}
	return Orientation(v & plStatusMask), nil
}

// SystemMode returns the current operating mode.
func (d *Dev) SystemMode() (SystemMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.t.ReadRegister(regSysMod)
	if err != nil {
		return 0, err
	}
	return SystemMode(v & sysModMask), nil
}

// Halt stops SenseContinuous and puts the device in standby. Implements
// conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
	ctrl1, err := d.t.ReadRegister(regCtrl1)
	if err != nil {
		return err
	}
	if ctrl1&ctrl1Active == 0 {
		return nil
	}
	return d.t.WriteRegister(regCtrl1, ctrl1&^ctrl1Active)
}

func (d *Dev) String() string {
	if s, ok := d.t.(fmt.Stringer); ok {
		return fmt.Sprintf("mma8451: %s", s)
	}
	return "mma8451"
}

// IsIdentityMismatch returns true if err was caused by an unexpected device
// at the probed address.
func IsIdentityMismatch(err error) bool {
	var e *IdentityMismatchError
	return errors.As(err, &e)
}

var _ conn.Resource = &Dev{}
