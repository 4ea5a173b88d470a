// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestTransport(t *testing.T) {
	pb := playback([]i2ctest.IO{
		{Addr: addr, W: []byte{regPLCfg, 0x40}},
		{Addr: addr, W: []byte{regWhoAmI}, R: []byte{DeviceID}},
		{Addr: addr, W: []byte{regOutXMSB}, R: []byte{1, 2, 3, 4, 5, 6}},
	})
	defer closePlayback(t, pb)
	record := &i2ctest.Record{Bus: pb}
	tr := NewI2CTransport(record, addr)
	if tr.Addr() != addr {
		t.Errorf("expected address %#x, got %#x", addr, tr.Addr())
	}

	if err := tr.WriteRegister(regPLCfg, 0x40); err != nil {
		t.Fatal(err)
	}
	v, err := tr.ReadRegister(regWhoAmI)
	if err != nil {
		t.Fatal(err)
	}
	if v != DeviceID {
		t.Errorf("expected %#02x, got %#02x", DeviceID, v)
	}
	b := make([]byte, 6)
	if err := tr.ReadBlock(regOutXMSB, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("unexpected burst content % x", b)
	}
	// Each operation is a single transaction so the register selection and
	// the read share a repeated start.
	if len(record.Ops) != 3 {
		t.Errorf("expected 3 transactions, got %#v", record.Ops)
	}
}

func TestTransportErrors(t *testing.T) {
	tr := NewI2CTransport(failBus{}, addr)
	var e *TransportError

	err := tr.WriteRegister(regCtrl1, 0)
	if !errors.As(err, &e) || e.Op != "write" || e.Reg != regCtrl1 {
		t.Errorf("unexpected write error %v", err)
	}
	_, err = tr.ReadRegister(regCtrl2)
	if !errors.As(err, &e) || e.Op != "read" || e.Reg != regCtrl2 {
		t.Errorf("unexpected read error %v", err)
	}
	err = tr.ReadBlock(regOutXMSB, make([]byte, 6))
	if !errors.As(err, &e) || e.Op != "burst read" || e.Reg != regOutXMSB {
		t.Errorf("unexpected burst read error %v", err)
	}
	if e.Unwrap() == nil {
		t.Error("expected the bus error to be wrapped")
	}
}

func TestTransportDebug(t *testing.T) {
	b := newRegBus()
	tr := NewI2CTransport(b, addr)
	var log []string
	tr.EnableDebug(func(format string, args ...interface{}) {
		log = append(log, fmt.Sprintf(format, args...))
	})
	if err := tr.WriteRegister(regCtrl4, 0x01); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.ReadRegister(regCtrl4); err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Errorf("expected 2 debug lines, got %q", log)
	}
	tr.EnableDebug(nil)
	if err := tr.WriteRegister(regCtrl4, 0x00); err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Errorf("debug output not disabled: %q", log)
	}
}
