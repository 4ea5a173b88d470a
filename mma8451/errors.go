// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned when sampling before a successful Init.
var ErrNotReady = errors.New("mma8451: device is not initialized")

// TransportError is returned when a bus transaction did not complete.
type TransportError struct {
	Op  string
	Reg byte
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mma8451: %s register %#02x: %v", e.Op, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IdentityMismatchError is returned by Init when the WHO_AM_I register does
// not hold DeviceID. Another address may be tried.
type IdentityMismatchError struct {
	Addr uint16
	Got  byte
	Want byte
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("mma8451: device at %#x reported id %#02x, expected %#02x", e.Addr, e.Got, e.Want)
}

// ResetTimeoutError is returned by Init when the reset bit did not clear.
type ResetTimeoutError struct {
	Attempts int
}

func (e *ResetTimeoutError) Error() string {
	return fmt.Sprintf("mma8451: reset did not complete after %d polls", e.Attempts)
}
