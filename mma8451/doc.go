// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mma8451 controls a NXP MMA8451Q 14 bit 3-axis accelerometer over
// I²C.
//
// The driver resets the device, programs a known configuration and then
// polls it for samples. Readings are returned both as the raw 14 bit counts
// and scaled to standard gravity (g) using the active full scale range. The
// portrait/landscape detector of the device is enabled so Orientation() can
// be queried at any time after initialization.
//
// Range and output data rate can be changed at any time. The device ignores
// these settings while active, so the driver puts it in standby first and
// restores the previous state afterward.
//
// The driver does not serialize access to the bus beyond its own calls. When
// several devices share a bus, the caller must make sure register
// transactions are not interleaved.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/MMA8451Q.pdf
package mma8451
