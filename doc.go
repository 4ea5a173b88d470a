// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mma8451 is a container for the MMA8451 accelerometer driver and
// the tools built on it.
//
// The driver is in the mma8451 subpackage. tinybus runs it on a TinyGo I²C
// bus, termgauge, plot and exporter present its samples and cmd/mma8451 is
// the command line front end.
package mma8451
