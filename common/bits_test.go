// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestField(t *testing.T) {
	var tests = []struct {
		value  byte
		mask   byte
		shift  uint
		result byte
	}{
		{value: 0x2d, mask: 0x07, shift: 3, result: 0x05},
		{value: 0xff, mask: 0x03, shift: 0, result: 0x03},
		{value: 0xf8, mask: 0x07, shift: 0, result: 0x00},
		{value: 0x40, mask: 0x01, shift: 6, result: 0x01},
	}
	for _, test := range tests {
		res := Field(test.value, test.mask, test.shift)
		if res != test.result {
			t.Errorf("Field(%#x, %#x, %d)!=%#x received %#x", test.value, test.mask, test.shift, test.result, res)
		}
	}
}

func TestSetField(t *testing.T) {
	var tests = []struct {
		value  byte
		mask   byte
		shift  uint
		field  byte
		result byte
	}{
		{value: 0x05, mask: 0x07, shift: 3, field: 0x07, result: 0x3d},
		{value: 0x3d, mask: 0x07, shift: 3, field: 0x00, result: 0x05},
		{value: 0x13, mask: 0x03, shift: 0, field: 0x02, result: 0x12},
		// Bits of field above the mask are dropped.
		{value: 0x00, mask: 0x03, shift: 0, field: 0xff, result: 0x03},
	}
	for _, test := range tests {
		res := SetField(test.value, test.mask, test.shift, test.field)
		if res != test.result {
			t.Errorf("SetField(%#x, %#x, %d, %#x)!=%#x received %#x", test.value, test.mask, test.shift, test.field, test.result, res)
		}
	}
}

func TestLeftJustified(t *testing.T) {
	var tests = []struct {
		msb, lsb byte
		bits     uint
		result   int16
	}{
		{msb: 0x10, lsb: 0x00, bits: 14, result: 1024},
		{msb: 0x20, lsb: 0x00, bits: 14, result: 2048},
		{msb: 0xff, lsb: 0xfc, bits: 14, result: -1},
		{msb: 0x80, lsb: 0x00, bits: 14, result: -8192},
		{msb: 0x7f, lsb: 0xfc, bits: 14, result: 8191},
		// The low byte carries the bottom data bits.
		{msb: 0x00, lsb: 0x04, bits: 14, result: 1},
		{msb: 0xff, lsb: 0xf0, bits: 12, result: -1},
	}
	for _, test := range tests {
		res := LeftJustified(test.msb, test.lsb, test.bits)
		if res != test.result {
			t.Errorf("LeftJustified(%#x, %#x, %d)!=%d received %d", test.msb, test.lsb, test.bits, test.result, res)
		}
	}
}
