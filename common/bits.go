// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, extracting and inserting bit fields of device registers.
package common

// Field returns the bits of value selected by mask, shifted down to bit 0.
// mask is expressed unshifted, for example 0x07 for a 3 bit field.
func Field(value byte, mask byte, shift uint) byte {
	return (value >> shift) & mask
}

// SetField replaces the bits selected by mask<<shift in value with field and
// returns the result. Bits outside the field are preserved.
func SetField(value byte, mask byte, shift uint, field byte) byte {
	return (value &^ (mask << shift)) | ((field & mask) << shift)
}

// LeftJustified decodes a left justified two's complement reading split over
// a most significant and a least significant byte into a value of the given
// width. The 16 bit word is built first and then arithmetically shifted right
// by (16 - bits) positions so the sign is kept.
func LeftJustified(msb, lsb byte, bits uint) int16 {
	return int16(uint16(msb)<<8|uint16(lsb)) >> (16 - bits)
}
