// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddress is the I²C address when the SA0 pin is high, which is
	// how most breakout boards are wired.
	DefaultAddress uint16 = 0x1D
	// AlternateAddress is the I²C address when SA0 is tied to ground.
	AlternateAddress uint16 = 0x1C

	// DeviceID is the value reported by the WHO_AM_I register.
	DeviceID byte = 0x1A
)

// Register map.
const (
	regOutXMSB    byte = 0x01 // First of 6 output registers, X/Y/Z MSB then LSB.
	regSysMod     byte = 0x0B // System mode.
	regWhoAmI     byte = 0x0D // Device identification.
	regXYZDataCfg byte = 0x0E // Dynamic range and high pass output.
	regPLStatus   byte = 0x10 // Portrait/landscape status.
	regPLCfg      byte = 0x11 // Portrait/landscape configuration.
	regCtrl1      byte = 0x2A // Active bit, data rate, low noise.
	regCtrl2      byte = 0x2B // Reset, oversampling mode.
	regCtrl4      byte = 0x2D // Interrupt enable.
	regCtrl5      byte = 0x2E // Interrupt pin routing.
)

// Register bits.
const (
	ctrl1Active  byte = 0x01
	ctrl1LNoise  byte = 0x04
	ctrl1DRShift      = 3
	ctrl1DRMask  byte = 0x07

	ctrl2Reset byte = 0x40
	ctrl2Mods  byte = 0x02 // High resolution oversampling.

	ctrl4IntEnDRDY  byte = 0x01
	ctrl5IntCfgDRDY byte = 0x01 // Data ready routed to INT1.

	plCfgEnable byte = 0x40

	xyzFSMask byte = 0x03

	plStatusMask byte = 0x07
	sysModMask   byte = 0x03

	outputLen = 6
	// Samples are left justified 14 bit values.
	sampleBits = 14
)

// Range is the full scale range of the accelerometer.
type Range byte

const (
	Range2G Range = 0x00 // ±2g, the device default.
	Range4G Range = 0x01 // ±4g
	Range8G Range = 0x02 // ±8g
)

// countsPerG returns the number of counts per g for a 14 bit sample.
func (r Range) countsPerG() (float64, error) {
	switch r {
	case Range2G:
		return 4096, nil
	case Range4G:
		return 2048, nil
	case Range8G:
		return 1024, nil
	}
	return 0, fmt.Errorf("mma8451: reserved range value %#b", byte(r))
}

func (r Range) valid() bool {
	return r <= Range8G
}

func (r Range) String() string {
	switch r {
	case Range2G:
		return "2g"
	case Range4G:
		return "4g"
	case Range8G:
		return "8g"
	}
	return fmt.Sprintf("Range(%d)", byte(r))
}

// ParseRange parses strings like "4g", "±8g" or "2".
func ParseRange(s string) (Range, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "±")
	v = strings.TrimPrefix(v, "+/-")
	v = strings.TrimSuffix(v, "g")
	switch v {
	case "2":
		return Range2G, nil
	case "4":
		return Range4G, nil
	case "8":
		return Range8G, nil
	}
	return 0, fmt.Errorf("mma8451: invalid range %q, valid values are 2g, 4g and 8g", s)
}

// DataRate is the output data rate.
type DataRate byte

const (
	Rate800Hz  DataRate = 0x00
	Rate400Hz  DataRate = 0x01
	Rate200Hz  DataRate = 0x02
	Rate100Hz  DataRate = 0x03
	Rate50Hz   DataRate = 0x04
	Rate12_5Hz DataRate = 0x05
	Rate6_25Hz DataRate = 0x06
	Rate1_56Hz DataRate = 0x07
)

var rateFrequencies = [...]physic.Frequency{
	800 * physic.Hertz,
	400 * physic.Hertz,
	200 * physic.Hertz,
	100 * physic.Hertz,
	50 * physic.Hertz,
	12500 * physic.MilliHertz,
	6250 * physic.MilliHertz,
	1562500 * physic.MicroHertz,
}

func (r DataRate) valid() bool {
	return r <= Rate1_56Hz
}

// Frequency returns the output data rate as a frequency.
func (r DataRate) Frequency() physic.Frequency {
	if !r.valid() {
		return 0
	}
	return rateFrequencies[r]
}

func (r DataRate) String() string {
	if !r.valid() {
		return fmt.Sprintf("DataRate(%d)", byte(r))
	}
	return r.Frequency().String()
}

// ParseDataRate parses a frequency like "800Hz" or "12.5Hz". 1.56Hz is
// accepted for the slowest rate.
func ParseDataRate(s string) (DataRate, error) {
	v := strings.TrimSpace(s)
	if strings.EqualFold(v, "1.56Hz") {
		return Rate1_56Hz, nil
	}
	var f physic.Frequency
	if err := f.Set(v); err != nil {
		return 0, fmt.Errorf("mma8451: invalid data rate %q: %w", s, err)
	}
	for i, rf := range rateFrequencies {
		if rf == f {
			return DataRate(i), nil
		}
	}
	return 0, fmt.Errorf("mma8451: unsupported data rate %q", s)
}

// Orientation is the portrait/landscape state computed by the device.
type Orientation byte

const (
	PortraitUpFront     Orientation = 0
	PortraitUpBack      Orientation = 1
	PortraitDownFront   Orientation = 2
	PortraitDownBack    Orientation = 3
	LandscapeRightFront Orientation = 4
	LandscapeRightBack  Orientation = 5
	LandscapeLeftFront  Orientation = 6
	LandscapeLeftBack   Orientation = 7
)

var orientationNames = [...]string{
	"Portrait Up Front",
	"Portrait Up Back",
	"Portrait Down Front",
	"Portrait Down Back",
	"Landscape Right Front",
	"Landscape Right Back",
	"Landscape Left Front",
	"Landscape Left Back",
}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return fmt.Sprintf("Orientation(%d)", byte(o))
}

// Back returns true when the device is facing down.
func (o Orientation) Back() bool {
	return o&0x01 != 0
}

// Landscape returns true for the four landscape states.
func (o Orientation) Landscape() bool {
	return o&0x04 != 0
}

// SystemMode is the current operating mode reported by SYSMOD.
type SystemMode byte

const (
	ModeStandby SystemMode = 0
	ModeWake    SystemMode = 1
	ModeSleep   SystemMode = 2
)

func (m SystemMode) String() string {
	switch m {
	case ModeStandby:
		return "Standby"
	case ModeWake:
		return "Wake"
	case ModeSleep:
		return "Sleep"
	}
	return fmt.Sprintf("SystemMode(%d)", byte(m))
}
