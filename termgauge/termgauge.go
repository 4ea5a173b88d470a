// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termgauge draws accelerometer readings as colored bars on a
// terminal using ANSI color codes.
//
// Each axis is a bar centered on zero; cells light up toward the sign of the
// reading, proportionally to its magnitude. The line is redrawn in place.
package termgauge

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/mma8451/mma8451"
)

// Opts represents the options available for the gauge.
type Opts struct {
	// Width is the number of cells of each axis bar.
	Width int
	// Full is the magnitude in g drawn as a full half bar.
	Full    float64
	Palette *ansi256.Palette
	// Writer defaults to stdout, with ANSI codes translated on Windows.
	Writer io.Writer

	_ struct{}
}

// Dev is a 3 axis gauge that outputs to the console.
type Dev struct {
	w       io.Writer
	width   int
	full    float64
	palette *ansi256.Palette

	buf bytes.Buffer
}

var (
	off    = color.NRGBA{0x20, 0x20, 0x20, 255}
	colors = [3]color.NRGBA{
		{0xff, 0x30, 0x30, 255},
		{0x30, 0xff, 0x30, 255},
		{0x30, 0x60, 0xff, 255},
	}
)

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		w:       opts.Writer,
		width:   opts.Width,
		full:    opts.Full,
		palette: opts.Palette,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.width <= 0 {
		d.width = 21
	}
	if d.full <= 0 {
		d.full = 2
	}
	if d.palette == nil {
		d.palette = ansi256.Default
	}
	return d
}

func (d *Dev) String() string {
	return "TermGauge"
}

// Halt implements conn.Resource.
//
// It resets the colors and moves to the next line so the terminal is not
// corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show redraws the gauge with the reading and orientation.
func (d *Dev) Show(a mma8451.Acceleration, o mma8451.Orientation) error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i, v := range [3]float64{a.X, a.Y, a.Z} {
		_, _ = fmt.Fprintf(&d.buf, "%c ", "XYZ"[i])
		for cell := 0; cell < d.width; cell++ {
			c := off
			if d.lit(cell, v) {
				c = colors[i]
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = fmt.Fprintf(&d.buf, "\033[0m %+6.3fg  ", v)
	}
	_, _ = d.buf.WriteString(o.String())
	_, _ = d.buf.WriteString("\033[0m\033[K")
	_, err := d.buf.WriteTo(d.w)
	return err
}

// lit returns true when cell is between the center of the bar and v.
func (d *Dev) lit(cell int, v float64) bool {
	// Position of the cell center in [-1, 1].
	pos := (float64(cell)+0.5)/float64(d.width)*2 - 1
	level := math.Max(-1, math.Min(1, v/d.full))
	if pos < 0 {
		return level < 0 && level <= pos
	}
	return level > 0 && level >= pos
}
