// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package plot renders a trace of accelerometer samples to an image.
//
// The three axes are drawn as colored lines over a grid in g, with the full
// scale range of the first sample used as the vertical extent unless
// Opts.Full is set.
package plot

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/mma8451/mma8451"
)

// Opts represents the options of a rendering.
type Opts struct {
	Width  int
	Height int
	// Full is the magnitude in g at the top and bottom edges. 0 uses the
	// range of the first sample.
	Full  float64
	Title string
}

// DefaultOpts is a 800x400 image.
var DefaultOpts = Opts{Width: 800, Height: 400}

var axisColors = [3][3]float64{
	{0.85, 0.15, 0.15},
	{0.15, 0.65, 0.15},
	{0.15, 0.3, 0.85},
}

const margin = 40.0

// Render draws samples and returns the image.
func Render(samples []mma8451.Sample, opts *Opts) (image.Image, error) {
	dc, err := draw(samples, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG draws samples and encodes them as PNG into w.
func WritePNG(w io.Writer, samples []mma8451.Sample, opts *Opts) error {
	dc, err := draw(samples, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func draw(samples []mma8451.Sample, opts *Opts) (*gg.Context, error) {
	if len(samples) == 0 {
		return nil, errors.New("plot: no samples")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	w, h := opts.Width, opts.Height
	if w <= 2*margin || h <= 2*margin {
		return nil, fmt.Errorf("plot: image %dx%d is too small", w, h)
	}
	full := opts.Full
	if full <= 0 {
		full = fullScale(samples[0].Range)
	}
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 11}))

	left, right := margin, float64(w)-margin/2
	top, bottom := margin, float64(h)-margin
	y := func(g float64) float64 {
		return top + (bottom-top)*(full-g)/(2*full)
	}
	x := func(i int) float64 {
		if len(samples) == 1 {
			return left
		}
		return left + (right-left)*float64(i)/float64(len(samples)-1)
	}

	// Grid, one line per g.
	dc.SetLineWidth(1)
	for g := -full; g <= full; g++ {
		if g == 0 {
			dc.SetRGB(0.4, 0.4, 0.4)
		} else {
			dc.SetRGB(0.85, 0.85, 0.85)
		}
		dc.DrawLine(left, y(g), right, y(g))
		dc.Stroke()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(fmt.Sprintf("%+.0fg", g), left-4, y(g), 1, 0.35)
	}

	dc.SetLineWidth(1.5)
	for axis, rgb := range axisColors {
		dc.SetRGB(rgb[0], rgb[1], rgb[2])
		for i, s := range samples {
			v := [3]float64{s.Acceleration.X, s.Acceleration.Y, s.Acceleration.Z}[axis]
			if i == 0 {
				dc.MoveTo(x(i), y(v))
			} else {
				dc.LineTo(x(i), y(v))
			}
		}
		dc.Stroke()
		dc.DrawStringAnchored(string("XYZ"[axis]), right-float64(3-axis)*16, top-12, 0.5, 0.5)
	}

	if opts.Title != "" {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(opts.Title, left, top-12, 0, 0.5)
	}
	return dc, nil
}

func fullScale(r mma8451.Range) float64 {
	switch r {
	case mma8451.Range2G:
		return 2
	case mma8451.Range8G:
		return 8
	}
	return 4
}
