// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/tiff"
)

// ReadOptions control how integer image samples map to elevations.
//
// elevation = sample*Scale + Offset. A zero Scale is treated as 1.
type ReadOptions struct {
	Scale  float64
	Offset float64

	// NoData, when set, marks raw samples equal to *NoData as no-data.
	NoData *float64

	// Extent of the file in map units. A zero extent places the grid at the
	// origin with a cell size of 1.
	Extent Extent
}

func (o ReadOptions) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

func (o ReadOptions) extent(width, height int) Extent {
	if o.Extent == (Extent{}) {
		return Extent{MinX: 0, MinY: 0, MaxX: float64(width), MaxY: float64(height)}
	}
	return o.Extent
}

// ReadTIFF decodes a single-band TIFF elevation model.
//
// 16-bit and 8-bit grayscale images are read as raw sample values; any other
// color model is converted to 16-bit luminance first.
func ReadTIFF(r io.Reader, opts ReadOptions) (*Grid, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode TIFF: %w", err)
	}
	return FromImage(img, opts)
}

// FromImage converts a grayscale image into a one-band grid.
func FromImage(img image.Image, opts ReadOptions) (*Grid, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("raster: image is %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	raw := make([]float64, width*height)
	switch src := img.(type) {
	case *image.Gray16:
		for y := range height {
			for x := range width {
				raw[y*width+x] = float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
	case *image.Gray:
		for y := range height {
			row := src.Pix[y*src.Stride : y*src.Stride+width]
			for x, v := range row {
				raw[y*width+x] = float64(v)
			}
		}
	default:
		for y := range height {
			for x := range width {
				c := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
				raw[y*width+x] = float64(c.Y)
			}
		}
	}

	scale := opts.scale()
	data := make([]float64, len(raw))
	for i, v := range raw {
		data[i] = v*scale + opts.Offset
	}

	g, err := NewGrid(width, height, opts.extent(width, height), data)
	if err != nil {
		return nil, err
	}
	if opts.NoData != nil {
		_ = g.SetNoDataValue(1, *opts.NoData*scale+opts.Offset)
	}
	return g, nil
}
