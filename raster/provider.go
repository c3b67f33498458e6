// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"context"
	"fmt"
	"math"
)

// Provider is a source of elevation samples.
//
// Block returns one band over extent as a width×height window. The block's
// row 0 is the northern edge of extent. A provider with nothing to offer
// returns an empty block and a nil error.
type Provider interface {
	// BandCount returns the number of bands. Bands are numbered from 1.
	BandCount() int

	// NoDataValue returns the no-data value of band, if it declares one.
	NoDataValue(band int) (float64, bool)

	// Block fetches band over extent at the requested size.
	Block(ctx context.Context, band int, extent Extent, width, height int) (*Block, error)
}

// Grid is an in-memory multi-band provider.
//
// When a request matches the grid's native extent and size, Block returns a
// copy of the band. Otherwise each output cell takes the native cell under its
// center, and cells outside the grid's extent are no-data.
type Grid struct {
	width  int
	height int
	extent Extent
	bands  [][]float64
	noData []noDataDecl
}

type noDataDecl struct {
	value float64
	set   bool
}

// NewGrid creates a grid over extent. Each band must hold width*height
// row-major samples.
func NewGrid(width, height int, extent Extent, bands ...[]float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	for i, b := range bands {
		if len(b) != width*height {
			return nil, fmt.Errorf("raster: band %d has %d samples, want %d: %w",
				i+1, len(b), width*height, ErrInvalidDimensions)
		}
	}
	return &Grid{
		width:  width,
		height: height,
		extent: extent,
		bands:  bands,
		noData: make([]noDataDecl, len(bands)),
	}, nil
}

// GridFromBlock wraps a single block as a one-band grid over extent.
func GridFromBlock(b *Block, extent Extent) (*Grid, error) {
	g, err := NewGrid(b.Width(), b.Height(), extent, b.Data())
	if err != nil {
		return nil, err
	}
	if v, ok := b.NoDataValue(); ok {
		g.noData[0] = noDataDecl{value: v, set: true}
	}
	return g, nil
}

// SetNoDataValue declares the no-data value of band.
func (g *Grid) SetNoDataValue(band int, v float64) error {
	if band < 1 || band > len(g.bands) {
		return ErrInvalidBand
	}
	g.noData[band-1] = noDataDecl{value: v, set: true}
	return nil
}

// Width returns the native number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the native number of rows.
func (g *Grid) Height() int { return g.height }

// Extent returns the native extent.
func (g *Grid) Extent() Extent { return g.extent }

// BandCount implements Provider.
func (g *Grid) BandCount() int { return len(g.bands) }

// NoDataValue implements Provider.
func (g *Grid) NoDataValue(band int) (float64, bool) {
	if band < 1 || band > len(g.bands) {
		return 0, false
	}
	d := g.noData[band-1]
	return d.value, d.set
}

// Block implements Provider.
func (g *Grid) Block(ctx context.Context, band int, extent Extent, width, height int) (*Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if band < 1 || band > len(g.bands) {
		return nil, fmt.Errorf("raster: band %d of %d: %w", band, len(g.bands), ErrInvalidBand)
	}
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}

	out, _ := NewBlock(width, height)
	if v, ok := g.NoDataValue(band); ok {
		out.WithNoData(v)
	}
	if out.IsEmpty() {
		return out, nil
	}

	src := g.bands[band-1]
	if width == g.width && height == g.height && extent == g.extent {
		copy(out.data, src)
		return out, nil
	}

	if extent.IsEmpty() || g.extent.IsEmpty() {
		return &Block{}, nil
	}

	cellX, cellY := extent.CellSize(width, height)
	nativeX, nativeY := g.extent.CellSize(g.width, g.height)
	for row := range height {
		y := extent.MaxY - (float64(row)+0.5)*cellY
		srcRow := int(math.Floor((g.extent.MaxY - y) / nativeY))
		for col := range width {
			x := extent.MinX + (float64(col)+0.5)*cellX
			srcCol := int(math.Floor((x - g.extent.MinX) / nativeX))
			if srcRow < 0 || srcRow >= g.height || srcCol < 0 || srcCol >= g.width {
				out.SetNoData(row, col)
				continue
			}
			out.data[row*width+col] = src[srcRow*g.width+srcCol]
		}
	}
	return out, nil
}
