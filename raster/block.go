// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"math"
)

// Block errors.
var (
	// ErrInvalidDimensions is returned when width or height is negative or
	// the sample slice does not hold width*height values.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidBand is returned when a band number is outside [1, BandCount].
	ErrInvalidBand = errors.New("raster: invalid band")
)

// Block is one band of elevation samples over a rectangular window.
//
// Samples are stored row-major, north to south. A sample is no-data when it
// is NaN, or when the block declares a no-data value and the sample equals it.
//
// Thread safety: Block is safe for concurrent reads. SetValue and SetNoData
// require external synchronization.
type Block struct {
	width     int
	height    int
	data      []float64
	noData    float64
	hasNoData bool
}

// NewBlock allocates a width×height block filled with zero.
func NewBlock(width, height int) (*Block, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	return &Block{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}, nil
}

// NewBlockFromData wraps data without copying.
func NewBlockFromData(width, height int, data []float64) (*Block, error) {
	if width < 0 || height < 0 || len(data) != width*height {
		return nil, ErrInvalidDimensions
	}
	return &Block{width: width, height: height, data: data}, nil
}

// WithNoData declares v as the block's no-data value and returns the block.
func (b *Block) WithNoData(v float64) *Block {
	b.noData = v
	b.hasNoData = true
	return b
}

// Width returns the number of columns.
func (b *Block) Width() int { return b.width }

// Height returns the number of rows.
func (b *Block) Height() int { return b.height }

// IsEmpty reports whether the block holds no samples.
func (b *Block) IsEmpty() bool {
	return b == nil || b.width == 0 || b.height == 0
}

// NoDataValue returns the declared no-data value, if any.
func (b *Block) NoDataValue() (float64, bool) {
	return b.noData, b.hasNoData
}

// Data returns the raw row-major samples.
func (b *Block) Data() []float64 { return b.data }

// InBounds reports whether (row, col) addresses a sample of the block.
func (b *Block) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Value returns the raw sample at (row, col), or NaN when out of bounds.
func (b *Block) Value(row, col int) float64 {
	if !b.InBounds(row, col) {
		return math.NaN()
	}
	return b.data[row*b.width+col]
}

// IsNoData reports whether the sample at (row, col) is no-data.
// Out-of-bounds positions are reported as no-data.
func (b *Block) IsNoData(row, col int) bool {
	if !b.InBounds(row, col) {
		return true
	}
	return b.isNoDataValue(b.data[row*b.width+col])
}

// Sample returns the value at (row, col) and whether it is no-data.
func (b *Block) Sample(row, col int) (float64, bool) {
	if !b.InBounds(row, col) {
		return math.NaN(), true
	}
	v := b.data[row*b.width+col]
	return v, b.isNoDataValue(v)
}

func (b *Block) isNoDataValue(v float64) bool {
	return math.IsNaN(v) || (b.hasNoData && v == b.noData)
}

// SetValue stores v at (row, col). Out-of-bounds writes are ignored.
func (b *Block) SetValue(row, col int, v float64) {
	if b.InBounds(row, col) {
		b.data[row*b.width+col] = v
	}
}

// SetNoData marks the sample at (row, col) as no-data.
func (b *Block) SetNoData(row, col int) {
	if !b.InBounds(row, col) {
		return
	}
	if b.hasNoData {
		b.data[row*b.width+col] = b.noData
		return
	}
	b.data[row*b.width+col] = math.NaN()
}

// Stats returns the minimum and maximum valid sample and the number of
// valid samples. ok is false when every sample is no-data.
func (b *Block) Stats() (lo, hi float64, valid int, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range b.data {
		if b.isNoDataValue(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
		valid++
	}
	return lo, hi, valid, valid > 0
}
