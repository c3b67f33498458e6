// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "fmt"

// Extent is an axis-aligned rectangle in map units.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewExtent returns the extent spanning the two corners in any order.
func NewExtent(x0, y0, x1, y1 float64) Extent {
	return Extent{
		MinX: min(x0, x1),
		MinY: min(y0, y1),
		MaxX: max(x0, x1),
		MaxY: max(y0, y1),
	}
}

// Width returns the east-west size of the extent.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the north-south size of the extent.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// IsEmpty reports whether the extent has no area.
func (e Extent) IsEmpty() bool {
	return !(e.Width() > 0) || !(e.Height() > 0)
}

// CellSize returns the ground distance covered by one cell of a
// width×height grid laid over the extent.
func (e Extent) CellSize(width, height int) (x, y float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return e.Width() / float64(width), e.Height() / float64(height)
}

// Contains reports whether the point lies inside the extent.
// The northern and eastern edges are exclusive.
func (e Extent) Contains(x, y float64) bool {
	return x >= e.MinX && x < e.MaxX && y > e.MinY && y <= e.MaxY
}

// String implements fmt.Stringer.
func (e Extent) String() string {
	return fmt.Sprintf("[%g,%g : %g,%g]", e.MinX, e.MinY, e.MaxX, e.MaxY)
}
