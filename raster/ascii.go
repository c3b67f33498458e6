// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedGrid is returned when an ASCII grid header or body is invalid.
var ErrMalformedGrid = errors.New("raster: malformed ASCII grid")

// MaxCells bounds ncols×nrows of an ASCII grid.
const MaxCells = 1 << 28

// ReadASCIIGrid decodes an ESRI ASCII grid (.asc).
//
// The header keys ncols, nrows, xllcorner|xllcenter, yllcorner|yllcenter and
// cellsize (or dx and dy) are required; NODATA_value is optional.
func ReadASCIIGrid(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	hdr := map[string]float64{}
	var first string
	for sc.Scan() {
		tok := sc.Text()
		key := strings.ToLower(tok)
		if !isHeaderKey(key) {
			first = tok
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: missing value for %s", ErrMalformedGrid, tok)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedGrid, tok, err)
		}
		hdr[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: read ASCII grid: %w", err)
	}

	width, height, err := gridSize(hdr["ncols"], hdr["nrows"])
	if err != nil {
		return nil, err
	}
	dx, dy := hdr["cellsize"], hdr["cellsize"]
	if v, ok := hdr["dx"]; ok {
		dx = v
	}
	if v, ok := hdr["dy"]; ok {
		dy = v
	}
	if !(dx > 0) || !(dy > 0) {
		return nil, fmt.Errorf("%w: cell size %gx%g", ErrMalformedGrid, dx, dy)
	}

	minX, okX := hdr["xllcorner"]
	if v, ok := hdr["xllcenter"]; ok {
		minX, okX = v-dx/2, true
	}
	minY, okY := hdr["yllcorner"]
	if v, ok := hdr["yllcenter"]; ok {
		minY, okY = v-dy/2, true
	}
	if !okX || !okY {
		return nil, fmt.Errorf("%w: missing lower-left corner", ErrMalformedGrid)
	}

	data := make([]float64, 0, min(width*height, 1<<20))
	parse := func(tok string) error {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: sample %d: %v", ErrMalformedGrid, len(data), err)
		}
		data = append(data, v)
		return nil
	}
	if first != "" {
		if err := parse(first); err != nil {
			return nil, err
		}
	}
	for len(data) < width*height && sc.Scan() {
		if err := parse(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: read ASCII grid: %w", err)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrMalformedGrid, len(data), width*height)
	}

	extent := Extent{
		MinX: minX,
		MinY: minY,
		MaxX: minX + float64(width)*dx,
		MaxY: minY + float64(height)*dy,
	}
	g, err := NewGrid(width, height, extent, data)
	if err != nil {
		return nil, err
	}
	if v, ok := hdr["nodata_value"]; ok {
		_ = g.SetNoDataValue(1, v)
	}
	return g, nil
}

// gridSize validates the ncols and nrows header values.
func gridSize(ncols, nrows float64) (int, int, error) {
	for _, v := range []float64{ncols, nrows} {
		if !(v >= 1 && v <= MaxCells) || v != math.Trunc(v) {
			return 0, 0, fmt.Errorf("%w: ncols=%g nrows=%g", ErrMalformedGrid, ncols, nrows)
		}
	}
	if ncols*nrows > MaxCells {
		return 0, 0, fmt.Errorf("%w: %gx%g exceeds %d cells", ErrMalformedGrid, ncols, nrows, MaxCells)
	}
	return int(ncols), int(nrows), nil
}

func isHeaderKey(key string) bool {
	switch key {
	case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter",
		"cellsize", "dx", "dy", "nodata_value":
		return true
	}
	return false
}
