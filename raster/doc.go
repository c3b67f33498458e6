// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides elevation input for the hillshade renderer.
//
// A [Provider] hands the renderer one band of samples over a rectangular
// window as a [Block]. The package ships an in-memory provider ([Grid]) and
// readers for single-band TIFF and ESRI ASCII grid files.
//
// Row 0 of a block is the northern edge of its [Extent]; column 0 is the
// western edge.
package raster
