// Package hillshade renders shaded-relief images from elevation rasters.
//
// # Overview
//
// For every cell of an elevation window the renderer gathers the 3×3
// neighborhood, estimates the east-west and north-south slopes with Horn's
// weighted finite difference, and converts them into a reflected-light
// intensity for a light source at a configurable azimuth and altitude.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/hillshade"
//	    "github.com/gogpu/hillshade/raster"
//	)
//
//	dem, _ := raster.Open("dem.asc", raster.ReadOptions{})
//	cfg, _ := hillshade.DefaultConfig().WithAzimuth(315)
//	r, _ := hillshade.NewRenderer(dem, cfg)
//
//	pm, _ := r.Render(ctx, dem.Extent(), dem.Width(), dem.Height())
//	_ = pm.Save("relief.png")
//
// # Pipeline
//
// A pass runs three stages per output cell:
//   - Sampler: [SampleWindow] builds the 3×3 [Window], replacing missing
//     neighbors according to the [EdgePolicy]
//   - Gradient: [Derivatives] applies Horn's kernel scaled by the cell size
//   - Illumination: [Illumination.Shade] maps the gradient to a gray level
//
// Cells never depend on each other's output, so rows are rendered in
// parallel. The result is identical for any worker count.
//
// # No-data
//
// A no-data cell is written with the renderer's no-data color (transparent
// black unless changed with [WithNoDataColor]). It never contributes to a
// neighbor's gradient: missing neighbors take the center cell's value.
//
// # Coordinate System
//
// Row 0 is the northern edge of the requested extent and column 0 the
// western edge. Azimuth is a compass bearing in degrees, clockwise from north.
package hillshade

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
