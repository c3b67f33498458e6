package hillshade

import "image/color"

// DefaultMaxPixels caps the output buffer of a single pass at 1 GiB of RGBA.
const DefaultMaxPixels = 1 << 28

// Option configures a HillshadeRenderer during creation.
//
// Example:
//
//	r, err := hillshade.NewRenderer(dem, cfg,
//	    hillshade.WithWorkers(4),
//	    hillshade.WithNoDataColor(color.White),
//	)
type Option func(*rendererOptions)

// rendererOptions holds the output and scheduling settings of a renderer.
// They do not affect shading and are not part of Config.
type rendererOptions struct {
	workers     int
	noDataColor color.NRGBA
	edgePolicy  EdgePolicy
	maxPixels   int64
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		workers:     0, // GOMAXPROCS
		noDataColor: NoDataColor,
		edgePolicy:  EdgeCenter,
		maxPixels:   DefaultMaxPixels,
	}
}

// WithWorkers sets how many goroutines render rows concurrently.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithNoDataColor sets the color written for no-data cells.
func WithNoDataColor(c color.Color) Option {
	return func(o *rendererOptions) {
		o.noDataColor = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
}

// WithEdgePolicy selects how neighbors outside the grid are filled.
func WithEdgePolicy(p EdgePolicy) Option {
	return func(o *rendererOptions) {
		o.edgePolicy = p
	}
}

// WithMaxPixels limits the size of the output buffer a pass may allocate.
// Zero or negative removes the limit.
func WithMaxPixels(n int64) Option {
	return func(o *rendererOptions) {
		o.maxPixels = n
	}
}
