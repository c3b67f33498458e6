package hillshade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/hillshade/internal/parallel"
	"github.com/gogpu/hillshade/raster"
)

// Render errors.
var (
	// ErrInvalidDimensions is returned when the requested output size is not positive.
	ErrInvalidDimensions = errors.New("hillshade: invalid output dimensions")

	// ErrInvalidExtent is returned when the requested extent has no area.
	ErrInvalidExtent = errors.New("hillshade: invalid extent")

	// ErrOutputTooLarge is returned when the output buffer would exceed the
	// renderer's pixel limit.
	ErrOutputTooLarge = errors.New("hillshade: output too large")

	// ErrBlockMismatch is returned when the input returns a window of a
	// different size than requested.
	ErrBlockMismatch = errors.New("hillshade: input block size mismatch")
)

// TypeHillshade is the renderer type name.
const TypeHillshade = "hillshade"

// Renderer produces an image for a window of a raster.
type Renderer interface {
	// Type returns the renderer type name.
	Type() string

	// Render produces a width×height image covering extent.
	//
	// When there is nothing to render (no input bound, or the input returns an
	// empty window) Render returns an empty Pixmap and a nil error. On error it
	// returns an empty Pixmap, never a partially rendered one.
	Render(ctx context.Context, extent raster.Extent, width, height int) (*Pixmap, error)

	// UsesBands returns the input bands the renderer reads.
	UsesBands() []int

	// Clone returns a renderer with the same settings and no shared mutable state.
	Clone() Renderer
}

// HillshadeRenderer shades one elevation band of a raster.Provider.
//
// A HillshadeRenderer never changes after construction; the With* methods
// return new renderers. It is safe for concurrent Render calls as long as the
// input provider is.
type HillshadeRenderer struct {
	input raster.Provider
	cfg   Config
	opts  rendererOptions
}

// Compile-time interface check.
var _ Renderer = (*HillshadeRenderer)(nil)

// NewRenderer creates a renderer for input.
//
// The configured band must exist in input; otherwise ErrInvalidBand is
// returned. input may be nil, in which case every pass yields an empty
// Pixmap.
func NewRenderer(input raster.Provider, cfg Config, opts ...Option) (*HillshadeRenderer, error) {
	if err := checkConfig(input, cfg); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &HillshadeRenderer{input: input, cfg: cfg, opts: o}, nil
}

func checkConfig(input raster.Provider, cfg Config) error {
	if input == nil {
		return cfg.validate()
	}
	return cfg.Validate(input.BandCount())
}

// Type implements Renderer.
func (r *HillshadeRenderer) Type() string { return TypeHillshade }

// Config returns the shading configuration.
func (r *HillshadeRenderer) Config() Config { return r.cfg }

// Input returns the bound elevation provider, or nil.
func (r *HillshadeRenderer) Input() raster.Provider { return r.input }

// EdgePolicy returns the border handling of the renderer.
func (r *HillshadeRenderer) EdgePolicy() EdgePolicy { return r.opts.edgePolicy }

// UsesBands implements Renderer.
func (r *HillshadeRenderer) UsesBands() []int {
	return []int{r.cfg.band}
}

// Clone implements Renderer. The clone shares the read-only input provider.
func (r *HillshadeRenderer) Clone() Renderer {
	c := *r
	return &c
}

// WithConfig returns a renderer using cfg, validated against the input.
func (r *HillshadeRenderer) WithConfig(cfg Config) (*HillshadeRenderer, error) {
	if err := checkConfig(r.input, cfg); err != nil {
		return nil, err
	}
	c := *r
	c.cfg = cfg
	return &c, nil
}

// WithBand returns a renderer reading band. A band outside the input's
// range is rejected and r keeps its own band.
func (r *HillshadeRenderer) WithBand(band int) (*HillshadeRenderer, error) {
	cfg, err := r.cfg.WithBand(band)
	if err != nil {
		return nil, err
	}
	return r.WithConfig(cfg)
}

// WithAzimuth returns a renderer lit from deg.
func (r *HillshadeRenderer) WithAzimuth(deg float64) (*HillshadeRenderer, error) {
	cfg, err := r.cfg.WithAzimuth(deg)
	if err != nil {
		return nil, err
	}
	return r.WithConfig(cfg)
}

// WithAltitude returns a renderer with the light deg above the horizon.
func (r *HillshadeRenderer) WithAltitude(deg float64) (*HillshadeRenderer, error) {
	cfg, err := r.cfg.WithAltitude(deg)
	if err != nil {
		return nil, err
	}
	return r.WithConfig(cfg)
}

// WithZFactor returns a renderer with vertical exaggeration z.
func (r *HillshadeRenderer) WithZFactor(z float64) (*HillshadeRenderer, error) {
	cfg, err := r.cfg.WithZFactor(z)
	if err != nil {
		return nil, err
	}
	return r.WithConfig(cfg)
}

// WithInput returns a renderer bound to input.
func (r *HillshadeRenderer) WithInput(input raster.Provider) (*HillshadeRenderer, error) {
	if err := checkConfig(input, r.cfg); err != nil {
		return nil, err
	}
	c := *r
	c.input = input
	return &c, nil
}

// Render implements Renderer.
func (r *HillshadeRenderer) Render(ctx context.Context, extent raster.Extent, width, height int) (*Pixmap, error) {
	empty := NewPixmap(0, 0)
	log := Logger()

	if width <= 0 || height <= 0 {
		return empty, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if r.opts.maxPixels > 0 && int64(width)*int64(height) > r.opts.maxPixels {
		return empty, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrOutputTooLarge, width, height, r.opts.maxPixels)
	}
	if extent.IsEmpty() {
		return empty, fmt.Errorf("%w: %v", ErrInvalidExtent, extent)
	}
	if r.input == nil {
		log.Warn("hillshade: no input raster")
		return empty, nil
	}

	block, err := r.input.Block(ctx, r.cfg.band, extent, width, height)
	if err != nil {
		return empty, fmt.Errorf("hillshade: fetch band %d: %w", r.cfg.band, err)
	}
	if block.IsEmpty() {
		log.Warn("hillshade: no raster data", "band", r.cfg.band, "extent", extent.String())
		return empty, nil
	}
	if block.Width() != width || block.Height() != height {
		return empty, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrBlockMismatch, block.Width(), block.Height(), width, height)
	}
	if r.cfg.multiDirectional {
		log.Warn("hillshade: multi-directional shading is not supported, using single azimuth",
			"azimuth", r.cfg.azimuth)
	}

	start := time.Now()
	out := NewPixmap(width, height)
	cellX, cellY := extent.CellSize(width, height)
	shade(out, block, NewIllumination(r.cfg), cellX, cellY, r.opts)

	log.Debug("hillshade: pass complete",
		"width", width, "height", height,
		"cellX", cellX, "cellY", cellY,
		"workers", r.opts.workers,
		"elapsed", time.Since(start))
	return out, nil
}

// chunkPixels is the minimum number of cells scheduled as one unit of work.
const chunkPixels = 16 * 1024

// shade writes one pixel per cell of block into out.
func shade(out *Pixmap, block *raster.Block, il Illumination, cellX, cellY float64, o rendererOptions) {
	width := block.Width()
	rowsPerChunk := max(1, chunkPixels/width)
	parallel.Chunks(block.Height(), rowsPerChunk, o.workers, func(lo, hi int) {
		for row := lo; row < hi; row++ {
			for col := range width {
				w, ok := SampleWindow(block, row, col, o.edgePolicy)
				if !ok {
					out.SetColor(col, row, o.noDataColor)
					continue
				}
				dx, dy := Derivatives(w, cellX, cellY)
				out.SetGray(col, row, il.Shade(dx, dy))
			}
		}
	})
}
