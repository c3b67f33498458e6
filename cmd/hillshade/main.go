// Command hillshade renders shaded relief from an elevation model.
//
// Usage:
//
//	hillshade -in dem.tif -out relief.png [-azimuth 315 -altitude 45 -z 2]
//	hillshade -in dem.asc -serve :8080
//
// Settings may also be loaded from a JSON or XML file with -settings; flags
// given on the command line take precedence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/hillshade"
	"github.com/gogpu/hillshade/raster"
	"github.com/gogpu/hillshade/server"
	"github.com/gogpu/hillshade/settings"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "hillshade:", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	in, out      string
	settingsPath string
	saveSettings string
	serve        string
	edge         string
	width        int
	height       int
	workers      int
	scale        float64
	offset       float64
	noData       float64
	hasNoData    bool
	verbose      bool

	cfg settings.Settings
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("hillshade", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	def := settings.Default()
	fs.StringVar(&o.in, "in", "", "input elevation model (.tif, .tiff, .asc)")
	fs.StringVar(&o.out, "out", "relief.png", "output image (.png, .jpg, .tif)")
	fs.StringVar(&o.settingsPath, "settings", "", "load renderer settings from a .json or .xml file")
	fs.StringVar(&o.saveSettings, "save-settings", "", "write the effective settings to a .json or .xml file")
	fs.StringVar(&o.serve, "serve", "", "serve previews on this address instead of writing -out")
	fs.StringVar(&o.edge, "edge", hillshade.EdgeCenter.String(), "border handling: center or clamp")
	fs.IntVar(&o.width, "width", 0, "output width (0: native)")
	fs.IntVar(&o.height, "height", 0, "output height (0: native)")
	fs.IntVar(&o.workers, "workers", 0, "rendering goroutines (0: GOMAXPROCS)")
	fs.Float64Var(&o.scale, "scale", 1, "TIFF sample to elevation scale")
	fs.Float64Var(&o.offset, "offset", 0, "TIFF sample to elevation offset")
	fs.Float64Var(&o.noData, "nodata", 0, "TIFF no-data sample value")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")

	band := fs.Int("band", def.Band, "elevation band")
	azimuth := fs.Float64("azimuth", def.Azimuth, "light azimuth in degrees clockwise from north")
	altitude := fs.Float64("altitude", def.Altitude, "light altitude in degrees above the horizon")
	z := fs.Float64("z", def.ZFactor, "vertical exaggeration")
	multi := fs.Bool("multi", def.MultiDirectional, "request multi-directional shading")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.in == "" {
		return nil, errors.New("missing -in")
	}

	o.cfg = def
	if o.settingsPath != "" {
		s, err := settings.Load(o.settingsPath)
		if err != nil {
			return nil, err
		}
		o.cfg = s
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "band":
			o.cfg.Band = *band
		case "azimuth":
			o.cfg.Azimuth = *azimuth
		case "altitude":
			o.cfg.Altitude = *altitude
		case "z":
			o.cfg.ZFactor = *z
		case "multi":
			o.cfg.MultiDirectional = *multi
		case "nodata":
			o.hasNoData = true
		}
	})
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.verbose {
		hillshade.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := o.cfg.Config()
	if err != nil {
		return err
	}
	edge, ok := hillshade.ParseEdgePolicy(o.edge)
	if !ok {
		return fmt.Errorf("unknown -edge %q", o.edge)
	}

	readOpts := raster.ReadOptions{Scale: o.scale, Offset: o.offset}
	if o.hasNoData {
		readOpts.NoData = &o.noData
	}
	dem, err := raster.Open(o.in, readOpts)
	if err != nil {
		return err
	}

	r, err := hillshade.NewRenderer(dem, cfg,
		hillshade.WithWorkers(o.workers),
		hillshade.WithEdgePolicy(edge),
	)
	if err != nil {
		return err
	}

	width, height := o.width, o.height
	if width <= 0 {
		width = dem.Width()
	}
	if height <= 0 {
		height = dem.Height()
	}

	if o.saveSettings != "" {
		if err := settings.Save(o.saveSettings, settings.FromConfig(cfg)); err != nil {
			return err
		}
	}

	if o.serve != "" {
		srv, err := server.New(r, dem.Extent(), width, height)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx, o.serve)
	}
	return render(ctx, r, dem, width, height, o.out, stdout)
}

// render writes one image and prints a summary.
func render(ctx context.Context, r *hillshade.HillshadeRenderer, dem *raster.Grid, width, height int, out string, stdout io.Writer) error {
	start := time.Now()
	pm, err := r.Render(ctx, dem.Extent(), width, height)
	if err != nil {
		return err
	}
	if pm.IsEmpty() {
		return errors.New("nothing to render")
	}
	if err := pm.Save(out); err != nil {
		return err
	}
	hillshade.Logger().Info("relief written", "path", out)

	band := r.Config().Band()
	block, err := dem.Block(ctx, band, dem.Extent(), dem.Width(), dem.Height())
	if err != nil {
		return err
	}
	lo, hi, valid, _ := block.Stats()

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "%s: %d×%d pixels in %v\n", out, width, height, time.Since(start).Round(time.Millisecond))
	p.Fprintf(stdout, "band %d: %d of %d cells valid", band, valid, dem.Width()*dem.Height())
	if valid > 0 {
		p.Fprintf(stdout, ", elevation %.1f to %.1f", lo, hi)
	}
	p.Fprintf(stdout, "\nlight: azimuth %.1f°, altitude %.1f°, z-factor %g\n",
		r.Config().Azimuth(), r.Config().Altitude(), r.Config().ZFactor())
	return nil
}
