package hillshade

import (
	"errors"
	"fmt"
	"math"
)

// Configuration errors.
var (
	// ErrInvalidBand is returned when a band is not in [1, band count].
	ErrInvalidBand = errors.New("hillshade: invalid band")

	// ErrInvalidZFactor is returned for a z-factor that is not a positive finite number.
	ErrInvalidZFactor = errors.New("hillshade: z-factor must be positive and finite")

	// ErrInvalidAngle is returned for a non-finite azimuth or altitude.
	ErrInvalidAngle = errors.New("hillshade: angle must be finite")
)

// Default light and exaggeration settings.
const (
	DefaultBand     = 1
	DefaultAzimuth  = 300.0
	DefaultAltitude = 30.0
	DefaultZFactor  = 1.0
)

// Config holds the shading parameters of a renderer.
//
// Config is an immutable value: the With* methods return a modified copy and
// never touch the receiver, so a Config can be shared freely between
// goroutines and renderers.
type Config struct {
	band             int
	azimuth          float64
	altitude         float64
	zFactor          float64
	multiDirectional bool
}

// DefaultConfig returns band 1 lit from 300° at 30° above the horizon with
// no vertical exaggeration.
func DefaultConfig() Config {
	return Config{
		band:     DefaultBand,
		azimuth:  DefaultAzimuth,
		altitude: DefaultAltitude,
		zFactor:  DefaultZFactor,
	}
}

// NewConfig validates and returns a configuration.
// The band is only checked to be positive; the upper bound depends on the
// input and is checked by [NewRenderer].
func NewConfig(band int, azimuth, altitude, zFactor float64) (Config, error) {
	c := Config{band: band, azimuth: azimuth, altitude: altitude, zFactor: zFactor}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.band < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBand, c.band)
	}
	if !isFinite(c.azimuth) || !isFinite(c.altitude) {
		return fmt.Errorf("%w: azimuth=%v altitude=%v", ErrInvalidAngle, c.azimuth, c.altitude)
	}
	if !isFinite(c.zFactor) || c.zFactor <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidZFactor, c.zFactor)
	}
	return nil
}

// Validate checks the configuration against an input with bandCount bands.
func (c Config) Validate(bandCount int) error {
	if err := c.validate(); err != nil {
		return err
	}
	if c.band > bandCount {
		return fmt.Errorf("%w: %d of %d", ErrInvalidBand, c.band, bandCount)
	}
	return nil
}

// Band returns the 1-based elevation band.
func (c Config) Band() int { return c.band }

// Azimuth returns the light bearing in degrees clockwise from north.
func (c Config) Azimuth() float64 { return c.azimuth }

// Altitude returns the light elevation in degrees above the horizon.
func (c Config) Altitude() float64 { return c.altitude }

// ZFactor returns the vertical exaggeration.
func (c Config) ZFactor() float64 { return c.zFactor }

// MultiDirectional reports whether multi-directional shading was requested.
//
// The flag is carried through configuration and persistence, but renderers
// currently shade from the single configured azimuth and log a warning.
func (c Config) MultiDirectional() bool { return c.multiDirectional }

// WithBand returns a copy using band.
func (c Config) WithBand(band int) (Config, error) {
	c.band = band
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithAzimuth returns a copy lit from deg.
func (c Config) WithAzimuth(deg float64) (Config, error) {
	c.azimuth = deg
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithAltitude returns a copy with the light deg above the horizon.
func (c Config) WithAltitude(deg float64) (Config, error) {
	c.altitude = deg
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithZFactor returns a copy with vertical exaggeration z.
func (c Config) WithZFactor(z float64) (Config, error) {
	c.zFactor = z
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithMultiDirectional returns a copy with the multi-directional flag set.
func (c Config) WithMultiDirectional(on bool) Config {
	c.multiDirectional = on
	return c
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return fmt.Sprintf("band=%d azimuth=%g altitude=%g z=%g multi=%t",
		c.band, c.azimuth, c.altitude, c.zFactor, c.multiDirectional)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
