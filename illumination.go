package hillshade

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Illumination maps surface gradients to reflected light intensity using a
// Lambertian model.
//
// It is built once per pass from a Config; the trigonometry of the light
// direction is precomputed. Illumination is a value type and safe for
// concurrent use.
type Illumination struct {
	zenith    float64 // radians from vertical
	azimuth   float64 // negated bearing, radians
	zFactor   float64
	cosZenith float64
	sinZenith float64
	light     mgl64.Vec3
}

// NewIllumination precomputes the light direction of cfg.
func NewIllumination(cfg Config) Illumination {
	zenith := max(0, 90-cfg.altitude) * math.Pi / 180
	il := Illumination{
		zenith:    zenith,
		azimuth:   -cfg.azimuth * math.Pi / 180,
		zFactor:   cfg.zFactor,
		cosZenith: math.Cos(zenith),
		sinZenith: math.Sin(zenith),
	}
	il.light = mgl64.Vec3{
		il.sinZenith * math.Cos(il.azimuth),
		il.sinZenith * math.Sin(il.azimuth),
		il.cosZenith,
	}
	return il
}

// Zenith returns the angle between the light and the vertical, in radians.
// Altitudes above 90° are treated as overhead.
func (il Illumination) Zenith() float64 { return il.zenith }

// Slope returns the surface steepness in radians for gradient (dx, dy),
// scaled by the z-factor.
func (il Illumination) Slope(dx, dy float64) float64 {
	return math.Atan(il.zFactor * math.Hypot(dx, dy))
}

// Aspect returns the downslope direction of gradient (dx, dy) in radians,
// in [0, 2π).
//
// A gradient with dx == 0 is resolved to π/2 or 3π/2 by the sign of dy. A
// perfectly flat cell has no direction; its aspect is fixed at 0, which does
// not affect the result since the slope term vanishes.
func Aspect(dx, dy float64) float64 {
	if dx != 0 {
		a := math.Atan2(dx, -dy)
		if a < 0 {
			a += 2 * math.Pi
		}
		return a
	}
	switch {
	case dy > 0:
		return math.Pi / 2
	case dy < 0:
		return 3 * math.Pi / 2
	}
	return 0
}

// Intensity returns the reflected light for gradient (dx, dy) in [0, 255]:
// the cosine between the surface normal and the light, scaled to 255.
func (il Illumination) Intensity(dx, dy float64) float64 {
	v := 255 * il.Normal(dx, dy).Dot(il.light)
	if !(v > 0) {
		return 0
	}
	return min(v, 255)
}

// Shade returns Intensity rounded to a gray level.
func (il Illumination) Shade(dx, dy float64) uint8 {
	return uint8(math.Round(il.Intensity(dx, dy)))
}

// LightVector returns the unit vector pointing towards the light, expressed
// in the same angular frame as SurfaceNormal.
func (il Illumination) LightVector() mgl64.Vec3 { return il.light }

// SurfaceNormal returns the unit normal of a surface with the given slope
// and aspect in radians.
func SurfaceNormal(slope, aspect float64) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Sin(slope) * math.Cos(aspect),
		math.Sin(slope) * math.Sin(aspect),
		math.Cos(slope),
	}
}

// Normal returns the unit surface normal for gradient (dx, dy).
func (il Illumination) Normal(dx, dy float64) mgl64.Vec3 {
	return SurfaceNormal(il.Slope(dx, dy), Aspect(dx, dy))
}
