// Package proj converts between the resolution independent unit space the
// placement store works in and the pixel space of the garment container.
package proj

import "math"

// Axis selects which container dimension a value is measured against.
type Axis int

const (
	Width Axis = iota
	Height
)

func (a Axis) String() string {
	if a == Height {
		return "height"
	}
	return "width"
}

// Dimensions is the live pixel size of the garment container. It is zero
// until the surface has been laid out for the first time.
type Dimensions struct {
	Width  float64
	Height float64
}

// Along returns the size of d along axis a.
func (d Dimensions) Along(a Axis) float64 {
	if a == Height {
		return d.Height
	}
	return d.Width
}

// Measured reports whether both dimensions are non-zero. Conversions into
// unit space are only meaningful for a measured container.
func (d Dimensions) Measured() bool {
	return d.Width > 0 && d.Height > 0
}

// ToPixels converts a fraction of the container into pixels.
//
// Parameters:
//   - fraction: position or size as a fraction of the container (not clamped)
//   - axis: which container dimension the fraction refers to
//   - dims: current container size
//
// Returns 0 when the container has not been measured along axis.
func ToPixels(fraction float64, axis Axis, dims Dimensions) float64 {
	size := dims.Along(axis)
	if size == 0 {
		return 0
	}
	return fraction * size
}

// ToFraction converts a pixel value into a fraction of the container.
// The second result is false when the container has no size along axis,
// in which case no meaningful fraction exists and callers must drop the
// input instead of storing NaN or Inf.
func ToFraction(px float64, axis Axis, dims Dimensions) (float64, bool) {
	size := dims.Along(axis)
	if size == 0 {
		return 0, false
	}
	return px / size, true
}

// NormalizeDegrees maps an accumulated angle into [0, 360). Stored
// rotations are never normalized; this is for display.
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0 and 360 after rounding both read as 0
	if deg == 360 || deg == 0 {
		return 0
	}
	return deg
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Fit scales want down, keeping its aspect ratio, until it fits inside
// avail. Sizes that already fit are returned unchanged.
func Fit(want, avail Dimensions) Dimensions {
	if !want.Measured() || !avail.Measured() {
		return Dimensions{}
	}
	s := math.Min(avail.Width/want.Width, avail.Height/want.Height)
	if s >= 1 {
		return want
	}
	return Dimensions{Width: math.Floor(want.Width * s), Height: math.Floor(want.Height * s)}
}
