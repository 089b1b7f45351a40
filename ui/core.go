// Package ui drives interactive placement of design elements: which element
// is under the pointer, which gesture is running, and how pointer movement
// becomes grid-snapped placement updates.
//
// Everything here works in container pixels and has no rendering
// dependency; the surface package draws what the controller decides.
package ui

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/OpticalFlyer/teeforge/proj"
)

// Rectangle is an axis aligned box in container pixels.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rectangle) Center() r2.Vec {
	return r2.Vec{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// toLocal rotates p around the center of r by -deg, undoing an element's
// rotation so hit testing can use the unrotated rectangle.
func toLocal(r Rectangle, deg float64, p r2.Vec) r2.Vec {
	if deg == 0 {
		return p
	}
	return r2.NewRotation(-proj.Radians(deg), r.Center()).Rotate(p)
}

// angleAround returns the angle of p seen from c, in degrees.
func angleAround(c, p r2.Vec) float64 {
	d := r2.Sub(p, c)
	return proj.Degrees(math.Atan2(d.Y, d.X))
}

// wrapDegrees maps an angle difference into (-180, 180].
func wrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
