package ui

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Handle is the part of an element a gesture grabbed.
type Handle int

const (
	HandleBody Handle = iota
	HandleLeft
	HandleRight
	HandleTop
	HandleBottom
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleRotate
)

const (
	// resizeArea is how far either side of an edge still grabs it.
	resizeArea = 6.0
	// rotateOffset is the distance of the rotate knob above the top edge.
	rotateOffset = 24.0
	rotateRadius = 8.0
)

func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	case HandleTop:
		return "top"
	case HandleBottom:
		return "bottom"
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	case HandleRotate:
		return "rotate"
	}
	return "unknown"
}

// ParseHandle is the inverse of Handle.String.
func ParseHandle(s string) (Handle, bool) {
	for h := HandleBody; h <= HandleRotate; h++ {
		if h.String() == s {
			return h, true
		}
	}
	return HandleBody, false
}

// Resizes reports whether h is an edge or corner.
func (h Handle) Resizes() bool {
	return h >= HandleLeft && h <= HandleBottomRight
}

func (h Handle) left() bool {
	return h == HandleLeft || h == HandleTopLeft || h == HandleBottomLeft
}

func (h Handle) right() bool {
	return h == HandleRight || h == HandleTopRight || h == HandleBottomRight
}

func (h Handle) top() bool {
	return h == HandleTop || h == HandleTopLeft || h == HandleTopRight
}

func (h Handle) bottom() bool {
	return h == HandleBottom || h == HandleBottomLeft || h == HandleBottomRight
}

// RotateKnob returns the center of the rotate knob of an unrotated rect.
func RotateKnob(r Rectangle) r2.Vec {
	return r2.Vec{X: r.X + r.Width/2, Y: r.Y - rotateOffset}
}

// handleAt returns which handle of r the point p grabs. p must already be
// in the element's unrotated frame. The rotate knob only exists when knob
// is set, which the controller does for the active element. ok is false
// when p misses the element.
func handleAt(r Rectangle, p r2.Vec, knob bool) (Handle, bool) {
	if knob && r2.Norm(r2.Sub(p, RotateKnob(r))) <= rotateRadius {
		return HandleRotate, true
	}

	inX := p.X >= r.X-resizeArea && p.X <= r.X+r.Width+resizeArea
	inY := p.Y >= r.Y-resizeArea && p.Y <= r.Y+r.Height+resizeArea
	if !inX || !inY {
		return HandleBody, false
	}

	left := math.Abs(p.X-r.X) <= resizeArea
	right := math.Abs(p.X-(r.X+r.Width)) <= resizeArea
	top := math.Abs(p.Y-r.Y) <= resizeArea
	bottom := math.Abs(p.Y-(r.Y+r.Height)) <= resizeArea

	// Thin elements: prefer the far edges so they stay growable.
	if left && right {
		left = false
	}
	if top && bottom {
		top = false
	}

	switch {
	case left && top:
		return HandleTopLeft, true
	case right && top:
		return HandleTopRight, true
	case left && bottom:
		return HandleBottomLeft, true
	case right && bottom:
		return HandleBottomRight, true
	case left:
		return HandleLeft, true
	case right:
		return HandleRight, true
	case top:
		return HandleTop, true
	case bottom:
		return HandleBottom, true
	}

	if r.Contains(p.X, p.Y) {
		return HandleBody, true
	}
	return HandleBody, false
}
