package ui

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/OpticalFlyer/teeforge/proj"
)

// Mode decides what dragging an element's body does.
type Mode int

const (
	ModeMove Mode = iota
	ModeRotate
)

func (m Mode) String() string {
	if m == ModeRotate {
		return "rotate"
	}
	return "move"
}

// Tracker turns absolute pointer positions in container pixels into
// controller gestures. Move samples are expressed relative to the
// pointer-down position, so a dropped or coalesced sample never skews the
// result as long as the latest one arrives.
type Tracker struct {
	c    *Controller
	Mode Mode

	down           bool
	startX, startY float64
	deg            float64

	center    r2.Vec
	lastAngle float64
	turned    float64
}

// NewTracker creates a tracker feeding c.
func NewTracker(c *Controller) *Tracker {
	return &Tracker{c: c}
}

// Down handles a pointer press. A press on an element starts the matching
// gesture; a press on empty fabric deselects. It reports whether an
// element was hit.
func (t *Tracker) Down(x, y float64) bool {
	if t.down {
		// the release never arrived
		t.Lost()
	}

	hit, ok := t.c.HitTest(x, y)
	if !ok {
		t.c.Deselect()
		return false
	}

	g := Dragging
	switch {
	case hit.Handle == HandleRotate:
		g = Rotating
	case hit.Handle.Resizes():
		g = Resizing
	case t.Mode == ModeRotate:
		g = Rotating
	}
	if err := t.c.Begin(hit.Kind, g, hit.Handle); err != nil {
		t.c.logger.Debug("pointer down ignored", "kind", hit.Kind, "err", err)
		return true
	}

	e, _ := t.c.store.Get(hit.Kind)
	r := t.c.pixelRect(e)
	t.down = true
	t.startX, t.startY = x, y
	t.deg = e.RotationDeg
	t.center = r.Center()
	t.lastAngle = angleAround(t.center, r2.Vec{X: x, Y: y})
	t.turned = 0
	return true
}

// Move handles pointer motion and reports whether the placement changed.
func (t *Tracker) Move(x, y float64) bool {
	if !t.down {
		return false
	}
	switch t.c.State().Gesture {
	case Rotating:
		a := angleAround(t.center, r2.Vec{X: x, Y: y})
		t.turned += wrapDegrees(a - t.lastAngle)
		t.lastAngle = a
		return t.c.Move(Delta{Deg: t.turned})
	case Resizing:
		// measure the pointer offset along the element's own axes
		d := r2.Vec{X: x - t.startX, Y: y - t.startY}
		if t.deg != 0 {
			d = r2.NewRotation(-proj.Radians(t.deg), r2.Vec{}).Rotate(d)
		}
		return t.c.Move(Delta{X: d.X, Y: d.Y})
	case Dragging:
		return t.c.Move(Delta{X: x - t.startX, Y: y - t.startY})
	}
	return false
}

// Up handles a pointer release.
func (t *Tracker) Up() {
	if !t.down {
		return
	}
	t.down = false
	t.c.End()
}

// Lost handles loss of pointer capture mid gesture.
func (t *Tracker) Lost() {
	if !t.down {
		return
	}
	t.down = false
	t.c.Cancel()
}

// Pressed reports whether a gesture is being tracked.
func (t *Tracker) Pressed() bool {
	return t.down
}

// Turn rotates the active element by deg as one complete gesture. It is
// used by keyboard nudges and reports whether anything changed.
func (t *Tracker) Turn(deg float64) bool {
	k, ok := t.c.Active()
	if !ok || t.down {
		return false
	}
	if err := t.c.Begin(k, Rotating, HandleRotate); err != nil {
		return false
	}
	changed := t.c.Move(Delta{Deg: deg})
	t.c.End()
	return changed
}
