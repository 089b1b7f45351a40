package ui

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/OpticalFlyer/teeforge/placement"
	"github.com/OpticalFlyer/teeforge/proj"
)

var (
	// ErrInvalidGrid is returned by NewController for a non-positive grid.
	ErrInvalidGrid = errors.New("grid size must be a positive number")
	// ErrBusy is returned when a gesture starts while another is running.
	ErrBusy = errors.New("gesture already in progress")
	// ErrUnmeasured is returned when the container has no size yet.
	ErrUnmeasured = errors.New("container not measured")
	// ErrHidden is returned for an element that has no content.
	ErrHidden = errors.New("element has no content")
)

// Gesture is the kind of manipulation a running gesture performs.
type Gesture int

const (
	Idle Gesture = iota
	Dragging
	Resizing
	Rotating
)

func (g Gesture) String() string {
	switch g {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Rotating:
		return "rotating"
	}
	return "idle"
}

// ParseGesture accepts the verb form used in scripts: drag, resize or
// rotate.
func ParseGesture(s string) (Gesture, bool) {
	switch s {
	case "drag":
		return Dragging, true
	case "resize":
		return Resizing, true
	case "rotate":
		return Rotating, true
	}
	return Idle, false
}

// State is the controller state: the running gesture and its element.
// Kind is meaningless while Gesture is Idle.
type State struct {
	Gesture Gesture
	Kind    placement.Kind
	Handle  Handle
}

// Delta is one gesture move sample, relative to where the gesture began.
// X and Y are pointer offsets in pixels for drags and resizes; Deg is the
// angle turned for rotations.
type Delta struct {
	X, Y float64
	Deg  float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for gesture diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithImageAspect sets the intrinsic width/height ratio of the image.
func WithImageAspect(ratio float64) Option {
	return func(c *Controller) { c.SetImageAspect(ratio) }
}

// Controller is the only writer of the placement store. It runs at most
// one gesture at a time and turns gesture samples into snapped updates.
//
// All methods must be called from the goroutine that delivers input
// events; there is no locking.
type Controller struct {
	store  *placement.Store
	grid   float64
	dims   proj.Dimensions
	aspect float64
	logger *log.Logger

	present map[placement.Kind]bool

	active    placement.Kind
	hasActive bool

	state State
	// placement at gesture start, in unit space so a container resize
	// mid gesture is converted with the live size
	origin placement.Entry
}

// NewController creates a controller writing to store and snapping to
// grid pixels. A grid that is not a positive finite number is rejected.
func NewController(store *placement.Store, grid float64, opts ...Option) (*Controller, error) {
	if !(grid > 0) || math.IsInf(grid, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, grid)
	}
	c := &Controller{
		store:   store,
		grid:    grid,
		aspect:  1,
		logger:  log.Default(),
		present: make(map[placement.Kind]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c, nil
}

// Store returns the placement store for reading.
func (c *Controller) Store() *placement.Store {
	return c.store
}

// Grid returns the snapping step in pixels.
func (c *Controller) Grid() float64 {
	return c.grid
}

// SetDimensions records the current container size in pixels.
func (c *Controller) SetDimensions(d proj.Dimensions) {
	c.dims = d
}

// Dimensions returns the last recorded container size.
func (c *Controller) Dimensions() proj.Dimensions {
	return c.dims
}

// SetImageAspect sets the intrinsic width/height ratio used to derive the
// image height. Non-positive ratios are ignored.
func (c *Controller) SetImageAspect(ratio float64) {
	if ratio > 0 && !math.IsInf(ratio, 0) {
		c.aspect = ratio
	}
}

// SetContent records whether the user supplied content for k. The first
// time content appears an entry with default placement is created; taking
// content away only hides the element.
func (c *Controller) SetContent(k placement.Kind, present bool) {
	if !k.Valid() {
		c.logger.Debug("content ignored", "kind", k)
		return
	}
	c.present[k] = present
	if present && !c.store.Has(k) {
		e := c.store.Upsert(k, placement.Patch{})
		c.logger.Debug("placement created", "kind", k, "x", e.Rect.X, "y", e.Rect.Y, "w", e.Rect.W)
	}
}

// Visible reports whether k has content and a placement.
func (c *Controller) Visible(k placement.Kind) bool {
	return c.present[k] && c.store.Has(k)
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Active returns the element with interaction focus.
func (c *Controller) Active() (placement.Kind, bool) {
	return c.active, c.hasActive
}

// Deselect clears the active element. The controller never does this on
// its own; it is the host's reaction to a click outside every element.
func (c *Controller) Deselect() {
	c.hasActive = false
}

// Reset empties the placement store, ends any gesture and clears the
// selection. Kinds that still have content get fresh default placements.
func (c *Controller) Reset() {
	c.store.Reset()
	c.state = State{}
	c.hasActive = false
	for _, k := range placement.Kinds {
		if c.present[k] {
			c.store.Upsert(k, placement.Patch{})
		}
	}
	c.logger.Debug("design reset")
}

// PixelRect returns the unrotated pixel box of k in the current container.
// The image height is derived from its width and aspect ratio.
func (c *Controller) PixelRect(k placement.Kind) (Rectangle, bool) {
	e, ok := c.store.Get(k)
	if !ok {
		return Rectangle{}, false
	}
	return c.pixelRect(e), true
}

func (c *Controller) pixelRect(e placement.Entry) Rectangle {
	return PixelBox(e, c.dims, c.aspect)
}

// Aspect returns the image width/height ratio in use.
func (c *Controller) Aspect() float64 {
	return c.aspect
}

// PixelBox lays e out in a container of size dims. Elements without a
// stored height get one from their width and aspect.
func PixelBox(e placement.Entry, dims proj.Dimensions, aspect float64) Rectangle {
	r := Rectangle{
		X:     proj.ToPixels(e.Rect.X, proj.Width, dims),
		Y:     proj.ToPixels(e.Rect.Y, proj.Height, dims),
		Width: proj.ToPixels(e.Rect.W, proj.Width, dims),
	}
	if h, ok := e.Rect.Height(); ok {
		r.Height = proj.ToPixels(h, proj.Height, dims)
	} else if aspect > 0 {
		r.Height = r.Width / aspect
	}
	return r
}

// ZOrder returns the visible kinds bottom to top. The active element is
// drawn last; with no selection the image sits below the text.
func (c *Controller) ZOrder() []placement.Kind {
	order := make([]placement.Kind, 0, len(placement.Kinds))
	for _, k := range placement.Kinds {
		if c.Visible(k) && !(c.hasActive && k == c.active) {
			order = append(order, k)
		}
	}
	if c.hasActive && c.Visible(c.active) {
		order = append(order, c.active)
	}
	return order
}

// Begin starts gesture g on element k, grabbed at handle h. Resizes need
// an edge or corner handle; drags and rotations ignore h. On success k
// becomes the active element.
func (c *Controller) Begin(k placement.Kind, g Gesture, h Handle) error {
	if c.state.Gesture != Idle {
		return ErrBusy
	}
	if !k.Valid() {
		return fmt.Errorf("unknown element %v", k)
	}
	if !c.Visible(k) {
		return fmt.Errorf("%v: %w", k, ErrHidden)
	}
	if !c.dims.Measured() {
		c.logger.Debug("gesture ignored", "kind", k, "gesture", g, "reason", ErrUnmeasured)
		return ErrUnmeasured
	}
	switch g {
	case Dragging:
		h = HandleBody
	case Rotating:
		h = HandleRotate
	case Resizing:
		if !h.Resizes() {
			return fmt.Errorf("cannot resize from %v handle", h)
		}
	default:
		return fmt.Errorf("cannot begin %v", g)
	}

	c.origin, _ = c.store.Get(k)
	c.state = State{Gesture: g, Kind: k, Handle: h}
	c.active, c.hasActive = k, true

	c.logger.Debug("gesture begin", "kind", k, "gesture", g, "handle", h)
	return nil
}

// Move applies one gesture sample. Each sample replaces the previous one,
// so only the latest matters. It reports whether the store changed;
// samples are dropped while idle, while the container is unmeasured, and
// for resizes that would snap to an empty size.
func (c *Controller) Move(d Delta) bool {
	switch c.state.Gesture {
	case Idle:
		return false
	case Rotating:
		// rotation is never snapped and needs no container size
		if !c.dims.Measured() {
			c.logger.Debug("sample dropped", "reason", ErrUnmeasured)
			return false
		}
		c.store.Upsert(c.state.Kind, placement.Patch{RotationDeg: placement.Float(c.origin.RotationDeg + d.Deg)})
		return true
	}

	if !c.dims.Measured() {
		c.logger.Debug("sample dropped", "reason", ErrUnmeasured)
		return false
	}

	var (
		o  = c.pixelRect(c.origin)
		r  Rectangle
		ok bool
	)
	if c.state.Gesture == Dragging {
		r = c.dragged(o, d)
		ok = true
	} else {
		r, ok = c.resized(o, d)
	}
	if !ok {
		c.logger.Debug("sample dropped", "reason", "degenerate size", "dx", d.X, "dy", d.Y)
		return false
	}
	return c.commit(r)
}

// End finishes the running gesture. The last committed sample stands and
// the element stays active.
func (c *Controller) End() {
	if c.state.Gesture == Idle {
		return
	}
	c.logger.Debug("gesture end", "kind", c.state.Kind, "gesture", c.state.Gesture)
	c.state = State{}
}

// Cancel ends the running gesture after the host lost the pointer. There
// is no rollback: the last committed sample stands.
func (c *Controller) Cancel() {
	if c.state.Gesture == Idle {
		return
	}
	c.logger.Debug("gesture interrupted", "kind", c.state.Kind, "gesture", c.state.Gesture)
	c.state = State{}
}

// dragged offsets the start box o by d.
func (c *Controller) dragged(o Rectangle, d Delta) Rectangle {
	r := o
	r.X = proj.Snap(o.X+d.X, c.grid)
	r.Y = proj.Snap(o.Y+d.Y, c.grid)
	return r
}

// resized computes the snapped box for a resize sample from the start box
// o. The edges opposite the grabbed handle stay where they were on screen,
// also when the element is rotated.
func (c *Controller) resized(o Rectangle, d Delta) (Rectangle, bool) {
	var (
		r  Rectangle
		ok bool
	)
	if c.state.Kind == placement.Image {
		r, ok = c.resizedLocked(o, d)
	} else {
		r, ok = c.resizedFree(o, d)
	}
	if !ok {
		return Rectangle{}, false
	}
	return keepAnchor(o, r, c.origin.RotationDeg), true
}

// resizedFree resizes an element that stores its own height.
func (c *Controller) resizedFree(o Rectangle, d Delta) (Rectangle, bool) {
	h := c.state.Handle
	r := o

	if h.left() || h.right() {
		w := o.Width + d.X
		if h.left() {
			w = o.Width - d.X
		}
		r.Width = proj.Snap(w, c.grid)
		if h.left() {
			r.X = proj.Snap(o.X+o.Width-r.Width, c.grid)
		}
	}
	if h.top() || h.bottom() {
		ht := o.Height + d.Y
		if h.top() {
			ht = o.Height - d.Y
		}
		r.Height = proj.Snap(ht, c.grid)
		if h.top() {
			r.Y = proj.Snap(o.Y+o.Height-r.Height, c.grid)
		}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Rectangle{}, false
	}
	return r, true
}

// resizedLocked resizes the image. Only the width is stored; vertical
// handles move the width through the aspect ratio.
func (c *Controller) resizedLocked(o Rectangle, d Delta) (Rectangle, bool) {
	h := c.state.Handle
	r := o

	var w float64
	switch {
	case h.left():
		w = o.Width - d.X
	case h.right():
		w = o.Width + d.X
	case h == HandleTop:
		w = (o.Height - d.Y) * c.aspect
	default:
		w = (o.Height + d.Y) * c.aspect
	}

	r.Width = proj.Snap(w, c.grid)
	if r.Width <= 0 {
		return Rectangle{}, false
	}
	r.Height = r.Width / c.aspect
	if h.left() {
		r.X = proj.Snap(o.X+o.Width-r.Width, c.grid)
	}
	if h.top() {
		r.Y = proj.Snap(o.Y+o.Height-r.Height, c.grid)
	}
	return r, true
}

// keepAnchor shifts r, resized from o in o's unrotated frame, so that the
// edges that stayed fixed in that frame also stay fixed on screen once both
// boxes are rotated by deg about their own centers.
func keepAnchor(o, r Rectangle, deg float64) Rectangle {
	if deg == 0 {
		return r
	}
	d := r2.Sub(r.Center(), o.Center())
	t := r2.Sub(r2.NewRotation(proj.Radians(deg), r2.Vec{}).Rotate(d), d)
	r.X += t.X
	r.Y += t.Y
	return r
}

// commit converts r back to unit space and writes it.
func (c *Controller) commit(r Rectangle) bool {
	x, okX := proj.ToFraction(r.X, proj.Width, c.dims)
	y, okY := proj.ToFraction(r.Y, proj.Height, c.dims)
	w, okW := proj.ToFraction(r.Width, proj.Width, c.dims)
	if !okX || !okY || !okW {
		return false
	}
	p := placement.Patch{X: &x, Y: &y}
	if c.state.Gesture == Resizing {
		p.W = &w
		if c.state.Kind != placement.Image {
			h, ok := proj.ToFraction(r.Height, proj.Height, c.dims)
			if !ok {
				return false
			}
			p.H = &h
		}
	}
	c.store.Upsert(c.state.Kind, p)
	return true
}

// Hit describes what lies under a point.
type Hit struct {
	Kind   placement.Kind
	Handle Handle
}

// HitTest finds the element and handle under the container pixel (x, y).
// When elements overlap, the active element wins, then the most recently
// created one. Rotated elements are tested in their own frame. Only the
// active element has a rotate knob.
func (c *Controller) HitTest(x, y float64) (Hit, bool) {
	if !c.dims.Measured() {
		return Hit{}, false
	}
	for _, k := range c.hitOrder() {
		e, _ := c.store.Get(k)
		r := c.pixelRect(e)
		p := toLocal(r, e.RotationDeg, r2.Vec{X: x, Y: y})
		if h, ok := handleAt(r, p, c.hasActive && k == c.active); ok {
			return Hit{Kind: k, Handle: h}, true
		}
	}
	return Hit{}, false
}

// hitOrder lists visible kinds in hit priority order.
func (c *Controller) hitOrder() []placement.Kind {
	var order []placement.Kind
	if c.hasActive && c.Visible(c.active) {
		order = append(order, c.active)
	}
	rest := make([]placement.Kind, 0, len(placement.Kinds))
	for _, k := range placement.Kinds {
		if c.Visible(k) && !(c.hasActive && k == c.active) {
			rest = append(rest, k)
		}
	}
	for len(rest) > 0 {
		k, _ := c.store.Newest(rest...)
		order = append(order, k)
		for i, r := range rest {
			if r == k {
				rest = append(rest[:i], rest[i+1:]...)
				break
			}
		}
	}
	return order
}
