package surface

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/teeforge/content"
	"github.com/OpticalFlyer/teeforge/garment"
	"github.com/OpticalFlyer/teeforge/placement"
	"github.com/OpticalFlyer/teeforge/proj"
	"github.com/OpticalFlyer/teeforge/ui"
)

const (
	handleSize  = 6.0
	knobRadius  = 5.0
	borderInset = 8.0
	// textScale is the text glyph height as a fraction of its box height
	textScale = 0.6
)

// Draw renders the container, garment, elements and, for the main surface,
// the selection chrome and toolbar. Nothing is drawn until the container
// has been measured.
func (s *Surface) Draw(screen *ebiten.Image) {
	if !s.dims.Measured() {
		return
	}
	th := s.Theme()

	x0, y0 := s.toScreen(0, 0)
	w, h := float32(s.dims.Width*s.Zoom), float32(s.dims.Height*s.Zoom)
	vector.DrawFilledRect(screen, x0, y0, w, h, th.Canvas, false)
	if !s.Preview {
		s.drawGrid(screen, th)
	}
	s.drawGarment(screen, th)

	if s.Preview {
		vector.StrokeRect(screen, x0, y0, w, h, 1, th.Outline, false)
	} else {
		inset := float32(borderInset * s.Zoom)
		vector.StrokeRect(screen, x0+inset, y0+inset, w-2*inset, h-2*inset, 1, th.Accent, false)
	}

	for _, k := range s.ctrl.ZOrder() {
		s.drawElement(screen, k, th)
	}

	if !s.Preview && s.toolbar != nil && s.toolbar.Visible {
		s.drawToolbar(screen, th)
	}
}

func (s *Surface) drawGrid(screen *ebiten.Image, th Theme) {
	g := s.ctrl.Grid()
	for x := g; x < s.dims.Width; x += g {
		x0, y0 := s.toScreen(x, 0)
		x1, y1 := s.toScreen(x, s.dims.Height)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, th.Grid, false)
	}
	for y := g; y < s.dims.Height; y += g {
		x0, y0 := s.toScreen(0, y)
		x1, y1 := s.toScreen(s.dims.Width, y)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, th.Grid, false)
	}
}

// drawGarment fills the triangulated silhouette in the fabric colour and
// strokes its outline.
func (s *Surface) drawGarment(screen *ebiten.Image, th Theme) {
	r, g, b, a := s.fabric.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff

	vs := make([]ebiten.Vertex, len(s.mesh.Vertices))
	for i, p := range s.mesh.Vertices {
		x, y := s.toScreen(p.X*s.dims.Width, p.Y*s.dims.Height)
		vs[i] = ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	screen.DrawTriangles(vs, s.mesh.Indices, s.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	strokeRing := func(ring []garment.Point) {
		for i := range ring {
			p, q := ring[i], ring[(i+1)%len(ring)]
			x0, y0 := s.toScreen(p.X*s.dims.Width, p.Y*s.dims.Height)
			x1, y1 := s.toScreen(q.X*s.dims.Width, q.Y*s.dims.Height)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, th.Outline, true)
		}
	}
	strokeRing(s.tmpl.Outline)
	for _, h := range s.tmpl.Holes {
		strokeRing(h)
	}
}

func (s *Surface) drawElement(screen *ebiten.Image, k placement.Kind, th Theme) {
	e, ok := s.ctrl.Store().Get(k)
	if !ok {
		return
	}
	r := ui.PixelBox(e, s.dims, s.ctrl.Aspect())
	if r.Width <= 0 || r.Height <= 0 {
		return
	}

	var tex *ebiten.Image
	if k == placement.Image {
		tex = s.imageTexture()
	} else {
		tex = s.textTexture()
	}
	if tex != nil {
		b := tex.Bounds()
		tw, tht := float64(b.Dx()), float64(b.Dy())

		sx, sy := r.Width/tw, r.Height/tht
		if k == placement.Text {
			// glyphs sized from the box height, shrunk if the line is too wide
			sc := math.Min(textScale*r.Height/content.GlyphHeight, r.Width/tw)
			sx, sy = sc, sc
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(-tw*sx/2, -tht*sy/2)
		op.GeoM.Rotate(proj.Radians(e.RotationDeg))
		c := r.Center()
		op.GeoM.Translate(c.X, c.Y)
		op.GeoM.Scale(s.Zoom, s.Zoom)
		op.GeoM.Translate(s.X, s.Y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(tex, op)
	}

	if s.Preview {
		return
	}
	if active, ok := s.ctrl.Active(); ok && active == k {
		s.drawSelection(screen, r, e.RotationDeg, th)
	}
	s.drawLabel(screen, e, r)
}

// corner returns the window position of container point (x, y) after
// rotating it by deg about the center of r.
func (s *Surface) corner(r ui.Rectangle, deg, x, y float64) (float32, float32) {
	c := r.Center()
	sin, cos := math.Sincos(proj.Radians(deg))
	dx, dy := x-c.X, y-c.Y
	return s.toScreen(c.X+dx*cos-dy*sin, c.Y+dx*sin+dy*cos)
}

func (s *Surface) drawSelection(screen *ebiten.Image, r ui.Rectangle, deg float64, th Theme) {
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	midX, midY := r.X+r.Width/2, r.Y+r.Height/2

	box := [][2]float64{{left, top}, {right, top}, {right, bottom}, {left, bottom}}
	for i := range box {
		p, q := box[i], box[(i+1)%len(box)]
		x0, y0 := s.corner(r, deg, p[0], p[1])
		x1, y1 := s.corner(r, deg, q[0], q[1])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, th.Accent, true)
	}

	handles := [][2]float64{
		{left, top}, {midX, top}, {right, top},
		{left, midY}, {right, midY},
		{left, bottom}, {midX, bottom}, {right, bottom},
	}
	for _, p := range handles {
		x, y := s.corner(r, deg, p[0], p[1])
		vector.DrawFilledRect(screen, x-handleSize/2, y-handleSize/2, handleSize, handleSize, color.White, false)
		vector.StrokeRect(screen, x-handleSize/2, y-handleSize/2, handleSize, handleSize, 1, th.Accent, false)
	}

	knob := ui.RotateKnob(r)
	tx, ty := s.corner(r, deg, midX, top)
	kx, ky := s.corner(r, deg, knob.X, knob.Y)
	vector.StrokeLine(screen, tx, ty, kx, ky, 1, th.Accent, true)
	vector.DrawFilledCircle(screen, kx, ky, knobRadius, th.Accent, true)
}

// drawLabel prints the element size and display angle under its box.
func (s *Surface) drawLabel(screen *ebiten.Image, e placement.Entry, r ui.Rectangle) {
	deg := int(math.Round(proj.NormalizeDegrees(e.RotationDeg))) % 360
	label := fmt.Sprintf("%d%% x %ddeg", int(math.Round(e.Rect.W*100)), deg)
	if h, ok := e.Rect.Height(); ok {
		label = fmt.Sprintf("%d%% x %d%% x %ddeg", int(math.Round(e.Rect.W*100)), int(math.Round(h*100)), deg)
	}
	x, y := s.toScreen(r.X+r.Width/2, r.Y+r.Height)
	ebitenutil.DebugPrintAt(screen, label, int(x)-len(label)*3, int(y)+12)
}

func (s *Surface) drawToolbar(screen *ebiten.Image, th Theme) {
	tb := s.toolbar
	b := tb.Bounds()
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), th.Panel, true)

	for _, btn := range tb.Buttons {
		bg := th.Button
		if btn.Selected || btn.Pressed {
			bg = th.ButtonHot
		}
		r := btn.Bounds
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), bg, true)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, th.Outline, true)
		ebitenutil.DebugPrintAt(screen, btn.Label, int(r.X)+8, int(r.Y)+6)
	}
}
