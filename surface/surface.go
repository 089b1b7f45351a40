// Package surface renders the garment and its design elements with ebiten
// and owns the live container size the placement engine converts against.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/teeforge/content"
	"github.com/OpticalFlyer/teeforge/garment"
	"github.com/OpticalFlyer/teeforge/proj"
	"github.com/OpticalFlyer/teeforge/ui"
)

const (
	// MinZoom and MaxZoom bound the preview magnification.
	MinZoom  = 0.5
	MaxZoom  = 2.0
	zoomStep = 0.1
)

// texture is a GPU image owned by a content.Slot.
type texture struct {
	img *ebiten.Image
}

func (t *texture) Release() {
	t.img.Deallocate()
}

// assets are the display resources shared by a surface and its previews.
type assets struct {
	image   content.Slot[*texture]
	textTex content.Slot[*texture]
	text    string
	textKey string
	ink     color.Color
	white   *ebiten.Image
}

// Surface draws one view of the design. The main surface reports its size
// to the controller; previews only read the store and may be any size.
type Surface struct {
	// Container position in the window
	X, Y    float64
	Zoom    float64
	Preview bool

	want proj.Dimensions
	dims proj.Dimensions

	ctrl    *ui.Controller
	toolbar *ui.Toolbar
	theme   int
	fabric  color.Color

	tmpl garment.Template
	mesh garment.Mesh

	*assets
}

// New creates the main surface for a canvas of the given size.
func New(ctrl *ui.Controller, canvas proj.Dimensions, tmpl garment.Template, fabric, ink color.Color) (*Surface, error) {
	mesh, err := tmpl.Triangulate()
	if err != nil {
		return nil, err
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Surface{
		Zoom:   1,
		want:   canvas,
		ctrl:   ctrl,
		fabric: fabric,
		tmpl:   tmpl,
		mesh:   mesh,
		assets: &assets{
			ink:   ink,
			white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		},
	}, nil
}

// NewPreview creates a non-interactive view of s's design.
func (s *Surface) NewPreview(canvas proj.Dimensions) *Surface {
	p := *s
	p.Preview = true
	p.Zoom = 1
	p.want = canvas
	p.dims = proj.Dimensions{}
	p.toolbar = nil
	return &p
}

// SetToolbar attaches the active element toolbar.
func (s *Surface) SetToolbar(tb *ui.Toolbar) {
	s.toolbar = tb
}

// Layout fits the canvas into the box (x, y, w, h) of the window and, for
// the main surface, publishes the new container size to the controller.
// It runs on every window layout, so resizes reach the engine before the
// next input event.
func (s *Surface) Layout(x, y, w, h float64) {
	s.dims = proj.Fit(s.want, proj.Dimensions{Width: w / s.Zoom, Height: h / s.Zoom})
	s.X = x + (w-s.dims.Width*s.Zoom)/2
	s.Y = y + (h-s.dims.Height*s.Zoom)/2
	if !s.Preview {
		s.ctrl.SetDimensions(s.dims)
	}
	if s.toolbar != nil {
		s.toolbar.X, s.toolbar.Y = s.X+16, s.Y+16
	}
}

// Dimensions returns the container size in pixels.
func (s *Surface) Dimensions() proj.Dimensions {
	return s.dims
}

// ToContainer maps a window position to container pixels.
func (s *Surface) ToContainer(wx, wy float64) (float64, float64) {
	return (wx - s.X) / s.Zoom, (wy - s.Y) / s.Zoom
}

// Contains reports whether the window position lies on the container.
func (s *Surface) Contains(wx, wy float64) bool {
	x, y := s.ToContainer(wx, wy)
	return x >= 0 && y >= 0 && x <= s.dims.Width && y <= s.dims.Height
}

// ZoomIn magnifies the view by one step.
func (s *Surface) ZoomIn() {
	s.Zoom = math.Min(MaxZoom, math.Round((s.Zoom+zoomStep)*10)/10)
}

// ZoomOut shrinks the view by one step.
func (s *Surface) ZoomOut() {
	s.Zoom = math.Max(MinZoom, math.Round((s.Zoom-zoomStep)*10)/10)
}

// Theme returns the current palette.
func (s *Surface) Theme() Theme {
	return Themes[s.theme]
}

// SetTheme selects palette i, wrapping out of range values.
func (s *Surface) SetTheme(i int) {
	n := len(Themes)
	s.theme = ((i % n) + n) % n
}

// NextTheme cycles to the next palette.
func (s *Surface) NextTheme() {
	s.SetTheme(s.theme + 1)
}

// SetImage replaces the image texture. nil clears it.
func (s *Surface) SetImage(im *content.Image) {
	if im == nil {
		s.image.Clear()
		return
	}
	s.image.Set(&texture{img: ebiten.NewImageFromImage(im.Img)})
}

// SetText replaces the print text.
func (s *Surface) SetText(text string) {
	s.text = text
}

// textTexture returns the texture for the current text, rebuilding it when
// the text or ink changed.
func (s *Surface) textTexture() *ebiten.Image {
	if !content.Present(s.text) {
		s.textTex.Clear()
		s.textKey = ""
		return nil
	}
	key := fmt.Sprintf("%v|%s", s.ink, s.text)
	if t, ok := s.textTex.Current(); ok && key == s.textKey {
		return t.img
	}
	s.textTex.Set(&texture{img: ebiten.NewImageFromImage(content.RasterizeText(s.text, s.ink))})
	s.textKey = key
	t, _ := s.textTex.Current()
	return t.img
}

// imageTexture returns the uploaded image texture, if any.
func (s *Surface) imageTexture() *ebiten.Image {
	if t, ok := s.image.Current(); ok {
		return t.img
	}
	return nil
}

// toScreen maps container pixels to window pixels.
func (s *Surface) toScreen(x, y float64) (float32, float32) {
	return float32(s.X + x*s.Zoom), float32(s.Y + y*s.Zoom)
}
