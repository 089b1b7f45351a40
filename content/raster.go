package content

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GlyphHeight is the pixel height of one rendered text line.
const GlyphHeight = 13

// RasterizeText draws s in ink onto a transparent image, one centered row
// per line. The result is sized to the text; the surface scales it into
// the element box.
func RasterizeText(s string, ink color.Color) *image.RGBA {
	face := basicfont.Face7x13
	lines := strings.Split(s, "\n")

	d := &font.Drawer{Face: face}
	width := 1
	for _, l := range lines {
		if w := d.MeasureString(l).Ceil(); w > width {
			width = w
		}
	}
	const pad = 2
	img := image.NewRGBA(image.Rect(0, 0, width+2*pad, len(lines)*GlyphHeight+2*pad))

	d.Dst = img
	d.Src = image.NewUniform(ink)
	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		w := d.MeasureString(l).Ceil()
		d.Dot = fixed.P(pad+(width-w)/2, pad+i*GlyphHeight+ascent)
		d.DrawString(l)
	}
	return img
}
