package surface

import "image/color"

// Theme is the palette of the designer chrome. The garment and the design
// keep their own colours.
type Theme struct {
	Name       string
	Background color.RGBA
	Canvas     color.RGBA
	Grid       color.RGBA
	Outline    color.RGBA
	Accent     color.RGBA
	Panel      color.RGBA
	Button     color.RGBA
	ButtonHot  color.RGBA
}

// Themes lists the built-in palettes in Alt+Q order.
var Themes = []Theme{
	{
		Name:       "Light",
		Background: color.RGBA{229, 231, 235, 255},
		Canvas:     color.RGBA{243, 244, 246, 255},
		Grid:       color.RGBA{238, 238, 238, 255},
		Outline:    color.RGBA{156, 163, 175, 255},
		Accent:     color.RGBA{59, 130, 246, 128},
		Panel:      color.RGBA{255, 255, 255, 230},
		Button:     color.RGBA{243, 244, 246, 255},
		ButtonHot:  color.RGBA{37, 99, 235, 255},
	},
	{
		Name:       "Dark",
		Background: color.RGBA{17, 24, 39, 255},
		Canvas:     color.RGBA{31, 41, 55, 255},
		Grid:       color.RGBA{55, 65, 81, 255},
		Outline:    color.RGBA{107, 114, 128, 255},
		Accent:     color.RGBA{234, 179, 8, 160},
		Panel:      color.RGBA{31, 41, 55, 230},
		Button:     color.RGBA{55, 65, 81, 255},
		ButtonHot:  color.RGBA{234, 179, 8, 255},
	},
	{
		Name:       "Pastel",
		Background: color.RGBA{253, 242, 248, 255},
		Canvas:     color.RGBA{252, 231, 243, 255},
		Grid:       color.RGBA{251, 207, 232, 255},
		Outline:    color.RGBA{249, 168, 212, 255},
		Accent:     color.RGBA{244, 114, 182, 160},
		Panel:      color.RGBA{255, 255, 255, 230},
		Button:     color.RGBA{253, 242, 248, 255},
		ButtonHot:  color.RGBA{244, 114, 182, 255},
	},
}
