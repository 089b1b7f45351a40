package ui

import "github.com/OpticalFlyer/teeforge/placement"

const (
	buttonWidth  = 64.0
	buttonHeight = 28.0
	buttonGap    = 6.0
	toolbarPad   = 8.0
)

// Button is a clickable toolbar entry.
type Button struct {
	Bounds   Rectangle
	Label    string
	OnClick  func()
	Selected bool

	// State
	Hovered bool
	Pressed bool
}

// HandleInput feeds the pointer to the button. A click fires on release
// over the button. It reports whether the pointer is over the button.
func (b *Button) HandleInput(x, y float64, pressed bool) bool {
	if b.Bounds.Contains(x, y) {
		b.Hovered = true

		if pressed {
			b.Pressed = true
		} else if b.Pressed {
			b.Pressed = false
			if b.OnClick != nil {
				b.OnClick()
			}
		}
		return true
	}

	b.Hovered = false
	b.Pressed = false
	return false
}

// Toolbar holds the actions for the active element: Move and Rotate pick
// what a body drag does, Text starts editing the text element.
type Toolbar struct {
	X, Y    float64
	Visible bool
	Buttons []*Button

	move, rotate, text *Button
}

// NewToolbar lays out a toolbar at (x, y) driving t. onText runs when the
// Text button is clicked.
func NewToolbar(x, y float64, t *Tracker, onText func()) *Toolbar {
	tb := &Toolbar{X: x, Y: y}
	tb.move = &Button{Label: "Move", OnClick: func() { t.Mode = ModeMove }}
	tb.rotate = &Button{Label: "Rotate", OnClick: func() { t.Mode = ModeRotate }}
	tb.text = &Button{Label: "Text", OnClick: onText}
	return tb
}

// Sync shows the toolbar for the active element of c and marks the
// current mode. The Text button only appears for the text element.
func (tb *Toolbar) Sync(c *Controller, t *Tracker) {
	k, ok := c.Active()
	tb.Visible = ok && c.Visible(k)
	tb.Buttons = tb.Buttons[:0]
	if !tb.Visible {
		return
	}

	tb.Buttons = append(tb.Buttons, tb.move, tb.rotate)
	if k == placement.Text {
		tb.Buttons = append(tb.Buttons, tb.text)
	}
	tb.move.Selected = t.Mode == ModeMove
	tb.rotate.Selected = t.Mode == ModeRotate

	x := tb.X + toolbarPad
	for _, b := range tb.Buttons {
		b.Bounds = Rectangle{X: x, Y: tb.Y + toolbarPad, Width: buttonWidth, Height: buttonHeight}
		x += buttonWidth + buttonGap
	}
}

// Bounds returns the toolbar background box.
func (tb *Toolbar) Bounds() Rectangle {
	n := float64(len(tb.Buttons))
	w := 2*toolbarPad + n*buttonWidth
	if n > 1 {
		w += (n - 1) * buttonGap
	}
	return Rectangle{X: tb.X, Y: tb.Y, Width: w, Height: buttonHeight + 2*toolbarPad}
}

// HandleInput routes the pointer to the buttons and reports whether the
// toolbar consumed it.
func (tb *Toolbar) HandleInput(x, y float64, pressed bool) bool {
	if !tb.Visible {
		return false
	}
	over := false
	for _, b := range tb.Buttons {
		if b.HandleInput(x, y, pressed) {
			over = true
		}
	}
	return over || tb.Bounds().Contains(x, y)
}
