package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// handleTouchEvents routes a single finger to the pointer tracker the same
// way as the mouse. A second finger abandons the gesture and pinches zoom.
func (d *Designer) handleTouchEvents() {
	touches := make([]ebiten.TouchID, 0, 8)
	touches = ebiten.AppendTouchIDs(touches)

	// Initialize touch tracking maps if needed
	if d.lastTouchX == nil {
		d.lastTouchX = make(map[ebiten.TouchID]float64)
		d.lastTouchY = make(map[ebiten.TouchID]float64)
	}

	// Handle touch start
	for _, id := range touches {
		if _, exists := d.lastTouchX[id]; !exists {
			x, y := ebiten.TouchPosition(id)
			d.lastTouchX[id] = float64(x)
			d.lastTouchY[id] = float64(y)
		}
	}

	// Clean up ended touches
	for id := range d.lastTouchX {
		if !containsTouchID(touches, id) {
			if d.touching && id == d.touchID {
				d.touching = false
				if d.tracker.Pressed() {
					d.tracker.Up()
				} else {
					d.toolbar.HandleInput(d.lastTouchX[id], d.lastTouchY[id], false)
				}
			}
			delete(d.lastTouchX, id)
			delete(d.lastTouchY, id)
		}
	}

	switch len(touches) {
	case 1: // Single touch - same gestures as the mouse
		id := touches[0]
		tx, ty := ebiten.TouchPosition(id)
		wx, wy := float64(tx), float64(ty)
		x, y := d.surface.ToContainer(wx, wy)

		if !d.touching || id != d.touchID {
			d.touching, d.touchID = true, id
			if d.toolbar.HandleInput(wx, wy, true) {
				break
			}
			if d.surface.Contains(wx, wy) {
				d.tracker.Down(x, y)
			} else {
				d.ctrl.Deselect()
			}
		} else if d.tracker.Pressed() {
			d.tracker.Move(x, y)
		} else {
			d.toolbar.HandleInput(wx, wy, true)
		}
		d.lastTouchX[id], d.lastTouchY[id] = wx, wy

	case 2: // Two finger touch - pinch to zoom
		if d.touching {
			d.touching = false
			d.tracker.Lost()
		}
		id1, id2 := touches[0], touches[1]
		x1, y1 := ebiten.TouchPosition(id1)
		x2, y2 := ebiten.TouchPosition(id2)

		currentDist := distance(float64(x1), float64(y1), float64(x2), float64(y2))
		prevDist := distance(d.lastTouchX[id1], d.lastTouchY[id1],
			d.lastTouchX[id2], d.lastTouchY[id2])

		if currentDist > prevDist*1.1 { // Zoom in
			d.surface.ZoomIn()
		} else if currentDist < prevDist*0.9 { // Zoom out
			d.surface.ZoomOut()
		} else {
			break
		}

		d.lastTouchX[id1], d.lastTouchY[id1] = float64(x1), float64(y1)
		d.lastTouchX[id2], d.lastTouchY[id2] = float64(x2), float64(y2)
	}
}

// Helper function to check if a TouchID is in a slice
func containsTouchID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, tid := range ids {
		if tid == id {
			return true
		}
	}
	return false
}

// Helper function to calculate distance between two points
func distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
