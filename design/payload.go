// Package design assembles an exported design: the wearer's measurements,
// the print content and where each visible element sits on the garment.
package design

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/OpticalFlyer/teeforge/config"
	"github.com/OpticalFlyer/teeforge/placement"
	"github.com/OpticalFlyer/teeforge/proj"
)

// Placements is the part of the engine an export reads.
type Placements interface {
	Store() *placement.Store
	Visible(k placement.Kind) bool
}

// Payload is one exported design.
type Payload struct {
	Measurements config.Measurements
	Text         string
	Image        string
	Elements     []placement.Entry
}

// New captures the current design. Hidden elements are left out.
func New(m config.Measurements, text, image string, p Placements) Payload {
	out := Payload{Measurements: m, Text: text, Image: image}
	for _, k := range placement.Kinds {
		if !p.Visible(k) {
			continue
		}
		if e, ok := p.Store().Get(k); ok {
			out.Elements = append(out.Elements, e)
		}
	}
	return out
}

// KeyVals returns the payload as alternating log keys and values.
func (p Payload) KeyVals() []any {
	kv := []any{
		"height_cm", p.Measurements.HeightCM,
		"weight_kg", p.Measurements.WeightKG,
		"build", p.Measurements.Build,
		"text", p.Text,
		"image", p.Image,
	}
	for _, e := range p.Elements {
		kv = append(kv, e.Kind.String(), Describe(e))
	}
	return kv
}

// Log writes the payload as a single structured record.
func (p Payload) Log(logger *log.Logger) {
	logger.Info("print payload", p.KeyVals()...)
}

// Describe formats an entry in unit space. The image has no stored height.
func Describe(e placement.Entry) string {
	h := "auto"
	if v, ok := e.Rect.Height(); ok {
		h = fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("x=%.4f y=%.4f w=%.4f h=%s rot=%.0f",
		e.Rect.X, e.Rect.Y, e.Rect.W, h, proj.NormalizeDegrees(e.RotationDeg))
}
