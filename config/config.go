// Package config loads designer settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/OpticalFlyer/teeforge/proj"
)

var (
	// ErrInvalidGrid is returned for a grid size that is not positive.
	ErrInvalidGrid = errors.New("grid_size must be positive")
	// ErrInvalidColor is returned for a colour that is not #rrggbb.
	ErrInvalidColor = errors.New("invalid colour")
	// ErrInvalidWindow is returned for a non-positive canvas or window size.
	ErrInvalidWindow = errors.New("invalid window size")
	// ErrInvalidMeasurement is returned for a wearer measurement out of range.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// Builds lists the accepted body builds.
var Builds = []string{"lean", "regular", "athletic", "big"}

// Measurement bounds.
const (
	MinHeightCM = 100
	MaxHeightCM = 250
	MinWeightKG = 30
	MaxWeightKG = 200
)

// Measurements describe the wearer the print is sized for. They travel
// with the exported design.
type Measurements struct {
	HeightCM float64 `toml:"height_cm"`
	WeightKG float64 `toml:"weight_kg"`
	Build    string  `toml:"build"`
}

// Validate checks the measurements against their bounds.
func (m Measurements) Validate() error {
	if !(m.HeightCM >= MinHeightCM && m.HeightCM <= MaxHeightCM) {
		return fmt.Errorf("%w: height %v cm outside %d-%d", ErrInvalidMeasurement, m.HeightCM, MinHeightCM, MaxHeightCM)
	}
	if !(m.WeightKG >= MinWeightKG && m.WeightKG <= MaxWeightKG) {
		return fmt.Errorf("%w: weight %v kg outside %d-%d", ErrInvalidMeasurement, m.WeightKG, MinWeightKG, MaxWeightKG)
	}
	if !slices.Contains(Builds, m.Build) {
		return fmt.Errorf("%w: build %q", ErrInvalidMeasurement, m.Build)
	}
	return nil
}

func (m Measurements) String() string {
	return fmt.Sprintf("%.0f cm, %.0f kg, %s", m.HeightCM, m.WeightKG, m.Build)
}

// Window holds window and garment canvas sizes in pixels.
type Window struct {
	Width        int `toml:"width"`
	Height       int `toml:"height"`
	CanvasWidth  int `toml:"canvas_width"`
	CanvasHeight int `toml:"canvas_height"`
}

// Config is the full designer configuration.
type Config struct {
	GridSize        float64 `toml:"grid_size"`
	Window          Window  `toml:"window"`
	FabricColor     string  `toml:"fabric_color"`
	TextColor       string  `toml:"text_color"`
	Theme           int     `toml:"theme"`
	GarmentTemplate string  `toml:"garment_template"`
	Image           string  `toml:"image"`
	Text            string  `toml:"text"`

	Measurements Measurements `toml:"measurements"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GridSize: proj.DefaultGridSize,
		Window: Window{
			Width:        1000,
			Height:       900,
			CanvasWidth:  600,
			CanvasHeight: 800,
		},
		FabricColor: "#ffffff",
		TextColor:   "#000000",

		Measurements: Measurements{
			HeightCM: 180,
			WeightKG: 80,
			Build:    "athletic",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults; the result is validated either way.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field. A bad grid size is fatal: the engine has
// no sensible fallback for it.
func (c Config) Validate() error {
	if !(c.GridSize > 0) || math.IsInf(c.GridSize, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidGrid, c.GridSize)
	}
	w := c.Window
	if w.Width <= 0 || w.Height <= 0 || w.CanvasWidth <= 0 || w.CanvasHeight <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidWindow, w)
	}
	if _, err := ParseColor(c.FabricColor); err != nil {
		return fmt.Errorf("fabric_color: %w", err)
	}
	if _, err := ParseColor(c.TextColor); err != nil {
		return fmt.Errorf("text_color: %w", err)
	}
	if err := c.Measurements.Validate(); err != nil {
		return fmt.Errorf("measurements: %w", err)
	}
	return nil
}

// Fabric returns the parsed fabric colour. The config must be valid.
func (c Config) Fabric() color.Color {
	col, _ := ParseColor(c.FabricColor)
	return col
}

// Ink returns the parsed text colour. The config must be valid.
func (c Config) Ink() color.Color {
	col, _ := ParseColor(c.TextColor)
	return col
}

// ParseColor parses a #rrggbb colour into an opaque RGBA.
func ParseColor(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
