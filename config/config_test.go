package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridSize != 20 || cfg.Window.CanvasWidth != 600 || cfg.Window.CanvasHeight != 800 {
		t.Errorf("defaults = %+v", cfg)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load(missing): %v", err)
	}
	if cfg.GridSize != 20 {
		t.Errorf("missing file grid = %v; want 20", cfg.GridSize)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teeforge.toml")
	content := `grid_size = 10
fabric_color = "#1e3a8a"
text = "HELLO"

[window]
canvas_width = 300
canvas_height = 400
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridSize != 10 || cfg.Text != "HELLO" || cfg.Window.CanvasWidth != 300 {
		t.Errorf("loaded %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.Window.Width != 1000 || cfg.TextColor != "#000000" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if got := cfg.Fabric(); got != (color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 255}) {
		t.Errorf("Fabric() = %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"Zero grid", func(c *Config) { c.GridSize = 0 }, ErrInvalidGrid},
		{"Negative grid", func(c *Config) { c.GridSize = -5 }, ErrInvalidGrid},
		{"Bad fabric", func(c *Config) { c.FabricColor = "white" }, ErrInvalidColor},
		{"Bad text colour", func(c *Config) { c.TextColor = "#12" }, ErrInvalidColor},
		{"Empty canvas", func(c *Config) { c.Window.CanvasHeight = 0 }, ErrInvalidWindow},
		{"Short wearer", func(c *Config) { c.Measurements.HeightCM = 99 }, ErrInvalidMeasurement},
		{"Tall wearer", func(c *Config) { c.Measurements.HeightCM = 251 }, ErrInvalidMeasurement},
		{"Light wearer", func(c *Config) { c.Measurements.WeightKG = 29.5 }, ErrInvalidMeasurement},
		{"Heavy wearer", func(c *Config) { c.Measurements.WeightKG = 200.5 }, ErrInvalidMeasurement},
		{"Unknown build", func(c *Config) { c.Measurements.Build = "slim" }, ErrInvalidMeasurement},
		{"Empty build", func(c *Config) { c.Measurements.Build = "" }, ErrInvalidMeasurement},
		{"Bounds are inclusive", func(c *Config) { c.Measurements = Measurements{HeightCM: 100, WeightKG: 200, Build: "big"} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsBadGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("grid_size = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("Load = %v; want ErrInvalidGrid", err)
	}
}

func TestLoadMeasurements(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := (Measurements{HeightCM: 180, WeightKG: 80, Build: "athletic"}); cfg.Measurements != want {
		t.Errorf("default measurements = %+v; want %+v", cfg.Measurements, want)
	}

	path := filepath.Join(t.TempDir(), "teeforge.toml")
	if err := os.WriteFile(path, []byte("[measurements]\nheight_cm = 165\nbuild = \"lean\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := (Measurements{HeightCM: 165, WeightKG: 80, Build: "lean"}); cfg.Measurements != want {
		t.Errorf("measurements = %+v; want %+v", cfg.Measurements, want)
	}
	if got := cfg.Measurements.String(); got != "165 cm, 80 kg, lean" {
		t.Errorf("String() = %q", got)
	}

	if err := os.WriteFile(path, []byte("[measurements]\nweight_kg = 250\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("Load = %v; want ErrInvalidMeasurement", err)
	}
}
