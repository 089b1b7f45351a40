package proj

import (
	"math"
	"testing"
)

func TestToPixels(t *testing.T) {
	dims := Dimensions{Width: 600, Height: 800}

	tests := []struct {
		name     string
		fraction float64
		axis     Axis
		dims     Dimensions
		want     float64
	}{
		{"Origin", 0, Width, dims, 0},
		{"Default image x", 0.2, Width, dims, 120},
		{"Default image y", 0.1, Height, dims, 80},
		{"Full height", 1, Height, dims, 800},
		{"Overflow is not clamped", 1.5, Width, dims, 900},
		{"Negative is not clamped", -0.25, Height, dims, -200},
		{"Unmeasured width", 0.5, Width, Dimensions{Height: 800}, 0},
		{"Unmeasured height", 0.5, Height, Dimensions{Width: 600}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPixels(tt.fraction, tt.axis, tt.dims)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ToPixels(%v, %v) = %f; want %f", tt.fraction, tt.axis, got, tt.want)
			}
		})
	}
}

func TestToFraction(t *testing.T) {
	dims := Dimensions{Width: 600, Height: 800}

	got, ok := ToFraction(220, Width, dims)
	if !ok || math.Abs(got-220.0/600.0) > 1e-12 {
		t.Errorf("ToFraction(220, width) = %f, %v; want %f, true", got, ok, 220.0/600.0)
	}

	got, ok = ToFraction(140, Height, dims)
	if !ok || math.Abs(got-0.175) > 1e-12 {
		t.Errorf("ToFraction(140, height) = %f, %v; want 0.175, true", got, ok)
	}

	if _, ok := ToFraction(10, Width, Dimensions{Height: 800}); ok {
		t.Error("ToFraction on an unmeasured width reported ok")
	}
	if _, ok := ToFraction(10, Height, Dimensions{Width: 600}); ok {
		t.Error("ToFraction on an unmeasured height reported ok")
	}
}

func TestRoundTrip(t *testing.T) {
	sizes := []Dimensions{
		{Width: 600, Height: 800},
		{Width: 1, Height: 1},
		{Width: 333, Height: 417},
		{Width: 1920.5, Height: 0.75},
	}

	for _, dims := range sizes {
		for i := 0; i <= 100; i++ {
			fraction := float64(i) / 100
			for _, axis := range []Axis{Width, Height} {
				back, ok := ToFraction(ToPixels(fraction, axis, dims), axis, dims)
				if !ok {
					t.Fatalf("ToFraction not ok for %+v", dims)
				}
				if math.Abs(back-fraction) > 1e-9 {
					t.Errorf("round trip of %f along %v in %+v gave %f", fraction, axis, dims, back)
				}
			}
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{37, 37},
		{360, 0},
		{405, 45},
		{-90, 270},
		{-720, 0},
		{1079.5, 359.5},
	}

	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeDegrees(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestDimensionsMeasured(t *testing.T) {
	if (Dimensions{}).Measured() {
		t.Error("zero dimensions reported as measured")
	}
	if (Dimensions{Width: 600}).Measured() {
		t.Error("zero height reported as measured")
	}
	if !(Dimensions{Width: 600, Height: 800}).Measured() {
		t.Error("600x800 reported as unmeasured")
	}
}

func BenchmarkToPixels(b *testing.B) {
	dims := Dimensions{Width: 600, Height: 800}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ToPixels(0.3667, Width, dims)
		ToPixels(0.175, Height, dims)
	}
}

func TestFit(t *testing.T) {
	canvas := Dimensions{Width: 600, Height: 800}

	tests := []struct {
		name  string
		avail Dimensions
		want  Dimensions
	}{
		{"Room to spare", Dimensions{Width: 1000, Height: 900}, canvas},
		{"Short window", Dimensions{Width: 1000, Height: 400}, Dimensions{Width: 300, Height: 400}},
		{"Narrow window", Dimensions{Width: 450, Height: 900}, Dimensions{Width: 450, Height: 600}},
		{"Collapsed window", Dimensions{Width: 0, Height: 900}, Dimensions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(canvas, tt.avail); got != tt.want {
				t.Errorf("Fit = %+v; want %+v", got, tt.want)
			}
		})
	}
}
