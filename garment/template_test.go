package garment

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
)

func shoelace(ring []Point) float64 {
	var a float64
	for i := range ring {
		p, q := ring[i], ring[(i+1)%len(ring)]
		a += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(a) / 2
}

func TestDefaultTriangulates(t *testing.T) {
	tmpl := Default()
	m, err := tmpl.Triangulate()
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(m.Indices)%3 != 0 || len(m.Indices) == 0 {
		t.Fatalf("got %d indices", len(m.Indices))
	}
	if want := len(tmpl.Outline) - 2; len(m.Indices)/3 != want {
		t.Errorf("got %d triangles; want %d", len(m.Indices)/3, want)
	}
	if got, want := m.Area(), shoelace(tmpl.Outline); math.Abs(got-want) > 1e-9 {
		t.Errorf("mesh area = %f; outline area = %f", got, want)
	}
}

func TestTriangulateWithHole(t *testing.T) {
	tmpl := Template{
		Name:    "frame",
		Outline: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Holes:   [][]Point{{{0.25, 0.25}, {0.25, 0.75}, {0.75, 0.75}, {0.75, 0.25}}},
	}
	m, err := tmpl.Triangulate()
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if math.Abs(m.Area()-0.75) > 1e-9 {
		t.Errorf("area = %f; want 0.75", m.Area())
	}
}

func TestTriangulateRejectsShortOutline(t *testing.T) {
	if _, err := (Template{Name: "line", Outline: []Point{{0, 0}, {1, 1}}}).Triangulate(); err == nil {
		t.Error("two point outline triangulated")
	}
}

func TestLoadShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.shp")
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ring := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 20}, {X: 10, Y: 20}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
	w.Write(&poly)
	w.Close()

	tmpl, err := LoadShapefile(path)
	if err != nil {
		t.Fatalf("LoadShapefile: %v", err)
	}
	if len(tmpl.Outline) != 4 {
		t.Fatalf("outline has %d points; want 4", len(tmpl.Outline))
	}
	// 10x20 fits as 0.5x1 centred horizontally, y flipped
	want := []Point{{0.25, 1}, {0.25, 0}, {0.75, 0}, {0.75, 1}}
	for i, p := range tmpl.Outline {
		if math.Abs(p.X-want[i].X) > 1e-9 || math.Abs(p.Y-want[i].Y) > 1e-9 {
			t.Errorf("point %d = %v; want %v", i, p, want[i])
		}
	}
}

func TestLoadShapefileWithoutPolygon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.shp")
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w.Write(&shp.Point{X: 1, Y: 2})
	w.Close()

	if _, err := LoadShapefile(path); !errors.Is(err, ErrNoPolygon) {
		t.Errorf("LoadShapefile = %v; want ErrNoPolygon", err)
	}
}
