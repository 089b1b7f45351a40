// Package garment describes the garment silhouette the design is printed
// on. Outlines are stored in unit space, like placements, so they scale
// with the container.
package garment

import (
	"errors"
	"fmt"
	"math"

	earcut "github.com/flywave/go-earcut"
	"github.com/jonas-p/go-shp"
)

// ErrNoPolygon is returned when a shapefile holds no usable polygon.
var ErrNoPolygon = errors.New("no polygon in shapefile")

// Point is a vertex in unit space.
type Point struct {
	X, Y float64
}

// Template is a garment outline plus optional holes (e.g. the neck opening).
type Template struct {
	Name    string
	Outline []Point
	Holes   [][]Point
}

// Mesh is a triangulated template. Vertices are in unit space; every three
// entries of Indices form one triangle.
type Mesh struct {
	Vertices []Point
	Indices  []uint16
}

// Default returns the built-in crew neck t-shirt silhouette.
func Default() Template {
	return Template{
		Name: "t-shirt",
		Outline: []Point{
			{0.36, 0.02}, {0.42, 0.04}, {0.5, 0.08}, {0.58, 0.04}, {0.64, 0.02},
			{0.86, 0.1}, {0.99, 0.3}, {0.86, 0.36}, {0.8, 0.27},
			{0.8, 0.98}, {0.2, 0.98}, {0.2, 0.27},
			{0.14, 0.36}, {0.01, 0.3}, {0.14, 0.1},
		},
	}
}

// Triangulate splits the template into triangles for filling.
func (t Template) Triangulate() (Mesh, error) {
	if len(t.Outline) < 3 {
		return Mesh{}, fmt.Errorf("%s: outline has %d points", t.Name, len(t.Outline))
	}

	var (
		verts = append([]Point(nil), t.Outline...)
		holes []int
	)
	for _, h := range t.Holes {
		if len(h) < 3 {
			continue
		}
		holes = append(holes, len(verts))
		verts = append(verts, h...)
	}
	if len(verts) > math.MaxUint16 {
		return Mesh{}, fmt.Errorf("%s: %d vertices do not fit 16 bit indices", t.Name, len(verts))
	}

	flat := make([]float64, 0, 2*len(verts))
	for _, p := range verts {
		flat = append(flat, p.X, p.Y)
	}
	tris, err := earcut.Earcut(flat, holes, 2)
	if err != nil {
		return Mesh{}, fmt.Errorf("triangulating %s: %w", t.Name, err)
	}
	if len(tris) == 0 {
		return Mesh{}, fmt.Errorf("triangulating %s: degenerate outline", t.Name)
	}

	m := Mesh{Vertices: verts, Indices: make([]uint16, len(tris))}
	for i, idx := range tris {
		m.Indices[i] = uint16(idx)
	}
	return m, nil
}

// Area returns the total area covered by the mesh triangles.
func (m Mesh) Area() float64 {
	var a float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		p, q, r := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		a += math.Abs((q.X-p.X)*(r.Y-p.Y)-(r.X-p.X)*(q.Y-p.Y)) / 2
	}
	return a
}

// LoadShapefile reads the first polygon of an ESRI shapefile and fits it
// into unit space, keeping its aspect ratio and flipping Y so north is up.
// The first ring is the outline; further rings become holes.
func LoadShapefile(path string) (Template, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Template{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	for r.Next() {
		_, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || poly.NumParts == 0 {
			continue
		}
		return fromPolygon(path, poly), nil
	}
	if err := r.Err(); err != nil {
		return Template{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Template{}, fmt.Errorf("%s: %w", path, ErrNoPolygon)
}

func fromPolygon(name string, poly *shp.Polygon) Template {
	box := poly.BBox()
	w, h := box.MaxX-box.MinX, box.MaxY-box.MinY
	scale := math.Max(w, h)
	if scale == 0 {
		scale = 1
	}
	// center the shape in the unit square
	offX := (1 - w/scale) / 2
	offY := (1 - h/scale) / 2

	rings := make([][]Point, 0, poly.NumParts)
	for i := int32(0); i < poly.NumParts; i++ {
		start := poly.Parts[i]
		end := poly.NumPoints
		if i+1 < poly.NumParts {
			end = poly.Parts[i+1]
		}
		ring := make([]Point, 0, end-start)
		for _, p := range poly.Points[start:end] {
			ring = append(ring, Point{
				X: offX + (p.X-box.MinX)/scale,
				Y: offY + (box.MaxY-p.Y)/scale,
			})
		}
		// shapefile rings repeat the first point at the end
		if n := len(ring); n > 1 && ring[0] == ring[n-1] {
			ring = ring[:n-1]
		}
		rings = append(rings, ring)
	}

	t := Template{Name: name, Outline: rings[0]}
	if len(rings) > 1 {
		t.Holes = rings[1:]
	}
	return t
}
