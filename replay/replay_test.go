package replay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/OpticalFlyer/teeforge/placement"
	"github.com/OpticalFlyer/teeforge/ui"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

var quiet = log.New(io.Discard)

const dragScript = `
[[step]]
op = "dims"
width = 600
height = 800

[[step]]
op = "content"
kind = "image"
present = true

[[step]]
op = "begin"
kind = "image"
gesture = "drag"

[[step]]
op = "move"
dx = 100
dy = 50

[[step]]
op = "end"
`

func mustParse(t *testing.T, src string) Script {
	t.Helper()
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestRunDrag(t *testing.T) {
	p, err := Run(context.Background(), mustParse(t, dragScript), 20, quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	e, ok := p.Controller.Store().Get(placement.Image)
	if !ok {
		t.Fatal("no image entry")
	}
	if !near(e.Rect.X, 220.0/600) || !near(e.Rect.Y, 140.0/800) {
		t.Errorf("image at (%v, %v); want (%v, %v)", e.Rect.X, e.Rect.Y, 220.0/600, 140.0/800)
	}
	if g := p.Controller.State().Gesture; g != ui.Idle {
		t.Errorf("gesture = %v; want idle", g)
	}
	if k, ok := p.Controller.Active(); !ok || k != placement.Image {
		t.Errorf("active = %v, %v; want image", k, ok)
	}
}

func TestRunPointer(t *testing.T) {
	src := `
grid_size = 10

[[step]]
op = "dims"
width = 600
height = 800

[[step]]
op = "content"
kind = "image"
present = true
aspect = 1.0

[[step]]
op = "down"
x = 300
y = 260

[[step]]
op = "drag"
x = 400
y = 310

[[step]]
op = "up"
`
	p, err := Run(context.Background(), mustParse(t, src), 20, quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g := p.Controller.Grid(); g != 10 {
		t.Errorf("grid = %v; want script override 10", g)
	}
	e, _ := p.Controller.Store().Get(placement.Image)
	if !near(e.Rect.X, 220.0/600) || !near(e.Rect.Y, 130.0/800) {
		t.Errorf("image at (%v, %v); want (%v, %v)", e.Rect.X, e.Rect.Y, 220.0/600, 130.0/800)
	}
}

func TestRunRotateMode(t *testing.T) {
	src := `
[[step]]
op = "dims"
width = 600
height = 800

[[step]]
op = "content"
kind = "text"
present = true

[[step]]
op = "begin"
kind = "text"
gesture = "rotate"

[[step]]
op = "move"
deg = 37

[[step]]
op = "end"

[[step]]
op = "turn"
deg = -15
`
	p, err := Run(context.Background(), mustParse(t, src), 20, quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	e, _ := p.Controller.Store().Get(placement.Text)
	if !near(e.RotationDeg, 22) {
		t.Errorf("rotation = %v; want 22", e.RotationDeg)
	}
}

func TestRunSkipsRefusedGesture(t *testing.T) {
	// no dims step: the container is unmeasured and begin is refused
	src := `
[[step]]
op = "content"
kind = "image"
present = true

[[step]]
op = "begin"
kind = "image"
gesture = "drag"

[[step]]
op = "move"
dx = 100
`
	p, err := Run(context.Background(), mustParse(t, src), 20, quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g := p.Controller.State().Gesture; g != ui.Idle {
		t.Errorf("gesture = %v; want idle", g)
	}
	e, _ := p.Controller.Store().Get(placement.Image)
	if e.Rect.X != placement.DefaultRect(placement.Image).X {
		t.Errorf("x = %v; want default", e.Rect.X)
	}
}

func TestRunRejectsBadSteps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown op", "[[step]]\nop = \"jump\"\n", ErrUnknownOp},
		{"bad kind", "[[step]]\nop = \"content\"\nkind = \"logo\"\n", ErrBadStep},
		{"bad gesture", "[[step]]\nop = \"begin\"\nkind = \"text\"\ngesture = \"spin\"\n", ErrBadStep},
		{"bad handle", "[[step]]\nop = \"begin\"\nkind = \"text\"\ngesture = \"resize\"\nhandle = \"middle\"\n", ErrBadStep},
		{"bad mode", "[[step]]\nop = \"mode\"\nmode = \"fly\"\n", ErrBadStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), mustParse(t, tt.src), 20, quiet)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v; want %v", err, tt.want)
			}
			if err != nil && !strings.Contains(err.Error(), "step 1") {
				t.Errorf("err = %v; want step number", err)
			}
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[[step]]\nop = \"move\"\ndz = 3\n"))
	if !errors.Is(err, ErrBadStep) {
		t.Errorf("err = %v; want ErrBadStep", err)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, mustParse(t, dragScript), 20, quiet); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v; want context.Canceled", err)
	}
}

func TestRunRejectsGrid(t *testing.T) {
	if _, err := Run(context.Background(), Script{}, 0, quiet); !errors.Is(err, ui.ErrInvalidGrid) {
		t.Errorf("err = %v; want ErrInvalidGrid", err)
	}
}

func TestRunRejectsScriptGrid(t *testing.T) {
	for _, src := range []string{"grid_size = 0\n", "grid_size = -5\n"} {
		_, err := Run(context.Background(), mustParse(t, src+dragScript), 20, quiet)
		if !errors.Is(err, ui.ErrInvalidGrid) {
			t.Errorf("%q: err = %v; want ErrInvalidGrid", src, err)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drag.toml")
	if err := os.WriteFile(path, []byte(dragScript), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Steps) != 5 {
		t.Errorf("steps = %d; want 5", len(s.Steps))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing script err = %v; want ErrNotExist", err)
	}
}

func TestRowsAndRender(t *testing.T) {
	src := dragScript + `
[[step]]
op = "content"
kind = "text"
present = true

[[step]]
op = "content"
kind = "text"
present = false
`
	p, err := Run(context.Background(), mustParse(t, src), 20, quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows := p.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d; want 2", len(rows))
	}
	img, txt := rows[0], rows[1]
	if img[0] != "*" || img[1] != "image" || img[2] != "0.3667" || img[5] != "auto" {
		t.Errorf("image row = %q", img)
	}
	if img[7] != "360x360 @ 220,140" {
		t.Errorf("image pixels = %q", img[7])
	}
	if txt[0] != "" || txt[1] != "text" || txt[5] != "0.1000" || txt[7] != "hidden" {
		t.Errorf("text row = %q", txt)
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Element", "image", "0.1750", "container 600x800, grid 20, idle"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
