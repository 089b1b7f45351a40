package placement

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestUpsertCreatesDefaults(t *testing.T) {
	s := NewStore()

	img := s.Upsert(Image, Patch{})
	if img.Rect.X != 0.2 || img.Rect.Y != 0.1 || img.Rect.W != 0.6 {
		t.Errorf("image default = %+v; want {0.2 0.1 0.6}", img.Rect)
	}
	if _, ok := img.Rect.Height(); ok {
		t.Error("image default carries a height")
	}
	if img.RotationDeg != 0 {
		t.Errorf("image default rotation = %v; want 0", img.RotationDeg)
	}

	txt := s.Upsert(Text, Patch{})
	h, ok := txt.Rect.Height()
	if txt.Rect.X != 0.1 || txt.Rect.Y != 0.7 || txt.Rect.W != 0.8 || !ok || h != 0.1 {
		t.Errorf("text default = %+v h=%v; want {0.1 0.7 0.8 0.1}", txt.Rect, h)
	}
}

func TestUpsertPreservesUntouchedFields(t *testing.T) {
	s := NewStore()
	s.Upsert(Image, Patch{})

	got := s.Upsert(Image, Patch{X: Float(0.3)})
	if !near(got.Rect.X, 0.3) || !near(got.Rect.Y, 0.1) || !near(got.Rect.W, 0.6) {
		t.Errorf("after x patch = %+v; want {0.3 0.1 0.6}", got.Rect)
	}

	got = s.Upsert(Image, Patch{RotationDeg: Float(37)})
	if got.RotationDeg != 37 || !near(got.Rect.X, 0.3) {
		t.Errorf("after rotation patch = %+v", got)
	}

	got = s.Upsert(Image, Patch{W: Float(0.5)})
	if got.RotationDeg != 37 || !near(got.Rect.W, 0.5) || !near(got.Rect.Y, 0.1) {
		t.Errorf("after width patch = %+v", got)
	}
}

func TestUpsertSingleEntryPerKind(t *testing.T) {
	s := NewStore()
	for i := 0; i < 10; i++ {
		s.Upsert(Text, Patch{Y: Float(float64(i) / 10)})
		s.Upsert(Image, Patch{X: Float(float64(i) / 10)})
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", s.Len())
	}
	e, _ := s.Get(Text)
	if !near(e.Rect.Y, 0.9) {
		t.Errorf("text y = %v; want 0.9", e.Rect.Y)
	}
}

func TestImageNeverStoresHeight(t *testing.T) {
	s := NewStore()
	e := s.Upsert(Image, Patch{W: Float(0.4), H: Float(0.2)})
	if _, ok := e.Rect.Height(); ok {
		t.Error("image entry stored a height")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Upsert(Text, Patch{})

	e, _ := s.Get(Text)
	*e.Rect.H = 0.9
	e.Rect.X = 0.9

	again, _ := s.Get(Text)
	if h, _ := again.Rect.Height(); h != 0.1 || again.Rect.X != 0.1 {
		t.Errorf("store mutated through a returned entry: %+v h=%v", again.Rect, h)
	}
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.Upsert(Image, Patch{X: Float(0.5)})
	s.Reset()

	if s.Has(Image) || s.Len() != 0 {
		t.Fatal("Reset left entries behind")
	}
	if e := s.Upsert(Image, Patch{}); e.Rect.X != 0.2 {
		t.Errorf("entry after reset = %+v; want defaults", e.Rect)
	}
}

func TestNewest(t *testing.T) {
	s := NewStore()
	if _, ok := s.Newest(Kinds...); ok {
		t.Fatal("Newest on empty store reported a kind")
	}

	s.Upsert(Text, Patch{})
	s.Upsert(Image, Patch{})
	if k, _ := s.Newest(Kinds...); k != Image {
		t.Errorf("Newest = %v; want image", k)
	}

	// updates do not change creation order
	s.Upsert(Text, Patch{X: Float(0.4)})
	if k, _ := s.Newest(Kinds...); k != Image {
		t.Errorf("Newest after update = %v; want image", k)
	}
	if k, _ := s.Newest(Text); k != Text {
		t.Errorf("Newest(text) = %v; want text", k)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("logo"); err == nil {
		t.Error("ParseKind accepted an unknown kind")
	}
}
