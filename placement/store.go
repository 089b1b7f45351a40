// Package placement holds where each design element sits on the garment.
//
// Positions and sizes are stored in unit space, as fractions of the garment
// container, so a design renders the same way at any container size. The
// store keeps at most one entry per element kind and never forgets an entry
// on its own: clearing an element's content only hides it, and the last
// placement is reused when content comes back. Only Reset empties the store.
package placement

import "fmt"

// Kind identifies a design element slot.
type Kind int

const (
	Image Kind = iota
	Text
)

// Kinds lists every element kind in default stacking order, bottom first.
var Kinds = []Kind{Image, Text}

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps "image" or "text" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "image":
		return Image, nil
	case "text":
		return Text, nil
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

// Valid reports whether k is one of the fixed element kinds.
func (k Kind) Valid() bool {
	return k == Image || k == Text
}

// Rect is a position and size in unit space. H is nil for elements whose
// height follows from their intrinsic aspect ratio (the image).
//
// Values are not clamped: X+W or Y+H above 1 means the element overflows
// the garment, which is allowed.
type Rect struct {
	X, Y, W float64
	H       *float64
}

// Height returns h and whether the rect stores an independent height.
func (r Rect) Height() (float64, bool) {
	if r.H == nil {
		return 0, false
	}
	return *r.H, true
}

// Clone returns a copy of r that shares no memory with it.
func (r Rect) Clone() Rect {
	if r.H != nil {
		h := *r.H
		r.H = &h
	}
	return r
}

// Entry is the placement record for one element.
type Entry struct {
	Kind        Kind
	Rect        Rect
	RotationDeg float64

	seq uint64
}

// Patch is a partial update of an entry. Nil fields are left unchanged.
type Patch struct {
	X, Y, W, H  *float64
	RotationDeg *float64
}

// Float returns a pointer to v, for building patches.
func Float(v float64) *float64 {
	return &v
}

// DefaultRect returns the rect a kind starts with the first time it gets
// content.
func DefaultRect(k Kind) Rect {
	if k == Text {
		return Rect{X: 0.1, Y: 0.7, W: 0.8, H: Float(0.1)}
	}
	return Rect{X: 0.2, Y: 0.1, W: 0.6}
}

// Store is the single source of truth for element placement. It is not
// safe for concurrent writers; the interaction controller is its only one.
type Store struct {
	entries map[Kind]*Entry
	seq     uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[Kind]*Entry)}
}

// Get returns a copy of the entry for k.
func (s *Store) Get(k Kind) (Entry, bool) {
	e, ok := s.entries[k]
	if !ok {
		return Entry{}, false
	}
	out := *e
	out.Rect = e.Rect.Clone()
	return out, true
}

// Has reports whether an entry exists for k.
func (s *Store) Has(k Kind) bool {
	_, ok := s.entries[k]
	return ok
}

// Upsert applies p to the entry for k, creating it from DefaultRect with
// zero rotation first if it does not exist. It returns the updated entry.
//
// Upsert never stores a height for the image kind; a patch carrying H for
// Image has that field ignored.
func (s *Store) Upsert(k Kind, p Patch) Entry {
	e, ok := s.entries[k]
	if !ok {
		s.seq++
		e = &Entry{Kind: k, Rect: DefaultRect(k), seq: s.seq}
		s.entries[k] = e
	}

	if p.X != nil {
		e.Rect.X = *p.X
	}
	if p.Y != nil {
		e.Rect.Y = *p.Y
	}
	if p.W != nil {
		e.Rect.W = *p.W
	}
	if p.H != nil && k != Image {
		e.Rect.H = Float(*p.H)
	}
	if p.RotationDeg != nil {
		e.RotationDeg = *p.RotationDeg
	}

	out := *e
	out.Rect = e.Rect.Clone()
	return out
}

// Reset drops every entry. This is the explicit design reset; nothing else
// removes entries.
func (s *Store) Reset() {
	s.entries = make(map[Kind]*Entry)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Newest returns the most recently created kind among ks that has an entry.
func (s *Store) Newest(ks ...Kind) (Kind, bool) {
	var (
		best  Kind
		bestS uint64
		found bool
	)
	for _, k := range ks {
		e, ok := s.entries[k]
		if !ok {
			continue
		}
		if !found || e.seq > bestS {
			best, bestS, found = k, e.seq, true
		}
	}
	return best, found
}
