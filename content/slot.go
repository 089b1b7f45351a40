package content

// Handle is a display resource for content, such as a GPU texture made
// from an uploaded image. Release frees it.
type Handle interface {
	Release()
}

// Slot owns at most one Handle. Setting a new handle or clearing the slot
// releases the previous one, so a superseded display resource is never
// leaked.
type Slot[H Handle] struct {
	cur H
	set bool
}

// Set makes h current, releasing the handle it replaces.
func (s *Slot[H]) Set(h H) {
	s.Clear()
	s.cur, s.set = h, true
}

// Clear releases the current handle, if any.
func (s *Slot[H]) Clear() {
	if !s.set {
		return
	}
	s.cur.Release()
	var zero H
	s.cur, s.set = zero, false
}

// Current returns the current handle.
func (s *Slot[H]) Current() (H, bool) {
	return s.cur, s.set
}
