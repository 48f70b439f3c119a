package face

// Handle identifies a face registered in a Store.
type Handle int

// Store is an append-only registry of faces. Handles are assigned in
// registration order starting at zero and stay valid for the life of the
// store.
type Store struct {
	faces []*Face
}

// Add registers a face and returns its handle.
func (s *Store) Add(f *Face) Handle {
	s.faces = append(s.faces, f)
	return Handle(len(s.faces) - 1)
}

// Get returns the face for h. It reports false when h was never assigned.
func (s *Store) Get(h Handle) (*Face, bool) {
	if h < 0 || int(h) >= len(s.faces) {
		return nil, false
	}
	return s.faces[h], true
}

// Len returns the number of registered faces.
func (s *Store) Len() int {
	return len(s.faces)
}
