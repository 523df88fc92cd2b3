package domain

// PlaceSet tracks the place ids owned by a user. It preserves insertion
// order and prevents duplicate membership; it is the in-memory form of
// the owner's stored id list, not the owner of place records themselves.
type PlaceSet struct {
	ids []string
}

// NewPlaceSet builds a set from stored ids, dropping duplicates.
func NewPlaceSet(ids ...string) PlaceSet {
	var set PlaceSet
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Add appends an id unless it is already a member. It reports whether
// the set changed.
func (s *PlaceSet) Add(id string) bool {
	if id == "" || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes an id from the set, reporting whether it was present.
func (s *PlaceSet) Remove(id string) bool {
	for i, member := range s.ids {
		if member == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports membership.
func (s *PlaceSet) Contains(id string) bool {
	for _, member := range s.ids {
		if member == id {
			return true
		}
	}
	return false
}

// IDs returns the members in insertion order. The caller must not
// mutate the returned slice.
func (s *PlaceSet) IDs() []string {
	if s.ids == nil {
		return []string{}
	}
	return s.ids
}

// Len returns the number of members.
func (s *PlaceSet) Len() int {
	return len(s.ids)
}
