package domain

import "time"

// Location is a latitude/longitude pair.
type Location struct {
	Lat float64
	Lng float64
}

// Place is the aggregate for geotagged catalog entries. CreatorID is
// immutable after creation; only title and description may change.
type Place struct {
	ID          string
	Title       string
	Description string
	Address     string
	Location    Location
	ImagePath   string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether the given user created this place.
func (p *Place) OwnedBy(userID string) bool {
	return p.CreatorID == userID
}
