package domain

import "time"

// User is the domain model for account holders who own places.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	ImagePath    string
	Places       PlaceSet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
