package dto

import "github.com/spec-kit/places-service/internal/domain"

// CreatePlaceRequest carries the multipart form fields for a new place.
type CreatePlaceRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required,min=5"`
	Address     string  `json:"address" validate:"required"`
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lng         float64 `json:"lng" validate:"min=-180,max=180"`
}

// UpdatePlaceRequest carries the mutable place fields.
type UpdatePlaceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

// LocationResponse is the lat/lng pair as exposed over the API.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceResponse is the public representation of a place.
type PlaceResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Address     string           `json:"address"`
	Location    LocationResponse `json:"location"`
	Image       string           `json:"image"`
	Creator     string           `json:"creator"`
}

// NewPlaceResponse maps a domain place.
func NewPlaceResponse(place *domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Location:    LocationResponse{Lat: place.Location.Lat, Lng: place.Location.Lng},
		Image:       place.ImagePath,
		Creator:     place.CreatorID,
	}
}
