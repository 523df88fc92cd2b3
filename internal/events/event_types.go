package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventPlaceCreated   EventType = "place_created"
	EventPlaceUpdated   EventType = "place_updated"
	EventPlaceDeleted   EventType = "place_deleted"
)

// Event represents a domain event emitted by services after a
// successful write.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	PlaceID   string      `json:"place_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// PlaceCreatedPayload payload.
type PlaceCreatedPayload struct {
	Title   string `json:"title"`
	Address string `json:"address"`
}

// PlaceUpdatedPayload payload.
type PlaceUpdatedPayload struct {
	Title string `json:"title"`
}

// PlaceDeletedPayload carries the orphaned image path so the cleanup
// worker can remove the file after the record is gone.
type PlaceDeletedPayload struct {
	ImagePath string `json:"image_path"`
}
