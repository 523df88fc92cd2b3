package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/repository"
	"github.com/spec-kit/places-service/internal/upload"
	apperrors "github.com/spec-kit/places-service/pkg/util"
)

// PlaceService coordinates the place lifecycle: ownership checks, the
// atomic pairing of place rows with the owner's place set, and image
// cleanup on failed creations.
type PlaceService struct {
	places     repository.PlaceRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PlaceDependencies bundles requirements for the place service.
type PlaceDependencies struct {
	PlaceRepo  repository.PlaceRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// PlaceCreateInput describes place creation payload.
type PlaceCreateInput struct {
	Title       string
	Description string
	Address     string
	Lat         float64
	Lng         float64
}

// PlaceUpdateInput describes the mutable place fields.
type PlaceUpdateInput struct {
	Title       string
	Description string
}

// NewPlaceService constructs the service.
func NewPlaceService(deps PlaceDependencies) *PlaceService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaceService{
		places:     deps.PlaceRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create persists a new place owned by the caller. The place row and
// the caller's set membership commit together; if the dual write fails
// the staged image is discarded before reporting the failure.
func (s *PlaceService) Create(ctx context.Context, callerID string, input PlaceCreateInput, image *upload.StagedFile) (*domain.Place, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		s.discard(image)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user for the provided id", nil)
		}
		return nil, apperrors.NewStorageFailure("creating place failed, please try again", err)
	}

	place := &domain.Place{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Address:     strings.TrimSpace(input.Address),
		Location:    domain.Location{Lat: input.Lat, Lng: input.Lng},
		ImagePath:   image.Path,
		CreatorID:   callerID,
	}

	if err := s.places.Create(ctx, place); err != nil {
		s.discard(image)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user for the provided id", nil)
		}
		return nil, apperrors.NewStorageFailure("creation of place failed, please try again", err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventPlaceCreated,
		UserID:  callerID,
		PlaceID: place.ID,
		Payload: events.PlaceCreatedPayload{Title: place.Title, Address: place.Address},
	})
	return place, nil
}

// Update changes title and description when the caller is the creator.
func (s *PlaceService) Update(ctx context.Context, callerID, placeID string, input PlaceUpdateInput) (*domain.Place, error) {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("place for the provided id", nil)
		}
		return nil, apperrors.NewStorageFailure("could not find place to update", err)
	}

	if !place.OwnedBy(callerID) {
		return nil, apperrors.NewForbidden("you are not allowed to edit this place")
	}

	place.Title = strings.TrimSpace(input.Title)
	place.Description = strings.TrimSpace(input.Description)

	if err := s.places.Update(ctx, place); err != nil {
		return nil, apperrors.NewStorageFailure("could not update place", err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventPlaceUpdated,
		UserID:  callerID,
		PlaceID: place.ID,
		Payload: events.PlaceUpdatedPayload{Title: place.Title},
	})
	return place, nil
}

// Delete removes the place and its membership in the creator's set as
// one transaction, then schedules removal of the image file. File
// removal is best-effort; data-model consistency is not.
func (s *PlaceService) Delete(ctx context.Context, callerID, placeID string) error {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("place to delete", nil)
		}
		return apperrors.NewStorageFailure("could not find place to delete", err)
	}

	if !place.OwnedBy(callerID) {
		return apperrors.NewForbidden("you are not allowed to delete this place")
	}

	if err := s.places.Delete(ctx, place); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("place to delete", nil)
		}
		return apperrors.NewStorageFailure("could not delete place", err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventPlaceDeleted,
		UserID:  callerID,
		PlaceID: place.ID,
		Payload: events.PlaceDeletedPayload{ImagePath: place.ImagePath},
	})
	return nil
}

// GetByID returns a place; no authorization applies to reads.
func (s *PlaceService) GetByID(ctx context.Context, placeID string) (*domain.Place, error) {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("place for the provided id", nil)
		}
		return nil, apperrors.NewStorageFailure("could not find place", err)
	}
	return place, nil
}

// ListByCreator returns all places owned by a user. A user with zero
// places reports not found, matching the public API contract.
func (s *PlaceService) ListByCreator(ctx context.Context, userID string) ([]domain.Place, error) {
	places, err := s.places.ListByCreator(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorageFailure("fetching places failed, please try again later", err)
	}
	if len(places) == 0 {
		return nil, apperrors.NewNotFound("places for the provided user id", nil)
	}
	return places, nil
}

func (s *PlaceService) discard(image *upload.StagedFile) {
	if image == nil {
		return
	}
	if err := image.Remove(); err != nil {
		s.logger.Warn("failed to remove staged image", zap.String("path", image.Path), zap.Error(err))
	}
}

func (s *PlaceService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
