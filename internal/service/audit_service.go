package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/events"
)

// AuditService writes a structured log entry for every lifecycle event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleEvent)
	a.dispatcher.Subscribe(events.EventPlaceCreated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventPlaceUpdated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventPlaceDeleted, a.handleEvent)
}

func (a *AuditService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("user_id", event.UserID),
		zap.String("place_id", event.PlaceID),
		zap.Any("payload", event.Payload),
	)
	return nil
}
