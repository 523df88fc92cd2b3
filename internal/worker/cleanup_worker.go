package worker

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/events"
)

// CleanupWorker removes image files for deleted places. Removal is
// best-effort: a failure is logged and never surfaced to the request
// that triggered it.
type CleanupWorker struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCleanupWorker constructs the worker.
func NewCleanupWorker(dispatcher events.Dispatcher, logger *zap.Logger) *CleanupWorker {
	return &CleanupWorker{dispatcher: dispatcher, logger: logger}
}

// Start registers the worker's event handlers.
func (w *CleanupWorker) Start() {
	if w.dispatcher == nil {
		return
	}
	w.dispatcher.Subscribe(events.EventPlaceDeleted, w.handlePlaceDeleted)
}

func (w *CleanupWorker) handlePlaceDeleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PlaceDeletedPayload)
	if !ok || payload.ImagePath == "" {
		return nil
	}
	if err := os.Remove(payload.ImagePath); err != nil && !os.IsNotExist(err) {
		w.logger.Warn("failed to remove place image",
			zap.String("place_id", event.PlaceID),
			zap.String("path", payload.ImagePath),
			zap.Error(err),
		)
		return nil
	}
	w.logger.Debug("removed place image",
		zap.String("place_id", event.PlaceID),
		zap.String("path", payload.ImagePath),
	)
	return nil
}
