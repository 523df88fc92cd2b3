package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/events"
)

func publishDeleted(t *testing.T, d events.Dispatcher, placeID, imagePath string) {
	t.Helper()
	err := d.Publish(context.Background(), events.Event{
		ID:      "e1",
		Type:    events.EventPlaceDeleted,
		PlaceID: placeID,
		Payload: events.PlaceDeletedPayload{ImagePath: imagePath},
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestCleanupRemovesImageOnPlaceDeleted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p1.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	dispatcher := events.NewInMemoryDispatcher()
	NewCleanupWorker(dispatcher, zap.NewNop()).Start()

	publishDeleted(t, dispatcher, "p1", path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected image to be removed, stat err: %v", err)
	}
}

func TestCleanupToleratesMissingFile(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewCleanupWorker(dispatcher, zap.NewNop()).Start()

	publishDeleted(t, dispatcher, "p2", filepath.Join(t.TempDir(), "gone.png"))
}

func TestCleanupIgnoresOtherEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	dispatcher := events.NewInMemoryDispatcher()
	NewCleanupWorker(dispatcher, zap.NewNop()).Start()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventPlaceUpdated,
		PlaceID: "p3",
		Payload: events.PlaceDeletedPayload{ImagePath: path},
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected image to survive unrelated events: %v", err)
	}
}
