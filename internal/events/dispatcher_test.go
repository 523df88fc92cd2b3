package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var first, second int
	d.Subscribe(EventPlaceCreated, func(ctx context.Context, e Event) error {
		first++
		return nil
	})
	d.Subscribe(EventPlaceCreated, func(ctx context.Context, e Event) error {
		second++
		return nil
	})

	event := Event{ID: "e1", Type: EventPlaceCreated, Timestamp: time.Now()}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if first != 1 || second != 1 {
		t.Fatalf("expected each handler once, got %d and %d", first, second)
	}
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventPlaceDeleted, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserRegistered}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if calls != 0 {
		t.Fatalf("handler for another type ran %d times", calls)
	}
}

func TestFailingHandlerDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventPlaceUpdated, func(ctx context.Context, e Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventPlaceUpdated, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPlaceUpdated}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !reached {
		t.Fatal("expected the second handler to run after the first failed")
	}
}
