package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quillhq/newsdesk/internal/platform/eventbus"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {}

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := eventbus.NewBus(&mockLogger{})

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var received []string

	handler := func(name string) eventbus.Handler {
		return func(ctx context.Context, event eventbus.Event) error {
			mu.Lock()
			received = append(received, name)
			mu.Unlock()
			wg.Done()
			return nil
		}
	}

	bus.Subscribe("articles.created", handler("first"))
	bus.Subscribe("articles.created", handler("second"))

	bus.Publish(context.Background(), eventbus.Event{
		Topic:   "articles.created",
		Payload: "payload",
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscribers")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Errorf("expected 2 handler invocations, got %d", len(received))
	}
}

func TestPublishIgnoresUnsubscribedTopic(t *testing.T) {
	bus := eventbus.NewBus(&mockLogger{})

	called := make(chan struct{}, 1)
	bus.Subscribe("articles.created", func(ctx context.Context, event eventbus.Event) error {
		called <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: "articles.deleted"})

	select {
	case <-called:
		t.Error("handler for a different topic should not fire")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandlersOutliveThePublisherContext(t *testing.T) {
	bus := eventbus.NewBus(&mockLogger{})

	handlerErr := make(chan error, 1)
	bus.Subscribe("articles.deleted", func(ctx context.Context, event eventbus.Event) error {
		handlerErr <- ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, eventbus.Event{Topic: "articles.deleted"})

	select {
	case err := <-handlerErr:
		if err != nil {
			t.Errorf("handler context should not carry the publisher's cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscriber")
	}
}

func TestHandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := eventbus.NewBus(&mockLogger{})

	var wg sync.WaitGroup
	wg.Add(2)

	bus.Subscribe("articles.updated", func(ctx context.Context, event eventbus.Event) error {
		defer wg.Done()
		return errors.New("handler failure")
	})
	bus.Subscribe("articles.updated", func(ctx context.Context, event eventbus.Event) error {
		defer wg.Done()
		return nil
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: "articles.updated"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscribers")
	}
}
