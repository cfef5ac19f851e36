package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncRunsAllHandlersAndReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var calls int
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		calls++
		return errors.New("first")
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		calls++
		return errors.New("second")
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})
	if err == nil || err.Error() != "first" {
		t.Fatalf("expected first handler error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("all handlers must run, got %d calls", calls)
	}
}

func TestPublishIsAsynchronousAndIsolatesPanics(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		panic("boom")
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run after a sibling panicked")
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "nobody.listens"})
}
