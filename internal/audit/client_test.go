package audit

import (
	"context"
	"testing"
	"time"

	"leadcrm_backend/internal/events"
	"leadcrm_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type queueConfig struct {
	url string
}

func (c queueConfig) GetRedisURL() string       { return c.url }
func (c queueConfig) GetRedisTLSInsecure() bool { return false }
func (c queueConfig) GetAuditQueueName() string { return "audit" }
func (c queueConfig) GetAuditConcurrency() int  { return 1 }

func newTestClient(t *testing.T) (*Client, *asynq.Inspector) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := NewClient(queueConfig{url: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = inspector.Close() })

	return client, inspector
}

func TestEnqueueLeadAccess(t *testing.T) {
	client, inspector := newTestClient(t)

	leadID := uuid.New().String()
	payload := LeadAccessPayload{
		ActorID:    uuid.New().String(),
		Action:     "get",
		LeadID:     &leadID,
		OccurredAt: time.Now().UTC(),
	}

	if err := client.EnqueueLeadAccess(context.Background(), payload); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	tasks, err := inspector.ListPendingTasks("audit")
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskLeadAccess {
		t.Fatalf("unexpected task type %q", tasks[0].Type)
	}

	parsed, err := ParseLeadAccessPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("failed to parse payload: %v", err)
	}
	if parsed.ActorID != payload.ActorID || parsed.Action != "get" {
		t.Fatalf("payload did not round-trip: %+v", parsed)
	}
	if parsed.LeadID == nil || *parsed.LeadID != leadID {
		t.Fatalf("lead id did not round-trip: %v", parsed.LeadID)
	}
}

func TestSubscribeEnqueuesAccessEvents(t *testing.T) {
	client, inspector := newTestClient(t)

	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	Subscribe(bus, client, log)

	leadID := uuid.New()
	err := bus.PublishSync(context.Background(), events.LeadAccessed{
		BaseEvent: events.NewBaseEvent(),
		ActorID:   uuid.New(),
		Action:    "get",
		LeadID:    &leadID,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	tasks, err := inspector.ListPendingTasks("audit")
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(tasks))
	}
}

func TestSubscribeSwallowsEnqueueFailures(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client, err := NewClient(queueConfig{url: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	// Simulate the broker being down.
	mr.Close()

	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	Subscribe(bus, client, log)

	err = bus.PublishSync(context.Background(), events.LeadAccessed{
		BaseEvent: events.NewBaseEvent(),
		ActorID:   uuid.New(),
		Action:    "list",
	})
	if err != nil {
		t.Fatalf("enqueue failure must not surface to the publisher: %v", err)
	}
}
