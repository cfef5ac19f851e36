package audit

import (
	"context"

	"leadcrm_backend/internal/events"
	"leadcrm_backend/platform/logger"
)

// Subscribe wires the access events onto the task queue. Fire-and-forget:
// an enqueue failure is logged and dropped, it never surfaces to the read
// that produced the event.
func Subscribe(bus events.Bus, client *Client, log *logger.Logger) {
	bus.Subscribe(events.LeadAccessed{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadAccessed)
		if !ok {
			return nil
		}

		payload := LeadAccessPayload{
			ActorID:    e.ActorID.String(),
			Action:     e.Action,
			OccurredAt: e.OccurredAt(),
		}
		if e.LeadID != nil {
			id := e.LeadID.String()
			payload.LeadID = &id
		}

		if err := client.EnqueueLeadAccess(ctx, payload); err != nil {
			log.Warn("lead access enqueue failed", "action", e.Action, "error", err)
		}
		return nil
	}))
}
