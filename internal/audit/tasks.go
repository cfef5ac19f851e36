// Package audit records who accessed lead data. Read endpoints publish
// access events; this package turns them into queued tasks and persists
// them out of the request path.
package audit

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskLeadAccess = "audit.lead_access"

type LeadAccessPayload struct {
	ActorID    string    `json:"actorId"`
	Action     string    `json:"action"`
	LeadID     *string   `json:"leadId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewLeadAccessTask(payload LeadAccessPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadAccess, data), nil
}

func ParseLeadAccessPayload(task *asynq.Task) (LeadAccessPayload, error) {
	var payload LeadAccessPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadAccessPayload{}, err
	}
	return payload, nil
}
