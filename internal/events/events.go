// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"leadcrm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is created.
type LeadCreated struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	Source     string     `json:"source"`
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`
	CreatedBy  uuid.UUID  `json:"createdBy"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadUpdated is published when lead fields change.
type LeadUpdated struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	UpdatedBy uuid.UUID `json:"updatedBy"`
}

func (e LeadUpdated) EventName() string { return "leads.updated" }

// LeadScored is published after a score snapshot is appended.
type LeadScored struct {
	BaseEvent
	LeadID  uuid.UUID `json:"leadId"`
	ScoreID uuid.UUID `json:"scoreId"`
	Score   int       `json:"score"`
}

func (e LeadScored) EventName() string { return "leads.scored" }

// LeadArchived is published when a lead is logically deleted.
type LeadArchived struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	ArchivedBy uuid.UUID `json:"archivedBy"`
}

func (e LeadArchived) EventName() string { return "leads.archived" }

// TranscriptAttached is published when an IVR call transcript is ingested.
type TranscriptAttached struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	TranscriptID uuid.UUID `json:"transcriptId"`
	CallDate     time.Time `json:"callDate"`
}

func (e TranscriptAttached) EventName() string { return "leads.transcript.attached" }

// LeadAccessed is published on every list/get/stats call so the audit
// collaborator can record who looked at what. Fire-and-forget: publishing
// never blocks or fails the read that produced it.
type LeadAccessed struct {
	BaseEvent
	ActorID uuid.UUID  `json:"actorId"`
	Action  string     `json:"action"` // "list", "get", "stats"
	LeadID  *uuid.UUID `json:"leadId,omitempty"`
}

func (e LeadAccessed) EventName() string { return "leads.accessed" }
