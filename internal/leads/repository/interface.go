package repository

import (
	"context"

	"leadcrm_backend/internal/access"

	"github.com/google/uuid"
)

// =====================================
// Segregated Interfaces (Interface Segregation Principle)
// =====================================

// LeadReader provides scope-constrained read access to lead data.
// Every method takes the composed access.Scope; there is no unscoped read.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID, scope access.Scope) (Lead, error)
	List(ctx context.Context, scope access.Scope, params ListParams) ([]Lead, int, error)
}

// LeadWriter provides scope-constrained write operations.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	Update(ctx context.Context, id uuid.UUID, scope access.Scope, params UpdateLeadParams) (Lead, error)
	Archive(ctx context.Context, id uuid.UUID, scope access.Scope, archivedStatus string) (Lead, error)
}

// ScoreLedger appends immutable score snapshots. The append and the lead's
// denormalized current-score update are one atomic unit.
type ScoreLedger interface {
	AppendScore(ctx context.Context, leadID uuid.UUID, scope access.Scope, params AppendScoreParams) (LeadScore, error)
	ListScores(ctx context.Context, leadID uuid.UUID) ([]LeadScore, error)
}

// ActivityLedger appends immutable audit entries. A pure recorder: callers
// are authorized before the mutation that produces an entry.
type ActivityLedger interface {
	AppendActivity(ctx context.Context, params AppendActivityParams) (LeadActivity, error)
	ListRecentActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]LeadActivity, error)
}

// TranscriptLedger appends and lists IVR call transcripts.
type TranscriptLedger interface {
	AppendTranscript(ctx context.Context, params AppendTranscriptParams) (Transcript, error)
	ListTranscripts(ctx context.Context, leadID uuid.UUID) ([]Transcript, error)
}

// StatsReader provides aggregate projections over the scoped lead set.
type StatsReader interface {
	GetStats(ctx context.Context, scope access.Scope) (Stats, error)
}
