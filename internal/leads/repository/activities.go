package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LeadActivity is one immutable audit entry. The ledger is a pure recorder:
// no access scope is evaluated here because the caller was already authorized
// for the mutation this entry describes.
type LeadActivity struct {
	ID            uuid.UUID
	LeadID        uuid.UUID
	Seq           int64
	Type          string
	Action        string
	Details       *string
	PerformedKind string
	PerformedByID *uuid.UUID
	Metadata      map[string]any
	CreatedAt     time.Time
}

type AppendActivityParams struct {
	LeadID        uuid.UUID
	Type          string
	Action        string
	Details       *string
	PerformedKind string
	PerformedByID *uuid.UUID
	Metadata      map[string]any
}

func (r *Repository) AppendActivity(ctx context.Context, params AppendActivityParams) (LeadActivity, error) {
	metadataJSON, err := json.Marshal(params.Metadata)
	if err != nil {
		return LeadActivity{}, err
	}

	var activity LeadActivity
	// metadata is excluded from RETURNING: we already hold params.Metadata as
	// a Go value and re-scanning the stored JSONB would just add a redundant
	// json.Unmarshal on every insert.
	err = r.pool.QueryRow(ctx, `
		INSERT INTO lead_activities (
			lead_id, activity_type, action, details, performed_by_kind, performed_by_id, metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, lead_id, seq, activity_type, action, details, performed_by_kind, performed_by_id, created_at
	`,
		params.LeadID, params.Type, params.Action, params.Details,
		params.PerformedKind, params.PerformedByID, metadataJSON,
	).Scan(
		&activity.ID, &activity.LeadID, &activity.Seq, &activity.Type, &activity.Action,
		&activity.Details, &activity.PerformedKind, &activity.PerformedByID, &activity.CreatedAt,
	)
	if err != nil {
		return LeadActivity{}, err
	}

	activity.Metadata = params.Metadata
	return activity, nil
}

// ListRecentActivities returns the newest activity entries for a lead, capped
// at limit. Ties at identical timestamps resolve by insertion sequence.
func (r *Repository) ListRecentActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]LeadActivity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, seq, activity_type, action, details, performed_by_kind, performed_by_id, metadata, created_at
		FROM lead_activities
		WHERE lead_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
	`, leadID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]LeadActivity, 0)
	for rows.Next() {
		var activity LeadActivity
		var rawMetadata []byte
		if err := rows.Scan(
			&activity.ID, &activity.LeadID, &activity.Seq, &activity.Type, &activity.Action,
			&activity.Details, &activity.PerformedKind, &activity.PerformedByID,
			&rawMetadata, &activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(rawMetadata) > 0 {
			_ = json.Unmarshal(rawMetadata, &activity.Metadata)
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}
