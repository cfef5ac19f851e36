package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists access-log rows. Append-only; rows are never read back
// by the application, only by operators.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type LeadAccessEntry struct {
	ActorID    uuid.UUID
	Action     string
	LeadID     *uuid.UUID
	OccurredAt time.Time
}

func (r *Repository) RecordLeadAccess(ctx context.Context, entry LeadAccessEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_access_log (actor_id, action, lead_id, occurred_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ActorID, entry.Action, entry.LeadID, entry.OccurredAt)
	return err
}
