package repository

import (
	"context"
	"errors"
	"time"

	"leadcrm_backend/internal/access"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LeadScore is one immutable snapshot of a scoring event. Rows are never
// updated or deleted; the lead's current score is a projection over the
// latest row.
type LeadScore struct {
	ID             uuid.UUID
	LeadID         uuid.UUID
	Seq            int64
	Score          int
	FactorUrgency  *float64
	FactorAccount  *float64
	FactorEngage   *float64
	FactorCompany  *float64
	FactorIndustry *float64
	Confidence     *float64
	CalculatedKind string
	CalculatedByID *uuid.UUID
	Notes          *string
	CreatedAt      time.Time
}

type AppendScoreParams struct {
	Score          int
	FactorUrgency  *float64
	FactorAccount  *float64
	FactorEngage   *float64
	FactorCompany  *float64
	FactorIndustry *float64
	Confidence     *float64
	CalculatedKind string
	CalculatedByID *uuid.UUID
	Notes          *string
}

const scoreSelectCols = `
	id, lead_id, seq, score, factor_urgency, factor_account_type, factor_engagement,
	factor_company_size, factor_industry, confidence, calculated_by_kind, calculated_by_id,
	notes, created_at`

func scanScore(s leadRowScanner) (LeadScore, error) {
	var score LeadScore
	err := s.Scan(
		&score.ID, &score.LeadID, &score.Seq, &score.Score,
		&score.FactorUrgency, &score.FactorAccount, &score.FactorEngage,
		&score.FactorCompany, &score.FactorIndustry, &score.Confidence,
		&score.CalculatedKind, &score.CalculatedByID, &score.Notes, &score.CreatedAt,
	)
	return score, err
}

// AppendScore inserts a score snapshot and updates the lead's denormalized
// current score in one transaction. If either half fails, neither is visible:
// a reader never observes leads.score disagreeing with the latest snapshot.
//
// The access check takes a FOR UPDATE lock on the lead row, so concurrent
// appends to the same lead serialize for the whole transaction: the last
// snapshot to commit is also the one projected into leads.score, and a
// concurrent reassignment cannot let a stale scope through.
func (r *Repository) AppendScore(ctx context.Context, leadID uuid.UUID, scope access.Scope, params AppendScoreParams) (LeadScore, error) {
	if scope.IsEmpty() {
		return LeadScore{}, ErrNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return LeadScore{}, err
	}
	defer tx.Rollback(ctx)

	query, args := buildScoreLockQuery(leadID, scope)
	if _, err := scanLead(tx.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LeadScore{}, ErrNotFound
		}
		return LeadScore{}, err
	}

	score, err := scanScore(tx.QueryRow(ctx, `
		INSERT INTO lead_scores (
			lead_id, score, factor_urgency, factor_account_type, factor_engagement,
			factor_company_size, factor_industry, confidence, calculated_by_kind,
			calculated_by_id, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING`+scoreSelectCols+`
	`,
		leadID, params.Score, params.FactorUrgency, params.FactorAccount,
		params.FactorEngage, params.FactorCompany, params.FactorIndustry,
		params.Confidence, params.CalculatedKind, params.CalculatedByID, params.Notes,
	))
	if err != nil {
		return LeadScore{}, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE leads SET score = $1, updated_at = now() WHERE id = $2`,
		params.Score, leadID,
	); err != nil {
		return LeadScore{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return LeadScore{}, err
	}

	return score, nil
}

// ListScores returns a lead's score history newest first. Ties at identical
// timestamps resolve by insertion sequence, not id ordering.
func (r *Repository) ListScores(ctx context.Context, leadID uuid.UUID) ([]LeadScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+scoreSelectCols+`
		FROM lead_scores
		WHERE lead_id = $1
		ORDER BY created_at DESC, seq DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]LeadScore, 0)
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}
