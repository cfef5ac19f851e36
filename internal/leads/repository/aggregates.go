package repository

import (
	"context"

	"leadcrm_backend/internal/access"
)

// Stats holds dashboard aggregates over the scope-restricted lead set.
type Stats struct {
	TotalLeads          int
	QualifiedLeads      int
	AvgScore            int
	TotalEstimatedValue float64
}

// GetStats computes aggregates over all leads visible within scope.
// AvgScore rounds to the nearest integer and is 0 when no lead has a score.
func (r *Repository) GetStats(ctx context.Context, scope access.Scope) (Stats, error) {
	if scope.IsEmpty() {
		return Stats{}, nil
	}

	conditions, args := buildLeadConditions(scope, ListParams{IncludeArchived: true})

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'QUALIFIED'),
			COALESCE(ROUND(AVG(score)), 0),
			COALESCE(SUM(estimated_value), 0)
		FROM leads` + whereClause(conditions)

	var stats Stats
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalLeads, &stats.QualifiedLeads, &stats.AvgScore, &stats.TotalEstimatedValue,
	)
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}
