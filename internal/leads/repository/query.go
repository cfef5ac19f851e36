package repository

import (
	"fmt"
	"strings"

	"leadcrm_backend/internal/access"

	"github.com/google/uuid"
)

// This file contains the pure query builders for scope-constrained lead
// reads. Keeping them free of I/O lets tests pin the exact clauses that
// enforce visibility, ordering, and the active-only default.

type ListParams struct {
	Status          *string
	Source          *string
	Urgency         *string
	MinScore        *int
	Search          string
	IncludeArchived bool
	Offset          int
	Limit           int
}

// archivedStatusValue is the terminal status excluded from default list views.
const archivedStatusValue = "CLOSED_LOST"

// scopeCondition translates a Scope into a SQL condition starting at the
// given placeholder index. ScopeAll contributes nothing; ScopeNone must be
// short-circuited by the caller before building a query.
func scopeCondition(scope access.Scope, nextArg int) (string, []any) {
	switch scope.Kind {
	case access.ScopeOwned:
		return fmt.Sprintf("assigned_to = $%d", nextArg), []any{scope.OwnerID}
	default:
		return "", nil
	}
}

func buildLeadConditions(scope access.Scope, params ListParams) ([]string, []any) {
	conditions := make([]string, 0, 6)
	args := make([]any, 0, 6)

	add := func(format string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if clause, scopeArgs := scopeCondition(scope, len(args)+1); clause != "" {
		conditions = append(conditions, clause)
		args = append(args, scopeArgs...)
	}

	if params.Status != nil {
		add("status = $%d", *params.Status)
	} else if !params.IncludeArchived {
		add("status <> $%d", archivedStatusValue)
	}
	if params.Source != nil {
		add("source = $%d", *params.Source)
	}
	if params.Urgency != nil {
		add("urgency = $%d", *params.Urgency)
	}
	if params.MinScore != nil {
		add("score >= $%d", *params.MinScore)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n, n,
		))
	}

	return conditions, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// buildListQuery returns the paginated list query. Ordering is score
// descending with unscored leads last, then newest first.
func buildListQuery(scope access.Scope, params ListParams) (string, []any) {
	conditions, args := buildLeadConditions(scope, params)

	args = append(args, params.Limit)
	limitArg := len(args)
	args = append(args, params.Offset)
	offsetArg := len(args)

	query := "SELECT" + leadSelectCols + "\n\tFROM leads" + whereClause(conditions) +
		"\n\tORDER BY score DESC NULLS LAST, created_at DESC" +
		fmt.Sprintf("\n\tLIMIT $%d OFFSET $%d", limitArg, offsetArg)

	return query, args
}

// buildCountQuery returns the total count for the same filter set,
// independent of pagination.
func buildCountQuery(scope access.Scope, params ListParams) (string, []any) {
	conditions, args := buildLeadConditions(scope, params)
	return "SELECT COUNT(*) FROM leads" + whereClause(conditions), args
}

// buildGetQuery returns the single-lead query constrained by scope.
func buildGetQuery(id uuid.UUID, scope access.Scope) (string, []any) {
	args := []any{id}
	conditions := []string{"id = $1"}
	if clause, scopeArgs := scopeCondition(scope, 2); clause != "" {
		conditions = append(conditions, clause)
		args = append(args, scopeArgs...)
	}
	return "SELECT" + leadSelectCols + "\n\tFROM leads WHERE " + strings.Join(conditions, " AND "), args
}

// buildScoreLockQuery returns the scope-constrained lead query with a row
// lock. Score appends take this lock so concurrent re-scoring of one lead
// serializes instead of interleaving the snapshot insert and the
// denormalized-score update.
func buildScoreLockQuery(id uuid.UUID, scope access.Scope) (string, []any) {
	query, args := buildGetQuery(id, scope)
	return query + " FOR UPDATE", args
}
