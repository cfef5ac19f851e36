package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadcrm_backend/internal/access"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lead does not exist or falls outside the
// caller's scope. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("lead not found")

// IsNotFound reports whether err is the conflated missing/out-of-scope error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID             uuid.UUID
	Name           string
	Email          *string
	Phone          string
	Company        *string
	Title          *string
	Source         string
	Urgency        string
	Status         string
	Score          *int
	AssignedTo     *uuid.UUID
	EstimatedValue *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const leadSelectCols = `
	id, name, email, phone, company, title, source, urgency, status, score,
	assigned_to, estimated_value, created_at, updated_at`

// leadRowScanner is satisfied by pgx.Rows and pgx.Row so that scanLead can be
// shared between single-row and multi-row queries.
type leadRowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s leadRowScanner) (Lead, error) {
	var lead Lead
	err := s.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Company, &lead.Title,
		&lead.Source, &lead.Urgency, &lead.Status, &lead.Score,
		&lead.AssignedTo, &lead.EstimatedValue, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

type CreateLeadParams struct {
	Name           string
	Email          *string
	Phone          string
	Company        *string
	Title          *string
	Source         string
	Urgency        string
	AssignedTo     *uuid.UUID
	EstimatedValue *float64
}

// Create inserts a new lead. Status starts at NEW and score at NULL; both are
// column defaults rather than caller-supplied values.
func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, company, title, source, urgency, assigned_to, estimated_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING`+leadSelectCols+`
	`,
		params.Name, params.Email, params.Phone, params.Company, params.Title,
		params.Source, params.Urgency, params.AssignedTo, params.EstimatedValue,
	)
	return scanLead(row)
}

// GetByID returns a single lead visible within scope.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID, scope access.Scope) (Lead, error) {
	if scope.IsEmpty() {
		return Lead{}, ErrNotFound
	}

	query, args := buildGetQuery(id, scope)
	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// List returns leads visible within scope matching the filters, newest and
// highest-scored first, plus the total count independent of pagination.
func (r *Repository) List(ctx context.Context, scope access.Scope, params ListParams) ([]Lead, int, error) {
	if scope.IsEmpty() {
		return []Lead{}, 0, nil
	}

	query, args := buildListQuery(scope, params)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := buildCountQuery(scope, params)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

type UpdateLeadParams struct {
	Name           *string
	Email          *string
	Phone          *string
	Company        *string
	Title          *string
	Source         *string
	Urgency        *string
	Status         *string
	AssignedTo     *uuid.UUID
	AssignedToSet  bool
	EstimatedValue *float64
}

// Update applies a partial patch to a lead visible within scope. Only fields
// with non-nil values (or AssignedToSet for explicit unassignment) are written.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, scope access.Scope, params UpdateLeadParams) (Lead, error) {
	if scope.IsEmpty() {
		return Lead{}, ErrNotFound
	}

	setClauses := make([]string, 0, 10)
	args := make([]any, 0, 12)

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name != nil {
		addSet("name", *params.Name)
	}
	if params.Email != nil {
		addSet("email", *params.Email)
	}
	if params.Phone != nil {
		addSet("phone", *params.Phone)
	}
	if params.Company != nil {
		addSet("company", *params.Company)
	}
	if params.Title != nil {
		addSet("title", *params.Title)
	}
	if params.Source != nil {
		addSet("source", *params.Source)
	}
	if params.Urgency != nil {
		addSet("urgency", *params.Urgency)
	}
	if params.Status != nil {
		addSet("status", *params.Status)
	}
	if params.AssignedToSet {
		addSet("assigned_to", params.AssignedTo)
	}
	if params.EstimatedValue != nil {
		addSet("estimated_value", *params.EstimatedValue)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id, scope)
	}
	setClauses = append(setClauses, "updated_at = now()")

	args = append(args, id)
	conditions := []string{fmt.Sprintf("id = $%d", len(args))}
	if clause, scopeArgs := scopeCondition(scope, len(args)+1); clause != "" {
		conditions = append(conditions, clause)
		args = append(args, scopeArgs...)
	}

	query := fmt.Sprintf(
		"UPDATE leads SET %s WHERE %s RETURNING%s",
		strings.Join(setClauses, ", "), strings.Join(conditions, " AND "), leadSelectCols,
	)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// Archive logically deletes a lead by moving it to the terminal archived
// status. The row is never removed; it stays reachable by id for audit.
func (r *Repository) Archive(ctx context.Context, id uuid.UUID, scope access.Scope, archivedStatus string) (Lead, error) {
	if scope.IsEmpty() {
		return Lead{}, ErrNotFound
	}

	args := []any{archivedStatus, id}
	conditions := []string{"id = $2"}
	if clause, scopeArgs := scopeCondition(scope, 3); clause != "" {
		conditions = append(conditions, clause)
		args = append(args, scopeArgs...)
	}

	query := fmt.Sprintf(
		"UPDATE leads SET status = $1, updated_at = now() WHERE %s RETURNING%s",
		strings.Join(conditions, " AND "), leadSelectCols,
	)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}
