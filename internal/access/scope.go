// Package access implements the role-to-visibility mapping for lead records.
// It is the single place in the codebase allowed to branch on role names:
// every repository query is constrained by a Scope produced here, and no
// other code path may restrict (or widen) visibility by identity.
package access

import (
	"strings"

	"github.com/google/uuid"
)

// Actor is the authenticated identity attached to a request. It is produced
// by the external session service (via the JWT middleware) and never
// persisted by this core.
type Actor struct {
	ID    uuid.UUID
	Roles []string
}

// ScopeKind tags the visibility restriction a Scope carries.
type ScopeKind int

const (
	// ScopeNone matches no leads. This is the fail-closed default for
	// unknown or view-only roles.
	ScopeNone ScopeKind = iota
	// ScopeOwned matches leads assigned to OwnerID.
	ScopeOwned
	// ScopeAll matches every lead (organization-wide visibility).
	ScopeAll
)

// Scope is a storage-agnostic predicate over the lead collection. It is a
// small tagged value rather than a query-builder object so that repositories
// in any store can translate it.
type Scope struct {
	Kind    ScopeKind
	OwnerID uuid.UUID
}

// All returns the unrestricted scope.
func All() Scope { return Scope{Kind: ScopeAll} }

// OwnedBy returns a scope restricted to leads assigned to the given actor.
func OwnedBy(ownerID uuid.UUID) Scope { return Scope{Kind: ScopeOwned, OwnerID: ownerID} }

// None returns the empty scope.
func None() Scope { return Scope{Kind: ScopeNone} }

// IsEmpty reports whether the scope can never match a lead.
func (s Scope) IsEmpty() bool { return s.Kind == ScopeNone }

// visibility is one row of the static role table.
type visibility int

const (
	visibilityNone visibility = iota
	visibilityOwned
	visibilityAll
)

// roleTable is the complete role-to-visibility mapping. Roles absent from
// this table get visibilityNone — access is denied unless explicitly granted.
var roleTable = map[string]visibility{
	"admin":   visibilityAll,
	"manager": visibilityAll,
	"agent":   visibilityOwned,
	"viewer":  visibilityNone,
}

// mutableVisibility is the minimum visibility required to create leads.
// Viewers and unmapped roles cannot create.
const mutableVisibility = visibilityOwned

// Composer turns an Actor into a Scope. Pure and deterministic: no I/O, no
// clock, no randomness.
type Composer struct {
	elevated map[string]struct{}
}

// Config provides the composer's deployment-specific settings.
type Config interface {
	GetElevatedRoles() []string
}

// NewComposer builds a composer. Roles listed in cfg.GetElevatedRoles()
// receive organization-wide visibility in addition to the built-in table.
func NewComposer(cfg Config) *Composer {
	elevated := make(map[string]struct{})
	if cfg != nil {
		for _, role := range cfg.GetElevatedRoles() {
			name := strings.ToLower(strings.TrimSpace(role))
			if name != "" {
				elevated[name] = struct{}{}
			}
		}
	}
	return &Composer{elevated: elevated}
}

// Compose maps the actor to the widest scope any of its roles grants.
// Actors with no recognized role receive the empty scope, never a broad one.
func (c *Composer) Compose(actor Actor) Scope {
	if c.widestVisibility(actor) == visibilityAll {
		return All()
	}
	if c.widestVisibility(actor) == visibilityOwned {
		return OwnedBy(actor.ID)
	}
	return None()
}

// CanCreate reports whether the actor may create leads. Creation has no
// target record to hide behind a NotFound, so callers reject explicitly.
func (c *Composer) CanCreate(actor Actor) bool {
	return c.widestVisibility(actor) >= mutableVisibility
}

func (c *Composer) widestVisibility(actor Actor) visibility {
	widest := visibilityNone
	for _, role := range actor.Roles {
		name := strings.ToLower(strings.TrimSpace(role))
		v, ok := roleTable[name]
		if !ok {
			if _, elevated := c.elevated[name]; elevated {
				v = visibilityAll
			} else {
				continue
			}
		}
		if v > widest {
			widest = v
		}
	}
	return widest
}
