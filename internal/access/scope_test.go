package access

import (
	"testing"

	"github.com/google/uuid"
)

type stubConfig struct {
	elevated []string
}

func (s stubConfig) GetElevatedRoles() []string { return s.elevated }

func TestComposeAdminAndManagerSeeEverything(t *testing.T) {
	composer := NewComposer(stubConfig{})

	for _, role := range []string{"admin", "manager", "ADMIN", "Manager"} {
		scope := composer.Compose(Actor{ID: uuid.New(), Roles: []string{role}})
		if scope.Kind != ScopeAll {
			t.Fatalf("role %q: expected ScopeAll, got %v", role, scope.Kind)
		}
	}
}

func TestComposeAgentOwnsSubset(t *testing.T) {
	composer := NewComposer(stubConfig{})
	actorID := uuid.New()

	scope := composer.Compose(Actor{ID: actorID, Roles: []string{"agent"}})
	if scope.Kind != ScopeOwned {
		t.Fatalf("expected ScopeOwned, got %v", scope.Kind)
	}
	if scope.OwnerID != actorID {
		t.Fatalf("expected owner %s, got %s", actorID, scope.OwnerID)
	}
}

func TestComposeFailsClosed(t *testing.T) {
	composer := NewComposer(stubConfig{})

	cases := [][]string{
		nil,
		{},
		{"viewer"},
		{"intern"},
		{"superuser"},
		{"viewer", "nonsense"},
	}

	for _, roles := range cases {
		scope := composer.Compose(Actor{ID: uuid.New(), Roles: roles})
		if scope.Kind != ScopeNone {
			t.Fatalf("roles %v: expected ScopeNone, got %v", roles, scope.Kind)
		}
		if !scope.IsEmpty() {
			t.Fatalf("roles %v: expected empty scope", roles)
		}
	}
}

func TestComposeMultiRoleTakesWidest(t *testing.T) {
	composer := NewComposer(stubConfig{})
	actorID := uuid.New()

	scope := composer.Compose(Actor{ID: actorID, Roles: []string{"viewer", "agent"}})
	if scope.Kind != ScopeOwned {
		t.Fatalf("expected ScopeOwned, got %v", scope.Kind)
	}

	scope = composer.Compose(Actor{ID: actorID, Roles: []string{"agent", "admin"}})
	if scope.Kind != ScopeAll {
		t.Fatalf("expected ScopeAll, got %v", scope.Kind)
	}
}

func TestComposeConfiguredElevatedRole(t *testing.T) {
	composer := NewComposer(stubConfig{elevated: []string{"ops_lead"}})

	scope := composer.Compose(Actor{ID: uuid.New(), Roles: []string{"ops_lead"}})
	if scope.Kind != ScopeAll {
		t.Fatalf("expected configured elevated role to get ScopeAll, got %v", scope.Kind)
	}

	// Config must not widen the built-in viewer mapping.
	scope = composer.Compose(Actor{ID: uuid.New(), Roles: []string{"viewer"}})
	if scope.Kind != ScopeNone {
		t.Fatalf("expected viewer to stay ScopeNone, got %v", scope.Kind)
	}
}

func TestCanCreate(t *testing.T) {
	composer := NewComposer(stubConfig{})

	cases := []struct {
		roles []string
		want  bool
	}{
		{[]string{"admin"}, true},
		{[]string{"manager"}, true},
		{[]string{"agent"}, true},
		{[]string{"viewer"}, false},
		{[]string{"unknown"}, false},
		{nil, false},
	}

	for _, tc := range cases {
		if got := composer.CanCreate(Actor{ID: uuid.New(), Roles: tc.roles}); got != tc.want {
			t.Fatalf("roles %v: CanCreate = %v, want %v", tc.roles, got, tc.want)
		}
	}
}
