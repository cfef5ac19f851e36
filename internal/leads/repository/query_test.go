package repository

import (
	"strings"
	"testing"

	"leadcrm_backend/internal/access"

	"github.com/google/uuid"
)

func TestScopeCondition(t *testing.T) {
	ownerID := uuid.New()

	t.Run("owned scope constrains by assignee", func(t *testing.T) {
		clause, args := scopeCondition(access.OwnedBy(ownerID), 1)
		if clause != "assigned_to = $1" {
			t.Fatalf("unexpected clause: %q", clause)
		}
		if len(args) != 1 || args[0] != ownerID {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("all scope contributes nothing", func(t *testing.T) {
		clause, args := scopeCondition(access.All(), 1)
		if clause != "" || args != nil {
			t.Fatalf("expected empty condition, got %q %v", clause, args)
		}
	})

	t.Run("placeholder index is respected", func(t *testing.T) {
		clause, _ := scopeCondition(access.OwnedBy(ownerID), 4)
		if clause != "assigned_to = $4" {
			t.Fatalf("unexpected clause: %q", clause)
		}
	})
}

func TestBuildGetQuery(t *testing.T) {
	id := uuid.New()
	ownerID := uuid.New()

	t.Run("all scope queries by id only", func(t *testing.T) {
		query, args := buildGetQuery(id, access.All())
		if strings.Contains(query, "assigned_to") {
			t.Fatalf("unrestricted scope must not filter by assignee: %q", query)
		}
		if len(args) != 1 {
			t.Fatalf("expected 1 arg, got %d", len(args))
		}
	})

	t.Run("owned scope adds assignee filter", func(t *testing.T) {
		query, args := buildGetQuery(id, access.OwnedBy(ownerID))
		if !strings.Contains(query, "id = $1 AND assigned_to = $2") {
			t.Fatalf("expected conjunction of id and assignee, got %q", query)
		}
		if len(args) != 2 || args[1] != ownerID {
			t.Fatalf("unexpected args: %v", args)
		}
	})
}

func TestBuildListQueryDefaults(t *testing.T) {
	query, args := buildListQuery(access.All(), ListParams{Limit: 20})

	if !strings.Contains(query, "status <> $1") {
		t.Fatalf("default list must exclude archived leads: %q", query)
	}
	if args[0] != archivedStatusValue {
		t.Fatalf("expected archived status arg, got %v", args[0])
	}
	if !strings.Contains(query, "ORDER BY score DESC NULLS LAST, created_at DESC") {
		t.Fatalf("unexpected ordering: %q", query)
	}
	if !strings.Contains(query, "LIMIT $2 OFFSET $3") {
		t.Fatalf("expected pagination placeholders: %q", query)
	}
}

func TestBuildListQueryIncludeArchived(t *testing.T) {
	query, _ := buildListQuery(access.All(), ListParams{IncludeArchived: true, Limit: 20})
	if strings.Contains(query, "status <>") {
		t.Fatalf("includeArchived must drop the archive exclusion: %q", query)
	}
}

func TestBuildListQueryStatusFilterReplacesArchiveExclusion(t *testing.T) {
	status := "CLOSED_LOST"
	query, args := buildListQuery(access.All(), ListParams{Status: &status, Limit: 20})

	if !strings.Contains(query, "status = $1") {
		t.Fatalf("expected explicit status filter: %q", query)
	}
	if strings.Contains(query, "status <>") {
		t.Fatalf("status filter and archive exclusion must not combine: %q", query)
	}
	if args[0] != status {
		t.Fatalf("unexpected status arg: %v", args[0])
	}
}

func TestBuildListQueryFilters(t *testing.T) {
	source := "IVR"
	urgency := "HIGH"
	minScore := 70
	ownerID := uuid.New()

	query, args := buildListQuery(access.OwnedBy(ownerID), ListParams{
		Source:   &source,
		Urgency:  &urgency,
		MinScore: &minScore,
		Search:   "acme",
		Limit:    10,
	})

	for _, fragment := range []string{
		"assigned_to = $1",
		"source = $3",
		"urgency = $4",
		"score >= $5",
		"(name ILIKE $6 OR company ILIKE $6 OR email ILIKE $6 OR phone ILIKE $6)",
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("missing %q in %q", fragment, query)
		}
	}

	if args[0] != ownerID {
		t.Fatalf("scope arg must come first, got %v", args[0])
	}
	if args[5] != "%acme%" {
		t.Fatalf("search arg must be wrapped in wildcards, got %v", args[5])
	}
}

func TestBuildCountQueryIgnoresPagination(t *testing.T) {
	query, _ := buildCountQuery(access.All(), ListParams{Limit: 5, Offset: 20})

	if !strings.HasPrefix(query, "SELECT COUNT(*) FROM leads") {
		t.Fatalf("unexpected count query: %q", query)
	}
	if strings.Contains(query, "LIMIT") || strings.Contains(query, "OFFSET") {
		t.Fatalf("count must be independent of pagination: %q", query)
	}
}

func TestBuildCountAndListShareConditions(t *testing.T) {
	minScore := 50
	params := ListParams{MinScore: &minScore, Search: "corp", Limit: 10}

	listQuery, _ := buildListQuery(access.All(), params)
	countQuery, _ := buildCountQuery(access.All(), params)

	listWhere := listQuery[strings.Index(listQuery, "WHERE"):strings.Index(listQuery, "ORDER BY")]
	countWhere := countQuery[strings.Index(countQuery, "WHERE"):]

	if strings.TrimSpace(listWhere) != strings.TrimSpace(countWhere) {
		t.Fatalf("list and count filters diverge:\n%q\n%q", listWhere, countWhere)
	}
}
