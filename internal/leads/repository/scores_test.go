package repository

import (
	"strings"
	"testing"

	"leadcrm_backend/internal/access"

	"github.com/google/uuid"
)

func TestBuildScoreLockQuery(t *testing.T) {
	id := uuid.New()
	ownerID := uuid.New()

	t.Run("locks the lead row", func(t *testing.T) {
		query, _ := buildScoreLockQuery(id, access.All())
		if !strings.HasSuffix(query, "FOR UPDATE") {
			t.Fatalf("score appends must lock the lead row so concurrent appends serialize: %q", query)
		}
	})

	t.Run("keeps the scope constraint", func(t *testing.T) {
		query, args := buildScoreLockQuery(id, access.OwnedBy(ownerID))
		if !strings.Contains(query, "id = $1 AND assigned_to = $2") {
			t.Fatalf("lock query must stay scope-constrained: %q", query)
		}
		if len(args) != 2 || args[1] != ownerID {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("matches the unlocked get query otherwise", func(t *testing.T) {
		lockQuery, _ := buildScoreLockQuery(id, access.All())
		getQuery, _ := buildGetQuery(id, access.All())
		if strings.TrimSuffix(lockQuery, " FOR UPDATE") != getQuery {
			t.Fatalf("lock query diverged from the get query:\n%q\n%q", lockQuery, getQuery)
		}
	})
}
