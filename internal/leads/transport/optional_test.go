package transport

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestOptionalUUIDUnmarshal(t *testing.T) {
	id := uuid.New()

	t.Run("absent field stays unset", func(t *testing.T) {
		var req UpdateLeadRequest
		if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if req.AssignedTo.Set {
			t.Fatal("absent field must not be marked set")
		}
	})

	t.Run("explicit null means unassign", func(t *testing.T) {
		var req UpdateLeadRequest
		if err := json.Unmarshal([]byte(`{"assignedTo":null}`), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !req.AssignedTo.Set || req.AssignedTo.Value != nil {
			t.Fatalf("null must set the field with a nil value, got %+v", req.AssignedTo)
		}
	})

	t.Run("uuid value", func(t *testing.T) {
		var req UpdateLeadRequest
		if err := json.Unmarshal([]byte(`{"assignedTo":"`+id.String()+`"}`), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !req.AssignedTo.Set || req.AssignedTo.Value == nil || *req.AssignedTo.Value != id {
			t.Fatalf("expected %s, got %+v", id, req.AssignedTo)
		}
	})

	t.Run("invalid uuid is rejected", func(t *testing.T) {
		var req UpdateLeadRequest
		if err := json.Unmarshal([]byte(`{"assignedTo":"nope"}`), &req); err == nil {
			t.Fatal("expected error for malformed uuid")
		}
	})

	t.Run("empty string means unassign", func(t *testing.T) {
		var req UpdateLeadRequest
		if err := json.Unmarshal([]byte(`{"assignedTo":""}`), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !req.AssignedTo.Set || req.AssignedTo.Value != nil {
			t.Fatalf("empty string must set the field with a nil value, got %+v", req.AssignedTo)
		}
	})
}
