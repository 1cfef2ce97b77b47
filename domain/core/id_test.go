package core

import (
	"testing"

	"github.com/google/uuid"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestParseRunID(t *testing.T) {
	id := NewRunID()

	parsed, err := ParseRunID(" " + id.String() + " ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("Expected %s, got %s", id, parsed)
	}

	if _, err := ParseRunID(""); err == nil {
		t.Error("Expected error for empty run ID")
	}
	if _, err := ParseRunID("not-a-uuid"); !IsInvalidArgument(err) {
		t.Errorf("Expected invalid argument for malformed run ID, got %v", err)
	}
	if parsed.UUID().String() != id.String() {
		t.Errorf("UUID() = %s, want %s", parsed.UUID(), id)
	}
	if ID("nope").UUID() != uuid.Nil {
		t.Error("Expected uuid.Nil for a malformed ID")
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsInvalidArgument(ErrInvalidFold) {
		t.Error("ErrInvalidFold should be an invalid argument error")
	}
	if !IsInvalidArgument(ErrLengthMismatch) {
		t.Error("ErrLengthMismatch should be an invalid argument error")
	}
	if !IsMissingColumn(NewMissingColumnError("tenure")) {
		t.Error("NewMissingColumnError should match ErrMissingColumn")
	}
	if IsCallerError(ErrRunNotFound) {
		t.Error("not-found is not a caller input error")
	}
	if !IsNotFoundError(ErrRunNotFound) {
		t.Error("ErrRunNotFound should match ErrNotFound")
	}
}
