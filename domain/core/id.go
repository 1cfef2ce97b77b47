package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	RunID        ID
	PredictionID ID
)

func (id RunID) String() string        { return ID(id).String() }
func (id PredictionID) String() string { return ID(id).String() }

// UUID returns the identifier as a uuid.UUID, or uuid.Nil if it is not one
func (id ID) UUID() uuid.UUID {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil
	}
	return u
}

func (id RunID) UUID() uuid.UUID        { return ID(id).UUID() }
func (id PredictionID) UUID() uuid.UUID { return ID(id).UUID() }

// NewRunID creates an identifier for a remediation run
func NewRunID() RunID {
	return RunID(NewID())
}

// NewPredictionID creates an identifier for a served prediction
func NewPredictionID() PredictionID {
	return PredictionID(NewID())
}

// ParseRunID parses and validates a run identifier
func ParseRunID(s string) (RunID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewInvalidArgumentError("run id", "cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", NewInvalidArgumentError("run id", fmt.Sprintf("%q is not a valid UUID", s))
	}
	return RunID(s), nil
}
