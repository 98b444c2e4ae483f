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
		// Fallback to v4 if v7 fails
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
	// ValidationID identifies one validation run end to end.
	ValidationID ID
	// ArtifactID identifies the discovery artifact under validation.
	ArtifactID ID
)

// String conversions for domain IDs
func (id ValidationID) String() string { return ID(id).String() }
func (id ArtifactID) String() string   { return ID(id).String() }

// NewValidationID mints a fresh validation run identifier.
func NewValidationID() ValidationID {
	return ValidationID(NewID())
}

// ParseValidationID parses a string into ValidationID
func ParseValidationID(s string) (ValidationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("validation ID cannot be empty")
	}
	return ValidationID(s), nil
}

// ParseArtifactID parses a string into ArtifactID
func ParseArtifactID(s string) (ArtifactID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("artifact ID cannot be empty")
	}
	return ArtifactID(s), nil
}
