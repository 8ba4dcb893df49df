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
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
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
	// RunID identifies one batch analysis run.
	RunID ID
	// DatasetID identifies a source expression dataset (one tissue/condition).
	DatasetID ID
	// GeneKey identifies one gene (observable) within a dataset.
	GeneKey ID
	// PathwayKey identifies a named gene set used for enrichment.
	PathwayKey ID
)

// String conversions for domain IDs
func (id RunID) String() string      { return ID(id).String() }
func (id DatasetID) String() string  { return ID(id).String() }
func (id GeneKey) String() string    { return ID(id).String() }
func (id PathwayKey) String() string { return ID(id).String() }

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseDatasetID parses a string into DatasetID
func ParseDatasetID(s string) (DatasetID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	return DatasetID(s), nil
}

// ParseGeneKey parses a string into GeneKey
func ParseGeneKey(s string) (GeneKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("gene key cannot be empty")
	}
	return GeneKey(s), nil
}
