// Package models defines data structures shared by the pipeline stages.
package models

import (
	"github.com/google/uuid"
)

// InstitutionType marks a school as public or private.
type InstitutionType string

// Valid institution types.
const (
	Public  InstitutionType = "public"
	Private InstitutionType = "private"
)

// Valid returns true if the type is one of the known markers.
func (t InstitutionType) Valid() bool {
	return t == Public || t == Private
}

// RawRecord is a single school entry as produced by the scraping
// collaborator. It is immutable once ingested; observation order within the
// input sequence defines recency for merge conflict resolution.
type RawRecord struct {
	SchoolID        string          `json:"school_id,omitempty"`
	Name            string          `json:"name"`
	RawAddress      string          `json:"raw_address"`
	Phone           string          `json:"phone"`
	AdminName       string          `json:"admin_name"`
	AdminEmail      string          `json:"admin_email"`
	InstitutionType InstitutionType `json:"institution_type"`
	Enrollment      *int            `json:"enrollment,omitempty"`
	SourceID        string          `json:"source_id"`
}

// NormalizedAddress holds the structured components parsed from a free-text
// address. Unparseable components stay empty; Raw always retains the
// original string for audit.
type NormalizedAddress struct {
	Street string `json:"street"`
	Line2  string `json:"line2,omitempty"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Raw    string `json:"raw"`
}

// NormalizedRecord pairs a RawRecord with its parsed address. It is the
// unit handed from the address normalizer to the merger.
type NormalizedRecord struct {
	Raw     RawRecord         `json:"raw"`
	Address NormalizedAddress `json:"address"`
}

// CanonicalRecord is the single merged view of one school.
type CanonicalRecord struct {
	ID              uuid.UUID         `json:"id"`
	SchoolID        string            `json:"school_id,omitempty"`
	Name            string            `json:"name"`
	Address         NormalizedAddress `json:"address"`
	Phone           string            `json:"phone"`
	AdminName       string            `json:"admin_name"`
	AdminEmail      string            `json:"admin_email"`
	InstitutionType InstitutionType   `json:"institution_type"`
	Enrollment      *int              `json:"enrollment,omitempty"`
	SourceIDs       []string          `json:"source_ids"`
}

// EnrichedRecord is a CanonicalRecord with its city-level demographic ratio
// attached. The ratio is explicitly unknown on a lookup miss.
type EnrichedRecord struct {
	CanonicalRecord
	Ratio Ratio `json:"demographic_ratio"`
}

// ScoredRecord is an EnrichedRecord plus its optional score: a composite
// score for public schools, a ranking score for private ones.
type ScoredRecord struct {
	EnrichedRecord
	Score Score `json:"score"`
}
