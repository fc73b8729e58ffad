// Package validator checks raw records against the ingest schema contract.
// It isolates the core from upstream format instability: whatever the
// scraper emits, only records satisfying the RawRecord contract enter the
// pipeline.
package validator

import (
	"errors"
	"fmt"

	"schoolleads/internal/models"
)

// Schema validation errors.
var (
	ErrNameRequired           = errors.New("name is required")
	ErrInvalidInstitutionType = errors.New("institution_type must be public or private")
	ErrNegativeEnrollment     = errors.New("enrollment must be non-negative")
)

// ValidationError records one rejected field with its record index.
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

// ValidationStats summarizes a batch validation pass.
type ValidationStats struct {
	Total   int
	Valid   int
	Invalid int
}

// ValidationResult contains the outcome of validating a batch.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// Validator validates raw records.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRecord returns the first schema violation for a single record.
func (v *Validator) ValidateRecord(rec models.RawRecord) error {
	if rec.Name == "" {
		return ErrNameRequired
	}

	if !rec.InstitutionType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidInstitutionType, rec.InstitutionType)
	}

	if rec.Enrollment != nil && *rec.Enrollment < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeEnrollment, *rec.Enrollment)
	}

	return nil
}

// ValidateBatch splits a batch into the records that satisfy the schema
// and a result describing the rejects. Records without a source id pass but
// are flagged, since recency-based merging relies on provenance.
func (v *Validator) ValidateBatch(records []models.RawRecord) ([]models.RawRecord, ValidationResult) {
	result := ValidationResult{
		Stats: ValidationStats{Total: len(records)},
	}

	valid := make([]models.RawRecord, 0, len(records))

	for i, rec := range records {
		if err := v.ValidateRecord(rec); err != nil {
			result.Stats.Invalid++
			result.Errors = append(result.Errors, ValidationError{
				Index:   i,
				Field:   fieldOf(err),
				Message: err.Error(),
			})

			continue
		}

		if rec.SourceID == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("record %d (%s) has no source_id", i, rec.Name))
		}

		result.Stats.Valid++

		valid = append(valid, rec)
	}

	result.IsValid = result.Stats.Invalid == 0

	return valid, result
}

func fieldOf(err error) string {
	switch {
	case errors.Is(err, ErrNameRequired):
		return "name"
	case errors.Is(err, ErrInvalidInstitutionType):
		return "institution_type"
	case errors.Is(err, ErrNegativeEnrollment):
		return "enrollment"
	default:
		return ""
	}
}
