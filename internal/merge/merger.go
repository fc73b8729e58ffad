// Package merge consolidates duplicate raw records into canonical school
// records.
package merge

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/google/uuid"

	"schoolleads/internal/address"
	"schoolleads/internal/logger"
	"schoolleads/internal/models"
	"schoolleads/pkg/utils"
)

// Merger groups normalized records that refer to the same school and
// resolves them to one CanonicalRecord each. Grouping uses the external
// school id when present, otherwise the tokenized school name plus city
// key. Conflicts between non-empty values resolve last-writer-wins in
// observation order, and every discrepancy is logged.
type Merger struct {
	log *logger.Logger
}

// NewMerger creates a merger that reports conflicts through log.
func NewMerger(log *logger.Logger) *Merger {
	return &Merger{log: log}
}

// idNamespace seeds deterministic canonical record ids: the same group key
// always yields the same UUID.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("schoolleads/canonical"))

// Merge consolidates records in observation order. Records with no
// duplicates pass through as their own canonical record. Group order
// follows each group's first appearance, so a fixed input ordering always
// produces the same output.
func (m *Merger) Merge(records []models.NormalizedRecord) []models.CanonicalRecord {
	byKey := make(map[string]*models.CanonicalRecord)

	var order []string

	for _, rec := range records {
		key := GroupKey(rec)

		existing, ok := byKey[key]
		if !ok {
			canonical := newCanonical(key, rec)
			byKey[key] = &canonical
			order = append(order, key)

			continue
		}

		m.apply(existing, rec)
	}

	out := make([]models.CanonicalRecord, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}

	return out
}

// GroupKey identifies the school a record belongs to.
func GroupKey(rec models.NormalizedRecord) string {
	if rec.Raw.SchoolID != "" {
		return "id:" + rec.Raw.SchoolID
	}

	return "name:" + NameKey(rec.Raw.Name) + "|" + address.CityKey(rec.Address.City)
}

// NameKey reduces a school name to its lowercase word tokens so that
// punctuation and spacing differences do not split a group.
func NameKey(name string) string {
	var tokens []string

	iter := words.FromString(strings.ToLower(name))
	for iter.Next() {
		tok := strings.TrimSpace(iter.Value())
		if tok == "" || isPunct(tok) {
			continue
		}

		tokens = append(tokens, tok)
	}

	return strings.Join(tokens, " ")
}

func isPunct(tok string) bool {
	for _, r := range tok {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127 {
			return false
		}
	}

	return true
}

func newCanonical(key string, rec models.NormalizedRecord) models.CanonicalRecord {
	return models.CanonicalRecord{
		ID:              uuid.NewSHA1(idNamespace, []byte(key)),
		SchoolID:        rec.Raw.SchoolID,
		Name:            rec.Raw.Name,
		Address:         rec.Address,
		Phone:           rec.Raw.Phone,
		AdminName:       rec.Raw.AdminName,
		AdminEmail:      rec.Raw.AdminEmail,
		InstitutionType: rec.Raw.InstitutionType,
		Enrollment:      rec.Raw.Enrollment,
		SourceIDs:       []string{rec.Raw.SourceID},
	}
}

// apply folds a later observation into the canonical record. Non-empty
// beats empty; two differing non-empty values resolve to the later one.
func (m *Merger) apply(dst *models.CanonicalRecord, rec models.NormalizedRecord) {
	dst.SourceIDs = append(dst.SourceIDs, rec.Raw.SourceID)

	m.mergeField(dst, "name", &dst.Name, rec.Raw.Name, rec.Raw.SourceID)
	m.mergeField(dst, "phone", &dst.Phone, rec.Raw.Phone, rec.Raw.SourceID)
	m.mergeField(dst, "admin_name", &dst.AdminName, rec.Raw.AdminName, rec.Raw.SourceID)
	m.mergeField(dst, "admin_email", &dst.AdminEmail, rec.Raw.AdminEmail, rec.Raw.SourceID)

	// The address merges as a unit: a partial street from one source must
	// not be stitched onto a city from another.
	if rec.Address.Raw != "" {
		if dst.Address.Raw != "" && dst.Address.Raw != rec.Address.Raw {
			m.logConflict(dst, "address",
				utils.TruncateString(dst.Address.Raw, 80),
				utils.TruncateString(rec.Address.Raw, 80),
				rec.Raw.SourceID)
		}

		dst.Address = rec.Address
	}

	if rec.Raw.Enrollment != nil {
		if dst.Enrollment != nil && *dst.Enrollment != *rec.Raw.Enrollment {
			m.logConflict(dst, "enrollment", *dst.Enrollment, *rec.Raw.Enrollment, rec.Raw.SourceID)
		}

		dst.Enrollment = rec.Raw.Enrollment
	}

	if rec.Raw.InstitutionType.Valid() && rec.Raw.InstitutionType != dst.InstitutionType {
		m.logConflict(dst, "institution_type", dst.InstitutionType, rec.Raw.InstitutionType, rec.Raw.SourceID)
		dst.InstitutionType = rec.Raw.InstitutionType
	}
}

func (m *Merger) mergeField(dst *models.CanonicalRecord, field string, target *string, incoming, sourceID string) {
	if incoming == "" {
		return
	}

	if *target != "" && *target != incoming {
		m.logConflict(dst, field, *target, incoming, sourceID)
	}

	*target = incoming
}

func (m *Merger) logConflict(dst *models.CanonicalRecord, field string, kept, replacement any, sourceID string) {
	if m.log == nil {
		return
	}

	m.log.Warn("merge conflict resolved last-writer-wins",
		"school", dst.Name,
		"field", field,
		"dropped", kept,
		"kept", replacement,
		"source", sourceID,
	)
}
