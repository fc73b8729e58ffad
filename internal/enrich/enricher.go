// Package enrich joins canonical records against the demographic index.
package enrich

import (
	"schoolleads/internal/demographics"
	"schoolleads/internal/logger"
	"schoolleads/internal/models"
)

// Enricher attaches a city-level demographic ratio to each canonical
// record. Lookups are exact on the normalized city key; a miss attaches the
// explicit unknown marker instead of a default. Silent fuzzy matching is
// deliberately absent: a wrong enrichment would be untraceable downstream.
type Enricher struct {
	index *demographics.Index
	log   *logger.Logger
}

// NewEnricher creates an enricher over a built index.
func NewEnricher(index *demographics.Index, log *logger.Logger) *Enricher {
	return &Enricher{index: index, log: log}
}

// Enrich maps one canonical record to exactly one enriched record.
func (e *Enricher) Enrich(rec models.CanonicalRecord) models.EnrichedRecord {
	enriched := models.EnrichedRecord{
		CanonicalRecord: rec,
		Ratio:           models.UnknownRatio(),
	}

	if rec.Address.City == "" {
		e.debugMiss(rec, "record has no city")

		return enriched
	}

	row, ok := e.index.Lookup(rec.Address.City)
	if !ok {
		e.debugMiss(rec, "city not in demographic index")

		return enriched
	}

	enriched.Ratio = row.Ratio

	return enriched
}

// EnrichAll enriches records in order, preserving the 1:1 mapping.
func (e *Enricher) EnrichAll(records []models.CanonicalRecord) []models.EnrichedRecord {
	out := make([]models.EnrichedRecord, len(records))
	for i, rec := range records {
		out[i] = e.Enrich(rec)
	}

	return out
}

func (e *Enricher) debugMiss(rec models.CanonicalRecord, reason string) {
	if e.log == nil {
		return
	}

	e.log.Debug("demographic lookup miss",
		"school", rec.Name,
		"city", rec.Address.City,
		"reason", reason,
	)
}
