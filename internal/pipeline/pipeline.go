// Package pipeline orchestrates the normalization, merge, enrichment,
// scoring, and categorization stages over one batch of raw records.
package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"

	"schoolleads/internal/address"
	"schoolleads/internal/categorize"
	"schoolleads/internal/config"
	"schoolleads/internal/demographics"
	"schoolleads/internal/enrich"
	"schoolleads/internal/logger"
	"schoolleads/internal/merge"
	"schoolleads/internal/models"
	"schoolleads/internal/score"
	"schoolleads/internal/validator"
)

// Stats summarizes one batch run.
type Stats struct {
	Read         int
	SkippedLines int
	Rejected     int
	Canonical    int
	Public       int
	Private      int
	Unscored     int
	Truncated    bool
}

// Source supplies the raw record batch. The store reader is the production
// implementation; tests substitute in-memory batches.
type Source interface {
	Records() ([]models.RawRecord, int, bool, error)
}

// Pipeline runs the batch transform. The batch either completes as a unit
// or fails as a unit; there is no partial-retry path in this layer.
type Pipeline struct {
	cfg *config.Config
	log *logger.Logger
}

// New creates a pipeline from config.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the full transform against src and the demographic dataset
// named in config, returning the categorized result.
func (p *Pipeline) Run(src Source) (categorize.Result, Stats, error) {
	var stats Stats

	// The demographic index is a structural prerequisite: load it first so
	// a bad dataset fails the run before any work happens. It stays
	// read-only from here on.
	index, err := demographics.LoadIndex(p.cfg.Pipeline.Demographics.Path)
	if err != nil {
		return categorize.Result{}, stats, err
	}

	p.log.Info("demographic index built", "cities", index.Len())

	raw, skipped, truncated, err := src.Records()
	if err != nil {
		return categorize.Result{}, stats, fmt.Errorf("failed to load raw records: %w", err)
	}

	stats.Read = len(raw)
	stats.SkippedLines = skipped
	stats.Truncated = truncated

	if truncated {
		p.log.Info("sample mode truncated input", "records", len(raw))
	}

	if skipped > 0 {
		p.log.Warn("skipped malformed input lines", "count", skipped)
	}

	valid, vres := validator.NewValidator().ValidateBatch(raw)
	stats.Rejected = vres.Stats.Invalid

	for _, verr := range vres.Errors {
		p.log.Warn("rejected raw record", "index", verr.Index, "field", verr.Field, "reason", verr.Message)
	}

	for _, w := range vres.Warnings {
		p.log.Debug("raw record warning", "detail", w)
	}

	result := p.transform(valid, index, &stats)

	p.log.Info("batch complete",
		"read", stats.Read,
		"rejected", stats.Rejected,
		"canonical", stats.Canonical,
		"public", stats.Public,
		"private", stats.Private,
		"unscored", stats.Unscored,
	)

	return result, stats, nil
}

// transform runs the in-memory stages over validated records.
func (p *Pipeline) transform(raw []models.RawRecord, index *demographics.Index, stats *Stats) categorize.Result {
	workers := p.cfg.Advanced.Workers

	// Address parsing is per-record and order-preserving, so it shards
	// freely across workers.
	normalizer := address.NewNormalizer()
	normalized := mapOrdered(raw, workers, func(rec models.RawRecord) models.NormalizedRecord {
		// Contact fields carry the same scraper artifacts the address does.
		rec.Phone = address.CleanText(rec.Phone)
		rec.AdminName = address.CleanText(rec.AdminName)
		rec.AdminEmail = address.CleanText(rec.AdminEmail)

		return models.NormalizedRecord{
			Raw:     rec,
			Address: normalizer.Parse(rec.RawAddress),
		}
	})

	// Merging is inherently sequential: recency depends on observation
	// order.
	canonical := merge.NewMerger(p.log).Merge(normalized)
	stats.Canonical = len(canonical)

	// Enrichment shares the read-only index across workers; each record's
	// lookup is independent.
	enricher := enrich.NewEnricher(index, p.log)
	enriched := mapOrdered(canonical, workers, enricher.Enrich)

	// Synchronization point: by now all records are enriched, so the
	// batch-wide enrollment bounds are fixed and scoring can start.
	weights := score.Weights{
		Enrollment:  p.cfg.Pipeline.Scoring.EnrollmentWeight,
		Demographic: p.cfg.Pipeline.Scoring.DemographicWeight,
	}

	scored := score.NewScorer(weights).ScoreBatch(enriched)

	for _, rec := range scored {
		if !rec.Score.Scored {
			stats.Unscored++
		}
	}

	result := categorize.NewCategorizer(p.cfg.Pipeline.Scoring.SortByScore).Partition(scored)
	stats.Public = len(result.Public)
	stats.Private = len(result.Private)

	return result
}

// mapOrdered applies fn to every element, preserving input order. With one
// worker it runs inline; otherwise elements are claimed off a shared
// counter and results land in per-index slots, so no ordering is lost.
func mapOrdered[T, U any](in []T, workers int, fn func(T) U) []U {
	out := make([]U, len(in))

	if workers <= 1 || len(in) < 2 {
		for i, v := range in {
			out[i] = fn(v)
		}

		return out
	}

	if workers > len(in) {
		workers = len(in)
	}

	var next atomic.Int64

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				i := int(next.Add(1)) - 1
				if i >= len(in) {
					return
				}

				out[i] = fn(in[i])
			}
		}()
	}

	wg.Wait()

	return out
}
