// Package score computes lead scores over enriched school records.
package score

import (
	"schoolleads/internal/models"
)

// Weights configures the public-school composite score. They come from
// configuration, not constants, so alternate weightings need no code
// change.
type Weights struct {
	Enrollment  float64
	Demographic float64
}

// DefaultWeights weights enrollment and demographics equally.
func DefaultWeights() Weights {
	return Weights{Enrollment: 0.5, Demographic: 0.5}
}

// Bounds holds the batch-wide enrollment range used for min-max scaling.
// They are a function of the whole batch, so they must be computed after
// enrichment completes and before any record is scored.
type Bounds struct {
	Min   int
	Max   int
	Known bool
}

// ComputeBounds scans the batch for the enrollment range. Only public
// records that carry an enrollment participate; records missing it are
// excluded here and stay unscored.
func ComputeBounds(records []models.EnrichedRecord) Bounds {
	var b Bounds

	for _, rec := range records {
		if rec.InstitutionType != models.Public || rec.Enrollment == nil {
			continue
		}

		e := *rec.Enrollment
		if !b.Known {
			b = Bounds{Min: e, Max: e, Known: true}

			continue
		}

		if e < b.Min {
			b.Min = e
		}

		if e > b.Max {
			b.Max = e
		}
	}

	return b
}

// Normalize maps an enrollment into [0,1] via min-max scaling. A degenerate
// batch where every known enrollment is equal maps to 1.0.
func (b Bounds) Normalize(enrollment int) float64 {
	if !b.Known || b.Max == b.Min {
		return 1.0
	}

	return float64(enrollment-b.Min) / float64(b.Max-b.Min)
}

// Formula turns one enriched record into an optional score. Implementations
// must be pure: same record and bounds, same result.
type Formula interface {
	Score(rec models.EnrichedRecord, b Bounds) models.Score
}

// CompositeFormula is the default policy: weighted enrollment plus
// demographic ratio for public schools, the ratio alone for private ones.
// Records with an unknown ratio, or public records without enrollment,
// come back unscored.
type CompositeFormula struct {
	Weights Weights
}

// Score implements Formula.
func (f CompositeFormula) Score(rec models.EnrichedRecord, b Bounds) models.Score {
	if !rec.Ratio.Known {
		return models.Unscored()
	}

	if rec.InstitutionType == models.Private {
		return models.NewScore(rec.Ratio.Value)
	}

	if rec.Enrollment == nil {
		return models.Unscored()
	}

	norm := b.Normalize(*rec.Enrollment)

	return models.NewScore(f.Weights.Enrollment*norm + f.Weights.Demographic*rec.Ratio.Value)
}

// Scorer applies a formula across a batch.
type Scorer struct {
	formula Formula
}

// NewScorer creates a scorer using the composite formula with the given
// weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{formula: CompositeFormula{Weights: w}}
}

// NewScorerWithFormula creates a scorer with a substitute formula.
func NewScorerWithFormula(f Formula) *Scorer {
	return &Scorer{formula: f}
}

// ScoreBatch computes bounds over the whole batch, then scores each record.
// Output order matches input order.
func (s *Scorer) ScoreBatch(records []models.EnrichedRecord) []models.ScoredRecord {
	bounds := ComputeBounds(records)

	out := make([]models.ScoredRecord, len(records))
	for i, rec := range records {
		out[i] = models.ScoredRecord{
			EnrichedRecord: rec,
			Score:          s.formula.Score(rec, bounds),
		}
	}

	return out
}
