// Package categorize partitions scored records into the public and private
// output groups.
package categorize

import (
	"sort"

	"schoolleads/internal/models"
)

// Result is the hand-off contract to the output sink: two ordered sequences
// of scored records, ready for tabular rendering with no further
// transformation.
type Result struct {
	Public  []models.ScoredRecord
	Private []models.ScoredRecord
}

// Categorizer splits a batch by institution type. The partition is
// exhaustive and disjoint; every input record lands in exactly one group.
type Categorizer struct {
	sortByScore bool
}

// NewCategorizer creates a categorizer. With sortByScore, each group is
// ordered by score descending with unscored records last; otherwise input
// order is preserved.
func NewCategorizer(sortByScore bool) *Categorizer {
	return &Categorizer{sortByScore: sortByScore}
}

// Partition splits records into the two output groups. Records not marked
// public fall into the private group, mirroring the upstream data where
// the public marker is the authoritative signal.
func (c *Categorizer) Partition(records []models.ScoredRecord) Result {
	var res Result

	for _, rec := range records {
		if rec.InstitutionType == models.Public {
			res.Public = append(res.Public, rec)
		} else {
			res.Private = append(res.Private, rec)
		}
	}

	if c.sortByScore {
		sortGroup(res.Public)
		sortGroup(res.Private)
	}

	return res
}

// sortGroup orders by score descending, unscored records last. The sort is
// stable so equal records keep their input order.
func sortGroup(records []models.ScoredRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Score, records[j].Score

		if a.Scored != b.Scored {
			return a.Scored
		}

		if !a.Scored {
			return false
		}

		return a.Value > b.Value
	})
}
