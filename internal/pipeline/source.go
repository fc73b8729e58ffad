package pipeline

import (
	"schoolleads/internal/models"
	"schoolleads/internal/store"
)

// FileSource reads raw records from the persisted JSONL file.
type FileSource struct {
	Path  string
	Limit int
}

// Records implements Source.
func (s FileSource) Records() ([]models.RawRecord, int, bool, error) {
	res, err := store.ReadRawRecords(s.Path, s.Limit)

	return res.Records, res.Skipped, res.Truncated, err
}

// SliceSource serves an in-memory batch, used by tests.
type SliceSource []models.RawRecord

// Records implements Source.
func (s SliceSource) Records() ([]models.RawRecord, int, bool, error) {
	return s, 0, false, nil
}
