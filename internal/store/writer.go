package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"schoolleads/internal/categorize"
	"schoolleads/internal/logger"
	"schoolleads/internal/models"
	"schoolleads/pkg/manifest"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// csvHeader is the column contract for the spreadsheet collaborator.
var csvHeader = []string{
	"school_id", "school_name", "street", "line2", "city", "state", "zip",
	"phone", "admin_name", "admin_email", "enrollment",
	"demographic_ratio", "score",
}

// Exporter writes the two categorized output files. It stands in for the
// spreadsheet collaborator's ingest boundary: one file per group, columns
// fixed, rows already in final order.
type Exporter struct {
	dir           string
	format        string
	writeManifest bool
	log           *logger.Logger
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir, format string, writeManifest bool, log *logger.Logger) *Exporter {
	return &Exporter{dir: dir, format: format, writeManifest: writeManifest, log: log}
}

// Export writes public and private output files, plus a signed manifest
// when enabled.
func (e *Exporter) Export(res categorize.Result) error {
	if e.format != FormatCSV && e.format != FormatJSONL {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, e.format)
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	files := map[string][]models.ScoredRecord{
		"public." + e.format:  res.Public,
		"private." + e.format: res.Private,
	}

	counts := make(map[string]int, len(files))

	for name, records := range files {
		path := filepath.Join(e.dir, name)

		var err error
		if e.format == FormatCSV {
			err = writeCSV(path, records)
		} else {
			err = writeJSONL(path, records)
		}

		if err != nil {
			return err
		}

		counts[name] = len(records)

		if e.log != nil {
			e.log.Info("wrote export file", "path", path, "records", len(records))
		}
	}

	if !e.writeManifest {
		return nil
	}

	if _, err := manifest.Sign(e.dir, counts); err != nil {
		return err
	}

	if e.log != nil {
		e.log.Info("signed export manifest", "dir", e.dir)
	}

	return nil
}

func writeCSV(path string, records []models.ScoredRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		enrollment := ""
		if rec.Enrollment != nil {
			enrollment = strconv.Itoa(*rec.Enrollment)
		}

		row := []string{
			rec.SchoolID,
			rec.Name,
			rec.Address.Street,
			rec.Address.Line2,
			rec.Address.City,
			rec.Address.State,
			rec.Address.Zip,
			rec.Phone,
			rec.AdminName,
			rec.AdminEmail,
			enrollment,
			rec.Ratio.String(),
			rec.Score.String(),
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return nil
}

func writeJSONL(path string, records []models.ScoredRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	return nil
}
