// Package store reads persisted raw records and writes the categorized
// output files handed to the spreadsheet collaborator.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"schoolleads/internal/models"
)

// ReadResult is the outcome of loading a raw record file.
type ReadResult struct {
	Records []models.RawRecord
	// Skipped counts malformed lines dropped during parsing.
	Skipped int
	// Truncated reports that the sample limit cut the input short.
	Truncated bool
}

// ReadRawRecords loads line-delimited JSON records from path. An absent or
// unreadable file is a structural failure and returns an error; malformed
// individual lines are skipped and counted. limit > 0 stops reading after
// that many records (sample mode); it changes input volume only.
func ReadRawRecords(path string, limit int) (ReadResult, error) {
	var res ReadResult

	f, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("failed to open raw record file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if limit > 0 && len(res.Records) >= limit {
			res.Truncated = true

			break
		}

		var rec models.RawRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			res.Skipped++

			continue
		}

		res.Records = append(res.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("failed to read raw record file %s: %w", path, err)
	}

	return res, nil
}
