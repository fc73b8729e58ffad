// Package demographics loads the city-level demographic dataset into a
// read-only lookup keyed by normalized city name.
package demographics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"schoolleads/internal/address"
	"schoolleads/internal/models"
)

// Dataset loading errors. A demographic dataset that cannot be loaded is a
// structural prerequisite failure and aborts the run.
var (
	ErrEmptyDataset      = errors.New("demographic dataset contains no rows")
	ErrMissingCityColumn = errors.New("demographic dataset has no city column")
)

// column aliases: the clean export format and the Data Commons headers the
// upstream dataset ships with.
var (
	cityColumns  = []string{"city", "placeName"}
	stateColumns = []string{"state", "stateName"}
	totalColumns = []string{"total_population", "Value:Count_Person"}
	blackColumns = []string{"black_population", "Value:Count_Person_BlackOrAfricanAmericanAlone"}
)

// Index is the per-run city lookup. It is built once, read-only afterward,
// and safe to share across concurrent lookups. Each run constructs its own
// index; there is no package-level instance.
type Index struct {
	cities map[string]models.CityDemographics
}

// NewIndex builds an index from already-parsed rows. Rows without a city
// name are dropped; a later row for the same city key replaces the earlier
// one.
func NewIndex(rows []models.CityDemographics) *Index {
	cities := make(map[string]models.CityDemographics, len(rows))

	for _, row := range rows {
		key := address.CityKey(row.City)
		if key == "" {
			continue
		}

		cities[key] = row
	}

	return &Index{cities: cities}
}

// LoadIndex reads the demographic CSV at path and builds the run's index.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open demographic dataset: %w", err)
	}
	defer f.Close()

	rows, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse demographic dataset %s: %w", path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, path)
	}

	return NewIndex(rows), nil
}

// Lookup returns the demographics for a city name, normalizing it the same
// way the index keys were normalized. Matching is exact on the normalized
// key; there is no fuzzy fallback.
func (ix *Index) Lookup(city string) (models.CityDemographics, bool) {
	row, ok := ix.cities[address.CityKey(city)]

	return row, ok
}

// Len returns the number of cities in the index.
func (ix *Index) Len() int {
	return len(ix.cities)
}

func parseCSV(r io.Reader) ([]models.CityDemographics, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cityIdx := columnIndex(header, cityColumns)
	if cityIdx < 0 {
		return nil, ErrMissingCityColumn
	}

	stateIdx := columnIndex(header, stateColumns)
	totalIdx := columnIndex(header, totalColumns)
	blackIdx := columnIndex(header, blackColumns)

	var rows []models.CityDemographics

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		city := strings.TrimSpace(field(record, cityIdx))
		if city == "" {
			continue
		}

		row := models.CityDemographics{
			City:  city,
			State: strings.TrimSpace(field(record, stateIdx)),
		}

		total, totalOK := parseCount(field(record, totalIdx))
		black, blackOK := parseCount(field(record, blackIdx))

		row.TotalPopulation = total
		row.BlackPopulation = black

		// The ratio is only defined when both counts are usable; a zero or
		// missing total stays unknown rather than becoming 0.0.
		if totalOK && blackOK && total > 0 {
			row.Ratio = models.KnownRatio(float64(black) / float64(total))
		} else {
			row.Ratio = models.UnknownRatio()
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func columnIndex(header []string, names []string) int {
	for i, col := range header {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i
			}
		}
	}

	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return record[idx]
}

func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}
