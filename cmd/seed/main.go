// Package main provides the seed command-line tool: it generates a
// deterministic synthetic raw-record file for sample runs and local
// verification.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[0;31m"
	colorGreen = "\033[0;32m"
)

func logInfo(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorGreen, colorReset, msg)
}

func logError(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorRed, colorReset, msg)
}

type rawRecord struct {
	SchoolID        string `json:"school_id,omitempty"`
	Name            string `json:"name"`
	RawAddress      string `json:"raw_address"`
	Phone           string `json:"phone"`
	AdminName       string `json:"admin_name"`
	AdminEmail      string `json:"admin_email"`
	InstitutionType string `json:"institution_type"`
	Enrollment      *int   `json:"enrollment,omitempty"`
	SourceID        string `json:"source_id"`
}

var cities = []string{
	"Los Angeles", "San Diego", "San Jose", "Fresno", "Sacramento",
	"Oakland", "Bakersfield", "Anaheim", "Riverside", "Stockton",
}

var streets = []string{"Elm St", "Oak Ave", "Maple Dr", "Main St", "Sunset Blvd"}

var nouns = []string{"Valley", "Hillside", "Riverside", "Summit", "Harbor", "Meadow"}

func main() {
	outputPath := flag.String("output", "data/raw/schools.jsonl", "Output JSONL path")
	count := flag.Int("count", 50, "Number of schools to generate")
	seed := flag.Int64("seed", 1, "Random seed (fixed seed gives a reproducible file)")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0755); err != nil {
		logError(fmt.Sprintf("Cannot create output directory: %v", err))
		os.Exit(1)
	}

	f, err := os.Create(*outputPath)
	if err != nil {
		logError(fmt.Sprintf("Cannot create output file: %v", err))
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	written := 0

	for i := 0; i < *count; i++ {
		rec := makeRecord(rng, i)
		if err := enc.Encode(rec); err != nil {
			logError(fmt.Sprintf("Write failed: %v", err))
			os.Exit(1)
		}

		written++

		// Roughly every sixth school gets a duplicate observation with a
		// conflicting phone number, exercising the merger.
		if i%6 == 2 {
			dup := rec
			dup.Phone = fmt.Sprintf("(916) 555-%04d", rng.Intn(10000))
			dup.SourceID = "directory-secondary"

			if err := enc.Encode(dup); err != nil {
				logError(fmt.Sprintf("Write failed: %v", err))
				os.Exit(1)
			}

			written++
		}
	}

	logInfo(fmt.Sprintf("Wrote %d records to %s", written, *outputPath))
}

func makeRecord(rng *rand.Rand, i int) rawRecord {
	city := cities[rng.Intn(len(cities))]
	street := streets[rng.Intn(len(streets))]
	noun := nouns[rng.Intn(len(nouns))]

	institution := "public"
	if rng.Intn(4) == 0 {
		institution = "private"
	}

	rec := rawRecord{
		SchoolID:        fmt.Sprintf("%02d-%05d", rng.Intn(60), i),
		Name:            fmt.Sprintf("%s %s School", noun, city),
		RawAddress:      fmt.Sprintf("%d %s, %s, CA %05d", 100+rng.Intn(9900), street, city, 90000+rng.Intn(6000)),
		Phone:           fmt.Sprintf("(916) 555-%04d", rng.Intn(10000)),
		AdminName:       fmt.Sprintf("Admin %d", i),
		AdminEmail:      fmt.Sprintf("admin%d@example.org", i),
		InstitutionType: institution,
		SourceID:        "directory-primary",
	}

	// Some public schools arrive without an enrollment figure; they must
	// survive the run unscored.
	if rng.Intn(8) != 0 {
		enrollment := 100 + rng.Intn(2400)
		rec.Enrollment = &enrollment
	}

	return rec
}
