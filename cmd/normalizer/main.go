// Package main provides the normalizer command-line tool for inspecting
// the address-parsing stage in isolation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"schoolleads/internal/address"
	"schoolleads/internal/models"
	"schoolleads/internal/store"
)

func main() {
	inputPath := flag.String("input", "", "Path to raw record JSONL file")
	outputPath := flag.String("output", "", "Path to output JSONL file")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Usage: normalizer -input <raw.jsonl> -output <normalized.jsonl>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	res, err := store.ReadRawRecords(*inputPath, 0)
	if err != nil {
		log.Fatalf("Error reading records: %v\n", err)
	}

	fmt.Printf("📂 Read %d records from %s (%d malformed lines skipped)\n",
		len(res.Records), *inputPath, res.Skipped)

	normalizer := address.NewNormalizer()

	parsed := 0
	normalized := make([]models.NormalizedRecord, 0, len(res.Records))

	for _, rec := range res.Records {
		addr := normalizer.Parse(rec.RawAddress)
		if addr.City != "" {
			parsed++
		}

		normalized = append(normalized, models.NormalizedRecord{Raw: rec, Address: addr})
	}

	fmt.Printf("🔍 Parsed a city for %d/%d records\n", parsed, len(normalized))

	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath), 0755); mkdirErr != nil {
		log.Fatalf("Error creating directory: %v\n", mkdirErr)
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Error creating file: %v\n", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	for _, rec := range normalized {
		if err := enc.Encode(rec); err != nil {
			log.Fatalf("Error writing record: %v\n", err)
		}
	}

	fmt.Printf("✅ Saved to: %s\n", *outputPath)
}
