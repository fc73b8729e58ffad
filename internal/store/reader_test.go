package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempJSONL(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	return path
}

func TestReadRawRecords(t *testing.T) {
	path := writeTempJSONL(t, `{"name":"Valley School","raw_address":"1 Main St, Fresno, CA 93701","institution_type":"public","enrollment":400,"source_id":"s1"}
{"name":"Summit Academy","raw_address":"2 Oak Ave, Oakland, CA 94601","institution_type":"private","source_id":"s1"}
`)

	res, err := ReadRawRecords(path, 0)
	if err != nil {
		t.Fatalf("ReadRawRecords returned error: %v", err)
	}

	if len(res.Records) != 2 {
		t.Fatalf("read %d records, want 2", len(res.Records))
	}

	if res.Records[0].Name != "Valley School" {
		t.Errorf("Name = %s", res.Records[0].Name)
	}

	if res.Records[0].Enrollment == nil || *res.Records[0].Enrollment != 400 {
		t.Error("enrollment not parsed")
	}

	if res.Records[1].Enrollment != nil {
		t.Error("absent enrollment should stay nil")
	}
}

func TestReadRawRecords_SkipsMalformedLines(t *testing.T) {
	path := writeTempJSONL(t, `{"name":"Good","institution_type":"public","source_id":"s1"}
this is not json

{"name":"Also Good","institution_type":"private","source_id":"s1"}
`)

	res, err := ReadRawRecords(path, 0)
	if err != nil {
		t.Fatalf("ReadRawRecords returned error: %v", err)
	}

	if len(res.Records) != 2 {
		t.Errorf("read %d records, want 2", len(res.Records))
	}

	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
}

func TestReadRawRecords_SampleLimit(t *testing.T) {
	path := writeTempJSONL(t, `{"name":"A","institution_type":"public","source_id":"s1"}
{"name":"B","institution_type":"public","source_id":"s1"}
{"name":"C","institution_type":"public","source_id":"s1"}
`)

	res, err := ReadRawRecords(path, 2)
	if err != nil {
		t.Fatalf("ReadRawRecords returned error: %v", err)
	}

	if len(res.Records) != 2 {
		t.Errorf("read %d records, want limit of 2", len(res.Records))
	}

	if !res.Truncated {
		t.Error("Truncated should be true when limit cuts input short")
	}
}

func TestReadRawRecords_MissingFile(t *testing.T) {
	if _, err := ReadRawRecords(filepath.Join(t.TempDir(), "absent.jsonl"), 0); err == nil {
		t.Fatal("expected error for absent input file")
	}
}
