package integration

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"schoolleads/internal/config"
	"schoolleads/internal/logger"
	"schoolleads/internal/pipeline"
	"schoolleads/internal/store"
	"schoolleads/pkg/manifest"
)

// Ratios derived from the fixture dataset.
const (
	fresnoRatio     = 39074.0 / 542107.0
	oaklandRatio    = 102870.0 / 440646.0
	sacramentoRatio = 68124.0 / 524943.0
)

func fixtureConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Pipeline.Input.Path = filepath.Join("..", "fixtures", "schools.jsonl")
	cfg.Pipeline.Demographics.Path = filepath.Join("..", "fixtures", "california_city.csv")
	cfg.Pipeline.Output.Dir = t.TempDir()

	return cfg
}

func TestPipelineEndToEnd(t *testing.T) {
	cfg := fixtureConfig(t)
	log := logger.NewLoggerTo(io.Discard, "error")

	p := pipeline.New(cfg, log)

	result, stats, err := p.Run(pipeline.FileSource{Path: cfg.Pipeline.Input.Path})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The fixture holds 7 records plus one malformed line. One pair shares
	// a school ID, so 6 canonical records come out.
	if stats.Read != 7 {
		t.Errorf("Read = %d, want 7", stats.Read)
	}

	if stats.SkippedLines != 1 {
		t.Errorf("SkippedLines = %d, want 1", stats.SkippedLines)
	}

	if stats.Canonical != 6 {
		t.Errorf("Canonical = %d, want 6", stats.Canonical)
	}

	if len(result.Public) != 4 || len(result.Private) != 2 {
		t.Fatalf("partition = %d public / %d private, want 4/2",
			len(result.Public), len(result.Private))
	}

	// Riverbend has no enrollment and Lakeside's city is not in the
	// dataset; both stay unscored.
	if stats.Unscored != 2 {
		t.Errorf("Unscored = %d, want 2", stats.Unscored)
	}

	// Ranked descending: Hilltop carries both the max enrollment and the
	// highest city ratio.
	if result.Public[0].Name != "Hilltop High School" {
		t.Errorf("top public lead = %s, want Hilltop High School", result.Public[0].Name)
	}

	wantTop := 0.5*1.0 + 0.5*oaklandRatio
	if got := result.Public[0].Score; !got.Scored || math.Abs(got.Value-wantTop) > 1e-9 {
		t.Errorf("top score = %v, want %f", got, wantTop)
	}

	// Unscored leads rank last within their group.
	if result.Public[3].Name != "Riverbend Charter" || result.Public[3].Score.Scored {
		t.Errorf("last public lead = %s (scored=%v), want unscored Riverbend Charter",
			result.Public[3].Name, result.Public[3].Score.Scored)
	}

	if result.Private[1].Name != "Lakeside Preparatory" || result.Private[1].Score.Scored {
		t.Errorf("last private lead = %s (scored=%v), want unscored Lakeside Preparatory",
			result.Private[1].Name, result.Private[1].Score.Scored)
	}
}

func TestPipelineEndToEnd_MergeRecency(t *testing.T) {
	cfg := fixtureConfig(t)
	p := pipeline.New(cfg, logger.NewLoggerTo(io.Discard, "error"))

	result, _, err := p.Run(pipeline.FileSource{Path: cfg.Pipeline.Input.Path})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, rec := range result.Public {
		if rec.SchoolID != "C-1041" {
			continue
		}

		// The secondary directory appears later in the sequence, so its
		// phone wins the conflict.
		if rec.Phone != "(559) 555-0099" {
			t.Errorf("merged phone = %s, want (559) 555-0099", rec.Phone)
		}

		if len(rec.SourceIDs) != 2 {
			t.Errorf("SourceIDs = %v, want both directories", rec.SourceIDs)
		}

		return
	}

	t.Fatal("merged record C-1041 not found")
}

func TestPipelineEndToEnd_ExportAndVerify(t *testing.T) {
	cfg := fixtureConfig(t)
	log := logger.NewLoggerTo(io.Discard, "error")

	p := pipeline.New(cfg, log)

	result, _, err := p.Run(pipeline.FileSource{Path: cfg.Pipeline.Input.Path})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	exp := store.NewExporter(cfg.Pipeline.Output.Dir, cfg.Pipeline.Output.Format, cfg.Pipeline.Output.WriteManifest, log)
	if err := exp.Export(result); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if err := manifest.Verify(cfg.Pipeline.Output.Dir); err != nil {
		t.Fatalf("manifest verification failed: %v", err)
	}

	f, err := os.Open(filepath.Join(cfg.Pipeline.Output.Dir, "public.csv"))
	if err != nil {
		t.Fatalf("public.csv not written: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse public.csv: %v", err)
	}

	if len(rows) != 5 {
		t.Fatalf("public.csv has %d rows, want header + 4 leads", len(rows))
	}

	// The unscored lead renders its marker rather than an empty cell.
	last := rows[len(rows)-1]
	if last[12] != "unscored" {
		t.Errorf("last score cell = %q, want unscored", last[12])
	}
}

func TestPipelineEndToEnd_SampleMode(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Features.SampleMode = true
	cfg.Features.SampleSize = 3

	p := pipeline.New(cfg, logger.NewLoggerTo(io.Discard, "error"))

	_, stats, err := p.Run(pipeline.FileSource{
		Path:  cfg.Pipeline.Input.Path,
		Limit: cfg.SampleLimit(),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Read != 3 {
		t.Errorf("Read = %d, want sample of 3", stats.Read)
	}

	if !stats.Truncated {
		t.Error("Truncated = false, want true in sample mode")
	}
}
