// Package main provides the lead pipeline command: run the full batch
// transform, preview the ranked groups, or verify a previous export.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schoolleads/internal/categorize"
	"schoolleads/internal/config"
	"schoolleads/internal/logger"
	"schoolleads/internal/pipeline"
	"schoolleads/internal/preview"
	"schoolleads/internal/store"
	"schoolleads/pkg/manifest"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "School lead pipeline",
		Long:  `Normalizes raw school records, enriches them with city demographics, scores them, and emits ranked public/private lead lists.`,
	}

	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createPreviewCmd())
	rootCmd.AddCommand(createVerifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runBatch(configPath string, sample bool) (*config.Config, categorize.Result, pipeline.Stats, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, categorize.Result{}, pipeline.Stats{}, err
	}

	if sample {
		cfg.Features.SampleMode = true
	}

	log := logger.NewLogger(cfg.Pipeline.Logging.Level)
	log.Info("starting lead pipeline", "config", cfg.String(), "sample_mode", cfg.Features.SampleMode)

	src := pipeline.FileSource{
		Path:  cfg.Pipeline.Input.Path,
		Limit: cfg.SampleLimit(),
	}

	result, stats, err := pipeline.New(cfg, log).Run(src)

	return cfg, result, stats, err
}

func createRunCmd() *cobra.Command {
	var (
		configPath string
		sample     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and export the lead lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, result, _, err := runBatch(configPath, sample)
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Pipeline.Logging.Level)
			exporter := store.NewExporter(
				cfg.Pipeline.Output.Dir,
				cfg.Pipeline.Output.Format,
				cfg.Pipeline.Output.WriteManifest,
				log,
			)

			return exporter.Export(result)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to pipeline config")
	cmd.Flags().BoolVar(&sample, "sample", false, "Limit input to the configured sample size")

	return cmd
}

func createPreviewCmd() *cobra.Command {
	var (
		configPath string
		sample     bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run the pipeline and print the top leads without exporting",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, stats, err := runBatch(configPath, sample)
			if err != nil {
				return err
			}

			fmt.Println(preview.RenderGroup("Public Schools", result.Public, limit))
			fmt.Println(preview.RenderGroup("Private Schools", result.Private, limit))
			fmt.Printf("read=%d rejected=%d canonical=%d unscored=%d\n",
				stats.Read, stats.Rejected, stats.Canonical, stats.Unscored)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to pipeline config")
	cmd.Flags().BoolVar(&sample, "sample", false, "Limit input to the configured sample size")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Rows to show per group")

	return cmd
}

func createVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dir]",
		Short: "Verify the manifest of a previous export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manifest.Verify(args[0]); err != nil {
				return err
			}

			fmt.Printf("✅ Export verified: %s\n", args[0])

			return nil
		},
	}
}
