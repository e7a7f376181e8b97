package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"listings-eda/charts"
	"listings-eda/config"
	"listings-eda/models"
	"listings-eda/services"
	"listings-eda/storage"
	"listings-eda/utils"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		utils.NewLogger("info").Error("%v", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("%v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	runID := uuid.NewString()
	runDir := filepath.Join(cfg.OutputDir, runID)
	logger.Info("=== Listings EDA starting (run %s) ===", runID)

	reader, source, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	raw, err := reader.Read(ctx)
	if cerr := reader.Close(); cerr != nil {
		logger.Warn("Closing %s: %v", source, cerr)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}
	logger.Info("Loaded %s rows from %s", humanize.Comma(int64(raw.Len())), source)

	out := os.Stdout
	if err := services.Preview(out, raw, cfg.PreviewRows); err != nil {
		logger.Warn("Preview failed: %v", err)
	}

	opts := services.DefaultCleanOptions()
	opts.PriceCeiling = cfg.PriceCeiling
	cleaned := services.NewCleaner(logger, out, opts).Clean(raw)
	if cleaned.Len() == 0 {
		logger.Warn("All listings were dropped during cleaning; reports will be empty")
	}

	var renderer *charts.Renderer
	if cfg.RenderCharts {
		renderer = charts.NewRenderer(runDir, cfg.ChartWidth, cfg.ChartHeight)
	}
	reports := services.NewReports(logger, renderer, services.ReportOptions{
		HistogramBins: cfg.HistogramBins,
		TopN:          cfg.TopN,
	})
	results := services.NewRunner(logger, reports.Steps()).Run(cleaned)

	summary := services.Summarise(cleaned)
	summary.RunID = runID
	summary.Source = source
	summary.RowsBefore = raw.Len()
	for _, r := range results {
		switch {
		case r.Skipped:
			summary.SkippedSteps = append(summary.SkippedSteps, r.Name)
		case r.Artifact != "":
			summary.Charts = append(summary.Charts, models.ChartFile{Step: r.Name, Path: r.Artifact})
		}
	}
	services.PrintSummary(out, summary)

	if cfg.WriteSummary {
		w := storage.NewYAMLSummaryWriter(filepath.Join(runDir, "summary.yaml"))
		if err := w.Write(summary); err != nil {
			return err
		}
		logger.Info("Summary written to %s", w.Path())
	}

	logger.Info("Done. %d charts in %s", len(summary.Charts), runDir)
	return nil
}
