package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/scraper"
)

type ScrapeSourceTask struct {
	Task
	SourceConfig *scraper.SourceConfig
	engine       *scraper.Engine
	source       scraper.Source
}

func NewScrapeSourceTask(sourceName string, sourceConfig *scraper.SourceConfig, engine *scraper.Engine, source scraper.Source) *ScrapeSourceTask {
	return &ScrapeSourceTask{
		Task:         NewTask(TaskTypeScrapeSource, sourceName),
		SourceConfig: sourceConfig,
		engine:       engine,
		source:       source,
	}
}

func (t *ScrapeSourceTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.SourceName)
		return nil
	}

	timeout := time.Duration(t.SourceConfig.Settings.Timeout) * time.Second

	summary, err := t.engine.Run(ctx, t.source, t.SourceConfig.URL, timeout)
	if err != nil {
		return fmt.Errorf("failed to scrape source: %w", err)
	}

	slog.Info("Task completed",
		"type", "ScrapeSource",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"rows", summary.RawRows,
		"consolidated", summary.Consolidated,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"failed", summary.Failed)

	return nil
}
