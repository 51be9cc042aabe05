package scraper

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Engine runs the full pipeline for one source: fetch-or-reuse the page,
// extract raw rows, consolidate them into logical events, and reconcile
// the result against the store. Consolidation always completes before the
// first reconcile call, since merge state for a key is not final until
// every row has been scanned.
type Engine struct {
	fetcher    *Fetcher
	reconciler *Reconciler
}

func NewEngine(fetcher *Fetcher, reconciler *Reconciler) *Engine {
	return &Engine{
		fetcher:    fetcher,
		reconciler: reconciler,
	}
}

// Run scrapes url through source and returns the per-run summary. A fetch
// or top-level parse failure aborts the run with zero processed events;
// everything below that level is accumulated into the summary instead.
func (e *Engine) Run(ctx context.Context, source Source, url string, timeout time.Duration) (Summary, error) {
	summary := Summary{}

	html, cached, err := e.fetcher.Fetch(ctx, url, timeout)
	if err != nil {
		return summary, err
	}
	if cached {
		summary.CacheHits++
	} else {
		summary.CacheMisses++
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return summary, &ParseError{Source: source.Name(), Err: err}
	}

	rows, skipped := source.ExtractRows(doc)
	summary.RowsFound = len(rows) + skipped
	summary.RowsSkipped = skipped
	summary.RawRows = len(rows)

	consolidation := Consolidate(rows)
	summary.Consolidated = len(consolidation.Events)
	summary.SyntheticKeys = consolidation.SyntheticKeys
	summary.Discrepancies = consolidation.Discrepancies
	for _, event := range consolidation.Events {
		if event.IsMultiDayEvent {
			summary.MultiDay++
		}
	}

	persistence := e.reconciler.Run(ctx, consolidation.Events)
	summary.Inserted = persistence.Inserted
	summary.Updated = persistence.Updated
	summary.Failed = persistence.Failed

	slog.Info("Scrape completed",
		"source", source.Name(),
		"rows_found", summary.RowsFound,
		"rows_skipped", summary.RowsSkipped,
		"raw_rows", summary.RawRows,
		"consolidated", summary.Consolidated,
		"multi_day", summary.MultiDay,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"failed", summary.Failed,
		"discrepancies", summary.Discrepancies,
		"cache_hits", summary.CacheHits,
		"cache_misses", summary.CacheMisses)

	return summary, nil
}
