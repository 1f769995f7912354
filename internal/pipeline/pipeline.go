// Package pipeline orchestrates a full ingestion run: all source adapters
// in parallel, then dedup, tag normalization, summary, and the sink write.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/snipfeed/internal/adapter"
	"github.com/jonesrussell/snipfeed/internal/dedupe"
	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/storage"
)

// Pipeline runs the configured adapters and persists the merged batch.
type Pipeline struct {
	adapters []adapter.Adapter
	sink     storage.Sink
	log      logger.Interface
}

// New creates a pipeline over the given adapters and sink.
func New(adapters []adapter.Adapter, sink storage.Sink, log logger.Interface) *Pipeline {
	return &Pipeline{
		adapters: adapters,
		sink:     sink,
		log:      log.WithComponent("pipeline"),
	}
}

// Run executes one full pipeline pass. Adapters always settle (they
// isolate their own per-unit failures), so the only error a run can
// return is a sink write failure — the one class that must abort, since
// a missing output artifact stalls everything downstream. An all-empty
// batch is a normal run, not an error.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunSummary, error) {
	runID := uuid.NewString()
	log := p.log.WithRunID(runID)
	start := time.Now()

	log.Info("run started", "adapters", len(p.adapters))

	results := p.fetchAll(ctx)

	// Sequential post-processing: concatenate in configured adapter
	// order, dedup, then resolve every record's tags exactly once.
	var merged []domain.SnippetRecord
	summary := &domain.RunSummary{
		RunID:         runID,
		AdapterCounts: make(map[string]int, len(p.adapters)),
		SourceCounts:  make(map[string]int),
	}

	for i, res := range results {
		name := p.adapters[i].Name()
		summary.AdapterCounts[name] = len(res.Records)
		summary.Units = append(summary.Units, res.Units...)
		merged = append(merged, res.Records...)
	}

	batch := dedupe.Merge(merged)
	for i := range batch {
		batch[i].Tags = batch[i].RawTags.Normalize()
		summary.SourceCounts[batch[i].Source]++
	}
	summary.Total = len(batch)

	if err := p.sink.Write(ctx, batch); err != nil {
		log.Error("sink write failed", "error", err.Error())
		return nil, fmt.Errorf("pipeline sink write: %w", err)
	}

	summary.Duration = time.Since(start)
	p.logSummary(log, summary)

	return summary, nil
}

// fetchAll runs every adapter concurrently and waits for all of them to
// settle. Each adapter accumulates into its own slot; nothing is shared
// during the concurrent phase.
func (p *Pipeline) fetchAll(ctx context.Context) []adapter.Result {
	results := make([]adapter.Result, len(p.adapters))

	var wg sync.WaitGroup
	for i, a := range p.adapters {
		wg.Add(1)
		go func(i int, a adapter.Adapter) {
			defer wg.Done()
			results[i] = a.Fetch(ctx)
		}(i, a)
	}
	wg.Wait()

	return results
}

// logSummary emits the human-readable run summary.
func (p *Pipeline) logSummary(log logger.Interface, summary *domain.RunSummary) {
	for name, count := range summary.AdapterCounts {
		log.Info("adapter settled", "adapter", name, "records", count)
	}

	for _, unit := range summary.FailedUnits() {
		log.Warn("unit failed",
			"adapter", unit.Adapter,
			"unit", unit.Unit,
			"error", unit.Err.Error(),
		)
	}

	log.Info("run complete",
		"total", summary.Total,
		"sources", summary.SourceCounts,
		"duration", summary.Duration,
	)
}
