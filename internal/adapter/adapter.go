// Package adapter translates external content sources into canonical
// snippet records.
//
// Each adapter owns one upstream source type. An adapter never returns an
// error: failures on a single unit of work (one topic tag, one feed URL)
// are recorded as a failed UnitOutcome and the adapter moves on to the
// next unit. Resilience comes from skip-and-continue at unit granularity
// plus the pacer's inter-request delay, not from retries.
package adapter

import (
	"context"

	"github.com/jonesrussell/snipfeed/internal/domain"
)

// Result is the settled output of one adapter invocation.
type Result struct {
	// Records are the mapped snippet records from all successful units.
	Records []domain.SnippetRecord
	// Units holds one outcome per tag or feed processed, failures
	// included.
	Units []domain.UnitOutcome
}

// Adapter fetches raw items from one external source and maps them into
// snippet records.
type Adapter interface {
	// Name returns the adapter name used in logs and run summaries.
	Name() string
	// Fetch processes the adapter's configured units sequentially and
	// returns everything it could collect. It does not return an error;
	// per-unit failures are reported through Result.Units.
	Fetch(ctx context.Context) Result
}
