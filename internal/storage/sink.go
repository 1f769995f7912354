// Package storage persists the final snippet batch. Two sinks exist: a
// flat JSON file artifact and an Elasticsearch index consumed by the
// hosted search layer. A sink failure is the one error class that aborts
// a pipeline run.
package storage

import (
	"context"

	"github.com/jonesrussell/snipfeed/internal/domain"
)

// Sink persists a full snippet batch with overwrite semantics: each
// write replaces the previous batch, it is not an append log.
type Sink interface {
	// Write persists the batch. Records are expected to already be
	// deduplicated and normalized.
	Write(ctx context.Context, records []domain.SnippetRecord) error
}
