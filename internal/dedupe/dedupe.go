// Package dedupe collapses records sharing an objectID to a single
// last-write-wins survivor.
package dedupe

import "github.com/jonesrussell/snipfeed/internal/domain"

// Merge returns exactly one record per distinct objectID. When duplicates
// exist, the record appearing later in the input replaces earlier ones
// entirely; fields are never merged. Output order is the order in which
// each objectID was first seen, which keeps re-runs on unchanged input
// byte-stable.
func Merge(records []domain.SnippetRecord) []domain.SnippetRecord {
	byID := make(map[string]int, len(records))
	out := make([]domain.SnippetRecord, 0, len(records))

	for _, rec := range records {
		if pos, seen := byID[rec.ObjectID]; seen {
			out[pos] = rec
			continue
		}
		byID[rec.ObjectID] = len(out)
		out = append(out, rec)
	}

	return out
}
