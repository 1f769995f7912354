package storage_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/storage"
)

func TestFileSink_WritesJSONArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "snippets.json")
	sink := storage.NewFileSink(path, logger.NewNoOp())

	records := []domain.SnippetRecord{
		{
			ObjectID: "devto-101",
			Title:    "Understanding React Hooks",
			Snippet:  "A walkthrough.",
			Preview:  "A walkthrough.",
			URL:      "https://dev.to/a/101",
			Tags:     []string{"react"},
			Source:   "dev.to",
		},
	}

	require.NoError(t, sink.Write(context.Background(), records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []domain.SnippetRecord
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "devto-101", got[0].ObjectID)
	assert.Equal(t, []string{"react"}, got[0].Tags)
}

func TestFileSink_OverwritesPreviousBatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snippets.json")
	sink := storage.NewFileSink(path, logger.NewNoOp())

	ctx := context.Background()
	require.NoError(t, sink.Write(ctx, []domain.SnippetRecord{
		{ObjectID: "a-1"}, {ObjectID: "a-2"},
	}))
	require.NoError(t, sink.Write(ctx, []domain.SnippetRecord{
		{ObjectID: "b-1"},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []domain.SnippetRecord
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "b-1", got[0].ObjectID)
}

func TestFileSink_EmptyBatchIsAnEmptyArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snippets.json")
	sink := storage.NewFileSink(path, logger.NewNoOp())

	require.NoError(t, sink.Write(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestFileSink_CanceledContext(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snippets.json")
	sink := storage.NewFileSink(path, logger.NewNoOp())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, sink.Write(ctx, nil))
}
