package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
)

// FileSink writes the batch as a single JSON array to a named file. The
// write is atomic: a temp file in the target directory is renamed over
// the destination, so readers never observe a partial artifact.
type FileSink struct {
	path string
	log  logger.Interface
}

// NewFileSink creates a file sink writing to the given path.
func NewFileSink(path string, log logger.Interface) *FileSink {
	return &FileSink{
		path: path,
		log:  log.WithComponent("file_sink"),
	}
}

// Write serializes the batch and replaces the output artifact.
func (s *FileSink) Write(ctx context.Context, records []domain.SnippetRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}

	if records == nil {
		records = []domain.SnippetRecord{}
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("file sink marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return fmt.Errorf("file sink create dir: %w", mkErr)
	}

	tmp, tmpErr := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if tmpErr != nil {
		return fmt.Errorf("file sink create temp: %w", tmpErr)
	}

	if _, writeErr := tmp.Write(body); writeErr != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file sink write: %w", writeErr)
	}

	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file sink close temp: %w", closeErr)
	}

	if renameErr := os.Rename(tmp.Name(), s.path); renameErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file sink rename: %w", renameErr)
	}

	s.log.Info("batch written",
		"path", s.path,
		"records", len(records),
	)

	return nil
}
