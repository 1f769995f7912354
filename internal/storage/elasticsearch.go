package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/snipfeed/internal/config"
	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
)

// NewElasticsearchClient creates and verifies an Elasticsearch client
// from configuration.
func NewElasticsearchClient(cfg *config.ElasticsearchConfig, log logger.Interface) (*es.Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("elasticsearch addresses are required")
	}

	log.Debug("Connecting to Elasticsearch", "addresses", cfg.Addresses)

	clientConfig := es.Config{
		Addresses: cfg.Addresses,
	}

	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	} else if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, pingErr := client.Ping()
	if pingErr != nil {
		return nil, fmt.Errorf("ping elasticsearch: %w", pingErr)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("ping elasticsearch: %s", res.String())
	}

	return client, nil
}

// ElasticsearchSink indexes each record into an Elasticsearch index with
// the objectID as document ID, so re-running the pipeline on unchanged
// upstream data overwrites documents in place.
type ElasticsearchSink struct {
	client *es.Client
	index  string
	log    logger.Interface
}

// NewElasticsearchSink creates an Elasticsearch sink targeting the given
// index.
func NewElasticsearchSink(client *es.Client, index string, log logger.Interface) *ElasticsearchSink {
	return &ElasticsearchSink{
		client: client,
		index:  index,
		log:    log.WithComponent("elasticsearch_sink"),
	}
}

// Write indexes every record in the batch. The first indexing failure
// aborts the write; a half-indexed batch is surfaced rather than hidden.
func (s *ElasticsearchSink) Write(ctx context.Context, records []domain.SnippetRecord) error {
	if s.client == nil {
		return errors.New("elasticsearch client is not initialized")
	}

	for i := range records {
		if err := s.indexRecord(ctx, &records[i]); err != nil {
			return err
		}
	}

	s.log.Info("batch indexed",
		"index", s.index,
		"records", len(records),
	)

	return nil
}

// indexRecord indexes one record with its objectID as document ID.
func (s *ElasticsearchSink) indexRecord(ctx context.Context, rec *domain.SnippetRecord) error {
	body, err := marshalRecord(rec)
	if err != nil {
		return err
	}

	res, indexErr := s.client.Index(
		s.index,
		strings.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(rec.ObjectID),
	)
	if indexErr != nil {
		s.log.Error("Failed to index document",
			"error", indexErr,
			"index", s.index,
			"docID", rec.ObjectID)
		return fmt.Errorf("index document %s: %w", rec.ObjectID, indexErr)
	}
	defer res.Body.Close()

	if res.IsError() {
		s.log.Error("Indexing returned an error response",
			"index", s.index,
			"docID", rec.ObjectID,
			"status", res.StatusCode)
		return fmt.Errorf("index document %s: %s", rec.ObjectID, res.String())
	}

	return nil
}

// marshalRecord serializes a record for indexing.
func marshalRecord(rec *domain.SnippetRecord) (string, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal document %s: %w", rec.ObjectID, err)
	}
	return string(body), nil
}
