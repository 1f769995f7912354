package storage_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/storage"
)

// mockTransport implements http.RoundTripper for mocking Elasticsearch responses
type mockTransport struct {
	RoundTripFn func(req *http.Request) (*http.Response, error)
}

func (t *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.RoundTripFn(req)
}

func esResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
	}
}

func setupMockClient(t *testing.T, fn func(req *http.Request) (*http.Response, error)) *es.Client {
	t.Helper()

	client, err := es.NewClient(es.Config{
		Transport: &mockTransport{RoundTripFn: fn},
	})
	require.NoError(t, err)

	return client
}

func TestElasticsearchSink_IndexesEachRecordByObjectID(t *testing.T) {
	t.Parallel()

	var paths []string
	client := setupMockClient(t, func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.Path)
		return esResponse(http.StatusOK, `{"result":"created"}`), nil
	})

	sink := storage.NewElasticsearchSink(client, "snippets", logger.NewNoOp())

	err := sink.Write(context.Background(), []domain.SnippetRecord{
		{ObjectID: "devto-101", Title: "one"},
		{ObjectID: "hashnode-g1", Title: "two"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/snippets/_doc/devto-101",
		"/snippets/_doc/hashnode-g1",
	}, paths)
}

func TestElasticsearchSink_ErrorResponseAbortsWrite(t *testing.T) {
	t.Parallel()

	calls := 0
	client := setupMockClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return esResponse(http.StatusInternalServerError, `{"error":{"type":"exception"}}`), nil
	})

	sink := storage.NewElasticsearchSink(client, "snippets", logger.NewNoOp())

	err := sink.Write(context.Background(), []domain.SnippetRecord{
		{ObjectID: "devto-101"},
		{ObjectID: "devto-102"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devto-101")
	assert.Equal(t, 1, calls)
}

func TestElasticsearchSink_EmptyBatch(t *testing.T) {
	t.Parallel()

	client := setupMockClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for an empty batch")
		return nil, nil
	})

	sink := storage.NewElasticsearchSink(client, "snippets", logger.NewNoOp())
	assert.NoError(t, sink.Write(context.Background(), nil))
}
