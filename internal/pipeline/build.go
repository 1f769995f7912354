package pipeline

import (
	"fmt"

	"github.com/jonesrussell/snipfeed/internal/adapter"
	"github.com/jonesrussell/snipfeed/internal/config"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/storage"
)

// FromConfig assembles a pipeline from configuration: one adapter per
// configured source and the selected output sink.
func FromConfig(cfg *config.Config, log logger.Interface) (*Pipeline, error) {
	adapters := buildAdapters(cfg, log)

	sink, err := buildSink(cfg, log)
	if err != nil {
		return nil, err
	}

	return New(adapters, sink, log), nil
}

// buildAdapters creates the configured source adapters in configuration
// order: the API source first, then each feed source.
func buildAdapters(cfg *config.Config, log logger.Interface) []adapter.Adapter {
	var adapters []adapter.Adapter

	if cfg.Sources.API.Enabled {
		api := cfg.Sources.API
		adapters = append(adapters, adapter.NewAPIAdapter(adapter.APIConfig{
			Name:        api.Name,
			BaseURL:     api.BaseURL,
			Source:      api.Source,
			IDPrefix:    api.IDPrefix,
			Tags:        api.Tags,
			PerTagLimit: api.PerTagLimit,
			Delay:       api.Delay,
			Timeout:     api.Timeout,
		}, log))
	}

	for i := range cfg.Sources.Feeds {
		feedCfg := cfg.Sources.Feeds[i]

		feeds := make([]adapter.Feed, 0, len(feedCfg.Feeds))
		for _, entry := range feedCfg.Feeds {
			feeds = append(feeds, adapter.Feed{URL: entry.URL, Source: entry.Source})
		}

		adapters = append(adapters, adapter.NewFeedAdapter(adapter.FeedConfig{
			Name:      feedCfg.Name,
			Source:    feedCfg.Source,
			Feeds:     feeds,
			ItemLimit: feedCfg.ItemLimit,
			Keywords:  feedCfg.Keywords,
			Delay:     feedCfg.Delay,
			Timeout:   feedCfg.Timeout,
		}, log))
	}

	return adapters
}

// buildSink creates the configured output sink.
func buildSink(cfg *config.Config, log logger.Interface) (storage.Sink, error) {
	switch cfg.Output.Type {
	case config.OutputFile:
		return storage.NewFileSink(cfg.Output.Path, log), nil
	case config.OutputElasticsearch:
		client, err := storage.NewElasticsearchClient(&cfg.Elasticsearch, log)
		if err != nil {
			return nil, fmt.Errorf("build elasticsearch sink: %w", err)
		}
		return storage.NewElasticsearchSink(client, cfg.Elasticsearch.IndexName, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidOutputType, cfg.Output.Type)
	}
}
