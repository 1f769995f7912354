package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/snipfeed/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Output: config.OutputConfig{Type: config.OutputFile, Path: "data/snippets.json"},
		Sources: config.SourcesConfig{
			API: config.APISourceConfig{
				Enabled:     true,
				Name:        "devto",
				BaseURL:     "https://dev.to/api",
				Source:      "dev.to",
				IDPrefix:    "devto",
				Tags:        []string{"react"},
				PerTagLimit: 15,
				Delay:       300 * time.Millisecond,
			},
			Feeds: []config.FeedSourceConfig{
				{
					Name:   "hashnode",
					Source: "hashnode",
					Feeds:  []config.FeedEntryConfig{{URL: "https://hashnode.com/rss"}},
				},
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())
}

func TestValidate_NoSources(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Sources.API.Enabled = false
	cfg.Sources.Feeds = nil

	assert.ErrorIs(t, cfg.Validate(), config.ErrNoSources)
}

func TestValidate_UnknownOutputType(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Output.Type = "s3"

	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidOutputType)
}

func TestValidate_FileSinkNeedsPath(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Output.Path = ""

	assert.Error(t, cfg.Validate())
}

func TestValidate_ElasticsearchSinkNeedsAddresses(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Output = config.OutputConfig{Type: config.OutputElasticsearch}
	cfg.Elasticsearch = config.ElasticsearchConfig{IndexName: "snippets"}

	assert.Error(t, cfg.Validate())
}

func TestValidate_FeedEntryNeedsURL(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Sources.Feeds[0].Feeds[0].URL = ""

	assert.Error(t, cfg.Validate())
}
