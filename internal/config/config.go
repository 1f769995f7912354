// Package config provides application configuration loaded through Viper
// from a YAML file, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/snipfeed/internal/logger"
)

// Output sink types.
const (
	OutputFile          = "file"
	OutputElasticsearch = "elasticsearch"
)

// Validation errors.
var (
	// ErrNoSources is returned when no source adapter is configured.
	ErrNoSources = errors.New("at least one source must be configured")
	// ErrInvalidOutputType is returned for an unknown output sink type.
	ErrInvalidOutputType = errors.New("output type must be file or elasticsearch")
)

// Config is the root application configuration.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Logger        logger.Config       `mapstructure:"logger"`
	Output        OutputConfig        `mapstructure:"output"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Sources       SourcesConfig       `mapstructure:"sources"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// OutputConfig selects and configures the output sink.
type OutputConfig struct {
	// Type is "file" or "elasticsearch".
	Type string `mapstructure:"type"`
	// Path is the output artifact path for the file sink.
	Path string `mapstructure:"path"`
}

// ElasticsearchConfig configures the Elasticsearch sink.
type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	APIKey    string   `mapstructure:"api_key"`
	IndexName string   `mapstructure:"index_name"`
}

// SourcesConfig configures the source adapters.
type SourcesConfig struct {
	// API is the tag-paginated API source.
	API APISourceConfig `mapstructure:"api"`
	// Feeds are the RSS feed sources, one adapter per entry.
	Feeds []FeedSourceConfig `mapstructure:"feeds"`
}

// APISourceConfig configures the tag-paginated API adapter.
type APISourceConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Name        string        `mapstructure:"name"`
	BaseURL     string        `mapstructure:"base_url"`
	Source      string        `mapstructure:"source"`
	IDPrefix    string        `mapstructure:"id_prefix"`
	Tags        []string      `mapstructure:"tags"`
	PerTagLimit int           `mapstructure:"per_tag_limit"`
	Delay       time.Duration `mapstructure:"delay"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// FeedSourceConfig configures one RSS feed adapter.
type FeedSourceConfig struct {
	Name      string            `mapstructure:"name"`
	Source    string            `mapstructure:"source"`
	Feeds     []FeedEntryConfig `mapstructure:"feeds"`
	ItemLimit int               `mapstructure:"item_limit"`
	Keywords  []string          `mapstructure:"keywords"`
	Delay     time.Duration     `mapstructure:"delay"`
	Timeout   time.Duration     `mapstructure:"timeout"`
}

// FeedEntryConfig is one feed URL with an optional explicit source slug.
type FeedEntryConfig struct {
	URL    string `mapstructure:"url"`
	Source string `mapstructure:"source"`
}

// SchedulerConfig configures the cron-driven ingestion mode.
type SchedulerConfig struct {
	// Cron is a standard 5-field cron expression.
	Cron string `mapstructure:"cron"`
	// RunOnStart triggers one run immediately when the scheduler starts.
	RunOnStart bool `mapstructure:"run_on_start"`
}

// Load unmarshals the configuration Viper has already read and validates
// it. Viper setup (file discovery, env bindings, defaults) happens in the
// root command.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if !c.Sources.API.Enabled && len(c.Sources.Feeds) == 0 {
		return ErrNoSources
	}

	switch c.Output.Type {
	case OutputFile:
		if c.Output.Path == "" {
			return errors.New("output path is required for the file sink")
		}
	case OutputElasticsearch:
		if len(c.Elasticsearch.Addresses) == 0 {
			return errors.New("elasticsearch addresses are required for the elasticsearch sink")
		}
		if c.Elasticsearch.IndexName == "" {
			return errors.New("elasticsearch index_name is required for the elasticsearch sink")
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutputType, c.Output.Type)
	}

	for i := range c.Sources.Feeds {
		feed := &c.Sources.Feeds[i]
		if feed.Name == "" {
			return fmt.Errorf("sources.feeds[%d]: name is required", i)
		}
		if len(feed.Feeds) == 0 {
			return fmt.Errorf("sources.feeds[%d] (%s): at least one feed url is required", i, feed.Name)
		}
		for j, entry := range feed.Feeds {
			if entry.URL == "" {
				return fmt.Errorf("sources.feeds[%d].feeds[%d]: url is required", i, j)
			}
		}
	}

	return nil
}
