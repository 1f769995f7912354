package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/pacing"
	"github.com/jonesrussell/snipfeed/internal/tags"
)

// APIConfig configures a tag-paginated API adapter.
type APIConfig struct {
	// Name is the adapter name used in logs and summaries.
	Name string
	// BaseURL is the API root, e.g. "https://dev.to/api".
	BaseURL string
	// Source is the slug recorded on every record, e.g. "dev.to".
	Source string
	// IDPrefix is the objectID prefix, e.g. "devto".
	IDPrefix string
	// Tags are the topic tags to query, in order.
	Tags []string
	// PerTagLimit caps the items requested per tag.
	PerTagLimit int
	// Delay is the fixed inter-request delay.
	Delay time.Duration
	// Timeout bounds each individual request.
	Timeout time.Duration
}

// APIAdapter fetches articles from a dev.to-style REST API, one paginated
// request per configured topic tag.
type APIAdapter struct {
	cfg     APIConfig
	fetcher *Fetcher
	pacer   *pacing.Pacer
	log     logger.Interface
}

// apiArticle is the upstream article shape. Consumed immediately by
// mapRecord, never persisted.
type apiArticle struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	URL                string   `json:"url"`
	TagList            []string `json:"tag_list"`
	PublishedAt        string   `json:"published_at"`
	ReadingTimeMinutes int      `json:"reading_time_minutes"`
	User               struct {
		Name string `json:"name"`
	} `json:"user"`
}

// NewAPIAdapter creates a tag-paginated API adapter.
func NewAPIAdapter(cfg APIConfig, log logger.Interface) *APIAdapter {
	return &APIAdapter{
		cfg:     cfg,
		fetcher: NewFetcher(cfg.Timeout),
		pacer:   pacing.New(cfg.Delay),
		log:     log.WithComponent(cfg.Name),
	}
}

// Name returns the adapter name.
func (a *APIAdapter) Name() string {
	return a.cfg.Name
}

// Fetch queries each configured tag in order. A failing tag contributes
// zero records and the adapter proceeds to the next one.
func (a *APIAdapter) Fetch(ctx context.Context) Result {
	var result Result

	for _, tag := range a.cfg.Tags {
		start := time.Now()

		records, err := a.fetchTag(ctx, tag)
		if err != nil {
			a.log.Error("tag fetch failed",
				"tag", tag,
				"error", err.Error(),
			)
			result.Units = append(result.Units, domain.UnitOutcome{
				Adapter:  a.cfg.Name,
				Unit:     tag,
				Outcome:  domain.OutcomeFailed,
				Duration: time.Since(start),
				Err:      err,
			})
			continue
		}

		a.log.Info("tag fetched",
			"tag", tag,
			"records", len(records),
		)
		result.Records = append(result.Records, records...)
		result.Units = append(result.Units, domain.UnitOutcome{
			Adapter:  a.cfg.Name,
			Unit:     tag,
			Outcome:  domain.OutcomeSuccess,
			Records:  len(records),
			Duration: time.Since(start),
		})
	}

	return result
}

// fetchTag issues one paginated request for a tag and maps the response.
func (a *APIAdapter) fetchTag(ctx context.Context, tag string) ([]domain.SnippetRecord, error) {
	if err := a.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/articles?tag=%s&per_page=%d",
		a.cfg.BaseURL, url.QueryEscape(tag), a.cfg.PerTagLimit)

	body, err := a.fetcher.Get(ctx, reqURL, AcceptJSON)
	if err != nil {
		return nil, fmt.Errorf("fetch tag %q: %w", tag, err)
	}

	var articles []apiArticle
	if decodeErr := json.Unmarshal([]byte(body), &articles); decodeErr != nil {
		return nil, fmt.Errorf("decode tag %q response: %w", tag, decodeErr)
	}

	if len(articles) > a.cfg.PerTagLimit {
		articles = articles[:a.cfg.PerTagLimit]
	}

	records := make([]domain.SnippetRecord, 0, len(articles))
	for i := range articles {
		records = append(records, a.mapRecord(&articles[i]))
	}

	return records, nil
}

// mapRecord converts one upstream article into a snippet record.
func (a *APIAdapter) mapRecord(art *apiArticle) domain.SnippetRecord {
	return domain.SnippetRecord{
		ObjectID:    a.cfg.IDPrefix + "-" + strconv.FormatInt(art.ID, 10),
		Title:       art.Title,
		Snippet:     art.Description,
		Preview:     art.Description,
		URL:         art.URL,
		Source:      a.cfg.Source,
		PublishedAt: art.PublishedAt,
		ReadingTime: art.ReadingTimeMinutes,
		Author:      art.User.Name,
		RawTags:     tags.FromList(art.TagList),
	}
}
