package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/pacing"
	"github.com/jonesrussell/snipfeed/internal/tags"
)

// Feed identifies one RSS feed and the source slug to record on its
// items. An empty Source derives the slug from the feed host.
type Feed struct {
	// URL is the feed URL.
	URL string
	// Source is the slug recorded on every record from this feed.
	Source string
}

// FeedConfig configures an RSS feed adapter. The same implementation
// serves both the single-source case (one slug shared by every feed) and
// the multi-feed case (an explicit slug per feed); only the configuration
// differs.
type FeedConfig struct {
	// Name is the adapter name used in logs and summaries.
	Name string
	// Source is the fallback slug for feeds without an explicit one.
	Source string
	// Feeds are the feeds to fetch, in order.
	Feeds []Feed
	// ItemLimit caps the items kept per feed.
	ItemLimit int
	// Keywords is the allow-list used when an item has no categories:
	// title tokens that appear here become the item's tags. Allow-lists
	// are deliberately per-adapter; breadth differs between sources.
	Keywords []string
	// Delay is the fixed inter-request delay.
	Delay time.Duration
	// Timeout bounds each individual request.
	Timeout time.Duration
}

// FeedAdapter fetches and parses RSS feeds into snippet records.
type FeedAdapter struct {
	cfg      FeedConfig
	fetcher  *Fetcher
	pacer    *pacing.Pacer
	parser   *gofeed.Parser
	keywords map[string]struct{}
	log      logger.Interface
}

// NewFeedAdapter creates an RSS feed adapter.
func NewFeedAdapter(cfg FeedConfig, log logger.Interface) *FeedAdapter {
	keywords := make(map[string]struct{}, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		keywords[strings.ToLower(k)] = struct{}{}
	}

	return &FeedAdapter{
		cfg:      cfg,
		fetcher:  NewFetcher(cfg.Timeout),
		pacer:    pacing.New(cfg.Delay),
		parser:   gofeed.NewParser(),
		keywords: keywords,
		log:      log.WithComponent(cfg.Name),
	}
}

// Name returns the adapter name.
func (a *FeedAdapter) Name() string {
	return a.cfg.Name
}

// Fetch processes each configured feed in order. A feed that fails to
// fetch or parse contributes zero records and the adapter proceeds to the
// next one.
func (a *FeedAdapter) Fetch(ctx context.Context) Result {
	var result Result

	for _, feed := range a.cfg.Feeds {
		start := time.Now()

		records, err := a.fetchFeed(ctx, feed)
		if err != nil {
			a.log.Error("feed fetch failed",
				"feed_url", feed.URL,
				"error", err.Error(),
			)
			result.Units = append(result.Units, domain.UnitOutcome{
				Adapter:  a.cfg.Name,
				Unit:     feed.URL,
				Outcome:  domain.OutcomeFailed,
				Duration: time.Since(start),
				Err:      err,
			})
			continue
		}

		a.log.Info("feed fetched",
			"feed_url", feed.URL,
			"records", len(records),
		)
		result.Records = append(result.Records, records...)
		result.Units = append(result.Units, domain.UnitOutcome{
			Adapter:  a.cfg.Name,
			Unit:     feed.URL,
			Outcome:  domain.OutcomeSuccess,
			Records:  len(records),
			Duration: time.Since(start),
		})
	}

	return result
}

// fetchFeed fetches and parses one feed and maps its items.
func (a *FeedAdapter) fetchFeed(ctx context.Context, feed Feed) ([]domain.SnippetRecord, error) {
	if err := a.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := a.fetcher.Get(ctx, feed.URL, AcceptFeed)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	parsed, parseErr := a.parser.ParseString(body)
	if parseErr != nil {
		return nil, fmt.Errorf("parse feed: %w", parseErr)
	}

	slug := a.slugFor(feed)

	// The parser yields a slice whether the channel held one item or
	// many; a feed with no channel items maps to zero records.
	items := parsed.Items
	if a.cfg.ItemLimit > 0 && len(items) > a.cfg.ItemLimit {
		items = items[:a.cfg.ItemLimit]
	}

	records := make([]domain.SnippetRecord, 0, len(items))
	for _, item := range items {
		records = append(records, a.mapRecord(item, slug))
	}

	return records, nil
}

// mapRecord converts one feed item into a snippet record.
func (a *FeedAdapter) mapRecord(item *gofeed.Item, slug string) domain.SnippetRecord {
	return domain.SnippetRecord{
		ObjectID:    slug + "-" + itemIdentity(item),
		Title:       item.Title,
		Snippet:     item.Description,
		Preview:     item.Description,
		URL:         item.Link,
		Source:      slug,
		PublishedAt: publishedAt(item),
		Author:      a.itemAuthor(item, slug),
		RawTags:     a.itemTags(item),
	}
}

// itemTags uses the item's categories when present, otherwise derives
// tags by intersecting lowercased title tokens with the allow-list.
// Token order follows the title; duplicates are kept.
func (a *FeedAdapter) itemTags(item *gofeed.Item) tags.Value {
	if len(item.Categories) > 0 {
		return tags.FromList(item.Categories)
	}

	var derived []string
	for _, token := range strings.Fields(strings.ToLower(item.Title)) {
		if _, ok := a.keywords[token]; ok {
			derived = append(derived, token)
		}
	}

	if len(derived) == 0 {
		return tags.None()
	}
	return tags.FromList(derived)
}

// itemAuthor resolves the author with the fallback order: feed-native
// creator, generic author, synthesized default naming the source.
func (a *FeedAdapter) itemAuthor(item *gofeed.Item, slug string) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return fmt.Sprintf("%s contributor", slug)
}

// slugFor returns the source slug for a feed: the explicit per-feed slug,
// the adapter default, or a slug derived from the feed host.
func (a *FeedAdapter) slugFor(feed Feed) string {
	if feed.Source != "" {
		return feed.Source
	}
	if a.cfg.Source != "" {
		return a.cfg.Source
	}
	return deriveSlug(feed.URL)
}

// itemIdentity returns the source-native identity of an item, preferring
// the GUID over the link.
func itemIdentity(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return item.Link
}

// publishedAt returns the item's publication timestamp, RFC3339 when the
// parser understood it, otherwise the raw feed value.
func publishedAt(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format(time.RFC3339)
	}
	return item.Published
}

// deriveSlug derives a source slug from a feed URL's host: the first
// label with any "www." prefix stripped, e.g. "css-tricks.com" becomes
// "css-tricks".
func deriveSlug(feedURL string) string {
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Host == "" {
		return "feed"
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if label, _, found := strings.Cut(host, "."); found && label != "" {
		return label
	}
	return host
}
