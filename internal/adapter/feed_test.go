package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/snipfeed/internal/adapter"
	"github.com/jonesrussell/snipfeed/internal/domain"
	"github.com/jonesrussell/snipfeed/internal/logger"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Hashnode Community</title>
    <item>
      <title>Building a React App</title>
      <link>https://hashnode.example/react-app</link>
      <guid isPermaLink="false">g1</guid>
      <pubDate>Mon, 04 Mar 2024 12:00:00 +0000</pubDate>
      <category>react</category>
      <category>frontend</category>
      <dc:creator>Priya</dc:creator>
      <description>From zero to a working app.</description>
    </item>
    <item>
      <title>Why JavaScript Closures Matter</title>
      <link>https://hashnode.example/closures</link>
      <guid isPermaLink="false">g2</guid>
      <description>Scopes, captured variables, and pitfalls.</description>
    </item>
  </channel>
</rss>`

const singleItemFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Lone Item Feed</title>
    <item>
      <title>Only Entry</title>
      <link>https://example.com/only</link>
      <guid>only-1</guid>
    </item>
  </channel>
</rss>`

const noGUIDFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>No GUID Feed</title>
    <item>
      <title>Anonymous Post</title>
      <link>https://example.com/anonymous</link>
    </item>
  </channel>
</rss>`

func feedConfig(name, source string, feeds []adapter.Feed) adapter.FeedConfig {
	return adapter.FeedConfig{
		Name:      name,
		Source:    source,
		Feeds:     feeds,
		ItemLimit: 10,
		Keywords:  []string{"react", "javascript", "css", "closures"},
		Timeout:   time.Second,
	}
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestFeedAdapter_MapsItems(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, feedFixture)

	a := adapter.NewFeedAdapter(
		feedConfig("hashnode", "hashnode", []adapter.Feed{{URL: server.URL}}),
		logger.NewNoOp(),
	)

	result := a.Fetch(context.Background())
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "hashnode-g1", first.ObjectID)
	assert.Equal(t, "Building a React App", first.Title)
	assert.Equal(t, "From zero to a working app.", first.Snippet)
	assert.Equal(t, first.Snippet, first.Preview)
	assert.Equal(t, "https://hashnode.example/react-app", first.URL)
	assert.Equal(t, "hashnode", first.Source)
	assert.Equal(t, "Priya", first.Author)
	assert.NotEmpty(t, first.PublishedAt)
	// Categories pass through untouched.
	assert.Equal(t, []string{"react", "frontend"}, first.RawTags.Normalize())
}

func TestFeedAdapter_TitleTokenFallback(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, feedFixture)

	a := adapter.NewFeedAdapter(
		feedConfig("hashnode", "hashnode", []adapter.Feed{{URL: server.URL}}),
		logger.NewNoOp(),
	)

	result := a.Fetch(context.Background())
	require.Len(t, result.Records, 2)

	// No categories on the second item: tags come from lowercased title
	// tokens intersected with the allow-list, in title order.
	second := result.Records[1]
	assert.Equal(t, "hashnode-g2", second.ObjectID)
	assert.Equal(t, []string{"javascript", "closures"}, second.RawTags.Normalize())
	// No creator or author either: author is synthesized from the slug.
	assert.Equal(t, "hashnode contributor", second.Author)
}

func TestFeedAdapter_SingleItemFeed(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, singleItemFixture)

	a := adapter.NewFeedAdapter(
		feedConfig("lone", "lone", []adapter.Feed{{URL: server.URL}}),
		logger.NewNoOp(),
	)

	result := a.Fetch(context.Background())
	require.Len(t, result.Records, 1)
	assert.Equal(t, "lone-only-1", result.Records[0].ObjectID)
}

func TestFeedAdapter_LinkIdentityWhenNoGUID(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, noGUIDFixture)

	a := adapter.NewFeedAdapter(
		feedConfig("nog", "nog", []adapter.Feed{{URL: server.URL}}),
		logger.NewNoOp(),
	)

	result := a.Fetch(context.Background())
	require.Len(t, result.Records, 1)
	assert.Equal(t, "nog-https://example.com/anonymous", result.Records[0].ObjectID)
}

func TestFeedAdapter_FailingFeedIsIsolated(t *testing.T) {
	t.Parallel()

	good := serveFeed(t, feedFixture)
	lone := serveFeed(t, singleItemFixture)

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(bad.Close)

	a := adapter.NewFeedAdapter(
		feedConfig("multi", "", []adapter.Feed{
			{URL: good.URL, Source: "css-tricks"},
			{URL: bad.URL, Source: "smashing"},
			{URL: lone.URL, Source: "alistapart"},
		}),
		logger.NewNoOp(),
	)

	result := a.Fetch(context.Background())

	// Union of the two successful feeds; zero records from the failing one.
	assert.Len(t, result.Records, 3)
	require.Len(t, result.Units, 3)
	assert.Equal(t, domain.OutcomeSuccess, result.Units[0].Outcome)
	assert.Equal(t, domain.OutcomeFailed, result.Units[1].Outcome)
	assert.Error(t, result.Units[1].Err)
	assert.Equal(t, domain.OutcomeSuccess, result.Units[2].Outcome)

	for _, rec := range result.Records {
		assert.NotEqual(t, "smashing", rec.Source)
	}
}

func TestFeedAdapter_PerFeedSlugMapping(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, singleItemFixture)

	a := adapter.NewFeedAdapter(
		feedConfig("community", "", []adapter.Feed{{URL: server.URL, Source: "css-tricks"}}),
		logger.NewNoOp(),
	)

	result := a.Fetch(context.Background())
	require.Len(t, result.Records, 1)
	assert.Equal(t, "css-tricks", result.Records[0].Source)
	assert.Equal(t, "css-tricks-only-1", result.Records[0].ObjectID)
}

func TestFeedAdapter_ItemLimit(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, feedFixture)

	cfg := feedConfig("hashnode", "hashnode", []adapter.Feed{{URL: server.URL}})
	cfg.ItemLimit = 1

	a := adapter.NewFeedAdapter(cfg, logger.NewNoOp())

	result := a.Fetch(context.Background())
	require.Len(t, result.Records, 1)
	assert.Equal(t, "hashnode-g1", result.Records[0].ObjectID)
}

func TestFeedAdapter_MalformedBody(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, "this is not xml at all")

	a := adapter.NewFeedAdapter(
		feedConfig("broken", "broken", []adapter.Feed{{URL: server.URL}}),
		logger.NewNoOp(),
	)

	result := a.Fetch(context.Background())
	assert.Empty(t, result.Records)
	require.Len(t, result.Units, 1)
	assert.Equal(t, domain.OutcomeFailed, result.Units[0].Outcome)
}
