package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persuasion-engine/internal/config"
	"github.com/persuasion-engine/pkg/logger"
	"github.com/persuasion-engine/pkg/ratelimit"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Growth Notes</title>
  <link>https://example.com</link>
  <description>Notes</description>
  <item>
    <title>Why &lt;b&gt;pricing&lt;/b&gt; pages convert</title>
    <link>https://example.com/pricing</link>
    <description>&lt;p&gt;Anchoring   and decoys&lt;/p&gt;</description>
    <category>pricing</category>
    <category> </category>
    <pubDate>Mon, 09 Mar 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>An old story</title>
    <link>https://example.com/old</link>
    <pubDate>Mon, 05 Jan 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Undated idea</title>
    <link>https://example.com/undated</link>
  </item>
</channel>
</rss>`

func newFeedServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFiltersAndCleans(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK)
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	s := New(config.RSSFeed{Name: "growth", URL: srv.URL}, 7, ratelimit.NewDefaultLimiter(), logger.Nop())
	s.now = func() time.Time { return now }

	topics, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 2)

	assert.Equal(t, "Why pricing pages convert", topics[0].Title)
	assert.Equal(t, "Anchoring and decoys", topics[0].Description)
	assert.Equal(t, "https://example.com/pricing", topics[0].URL)
	assert.Equal(t, []string{"pricing"}, topics[0].Keywords)
	assert.Equal(t, "rss", topics[0].SourceType)
	assert.Equal(t, "growth", topics[0].SourceName)

	assert.Equal(t, "Undated idea", topics[1].Title)
	assert.Equal(t, now, topics[1].PublishedAt)
}

func TestFetchWithoutMaxAgeKeepsOldItems(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK)

	s := New(config.RSSFeed{Name: "growth", URL: srv.URL}, 0, nil, logger.Nop())
	topics, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, topics, 3)
}

func TestFetchHTTPError(t *testing.T) {
	srv := newFeedServer(t, http.StatusInternalServerError)

	s := New(config.RSSFeed{Name: "down", URL: srv.URL}, 7, nil, logger.Nop())
	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Error(t, s.HealthCheck(context.Background()))
}

func TestNewMultiple(t *testing.T) {
	cfg := config.RSSConfig{
		Enabled:    true,
		MaxAgeDays: 3,
		Feeds: []config.RSSFeed{
			{Name: "a", URL: "https://a.example.com/feed"},
			{Name: "b", URL: "https://b.example.com/feed"},
		},
	}

	sources := NewMultiple(cfg, nil, logger.Nop())
	require.Len(t, sources, 2)
	assert.Equal(t, "b", sources[1].Name())
	assert.Equal(t, "rss", sources[1].Type())
	assert.Equal(t, 72*time.Hour, sources[0].maxAge)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "one two", cleanText("<p>one</p><br/>two"))
	assert.Equal(t, "", cleanText("  <img src=x>  "))
}
