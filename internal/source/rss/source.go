package rss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/persuasion-engine/internal/config"
	"github.com/persuasion-engine/internal/models"
	"github.com/persuasion-engine/internal/source"
	"github.com/persuasion-engine/pkg/logger"
	"github.com/persuasion-engine/pkg/ratelimit"
)

// Source implements TopicSource for RSS feeds
type Source struct {
	name    string
	url     string
	maxAge  time.Duration
	parser  *gofeed.Parser
	limiter *ratelimit.MultiLimiter
	now     func() time.Time
	log     *logger.Logger
}

// New creates a new RSS source for a single feed. A nil limiter disables
// throttling; maxAgeDays <= 0 keeps items of any age.
func New(feed config.RSSFeed, maxAgeDays int, limiter *ratelimit.MultiLimiter, log *logger.Logger) *Source {
	return &Source{
		name:    feed.Name,
		url:     feed.URL,
		maxAge:  time.Duration(maxAgeDays) * 24 * time.Hour,
		parser:  gofeed.NewParser(),
		limiter: limiter,
		now:     time.Now,
		log:     log.WithSource("rss", feed.Name),
	}
}

// NewMultiple creates multiple RSS sources from config
func NewMultiple(cfg config.RSSConfig, limiter *ratelimit.MultiLimiter, log *logger.Logger) []*Source {
	sources := make([]*Source, 0, len(cfg.Feeds))
	for _, feed := range cfg.Feeds {
		sources = append(sources, New(feed, cfg.MaxAgeDays, limiter, log))
	}
	return sources
}

// Name returns the source name
func (s *Source) Name() string {
	return s.name
}

// Type returns "rss"
func (s *Source) Type() string {
	return "rss"
}

func (s *Source) wait(ctx context.Context) error {
	if s.limiter == nil || !s.limiter.Has(ratelimit.LimiterRSS) {
		return nil
	}
	return s.limiter.Wait(ctx, ratelimit.LimiterRSS)
}

// Fetch retrieves topic suggestions from the RSS feed
func (s *Source) Fetch(ctx context.Context) ([]*models.TopicSuggestion, error) {
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	s.log.Debug().Str("url", s.url).Msg("Fetching RSS feed")

	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed %s: %w", s.name, err)
	}

	now := s.now()
	topics := make([]*models.TopicSuggestion, 0, len(feed.Items))

	for _, item := range feed.Items {
		publishedAt := now
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
			if s.maxAge > 0 && now.Sub(publishedAt) > s.maxAge {
				continue
			}
		}

		title := cleanText(item.Title)
		if title == "" {
			continue
		}

		topics = append(topics, &models.TopicSuggestion{
			Title:       title,
			Description: cleanText(item.Description),
			URL:         item.Link,
			SourceType:  "rss",
			SourceName:  s.name,
			Keywords:    extractKeywords(item),
			PublishedAt: publishedAt,
		})
	}

	s.log.Info().
		Int("count", len(topics)).
		Str("feed", s.name).
		Msg("Fetched RSS topics")

	return topics, nil
}

// HealthCheck verifies the RSS feed is accessible
func (s *Source) HealthCheck(ctx context.Context) error {
	_, err := s.parser.ParseURLWithContext(s.url, ctx)
	return err
}

// cleanText removes HTML tags and extra whitespace
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "<br>", " ")
	text = strings.ReplaceAll(text, "<br/>", " ")
	text = strings.ReplaceAll(text, "<br />", " ")
	text = strings.ReplaceAll(text, "</p>", " ")

	var result strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(result.String()), " ")
}

// extractKeywords turns feed categories into keywords
func extractKeywords(item *gofeed.Item) []string {
	keywords := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			keywords = append(keywords, c)
		}
	}
	return keywords
}

// Ensure Source implements source.TopicSource
var _ source.TopicSource = (*Source)(nil)
