package prompts

import (
	"context"
	"time"

	"github.com/persuasion-engine/internal/models"
	"github.com/persuasion-engine/internal/source"
	"github.com/persuasion-engine/pkg/logger"
)

// Source implements TopicSource for the configured quick prompts
type Source struct {
	prompts []string
	now     func() time.Time
	log     *logger.Logger
}

// New creates a new quick prompt source
func New(prompts []string, log *logger.Logger) *Source {
	return &Source{
		prompts: append([]string(nil), prompts...),
		now:     time.Now,
		log:     log.WithSource("prompts", "quick"),
	}
}

// Name returns the source name
func (s *Source) Name() string {
	return "quick-prompts"
}

// Type returns "prompts"
func (s *Source) Type() string {
	return "prompts"
}

// Prompts returns the configured prompts in order
func (s *Source) Prompts() []string {
	return append([]string(nil), s.prompts...)
}

// Fetch returns the quick prompts as suggestions
func (s *Source) Fetch(ctx context.Context) ([]*models.TopicSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	topics := make([]*models.TopicSuggestion, 0, len(s.prompts))
	for _, p := range s.prompts {
		topics = append(topics, &models.TopicSuggestion{
			Title:       p,
			SourceType:  "prompts",
			SourceName:  "quick",
			PublishedAt: now,
		})
	}

	s.log.Debug().Int("count", len(topics)).Msg("Returned quick prompts")
	return topics, nil
}

// HealthCheck always succeeds for the prompt source
func (s *Source) HealthCheck(ctx context.Context) error {
	return nil
}

// Ensure Source implements source.TopicSource
var _ source.TopicSource = (*Source)(nil)
