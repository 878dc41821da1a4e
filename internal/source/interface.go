package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/persuasion-engine/internal/models"
)

// DefaultConcurrency bounds how many sources are fetched at once
const DefaultConcurrency = 4

// TopicSource defines the interface for topic suggestion sources
type TopicSource interface {
	// Name returns the unique name of this source
	Name() string

	// Type returns the source type (prompts, rss)
	Type() string

	// Fetch retrieves topic suggestions from the source
	Fetch(ctx context.Context) ([]*models.TopicSuggestion, error)

	// HealthCheck verifies the source is accessible
	HealthCheck(ctx context.Context) error
}

// FetchError reports a failed fetch of one source
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Manager manages multiple topic sources
type Manager struct {
	sources     []TopicSource
	concurrency int
}

// NewManager creates a new source manager
func NewManager() *Manager {
	return &Manager{
		sources:     make([]TopicSource, 0),
		concurrency: DefaultConcurrency,
	}
}

// WithConcurrency sets the maximum number of sources fetched in parallel
func (m *Manager) WithConcurrency(n int) *Manager {
	if n > 0 {
		m.concurrency = n
	}
	return m
}

// Register adds a source to the manager
func (m *Manager) Register(source TopicSource) {
	m.sources = append(m.sources, source)
}

// GetSources returns all registered sources
func (m *Manager) GetSources() []TopicSource {
	return m.sources
}

// GetSourceByName returns a source by name
func (m *Manager) GetSourceByName(name string) TopicSource {
	for _, s := range m.sources {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// GetSourcesByType returns all sources of a given type
func (m *Manager) GetSourcesByType(sourceType string) []TopicSource {
	var result []TopicSource
	for _, s := range m.sources {
		if s.Type() == sourceType {
			result = append(result, s)
		}
	}
	return result
}

// FetchAll fetches suggestions from all sources concurrently. Results keep
// registration order and duplicate titles are dropped; a failing source
// contributes a *FetchError instead of suggestions.
func (m *Manager) FetchAll(ctx context.Context) ([]*models.TopicSuggestion, []error) {
	type result struct {
		topics []*models.TopicSuggestion
		err    error
	}

	results := make([]result, len(m.sources))
	p := pool.New().WithMaxGoroutines(m.concurrency)

	for idx, src := range m.sources {
		p.Go(func() {
			topics, err := src.Fetch(ctx)
			if err != nil {
				err = &FetchError{Source: src.Name(), Err: err}
			}
			results[idx] = result{topics: topics, err: err}
		})
	}
	p.Wait()

	var allTopics []*models.TopicSuggestion
	var errs []error
	seen := make(map[string]bool)

	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		for _, t := range r.topics {
			key := strings.ToLower(strings.TrimSpace(t.Title))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			allTopics = append(allTopics, t)
		}
	}

	return allTopics, errs
}
