// Package catalog holds the read-only Persuasion Lab reference data:
// persuasion patterns, psychology triggers and the illustrative analytics
// panels. It is loaded once from an embedded YAML document.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/persuasion-engine/internal/models"
)

//go:embed catalog.yaml
var builtin []byte

// Catalog is the parsed lab data. Accessors return copies.
type Catalog struct {
	patterns  []models.PersuasionPattern
	triggers  []models.PsychologyTrigger
	analytics []models.LabMetric
	funnel    []models.FunnelStage
}

type document struct {
	Patterns  []models.PersuasionPattern `yaml:"patterns"`
	Triggers  []models.PsychologyTrigger `yaml:"triggers"`
	Analytics []models.LabMetric         `yaml:"analytics"`
	Funnel    []models.FunnelStage       `yaml:"funnel"`
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error decoding catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Patterns))
	for _, p := range doc.Patterns {
		if p.ID == "" {
			return nil, fmt.Errorf("pattern %q has no id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate pattern id %q", p.ID)
		}
		seen[p.ID] = true

		if p.Effectiveness < 0 || p.Effectiveness > 100 {
			return nil, fmt.Errorf("pattern %q: effectiveness %d outside 0-100", p.ID, p.Effectiveness)
		}
		switch p.Platform {
		case models.PatternLinkedIn, models.PatternInstagram, models.PatternBoth:
		default:
			return nil, fmt.Errorf("pattern %q: unknown platform %q", p.ID, p.Platform)
		}
	}

	return &Catalog{
		patterns:  doc.Patterns,
		triggers:  doc.Triggers,
		analytics: doc.Analytics,
		funnel:    doc.Funnel,
	}, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the embedded catalog. It panics if the embedded document
// is malformed, which the package tests rule out.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := Parse(builtin)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Patterns returns the patterns usable on platform; an empty platform returns all
func (c *Catalog) Patterns(platform models.Platform) []models.PersuasionPattern {
	out := make([]models.PersuasionPattern, 0, len(c.patterns))
	for _, p := range c.patterns {
		if platform == "" || p.Platform.Matches(platform) {
			out = append(out, p)
		}
	}
	return out
}

// Pattern looks up a pattern by id
func (c *Catalog) Pattern(id string) (models.PersuasionPattern, bool) {
	for _, p := range c.patterns {
		if p.ID == id {
			return p, true
		}
	}
	return models.PersuasionPattern{}, false
}

// Triggers returns the psychology triggers
func (c *Catalog) Triggers() []models.PsychologyTrigger {
	out := make([]models.PsychologyTrigger, len(c.triggers))
	for i, t := range c.triggers {
		t.Examples = append([]string(nil), t.Examples...)
		out[i] = t
	}
	return out
}

// Analytics returns the illustrative analytics tiles
func (c *Catalog) Analytics() []models.LabMetric {
	return append([]models.LabMetric(nil), c.analytics...)
}

// Funnel returns the illustrative conversion funnel stages
func (c *Catalog) Funnel() []models.FunnelStage {
	return append([]models.FunnelStage(nil), c.funnel...)
}
