package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/persuasion-engine/internal/models"
)

// Key addresses one cell of the template matrix
type Key struct {
	Platform        models.Platform
	PersuasionLevel models.PersuasionLevel
}

func (k Key) String() string {
	return string(k.Platform) + "/" + string(k.PersuasionLevel)
}

// AllKeys returns every platform x persuasion level combination
func AllKeys() []Key {
	keys := make([]Key, 0, len(models.Platforms)*len(models.PersuasionLevels))
	for _, p := range models.Platforms {
		for _, l := range models.PersuasionLevels {
			keys = append(keys, Key{Platform: p, PersuasionLevel: l})
		}
	}
	return keys
}

// Template is a parsed, immutable content template
type Template struct {
	Key  Key
	Text string
	tpl  *template.Template
}

// slots is the data a template is executed against
type slots struct {
	Topic   string
	Hashtag string
}

// Registry is a total mapping from Key to Template. It is read-only once built.
type Registry struct {
	templates map[Key]Template
}

// NewRegistry builds a registry from raw template text. Every key returned by
// AllKeys must be present and every template must reference the topic slot.
func NewRegistry(entries map[Key]string) (*Registry, error) {
	var missing []Key
	for _, k := range AllKeys() {
		if _, ok := entries[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, &RegistryLookupError{Missing: missing, Reason: "catalog is not exhaustive"}
	}

	r := &Registry{templates: make(map[Key]Template, len(entries))}
	for k, text := range entries {
		if !strings.Contains(text, "{{.Topic}}") {
			return nil, fmt.Errorf("template %s has no topic slot", k)
		}
		tpl, err := template.New(k.String()).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", k, err)
		}
		r.templates[k] = Template{Key: k, Text: text, tpl: tpl}
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on a malformed catalog
func MustNewRegistry(entries map[Key]string) *Registry {
	r, err := NewRegistry(entries)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the built-in template matrix
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = MustNewRegistry(builtinTemplates)
	})
	return defaultRegistry
}

// Lookup returns the template for a platform and persuasion level
func (r *Registry) Lookup(platform models.Platform, level models.PersuasionLevel) (Template, error) {
	k := Key{Platform: platform, PersuasionLevel: level}
	t, ok := r.templates[k]
	if !ok {
		return Template{}, &RegistryLookupError{Missing: []Key{k}}
	}
	return t, nil
}

// Keys returns the registered keys in platform, then intensity order
func (r *Registry) Keys() []Key {
	order := func(k Key) int {
		pi, li := 0, 0
		for i, p := range models.Platforms {
			if p == k.Platform {
				pi = i
			}
		}
		for i, l := range models.PersuasionLevels {
			if l == k.PersuasionLevel {
				li = i
			}
		}
		return pi*len(models.PersuasionLevels) + li
	}

	keys := make([]Key, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return order(keys[i]) < order(keys[j]) })
	return keys
}
