// Package engine turns a topic and a content request into a GeneratedContent
// record: validate, look up the template, interpolate, attach metadata,
// assemble. An Engine holds no mutable state and is safe for concurrent use.
package engine

import (
	"github.com/persuasion-engine/internal/models"
	"github.com/persuasion-engine/pkg/logger"
)

// Engine wires the synthesis pipeline together
type Engine struct {
	validator   *Validator
	registry    *Registry
	synthesizer *Synthesizer
	metadata    MetadataGenerator
	assembler   *Assembler
	log         *logger.Logger
}

// Option configures an Engine
type Option func(*options)

type options struct {
	registry  *Registry
	sanitizer Sanitizer
	metadata  MetadataGenerator
	scores    ScoreSource
	clock     Clock
	log       *logger.Logger
}

// WithRegistry replaces the built-in template registry
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithSanitizer sets the topic sanitization contract
func WithSanitizer(s Sanitizer) Option {
	return func(o *options) { o.sanitizer = s }
}

// WithMetadataGenerator replaces the static metadata generator
func WithMetadataGenerator(m MetadataGenerator) Option {
	return func(o *options) { o.metadata = m }
}

// WithScoreSource sets the entropy used by the default metadata generator
func WithScoreSource(s ScoreSource) Option {
	return func(o *options) { o.scores = s }
}

// WithClock sets the clock used for ids and timestamps
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger enables debug logging of each generation
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates an engine with the built-in templates unless overridden
func New(opts ...Option) *Engine {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.metadata == nil {
		o.metadata = NewStaticMetadata(o.scores)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}

	return &Engine{
		validator:   NewValidator(),
		registry:    o.registry,
		synthesizer: NewSynthesizer(o.sanitizer),
		metadata:    o.metadata,
		assembler:   NewAssembler(o.clock),
		log:         o.log.WithComponent("engine"),
	}
}

// Registry exposes the template registry the engine reads from
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Validate checks a request without generating anything
func (e *Engine) Validate(req models.ContentRequest) (ValidatedRequest, error) {
	return e.validator.Validate(req)
}

// Generate produces content for topic using the configuration in req.
// The topic argument takes the place of req.Topic. The only error is a
// *ValidationError; nothing is produced when it is returned.
func (e *Engine) Generate(topic string, req models.ContentRequest) (models.GeneratedContent, error) {
	req.Topic = topic

	vr, err := e.validator.Validate(req)
	if err != nil {
		return models.GeneratedContent{}, err
	}
	r := vr.Request()

	tpl, err := e.registry.Lookup(r.Platform, r.PersuasionLevel)
	if err != nil {
		// unreachable for a registry built by NewRegistry
		panic(err)
	}

	text := e.synthesizer.Synthesize(tpl, r.Topic)
	meta := e.metadata.Generate(vr)
	content := e.assembler.Assemble(vr, text, meta)

	e.log.Debug().
		Str("id", content.ID).
		Str("template", tpl.Key.String()).
		Str("cultural_context", string(r.CulturalContext)).
		Str("target_emotion", string(r.TargetEmotion)).
		Str("content_type", string(r.ContentType)).
		Int("viral_score", content.ViralScore).
		Msg("Content generated")

	return content, nil
}
