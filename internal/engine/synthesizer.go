package engine

import (
	"strings"
	"unicode"
)

// Sanitizer decides how a topic is rendered into template slots
type Sanitizer interface {
	// Sanitize returns the text placed in the body topic slot
	Sanitize(topic string) string
	// Hashtag returns the text placed after a '#' in the hashtag slot
	Hashtag(topic string) string
}

// VerbatimSanitizer inserts the topic as given. Only whitespace is dropped
// from the hashtag form.
type VerbatimSanitizer struct{}

func (VerbatimSanitizer) Sanitize(topic string) string { return topic }

func (VerbatimSanitizer) Hashtag(topic string) string {
	return strings.Join(strings.Fields(topic), "")
}

// StrictSanitizer strips control characters and '#' from the body slot,
// collapses whitespace, and keeps only letters, marks and digits in the hashtag.
type StrictSanitizer struct{}

func (StrictSanitizer) Sanitize(topic string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '#' || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, topic)
	return strings.Join(strings.Fields(cleaned), " ")
}

func (StrictSanitizer) Hashtag(topic string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, topic)
}

// Synthesizer interpolates a topic into a template
type Synthesizer struct {
	sanitizer Sanitizer
}

// NewSynthesizer creates a synthesizer. A nil sanitizer means verbatim.
func NewSynthesizer(s Sanitizer) *Synthesizer {
	if s == nil {
		s = VerbatimSanitizer{}
	}
	return &Synthesizer{sanitizer: s}
}

// Synthesize renders the template with the topic in every topic slot
func (s *Synthesizer) Synthesize(t Template, topic string) string {
	if t.tpl == nil {
		return t.Text
	}

	var b strings.Builder
	b.Grow(len(t.Text) + 4*len(topic))
	data := slots{
		Topic:   s.sanitizer.Sanitize(topic),
		Hashtag: s.sanitizer.Hashtag(topic),
	}
	// templates only reference fields of slots, checked when the registry is built
	_ = t.tpl.Execute(&b, data)
	return b.String()
}
