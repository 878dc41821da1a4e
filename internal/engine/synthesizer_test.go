package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persuasion-engine/internal/models"
)

func TestSynthesizeVerbatim(t *testing.T) {
	tpl, err := DefaultRegistry().Lookup(models.PlatformInstagram, models.PersuasionSubtle)
	require.NoError(t, err)

	topic := `growth <b>"hacks"</b> #2`
	got := NewSynthesizer(nil).Synthesize(tpl, topic)

	assert.Contains(t, got, "Everyone's talking about "+topic+", but")
	assert.Contains(t, got, `#growth<b>"hacks"</b>#2 #mindsetshift`)
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	tpl, err := DefaultRegistry().Lookup(models.PlatformLinkedIn, models.PersuasionAggressive)
	require.NoError(t, err)

	s := NewSynthesizer(nil)
	assert.Equal(t, s.Synthesize(tpl, "sales"), s.Synthesize(tpl, "sales"))
}

func TestStrictSanitizer(t *testing.T) {
	s := StrictSanitizer{}

	assert.Equal(t, "AI in fintech 2", s.Sanitize("AI\x00 in\n  fintech #2"))
	assert.Equal(t, "AIinfintech2", s.Hashtag("AI in fintech #2!"))
	assert.Equal(t, "भारतAI", s.Hashtag("भारत AI"))
}

func TestSynthesizeStrict(t *testing.T) {
	tpl, err := DefaultRegistry().Lookup(models.PlatformInstagram, models.PersuasionModerate)
	require.NoError(t, err)

	got := NewSynthesizer(StrictSanitizer{}).Synthesize(tpl, "#growth\nhacks!")

	assert.Contains(t, got, "Plot twist: growth hacks! isn't what you think it is...")
	assert.Contains(t, got, "#growthhacks #psychology")
}

func TestSynthesizeZeroTemplate(t *testing.T) {
	assert.Equal(t, "plain", NewSynthesizer(nil).Synthesize(Template{Text: "plain"}, "topic"))
}
