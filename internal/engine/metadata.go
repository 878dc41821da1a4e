package engine

import (
	"math/rand/v2"

	"github.com/persuasion-engine/internal/models"
)

// Viral score bounds (inclusive). The score is synthetic, not predictive.
const (
	MinViralScore = 75
	MaxViralScore = 99
)

// Metadata is the set of derived descriptors attached to every result
type Metadata struct {
	Hooks                []string
	CTAType              models.CTAType
	ViralScore           int
	PersuasionTechniques []string
	Emojis               []string
	VisualAssets         []models.VisualAsset
}

// MetadataGenerator produces the metadata for a validated request
type MetadataGenerator interface {
	Generate(req ValidatedRequest) Metadata
}

// ScoreSource is the entropy behind the viral score. *rand.Rand satisfies it.
type ScoreSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultScoreSource draws from the goroutine-safe global math/rand/v2 source
func DefaultScoreSource() ScoreSource { return globalRand{} }

var defaultHooks = []string{
	"Pattern interrupt opening",
	"Curiosity gap creation",
	"Authority positioning",
	"Social proof embedding",
	"Invisible CTA placement",
}

var defaultTechniques = []string{
	"Social Proof Embedding",
	"Authority Echo",
	"Curiosity Loop",
	"Invisible CTA",
	"Cultural Bridge",
	"Scarcity Implication",
	"Future Pacing",
	"Pattern Interrupt",
}

var defaultEmojis = []string{"🤔", "💡", "🚀", "✨", "🎯", "🧠", "⚡", "🔥"}

var defaultVisualAssets = []models.VisualAsset{
	{
		ID:                "visual_1",
		Type:              models.AssetPersuasionGraphic,
		Description:       "Emotional trigger infographic with psychological anchors",
		PsychologyTrigger: "Visual authority building + curiosity activation",
	},
	{
		ID:                "visual_2",
		Type:              models.AssetInfoArchitecture,
		Description:       "Data visualization with social proof elements",
		PsychologyTrigger: "Credibility through data + bandwagon effect",
	},
	{
		ID:                "visual_3",
		Type:              models.AssetSignatureElement,
		Description:       "Branded quote card with viral mechanics",
		PsychologyTrigger: "Shareability optimization + status signaling",
	},
}

// StaticMetadata returns the same descriptors for every request. Only the
// viral score varies.
type StaticMetadata struct {
	scores ScoreSource
}

// NewStaticMetadata creates the default generator. A nil source uses math/rand/v2.
func NewStaticMetadata(scores ScoreSource) *StaticMetadata {
	if scores == nil {
		scores = DefaultScoreSource()
	}
	return &StaticMetadata{scores: scores}
}

// Generate returns fresh copies of the static descriptors plus a score draw
func (m *StaticMetadata) Generate(_ ValidatedRequest) Metadata {
	return Metadata{
		Hooks:                clone(defaultHooks),
		CTAType:              models.CTAInvisible,
		ViralScore:           ViralScore(m.scores),
		PersuasionTechniques: clone(defaultTechniques),
		Emojis:               clone(defaultEmojis),
		VisualAssets:         clone(defaultVisualAssets),
	}
}

// ViralScore draws a uniform integer in [MinViralScore, MaxViralScore].
// Out-of-range draws from a misbehaving source are clamped.
func ViralScore(src ScoreSource) int {
	score := MinViralScore + src.IntN(MaxViralScore-MinViralScore+1)
	return min(max(score, MinViralScore), MaxViralScore)
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
