package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/persuasion-engine/internal/models"
)

func TestViralScoreRange(t *testing.T) {
	assert.Equal(t, 75, ViralScore(fixedScore(0)))
	assert.Equal(t, 99, ViralScore(fixedScore(24)))
	assert.Equal(t, 99, ViralScore(fixedScore(1000)))
	assert.Equal(t, 75, ViralScore(fixedScore(-5)))
}

func TestViralScoreDistribution(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))
	counts := make(map[int]int)

	const draws = 25000
	for i := 0; i < draws; i++ {
		counts[ViralScore(src)]++
	}

	assert.Len(t, counts, MaxViralScore-MinViralScore+1)
	for score := MinViralScore; score <= MaxViralScore; score++ {
		// expected 1000 per bucket
		assert.InDelta(t, 1000, counts[score], 200, "score %d", score)
	}
}

func TestStaticMetadata(t *testing.T) {
	meta := NewStaticMetadata(fixedScore(3)).Generate(ValidatedRequest{})

	assert.Equal(t, 78, meta.ViralScore)
	assert.Equal(t, models.CTAInvisible, meta.CTAType)
	assert.Equal(t, "Pattern interrupt opening", meta.Hooks[0])
	assert.Equal(t, "Pattern Interrupt", meta.PersuasionTechniques[7])
	assert.Equal(t, []string{"🤔", "💡", "🚀", "✨", "🎯", "🧠", "⚡", "🔥"}, meta.Emojis)
	assert.Equal(t, []models.VisualAssetType{
		models.AssetPersuasionGraphic,
		models.AssetInfoArchitecture,
		models.AssetSignatureElement,
	}, []models.VisualAssetType{meta.VisualAssets[0].Type, meta.VisualAssets[1].Type, meta.VisualAssets[2].Type})
}

func TestAssemblerIDs(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	a := NewAssembler(func() time.Time { return now })
	a.newID = func() string { return "0123abcd-ef45-6789-0000-000000000000" }

	req := ValidatedRequest{req: models.ContentRequest{Platform: models.PlatformInstagram}}
	got := a.Assemble(req, "text", Metadata{ViralScore: 90})

	assert.Equal(t, "content_1700000000123_0123abcd", got.ID)
	assert.Equal(t, models.PlatformInstagram, got.Platform)
	assert.Equal(t, "text", got.Content)
	assert.Equal(t, 90, got.ViralScore)
	assert.Equal(t, now, got.CreatedAt)
}
