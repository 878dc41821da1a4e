package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/persuasion-engine/internal/models"
)

// Clock returns the current time
type Clock func() time.Time

// Assembler merges synthesized text and metadata into a result record
type Assembler struct {
	now   Clock
	newID func() string
}

// NewAssembler creates an assembler. A nil clock uses time.Now.
func NewAssembler(now Clock) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{
		now:   now,
		newID: func() string { return uuid.NewString() },
	}
}

// Assemble stamps identity and creation time onto the result
func (a *Assembler) Assemble(req ValidatedRequest, text string, meta Metadata) models.GeneratedContent {
	createdAt := a.now()

	return models.GeneratedContent{
		ID:                   a.contentID(createdAt),
		Platform:             req.req.Platform,
		Content:              text,
		Hooks:                meta.Hooks,
		CTAType:              meta.CTAType,
		ViralScore:           meta.ViralScore,
		PersuasionTechniques: meta.PersuasionTechniques,
		Emojis:               meta.Emojis,
		VisualAssets:         meta.VisualAssets,
		CreatedAt:            createdAt,
	}
}

// contentID is content_<unix millis>_<8 hex chars>; the suffix keeps ids
// unique when two results share a millisecond.
func (a *Assembler) contentID(t time.Time) string {
	suffix := strings.ReplaceAll(a.newID(), "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("content_%d_%s", t.UnixMilli(), suffix)
}
