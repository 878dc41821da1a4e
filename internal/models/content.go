package models

import (
	"time"
)

// Platform is the social network a piece of content targets
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
)

// Platforms lists every supported platform in display order
var Platforms = []Platform{PlatformLinkedIn, PlatformInstagram}

// PersuasionLevel is the intensity axis used to pick a template variant
type PersuasionLevel string

const (
	PersuasionSubtle     PersuasionLevel = "subtle"
	PersuasionModerate   PersuasionLevel = "moderate"
	PersuasionAggressive PersuasionLevel = "aggressive"
)

// PersuasionLevels lists every persuasion level from gentlest to strongest
var PersuasionLevels = []PersuasionLevel{PersuasionSubtle, PersuasionModerate, PersuasionAggressive}

// CulturalContext represents the cultural framing requested by the user
type CulturalContext string

const (
	CulturalIndian CulturalContext = "indian"
	CulturalGlobal CulturalContext = "global"
	CulturalHybrid CulturalContext = "hybrid"
)

// TargetEmotion is the emotion the content should evoke
type TargetEmotion string

const (
	EmotionCuriosity   TargetEmotion = "curiosity"
	EmotionDesire      TargetEmotion = "desire"
	EmotionAuthority   TargetEmotion = "authority"
	EmotionExclusivity TargetEmotion = "exclusivity"
	EmotionUrgency     TargetEmotion = "urgency"
)

// ContentType is the archetype of the post
type ContentType string

const (
	ContentEducational ContentType = "educational"
	ContentStory       ContentType = "story"
	ContentInsight     ContentType = "insight"
	ContentRevelation  ContentType = "revelation"
	ContentChallenge   ContentType = "challenge"
)

// CTAType describes how visible the call-to-action is
type CTAType string

const (
	CTAInvisible CTAType = "invisible"
	CTASoft      CTAType = "soft"
	CTADirect    CTAType = "direct"
)

// VisualAssetType classifies a visual asset stub
type VisualAssetType string

const (
	AssetPersuasionGraphic VisualAssetType = "persuasion-graphic"
	AssetInfoArchitecture  VisualAssetType = "info-architecture"
	AssetSignatureElement  VisualAssetType = "signature-element"
)

// ContentRequest is the full configuration of a single synthesis call.
// The oneof lists are the enumerated domains checked by the validator.
type ContentRequest struct {
	Platform        Platform        `json:"platform" validate:"oneof=linkedin instagram"`
	Topic           string          `json:"topic" validate:"required"`
	CulturalContext CulturalContext `json:"culturalContext" validate:"oneof=indian global hybrid"`
	PersuasionLevel PersuasionLevel `json:"persuasionLevel" validate:"oneof=subtle moderate aggressive"`
	TargetEmotion   TargetEmotion   `json:"targetEmotion" validate:"oneof=curiosity desire authority exclusivity urgency"`
	ContentType     ContentType     `json:"contentType" validate:"oneof=educational story insight revelation challenge"`
}

// VisualAsset is a descriptive placeholder for an image that is never rendered
type VisualAsset struct {
	ID                string          `json:"id"`
	Type              VisualAssetType `json:"type"`
	URL               string          `json:"url"`
	Description       string          `json:"description"`
	PsychologyTrigger string          `json:"psychologyTrigger"`
}

// GeneratedContent is the immutable result of one synthesis call
type GeneratedContent struct {
	ID                   string        `json:"id"`
	Platform             Platform      `json:"platform"`
	Content              string        `json:"content"`
	Hooks                []string      `json:"hooks"`
	CTAType              CTAType       `json:"ctaType"`
	ViralScore           int           `json:"viralScore"`
	PersuasionTechniques []string      `json:"persuasionTechniques"`
	Emojis               []string      `json:"emojis"`
	VisualAssets         []VisualAsset `json:"visualAssets"`
	CreatedAt            time.Time     `json:"createdAt"`
}
