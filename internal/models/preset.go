package models

import (
	"time"
)

// Preset is a saved request configuration. It never holds generated content.
type Preset struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"uniqueIndex;not null" json:"name"`
	Platform        Platform        `gorm:"size:20;not null" json:"platform"`
	CulturalContext CulturalContext `gorm:"size:20;not null" json:"culturalContext"`
	PersuasionLevel PersuasionLevel `gorm:"size:20;not null" json:"persuasionLevel"`
	TargetEmotion   TargetEmotion   `gorm:"size:20;not null" json:"targetEmotion"`
	ContentType     ContentType     `gorm:"size:20;not null" json:"contentType"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Request builds a content request for the given topic from the preset
func (p *Preset) Request(topic string) ContentRequest {
	return ContentRequest{
		Platform:        p.Platform,
		Topic:           topic,
		CulturalContext: p.CulturalContext,
		PersuasionLevel: p.PersuasionLevel,
		TargetEmotion:   p.TargetEmotion,
		ContentType:     p.ContentType,
	}
}

// PresetFromRequest captures the configuration part of a request under a name
func PresetFromRequest(name string, req ContentRequest) *Preset {
	return &Preset{
		Name:            name,
		Platform:        req.Platform,
		CulturalContext: req.CulturalContext,
		PersuasionLevel: req.PersuasionLevel,
		TargetEmotion:   req.TargetEmotion,
		ContentType:     req.ContentType,
	}
}
