package models

import (
	"time"
)

// TopicSuggestion is a candidate topic offered to the user before generation
type TopicSuggestion struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	SourceType  string    `json:"sourceType"` // prompts, rss
	SourceName  string    `json:"sourceName"`
	Keywords    []string  `json:"keywords,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}
