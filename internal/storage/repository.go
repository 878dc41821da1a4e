package storage

import (
	"context"
	"errors"

	"github.com/persuasion-engine/internal/models"
)

// ErrPresetNotFound is returned when no preset has the requested name
var ErrPresetNotFound = errors.New("preset not found")

// Repository defines the interface for preset persistence.
// Generated content is never stored.
type Repository interface {
	// Preset operations
	SavePreset(ctx context.Context, preset *models.Preset) error
	GetPreset(ctx context.Context, name string) (*models.Preset, error)
	ListPresets(ctx context.Context, filter PresetFilter) ([]*models.Preset, error)
	DeletePreset(ctx context.Context, name string) error

	// Maintenance
	Close() error
	Migrate() error
}

// PresetFilter defines filtering options for presets
type PresetFilter struct {
	Platform  *models.Platform
	Limit     int
	Offset    int
	OrderBy   string // "name", "created_at", "updated_at"
	OrderDesc bool
}

// DefaultPresetFilter returns a filter with sensible defaults
func DefaultPresetFilter() PresetFilter {
	return PresetFilter{
		Limit:   50,
		OrderBy: "name",
	}
}
