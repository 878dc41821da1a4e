package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/persuasion-engine/internal/models"
	"github.com/persuasion-engine/internal/storage"
)

// Repository implements storage.Repository using SQLite
type Repository struct {
	db *gorm.DB
}

// New creates a new SQLite repository
func New(dsn string) (*Repository, error) {
	// Ensure directory exists
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" && dsn != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Migrate runs database migrations
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&models.Preset{})
}

// Close closes the database connection
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SavePreset creates the preset or overwrites the one with the same name
func (r *Repository) SavePreset(ctx context.Context, preset *models.Preset) error {
	var existing models.Preset
	err := r.db.WithContext(ctx).Where("name = ?", preset.Name).First(&existing).Error
	switch {
	case err == nil:
		preset.ID = existing.ID
		preset.CreatedAt = existing.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	return r.db.WithContext(ctx).Save(preset).Error
}

func (r *Repository) GetPreset(ctx context.Context, name string) (*models.Preset, error) {
	var preset models.Preset
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&preset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", storage.ErrPresetNotFound, name)
		}
		return nil, err
	}
	return &preset, nil
}

func (r *Repository) ListPresets(ctx context.Context, filter storage.PresetFilter) ([]*models.Preset, error) {
	var presets []*models.Preset
	query := r.db.WithContext(ctx).Model(&models.Preset{})

	if filter.Platform != nil {
		query = query.Where("platform = ?", *filter.Platform)
	}

	// Ordering
	orderCol := "name"
	switch filter.OrderBy {
	case "name", "created_at", "updated_at":
		orderCol = filter.OrderBy
	}
	if filter.OrderDesc {
		query = query.Order(orderCol + " DESC")
	} else {
		query = query.Order(orderCol + " ASC")
	}

	// Pagination
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&presets).Error; err != nil {
		return nil, err
	}
	return presets, nil
}

func (r *Repository) DeletePreset(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Preset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrPresetNotFound, name)
	}
	return nil
}

// Ensure Repository implements storage.Repository
var _ storage.Repository = (*Repository)(nil)
