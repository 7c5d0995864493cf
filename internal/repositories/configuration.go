package repositories

import (
	"context"
	"errors"
	"fmt"

	"paylink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrConfigNotFound = errors.New("configuration not found")

// ConfigurationRepository persists business configuration rows.
type ConfigurationRepository interface {
	GetByKey(ctx context.Context, key string) (*models.Configuration, error)
	List(ctx context.Context) ([]*models.Configuration, error)
	Upsert(ctx context.Context, cfg *models.Configuration) error
	Delete(ctx context.Context, key string) error
}

type configurationRepository struct {
	db *gorm.DB
}

// NewConfigurationRepository creates a configuration repository over the
// given database handle.
func NewConfigurationRepository(db *gorm.DB) ConfigurationRepository {
	return &configurationRepository{db: db}
}

func (r *configurationRepository) GetByKey(ctx context.Context, key string) (*models.Configuration, error) {
	var cfg models.Configuration
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}
	return &cfg, nil
}

func (r *configurationRepository) List(ctx context.Context) ([]*models.Configuration, error) {
	var cfgs []*models.Configuration
	if err := r.db.WithContext(ctx).Order("key").Find(&cfgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list configurations: %w", err)
	}
	return cfgs, nil
}

func (r *configurationRepository) Upsert(ctx context.Context, cfg *models.Configuration) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).
		Create(cfg).Error
	if err != nil {
		return fmt.Errorf("failed to upsert configuration: %w", err)
	}
	return nil
}

func (r *configurationRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Configuration{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete configuration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConfigNotFound
	}
	return nil
}
