package repositories

import (
	"context"
	"errors"
	"fmt"

	"paylink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCaseNotFound = errors.New("suspicious activity case not found")

// SuspiciousActivityRepository persists fraud cases and serves the admin
// resolution workflow.
type SuspiciousActivityRepository interface {
	Create(ctx context.Context, activity *models.SuspiciousActivity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SuspiciousActivity, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.SuspiciousActivity, error)
	Resolve(ctx context.Context, id uuid.UUID, status, adminNote string) error
}

type suspiciousActivityRepository struct {
	db *gorm.DB
}

// NewSuspiciousActivityRepository creates a case repository over the
// given database handle.
func NewSuspiciousActivityRepository(db *gorm.DB) SuspiciousActivityRepository {
	return &suspiciousActivityRepository{db: db}
}

func (r *suspiciousActivityRepository) Create(ctx context.Context, activity *models.SuspiciousActivity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create suspicious activity: %w", err)
	}
	return nil
}

func (r *suspiciousActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SuspiciousActivity, error) {
	var activity models.SuspiciousActivity
	if err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get suspicious activity: %w", err)
	}
	return &activity, nil
}

func (r *suspiciousActivityRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.SuspiciousActivity, error) {
	query := r.db.WithContext(ctx).Model(&models.SuspiciousActivity{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var activities []*models.SuspiciousActivity
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list suspicious activities: %w", err)
	}
	return activities, nil
}

func (r *suspiciousActivityRepository) Resolve(ctx context.Context, id uuid.UUID, status, adminNote string) error {
	result := r.db.WithContext(ctx).
		Model(&models.SuspiciousActivity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "admin_note": adminNote})
	if result.Error != nil {
		return fmt.Errorf("failed to resolve suspicious activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}
