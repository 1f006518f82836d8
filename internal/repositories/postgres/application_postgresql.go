package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hireloop/jobboard-service/internal/cache"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

// ApplicationPostgreSQL implements repositories.ApplicationRepository
type ApplicationPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewApplicationPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.ApplicationRepository {
	return &ApplicationPostgreSQL{db: db, cache: cm}
}

func (r *ApplicationPostgreSQL) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	cache.InvalidatePositionCache(ctx, r.cache, application.PositionID)
	return nil
}

func (r *ApplicationPostgreSQL) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationPostgreSQL) GetByPositionAndUser(ctx context.Context, positionID, userID string) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		First(&application, "position_id = ? AND user_id = ?", positionID, userID).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationPostgreSQL) Update(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Save(application).Error; err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	cache.InvalidatePositionCache(ctx, r.cache, application.PositionID)
	return nil
}

// ListByUser orders by status descending (rejected, pending, admin)
// and recency within each status.
func (r *ApplicationPostgreSQL) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("status desc").
		Order("updated_at desc").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by user: %w", err)
	}
	return applications, nil
}

func (r *ApplicationPostgreSQL) ListByPosition(ctx context.Context, positionID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("position_id = ?", positionID).
		Order("status desc").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by position: %w", err)
	}
	return applications, nil
}

func (r *ApplicationPostgreSQL) ListByPositionWithUsers(ctx context.Context, positionID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("position_id = ?", positionID).
		Order("status desc").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications with users: %w", err)
	}
	return applications, nil
}
