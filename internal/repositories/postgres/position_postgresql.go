package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireloop/jobboard-service/internal/cache"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

// PositionPostgreSQL implements repositories.PositionRepository
type PositionPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewPositionPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.PositionRepository {
	return &PositionPostgreSQL{db: db, cache: cm}
}

// listingPreloads attaches everything listings show: required skills,
// company summary and the applicants.
func (r *PositionPostgreSQL) listingPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Skills").
		Preload("Company").
		Preload("Applications.User")
}

func (r *PositionPostgreSQL) Create(ctx context.Context, position *models.Position) error {
	if err := r.db.WithContext(ctx).Create(position).Error; err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}
	cache.InvalidatePositionCache(ctx, r.cache, position.ID)
	return nil
}

func (r *PositionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).First(&position, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *PositionPostgreSQL) GetOpenByID(ctx context.Context, id string) (*models.Position, error) {
	var position models.Position
	err := r.listingPreloads(r.db.WithContext(ctx)).
		Where("open = ?", true).
		First(&position, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *PositionPostgreSQL) Update(ctx context.Context, position *models.Position) error {
	if err := r.db.WithContext(ctx).Save(position).Error; err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	cache.InvalidatePositionCache(ctx, r.cache, position.ID)
	return nil
}

func (r *PositionPostgreSQL) ListOpen(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	err := r.cache.Position.CacheOrExecute(ctx, "list:open", &positions, cache.PositionCacheConfig.TTL,
		func() (interface{}, error) {
			var fresh []models.Position
			err := r.listingPreloads(r.db.WithContext(ctx)).
				Where("open = ?", true).
				Find(&fresh).Error
			return fresh, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

// SearchOpen matches the keyword against title, description, location,
// company name and required skill titles, case-insensitively. Joining
// through the pivots can return a position once per matching skill, so
// results are deduplicated by id.
func (r *PositionPostgreSQL) SearchOpen(ctx context.Context, word string) ([]models.Position, error) {
	pattern := "%" + strings.ToLower(word) + "%"

	var positions []models.Position
	err := r.listingPreloads(r.db.WithContext(ctx)).
		Distinct("positions.*").
		Joins("LEFT JOIN position_skill ON positions.id = position_skill.position_id").
		Joins("LEFT JOIN skills ON skills.id = position_skill.skill_id").
		Joins("JOIN companies ON positions.company_id = companies.id").
		Where("positions.open = ?", true).
		Where(r.db.
			Where("LOWER(positions.title) LIKE ?", pattern).
			Or("LOWER(positions.description) LIKE ?", pattern).
			Or("LOWER(positions.location) LIKE ?", pattern).
			Or("LOWER(companies.name) LIKE ?", pattern).
			Or("LOWER(skills.title) LIKE ?", pattern)).
		Order("positions.created_at desc").
		Find(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search positions: %w", err)
	}
	return positions, nil
}

func (r *PositionPostgreSQL) ListOpenByCompany(ctx context.Context, companyID string) ([]models.Position, error) {
	var positions []models.Position
	err := r.listingPreloads(r.db.WithContext(ctx)).
		Where("open = ?", true).
		Where("company_id = ?", companyID).
		Find(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list positions by company: %w", err)
	}
	return positions, nil
}

func (r *PositionPostgreSQL) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Position{}).
		Where("title = ?", title).
		Count(&count).Error
	return count > 0, err
}

// AttachSkill is idempotent, an already attached skill is a no-op
func (r *PositionPostgreSQL) AttachSkill(ctx context.Context, positionID, skillID string) error {
	pivot := models.PositionSkill{
		PositionID: positionID,
		SkillID:    skillID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&pivot).Error
	if err != nil {
		return fmt.Errorf("failed to attach skill to position: %w", err)
	}
	cache.InvalidatePositionCache(ctx, r.cache, positionID)
	return nil
}

func (r *PositionPostgreSQL) DetachSkill(ctx context.Context, positionID, skillID string) error {
	err := r.db.WithContext(ctx).
		Where("position_id = ? AND skill_id = ?", positionID, skillID).
		Delete(&models.PositionSkill{}).Error
	if err != nil {
		return fmt.Errorf("failed to detach skill from position: %w", err)
	}
	cache.InvalidatePositionCache(ctx, r.cache, positionID)
	return nil
}
