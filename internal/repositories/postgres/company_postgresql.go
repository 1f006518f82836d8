package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hireloop/jobboard-service/internal/cache"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

// CompanyPostgreSQL implements repositories.CompanyRepository
type CompanyPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewCompanyPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.CompanyRepository {
	return &CompanyPostgreSQL{db: db, cache: cm}
}

func (r *CompanyPostgreSQL) Create(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	cache.InvalidateCompanyCache(ctx, r.cache, company.ID)
	return nil
}

func (r *CompanyPostgreSQL) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyPostgreSQL) GetByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).First(&company, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyPostgreSQL) Update(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Save(company).Error; err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	cache.InvalidateCompanyCache(ctx, r.cache, company.ID)
	return nil
}

func (r *CompanyPostgreSQL) ListActive(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := r.cache.Company.CacheOrExecute(ctx, "list:active", &companies, cache.CompanyCacheConfig.TTL,
		func() (interface{}, error) {
			var fresh []models.Company
			err := r.db.WithContext(ctx).
				Where("status <> ?", models.CompanyStatusDeleted).
				Find(&fresh).Error
			return fresh, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyPostgreSQL) SearchByName(ctx context.Context, name string) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Where("status <> ?", models.CompanyStatusDeleted).
		Order("name desc").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search companies by name: %w", err)
	}
	return companies, nil
}

func (r *CompanyPostgreSQL) ListByOwner(ctx context.Context, userID string) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status <> ?", models.CompanyStatusDeleted).
		Order("name desc").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list companies by owner: %w", err)
	}
	return companies, nil
}

func (r *CompanyPostgreSQL) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *CompanyPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
