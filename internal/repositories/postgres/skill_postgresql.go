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

// SkillPostgreSQL implements repositories.SkillRepository
type SkillPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewSkillPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.SkillRepository {
	return &SkillPostgreSQL{db: db, cache: cm}
}

func (r *SkillPostgreSQL) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	cache.InvalidateSkillCache(ctx, r.cache, skill.ID)
	return nil
}

func (r *SkillPostgreSQL) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillPostgreSQL) Update(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Save(skill).Error; err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}
	cache.InvalidateSkillCache(ctx, r.cache, skill.ID)
	return nil
}

// Delete removes the skill physically together with every join row
// that references it.
func (r *SkillPostgreSQL) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("skill_id = ?", id).Delete(&models.SkillUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("skill_id = ?", id).Delete(&models.PositionSkill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("skill_id = ?", id).Delete(&models.SkillMark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Skill{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	cache.InvalidateSkillCache(ctx, r.cache, id)
	return nil
}

func (r *SkillPostgreSQL) List(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.cache.Skill.CacheOrExecute(ctx, "list:all", &skills, cache.SkillCacheConfig.TTL,
		func() (interface{}, error) {
			var fresh []models.Skill
			err := r.db.WithContext(ctx).Find(&fresh).Error
			return fresh, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

func (r *SkillPostgreSQL) SearchByTitle(ctx context.Context, title string) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%").
		Order("title desc").
		Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search skills by title: %w", err)
	}
	return skills, nil
}

func (r *SkillPostgreSQL) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("title = ?", title).
		Count(&count).Error
	return count > 0, err
}

// MissingIDs returns the subset of ids with no matching skill row,
// used for all-or-nothing existence checks on list payloads.
func (r *SkillPostgreSQL) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []string
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check skill ids: %w", err)
	}

	existing := make(map[string]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}

	var missing []string
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
