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

// UserPostgreSQL implements repositories.UserRepository
type UserPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.UserRepository {
	return &UserPostgreSQL{db: db, cache: cm}
}

func (r *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	cache.InvalidateUserCache(ctx, r.cache, user.ID)
	return nil
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile loads the user with everything the profile view shows:
// known skills, tests with their skills and participants, applied
// positions with company, and owned companies.
func (r *UserPostgreSQL) GetProfile(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Skills").
		Preload("Tests.Marks.Skill").
		Preload("Tests.Users").
		Preload("Applications.Position.Company").
		Preload("Companies").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	cache.InvalidateUserCache(ctx, r.cache, user.ID)
	return nil
}

func (r *UserPostgreSQL) ListActive(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.cache.User.CacheOrExecute(ctx, "list:active", &users, cache.UserCacheConfig.TTL,
		func() (interface{}, error) {
			var fresh []models.User
			err := r.db.WithContext(ctx).
				Preload("Skills").
				Where("status <> ?", models.UserStatusDeleted).
				Order("last_name desc").
				Find(&fresh).Error
			return fresh, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserPostgreSQL) ListBySkillTitle(ctx context.Context, word string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Distinct("users.*").
		Joins("JOIN skill_user ON users.id = skill_user.user_id").
		Joins("JOIN skills ON skills.id = skill_user.skill_id").
		Where("LOWER(skills.title) LIKE ?", "%"+strings.ToLower(word)+"%").
		Where("users.status <> ?", models.UserStatusDeleted).
		Order("last_name desc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users by skill: %w", err)
	}
	return users, nil
}

func (r *UserPostgreSQL) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *UserPostgreSQL) GetSkillPivot(ctx context.Context, userID, skillID string) (*models.SkillUser, error) {
	var pivot models.SkillUser
	err := r.db.WithContext(ctx).
		First(&pivot, "user_id = ? AND skill_id = ?", userID, skillID).Error
	if err != nil {
		return nil, err
	}
	return &pivot, nil
}

// AttachSkill is idempotent: an existing pivot row is left untouched,
// so a creator=true row is never downgraded.
func (r *UserPostgreSQL) AttachSkill(ctx context.Context, userID, skillID string, creator bool) error {
	pivot := models.SkillUser{
		UserID:  userID,
		SkillID: skillID,
		Creator: creator,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&pivot).Error
	if err != nil {
		return fmt.Errorf("failed to attach skill to user: %w", err)
	}
	cache.InvalidateUserCache(ctx, r.cache, userID)
	return nil
}

func (r *UserPostgreSQL) DetachSkill(ctx context.Context, userID, skillID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&models.SkillUser{}).Error
	if err != nil {
		return fmt.Errorf("failed to detach skill from user: %w", err)
	}
	cache.InvalidateUserCache(ctx, r.cache, userID)
	return nil
}
