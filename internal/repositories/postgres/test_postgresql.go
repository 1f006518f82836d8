package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

// TestPostgreSQL implements repositories.TestRepository
type TestPostgreSQL struct {
	db *gorm.DB
}

func NewTestPostgreSQL(db *gorm.DB) repositories.TestRepository {
	return &TestPostgreSQL{db: db}
}

func (r *TestPostgreSQL) Create(ctx context.Context, test *models.Test) error {
	if err := r.db.WithContext(ctx).Create(test).Error; err != nil {
		return fmt.Errorf("failed to create test: %w", err)
	}
	return nil
}

func (r *TestPostgreSQL) GetByID(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	err := r.db.WithContext(ctx).
		Preload("Users").
		Preload("Marks.Skill").
		First(&test, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestPostgreSQL) Update(ctx context.Context, test *models.Test) error {
	if err := r.db.WithContext(ctx).Save(test).Error; err != nil {
		return fmt.Errorf("failed to update test: %w", err)
	}
	return nil
}

// Delete removes the test physically, taking participants and marks
// with it.
func (r *TestPostgreSQL) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&models.TestUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", id).Delete(&models.SkillMark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Test{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}
	return nil
}

// ListByUser returns every test the user participates in, tagged with
// their participant type, most recently updated first.
func (r *TestPostgreSQL) ListByUser(ctx context.Context, userID string) ([]repositories.TestWithRole, error) {
	var rows []repositories.TestWithRole
	err := r.db.WithContext(ctx).
		Model(&models.Test{}).
		Select("tests.*, test_user.user_type").
		Joins("JOIN test_user ON tests.id = test_user.test_id").
		Where("test_user.user_id = ?", userID).
		Order("tests.updated_at desc").
		Preload("Marks.Skill").
		Preload("Users").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tests by user: %w", err)
	}
	return rows, nil
}

func (r *TestPostgreSQL) AddParticipant(ctx context.Context, testID, userID string, userType models.TestUserType) error {
	pivot := models.TestUser{
		TestID:   testID,
		UserID:   userID,
		UserType: userType,
	}
	if err := r.db.WithContext(ctx).Create(&pivot).Error; err != nil {
		return fmt.Errorf("failed to add test participant: %w", err)
	}
	return nil
}

// AttachSkill creates the skill-mark row with mark 0, idempotently
func (r *TestPostgreSQL) AttachSkill(ctx context.Context, testID, skillID string) error {
	mark := models.SkillMark{
		TestID:  testID,
		SkillID: skillID,
		Mark:    0,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&mark).Error
	if err != nil {
		return fmt.Errorf("failed to attach skill to test: %w", err)
	}
	return nil
}

func (r *TestPostgreSQL) DetachSkill(ctx context.Context, testID, skillID string) error {
	err := r.db.WithContext(ctx).
		Where("test_id = ? AND skill_id = ?", testID, skillID).
		Delete(&models.SkillMark{}).Error
	if err != nil {
		return fmt.Errorf("failed to detach skill from test: %w", err)
	}
	return nil
}

func (r *TestPostgreSQL) GetSkillMark(ctx context.Context, id string) (*models.SkillMark, error) {
	var mark models.SkillMark
	err := r.db.WithContext(ctx).First(&mark, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &mark, nil
}

func (r *TestPostgreSQL) GetSkillMarkByTestAndSkill(ctx context.Context, testID, skillID string) (*models.SkillMark, error) {
	var mark models.SkillMark
	err := r.db.WithContext(ctx).
		First(&mark, "test_id = ? AND skill_id = ?", testID, skillID).Error
	if err != nil {
		return nil, err
	}
	return &mark, nil
}

func (r *TestPostgreSQL) UpdateSkillMark(ctx context.Context, mark *models.SkillMark) error {
	if err := r.db.WithContext(ctx).Save(mark).Error; err != nil {
		return fmt.Errorf("failed to update skill mark: %w", err)
	}
	return nil
}
