package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

const testDateLayout = "2006-01-02"

type testService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher
}

func NewTestService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher) TestService {
	return &testService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Create schedules a test: the caller becomes the examiner and every
// listed skill starts as a zero mark.
func (s *testService) Create(ctx context.Context, req *TestCreateRequest, examinerID string) (*models.Test, error) {
	s.logger.Info("Scheduling new test", "examinee_id", req.ExamineeID, "examiner_id", examinerID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if _, err := s.repo.User().GetByID(ctx, req.ExamineeID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user", req.ExamineeID, "User not found")
		}
		return nil, fmt.Errorf("failed to get examinee: %w", err)
	}

	skillIDs := make([]string, 0, len(req.Skills))
	for _, ref := range req.Skills {
		skillIDs = append(skillIDs, ref.ID)
	}
	if len(skillIDs) > 0 {
		missing, err := s.repo.Skill().MissingIDs(ctx, skillIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check skills: %w", err)
		}
		if len(missing) > 0 {
			return nil, NewNotFoundError("skill", missing[0], "The skill specified is not in database")
		}
	}

	date, err := time.Parse(testDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	test := &models.Test{
		ExaminerID: examinerID,
		Date:       datatypes.Date(date),
		Completed:  false,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Test().Create(ctx, test); err != nil {
			return err
		}
		if err := tx.Test().AddParticipant(ctx, test.ID, examinerID, models.TestUserExaminer); err != nil {
			return err
		}
		if err := tx.Test().AddParticipant(ctx, test.ID, req.ExamineeID, models.TestUserExaminee); err != nil {
			return err
		}
		for _, skillID := range skillIDs {
			if err := tx.Test().AttachSkill(ctx, test.ID, skillID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule test: %w", err)
	}

	s.publishEvent(ctx, events.TestScheduled, map[string]interface{}{
		"test_id":     test.ID,
		"examiner_id": examinerID,
		"examinee_id": req.ExamineeID,
		"date":        req.Date,
	})

	s.logger.Info("Test scheduled", "test_id", test.ID)

	return test, nil
}

func (s *testService) Update(ctx context.Context, id string, req *TestUpdateRequest, userID string) (*models.Test, error) {
	s.logger.Info("Updating test", "test_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	test, err := s.getOwnedTest(ctx, id, userID, "update", "The test specified does not exist")
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse(testDateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		test.Date = datatypes.Date(date)
	}
	if req.Completed != nil {
		test.Completed = *req.Completed
	}

	if err := s.repo.Test().Update(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to update test: %w", err)
	}

	s.logger.Info("Test edited", "test_id", test.ID)

	return test, nil
}

func (s *testService) Delete(ctx context.Context, id, userID string) error {
	s.logger.Info("Deleting test", "test_id", id, "user_id", userID)

	if _, err := s.getOwnedTest(ctx, id, userID, "delete", "The test specified does not exist"); err != nil {
		return err
	}

	if err := s.repo.Test().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}

	s.logger.Info("Test deleted", "test_id", id)

	return nil
}

func (s *testService) ListMine(ctx context.Context, userID string) ([]repositories.TestWithRole, error) {
	return s.repo.Test().ListByUser(ctx, userID)
}

// AttachSkill adds a zero mark for the skill, idempotently
func (s *testService) AttachSkill(ctx context.Context, testID, skillID, userID string) (*models.Skill, error) {
	skill, err := s.resolveSkillOp(ctx, testID, skillID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Test().AttachSkill(ctx, testID, skillID); err != nil {
		return nil, err
	}

	s.logger.Info("Skill added to test", "test_id", testID, "skill_id", skillID)

	return skill, nil
}

func (s *testService) DetachSkill(ctx context.Context, testID, skillID, userID string) (*models.Skill, error) {
	skill, err := s.resolveSkillOp(ctx, testID, skillID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Test().DetachSkill(ctx, testID, skillID); err != nil {
		return nil, err
	}

	s.logger.Info("Skill removed from test", "test_id", testID, "skill_id", skillID)

	return skill, nil
}

// EvaluateSkill settles one mark on an existing skill-mark row
func (s *testService) EvaluateSkill(ctx context.Context, skillMarkID string, mark uint, userID string) (*models.SkillMark, error) {
	s.logger.Info("Evaluating skill", "skill_mark_id", skillMarkID, "user_id", userID)

	skillMark, err := s.repo.Test().GetSkillMark(ctx, skillMarkID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("skill_mark", skillMarkID, "Register not found")
		}
		return nil, fmt.Errorf("failed to get skill mark: %w", err)
	}

	if _, err := s.getOwnedTest(ctx, skillMark.TestID, userID, "evaluate", "Register not found"); err != nil {
		return nil, err
	}

	skillMark.Mark = mark
	if err := s.repo.Test().UpdateSkillMark(ctx, skillMark); err != nil {
		return nil, fmt.Errorf("failed to update skill mark: %w", err)
	}

	s.logger.Info("Skill mark registered", "skill_mark_id", skillMark.ID, "mark", mark)

	return skillMark, nil
}

// EvaluateTest settles every listed mark of one test. Marks are only
// updated where a skill-mark row already exists; listed skills that were
// never attached to the test are skipped.
func (s *testService) EvaluateTest(ctx context.Context, testID string, req *EvaluateTestRequest, userID string) error {
	s.logger.Info("Evaluating test", "test_id", testID, "user_id", userID)

	if errs := s.validator.Validate(req); errs != nil {
		return errs
	}

	if _, err := s.getOwnedTest(ctx, testID, userID, "evaluate", "Register not found"); err != nil {
		return err
	}

	skillIDs := make([]string, 0, len(req.Skills))
	for _, entry := range req.Skills {
		skillIDs = append(skillIDs, entry.ID)
	}
	missing, err := s.repo.Skill().MissingIDs(ctx, skillIDs)
	if err != nil {
		return fmt.Errorf("failed to check skills: %w", err)
	}
	if len(missing) > 0 {
		return NewNotFoundError("skill", missing[0], "The skill specified is not in database")
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, entry := range req.Skills {
			skillMark, err := tx.Test().GetSkillMarkByTestAndSkill(ctx, testID, entry.ID)
			if err != nil {
				if repositories.IsNotFoundError(err) {
					continue // skill not attached to this test
				}
				return err
			}
			skillMark.Mark = *entry.Mark
			if err := tx.Test().UpdateSkillMark(ctx, skillMark); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate test: %w", err)
	}

	s.logger.Info("Skill marks registered", "test_id", testID)

	return nil
}

// resolveSkillOp runs the shared skill/test/examiner checks for the
// attach and detach operations, in that order.
func (s *testService) resolveSkillOp(ctx context.Context, testID, skillID, userID string) (*models.Skill, error) {
	skill, err := s.repo.Skill().GetByID(ctx, skillID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("skill", skillID, "The skill specified does not exist")
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	if _, err := s.getOwnedTest(ctx, testID, userID, "manage_skills", "The test specified does not exist"); err != nil {
		return nil, err
	}

	return skill, nil
}

// getOwnedTest loads the test and rejects callers other than its
// examiner. notFoundMsg varies per operation in the public contract.
func (s *testService) getOwnedTest(ctx context.Context, testID, userID, action, notFoundMsg string) (*models.Test, error) {
	test, err := s.repo.Test().GetByID(ctx, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("test", testID, notFoundMsg)
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	if test.ExaminerID != userID {
		return nil, NewPermissionError(userID, "test", action, "User not allowed to this operation")
	}

	return test, nil
}

func (s *testService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
