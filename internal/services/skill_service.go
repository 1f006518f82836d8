package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

type skillService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSkillService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) SkillService {
	return &skillService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create stores the skill and attaches the caller as its creator. Only
// the creator may later edit or delete it.
func (s *skillService) Create(ctx context.Context, req *SkillCreateRequest, creatorID string) (*models.Skill, error) {
	s.logger.Info("Registering new skill", "title", req.Title, "creator_id", creatorID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	taken, err := s.repo.Skill().ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check skill title: %w", err)
	}
	if taken {
		return nil, NewConflictError("skill", "The title has already been taken")
	}

	skill := &models.Skill{
		Title:       req.Title,
		Description: req.Description,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Skill().Create(ctx, skill); err != nil {
			return err
		}
		return tx.User().AttachSkill(ctx, creatorID, skill.ID, true)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	s.logger.Info("New skill added to database", "skill_id", skill.ID)

	return skill, nil
}

func (s *skillService) Update(ctx context.Context, id string, req *SkillUpdateRequest, userID string) (*models.Skill, error) {
	s.logger.Info("Updating skill", "skill_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	skill, err := s.repo.Skill().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("skill", id, "Invalid skill id")
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	if err := s.checkCreator(ctx, userID, id, "update"); err != nil {
		return nil, err
	}

	if req.Title != nil {
		skill.Title = *req.Title
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}

	if err := s.repo.Skill().Update(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	s.logger.Info("Skill updated", "skill_id", skill.ID)

	return skill, nil
}

// Delete removes the skill physically together with every reference in
// known-skill lists, position requirements and test marks.
func (s *skillService) Delete(ctx context.Context, id, userID string) error {
	s.logger.Info("Deleting skill", "skill_id", id, "user_id", userID)

	if _, err := s.repo.Skill().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("skill", id, "Invalid skill id")
		}
		return fmt.Errorf("failed to get skill: %w", err)
	}

	if err := s.checkCreator(ctx, userID, id, "delete"); err != nil {
		return err
	}

	if err := s.repo.Skill().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	s.logger.Info("Skill deleted", "skill_id", id)

	return nil
}

func (s *skillService) List(ctx context.Context) ([]models.Skill, error) {
	return s.repo.Skill().List(ctx)
}

func (s *skillService) SearchByTitle(ctx context.Context, title string) ([]models.Skill, error) {
	return s.repo.Skill().SearchByTitle(ctx, title)
}

// AddKnownSkill attaches the skill to the caller's profile, idempotently
func (s *skillService) AddKnownSkill(ctx context.Context, userID, skillID string) (*models.Skill, error) {
	skill, err := s.repo.Skill().GetByID(ctx, skillID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("skill", skillID, "The skill specified does not exist")
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	if err := s.repo.User().AttachSkill(ctx, userID, skillID, false); err != nil {
		return nil, err
	}

	s.logger.Info("Known skill added", "user_id", userID, "skill_id", skillID)

	return skill, nil
}

// RemoveKnownSkill detaches the skill from the caller's profile. The
// creator pivot cannot be removed while the skill exists.
func (s *skillService) RemoveKnownSkill(ctx context.Context, userID, skillID string) (*models.Skill, error) {
	skill, err := s.repo.Skill().GetByID(ctx, skillID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("skill", skillID, "The skill specified does not exist")
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	pivot, err := s.repo.User().GetSkillPivot(ctx, userID, skillID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return skill, nil // nothing attached, nothing to do
		}
		return nil, fmt.Errorf("failed to get skill pivot: %w", err)
	}

	if pivot.Creator {
		return nil, NewForbiddenError(userID, "skill", "remove_known", "User not authorized")
	}

	if err := s.repo.User().DetachSkill(ctx, userID, skillID); err != nil {
		return nil, err
	}

	s.logger.Info("Known skill removed", "user_id", userID, "skill_id", skillID)

	return skill, nil
}

// checkCreator rejects skill edits from anyone but the user that
// registered the skill.
func (s *skillService) checkCreator(ctx context.Context, userID, skillID, action string) error {
	pivot, err := s.repo.User().GetSkillPivot(ctx, userID, skillID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewForbiddenError(userID, "skill", action, "User not authorized")
		}
		return fmt.Errorf("failed to get skill pivot: %w", err)
	}
	if !pivot.Creator {
		return NewForbiddenError(userID, "skill", action, "User not authorized")
	}
	return nil
}
