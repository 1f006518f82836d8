package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetProfile(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user", userID, "User not found")
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error) {
	s.logger.Info("Updating user profile", "user_id", userID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user", userID, "User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Every referenced skill must exist before anything mutates
	skillIDs := make([]string, 0, len(req.SkillsToAttach)+len(req.SkillsToDetach))
	for _, ref := range req.SkillsToAttach {
		skillIDs = append(skillIDs, ref.ID)
	}
	for _, ref := range req.SkillsToDetach {
		skillIDs = append(skillIDs, ref.ID)
	}
	if len(skillIDs) > 0 {
		missing, err := s.repo.Skill().MissingIDs(ctx, skillIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check skills: %w", err)
		}
		if len(missing) > 0 {
			return nil, NewNotFoundError("skill", missing[0], "Any of the skills specified is not in database")
		}
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User().GetByEmail(ctx, *req.Email); err == nil {
			return nil, NewConflictError("user", "invalid email")
		} else if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *req.Email
	}

	if req.Role != nil {
		role, err := s.repo.User().GetRoleByName(ctx, *req.Role)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve role %q: %w", *req.Role, err)
		}
		user.RoleID = role.ID
		user.Role = role
	}

	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Title != nil {
		user.Title = *req.Title
	}
	if req.Description != nil {
		user.Description = *req.Description
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hash
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Update(ctx, user); err != nil {
			return err
		}

		for _, ref := range req.SkillsToAttach {
			if err := tx.User().AttachSkill(ctx, userID, ref.ID, false); err != nil {
				return err
			}
		}

		for _, ref := range req.SkillsToDetach {
			pivot, err := tx.User().GetSkillPivot(ctx, userID, ref.ID)
			if err != nil {
				if repositories.IsNotFoundError(err) {
					continue
				}
				return err
			}
			// Creator rows stay, silently
			if pivot.Creator {
				continue
			}
			if err := tx.User().DetachSkill(ctx, userID, ref.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("User profile updated", "user_id", userID)

	return s.GetProfile(ctx, userID)
}

// DeleteProfile is a logical delete: the row stays, the account stops
// appearing in listings and can no longer log in.
func (s *userService) DeleteProfile(ctx context.Context, userID string) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("user", userID, "User not found")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	user.Status = models.UserStatusDeleted
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.logger.Info("User profile deleted", "user_id", userID)

	return nil
}

func (s *userService) ListActive(ctx context.Context) ([]models.User, error) {
	return s.repo.User().ListActive(ctx)
}

func (s *userService) ListBySkill(ctx context.Context, word string) ([]models.User, error) {
	return s.repo.User().ListBySkillTitle(ctx, word)
}
