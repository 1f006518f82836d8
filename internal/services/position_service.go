package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

type positionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher
}

func NewPositionService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher) PositionService {
	return &positionService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Create stores the position together with its admin application row.
// The caller must own the company the position is published under.
func (s *positionService) Create(ctx context.Context, req *PositionCreateRequest, userID string) (*models.Position, error) {
	s.logger.Info("Registering new position", "title", req.Title, "user_id", userID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	taken, err := s.repo.Position().ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check position title: %w", err)
	}
	if taken {
		return nil, NewConflictError("position", "The title has already been taken")
	}

	company, err := s.repo.Company().GetByName(ctx, req.CompanyName)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("company", req.CompanyName, "The company specified is not in database")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if company.OwnerID != userID {
		return nil, NewPermissionError(userID, "position", "create", "User not allowed to this operation")
	}

	position := &models.Position{
		CompanyID:   company.ID,
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Mode:        req.Mode,
		Salary:      req.Salary,
		Open:        true,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Position().Create(ctx, position); err != nil {
			return err
		}

		// The creator's admin application marks position ownership in
		// the applications table as well.
		admin := &models.Application{
			PositionID: position.ID,
			UserID:     userID,
			Status:     models.ApplicationStatusAdmin,
		}
		return tx.Application().Create(ctx, admin)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	s.publishEvent(ctx, events.PositionCreated, map[string]interface{}{
		"position_id": position.ID,
		"company_id":  company.ID,
		"owner_id":    userID,
		"title":       position.Title,
	})

	s.logger.Info("New position registered", "position_id", position.ID, "company", company.Name)

	return position, nil
}

func (s *positionService) Update(ctx context.Context, id string, req *PositionUpdateRequest, userID string) (*models.Position, error) {
	s.logger.Info("Updating position", "position_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	position, err := s.repo.Position().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("position", id, "The position specified is not in database")
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	if position.OwnerID != userID {
		return nil, NewPermissionError(userID, "position", "update", "User not allowed to do this operation")
	}

	// Moving the position to another company re-checks ownership there
	if req.CompanyName != nil {
		company, err := s.repo.Company().GetByName(ctx, *req.CompanyName)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewNotFoundError("company", *req.CompanyName, "The company specified is not in database")
			}
			return nil, fmt.Errorf("failed to get company: %w", err)
		}
		if company.OwnerID != userID {
			return nil, NewPermissionError(userID, "position", "update", "User not allowed to this operation")
		}
		position.CompanyID = company.ID
	}

	if req.Title != nil && *req.Title != position.Title {
		taken, err := s.repo.Position().ExistsByTitle(ctx, *req.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to check position title: %w", err)
		}
		if taken {
			return nil, NewConflictError("position", "The title has already been taken")
		}
	}

	if req.Title != nil {
		position.Title = *req.Title
	}
	if req.Description != nil {
		position.Description = *req.Description
	}
	position.Location = req.Location
	position.Mode = req.Mode
	position.Salary = req.Salary
	if req.Open != nil {
		position.Open = *req.Open
	}

	if err := s.repo.Position().Update(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}

	s.logger.Info("Position edited", "position_id", position.ID, "title", position.Title)

	return position, nil
}

func (s *positionService) List(ctx context.Context) ([]models.Position, error) {
	return s.repo.Position().ListOpen(ctx)
}

func (s *positionService) GetOpen(ctx context.Context, id string) (*models.Position, error) {
	position, err := s.repo.Position().GetOpenByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("position", id, "The position specified is not in database")
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return position, nil
}

func (s *positionService) Search(ctx context.Context, word string) ([]models.Position, error) {
	return s.repo.Position().SearchOpen(ctx, word)
}

func (s *positionService) ListByCompany(ctx context.Context, companyID string) ([]models.Position, error) {
	return s.repo.Position().ListOpenByCompany(ctx, companyID)
}

func (s *positionService) AttachSkill(ctx context.Context, positionID, skillID, userID string) (*models.Position, *models.Skill, error) {
	position, skill, err := s.resolveSkillOp(ctx, positionID, skillID, userID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.Position().AttachSkill(ctx, positionID, skillID); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Skill added to position requirements", "position_id", positionID, "skill_id", skillID)

	return position, skill, nil
}

func (s *positionService) DetachSkill(ctx context.Context, positionID, skillID, userID string) (*models.Position, *models.Skill, error) {
	position, skill, err := s.resolveSkillOp(ctx, positionID, skillID, userID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.Position().DetachSkill(ctx, positionID, skillID); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Skill removed from position requirements", "position_id", positionID, "skill_id", skillID)

	return position, skill, nil
}

func (s *positionService) AttachSkills(ctx context.Context, positionID string, skillIDs []string, userID string) (*models.Position, error) {
	position, err := s.resolveSkillListOp(ctx, positionID, skillIDs, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, skillID := range skillIDs {
			if err := tx.Position().AttachSkill(ctx, positionID, skillID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to attach skills: %w", err)
	}

	s.logger.Info("Skill list added to position requirements", "position_id", positionID, "count", len(skillIDs))

	return position, nil
}

func (s *positionService) DetachSkills(ctx context.Context, positionID string, skillIDs []string, userID string) (*models.Position, error) {
	position, err := s.resolveSkillListOp(ctx, positionID, skillIDs, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, skillID := range skillIDs {
			if err := tx.Position().DetachSkill(ctx, positionID, skillID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detach skills: %w", err)
	}

	s.logger.Info("Skill list removed from position requirements", "position_id", positionID, "count", len(skillIDs))

	return position, nil
}

// resolveSkillOp runs the shared position/skill/ownership checks for
// single-skill requirement changes, in that order.
func (s *positionService) resolveSkillOp(ctx context.Context, positionID, skillID, userID string) (*models.Position, *models.Skill, error) {
	position, err := s.repo.Position().GetByID(ctx, positionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, NewNotFoundError("position", positionID, "The position specified is not in database")
		}
		return nil, nil, fmt.Errorf("failed to get position: %w", err)
	}

	skill, err := s.repo.Skill().GetByID(ctx, skillID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, NewNotFoundError("skill", skillID, "The skill specified is not in database")
		}
		return nil, nil, fmt.Errorf("failed to get skill: %w", err)
	}

	if position.OwnerID != userID {
		return nil, nil, NewPermissionError(userID, "position", "manage_skills", "User not allowed to this operation")
	}

	return position, skill, nil
}

// resolveSkillListOp checks position, ownership and then every skill,
// all-or-nothing, before any batch change is applied.
func (s *positionService) resolveSkillListOp(ctx context.Context, positionID string, skillIDs []string, userID string) (*models.Position, error) {
	position, err := s.repo.Position().GetByID(ctx, positionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("position", positionID, "The position specified is not in database")
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	if position.OwnerID != userID {
		return nil, NewPermissionError(userID, "position", "manage_skills", "User not allowed to this operation")
	}

	missing, err := s.repo.Skill().MissingIDs(ctx, skillIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check skills: %w", err)
	}
	if len(missing) > 0 {
		return nil, NewNotFoundError("skill", missing[0], "The skill specified is not in database")
	}

	return position, nil
}

func (s *positionService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
