package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

type applicationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.Publisher
}

func NewApplicationService(repo repositories.Repository, logger *slog.Logger, publisher events.Publisher) ApplicationService {
	return &applicationService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

// Apply registers the caller as pending applicant on an open position.
// One application per user and position.
func (s *applicationService) Apply(ctx context.Context, positionID, userID string) (*ApplyResult, error) {
	s.logger.Info("Applying for position", "position_id", positionID, "user_id", userID)

	position, err := s.repo.Position().GetOpenByID(ctx, positionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("position", positionID, "Position not available")
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	if _, err := s.repo.Application().GetByPositionAndUser(ctx, positionID, userID); err == nil {
		return nil, NewConflictError("application", "The register already exists")
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check application: %w", err)
	}

	application := &models.Application{
		PositionID: positionID,
		UserID:     userID,
		Status:     models.ApplicationStatusPending,
	}

	if err := s.repo.Application().Create(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.publishEvent(ctx, events.ApplicationSubmitted, map[string]interface{}{
		"application_id": application.ID,
		"position_id":    positionID,
		"user_id":        userID,
	})

	s.logger.Info("Application submitted", "application_id", application.ID)

	return &ApplyResult{Application: application, Position: position}, nil
}

func (s *applicationService) ListMine(ctx context.Context, userID string) ([]models.Application, error) {
	return s.repo.Application().ListByUser(ctx, userID)
}

// ListByPosition returns a position's applications with their users,
// position owner only.
func (s *applicationService) ListByPosition(ctx context.Context, positionID, userID string) ([]models.Application, error) {
	position, err := s.repo.Position().GetByID(ctx, positionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("position", positionID, "The position specified is not in database")
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	if position.OwnerID != userID {
		return nil, NewPermissionError(userID, "application", "list_by_position", "User not allowed to this operation")
	}

	return s.repo.Application().ListByPositionWithUsers(ctx, positionID)
}

// Reject marks an application rejected. Rejecting an already rejected
// application is an allowed no-op.
func (s *applicationService) Reject(ctx context.Context, applicationID, userID string) (*models.Application, error) {
	s.logger.Info("Rejecting application", "application_id", applicationID, "user_id", userID)

	application, err := s.repo.Application().GetByID(ctx, applicationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("application", applicationID, "The application is not registered")
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	position, err := s.repo.Position().GetByID(ctx, application.PositionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	if position.OwnerID != userID {
		return nil, NewPermissionError(userID, "application", "reject", "User not allowed to this operation")
	}

	if application.Status == models.ApplicationStatusRejected {
		return application, nil
	}

	application.Status = models.ApplicationStatusRejected
	if err := s.repo.Application().Update(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to reject application: %w", err)
	}

	s.publishEvent(ctx, events.ApplicationRejected, map[string]interface{}{
		"application_id": application.ID,
		"position_id":    application.PositionID,
		"user_id":        application.UserID,
	})

	s.logger.Info("Applicant rejected", "application_id", application.ID)

	return application, nil
}

func (s *applicationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
