package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

type authService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	tokens     *auth.TokenManager
	tokenStore *auth.TokenStore
	publisher  events.Publisher
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, tokens *auth.TokenManager, tokenStore *auth.TokenStore, publisher events.Publisher) AuthService {
	return &authService{
		repo:       repo,
		logger:     logger,
		validator:  validator,
		tokens:     tokens,
		tokenStore: tokenStore,
		publisher:  publisher,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	s.logger.Info("Registering new user", "email", req.Email)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	// Email uniqueness is enforced by the index too, this check exists
	// for the friendly error.
	if _, err := s.repo.User().GetByEmail(ctx, req.Email); err == nil {
		return nil, NewConflictError("user", "The email has already been taken")
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	role, err := s.repo.User().GetRoleByName(ctx, req.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role %q: %w", req.Role, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		RoleID:      role.ID,
		LastName:    req.LastName,
		FirstName:   req.FirstName,
		Email:       req.Email,
		Password:    hash,
		Phone:       req.Phone,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.UserStatusActive,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Role = role

	token, _, err := s.tokens.Issue(user.ID, role.Name)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.UserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    role.Name,
	})

	s.logger.Info("New user registered", "user_id", user.ID, "email", user.Email)

	return &AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return "", errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	// Deleted accounts fail exactly like bad credentials
	if user.IsDeleted() {
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return "", ErrInvalidCredentials
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	token, _, err := s.tokens.Issue(user.ID, roleName)
	if err != nil {
		return "", err
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return token, nil
}

func (s *authService) Logout(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.tokenStore.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("User logged out", "token_id", tokenID)

	return nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
