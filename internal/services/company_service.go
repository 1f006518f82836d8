package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

type companyService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCompanyService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CompanyService {
	return &companyService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *companyService) Create(ctx context.Context, req *CompanyCreateRequest, ownerID string) (*models.Company, error) {
	s.logger.Info("Registering new company", "name", req.Name, "owner_id", ownerID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	taken, err := s.repo.Company().ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check company name: %w", err)
	}
	if taken {
		return nil, NewConflictError("company", "The name has already been taken")
	}

	taken, err = s.repo.Company().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check company email: %w", err)
	}
	if taken {
		return nil, NewConflictError("company", "The email has already been taken")
	}

	company := &models.Company{
		OwnerID:     ownerID,
		Name:        req.Name,
		Address:     req.Address,
		Email:       req.Email,
		Description: req.Description,
		Status:      models.CompanyStatusActive,
	}

	if err := s.repo.Company().Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.logger.Info("New company added", "company_id", company.ID)

	return company, nil
}

func (s *companyService) Update(ctx context.Context, id string, req *CompanyUpdateRequest, userID string) (*models.Company, error) {
	s.logger.Info("Updating company", "company_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	company, err := s.repo.Company().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("company", id, "Invalid company id")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if company.OwnerID != userID {
		return nil, NewPermissionError(userID, "company", "update", "User not allowed to this operation")
	}

	if req.Name != nil && *req.Name != company.Name {
		taken, err := s.repo.Company().ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check company name: %w", err)
		}
		if taken {
			return nil, NewConflictError("company", "The name has already been taken")
		}
	}
	if req.Email != nil && *req.Email != company.Email {
		taken, err := s.repo.Company().ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check company email: %w", err)
		}
		if taken {
			return nil, NewConflictError("company", "The email has already been taken")
		}
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Status != nil {
		company.Status = models.CompanyStatus(*req.Status)
	}

	if err := s.repo.Company().Update(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	s.logger.Info("Company updated", "company_id", company.ID)

	return company, nil
}

func (s *companyService) List(ctx context.Context) ([]models.Company, error) {
	return s.repo.Company().ListActive(ctx)
}

func (s *companyService) SearchByName(ctx context.Context, name string) ([]models.Company, error) {
	return s.repo.Company().SearchByName(ctx, name)
}

func (s *companyService) ListMine(ctx context.Context, userID string) ([]models.Company, error) {
	return s.repo.Company().ListByOwner(ctx, userID)
}
