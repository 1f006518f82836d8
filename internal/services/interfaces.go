package services

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type UpdateProfileRequest = validator.UpdateProfileRequest

type CompanyCreateRequest = validator.CompanyCreateRequest
type CompanyUpdateRequest = validator.CompanyUpdateRequest

type PositionCreateRequest = validator.PositionCreateRequest
type PositionUpdateRequest = validator.PositionUpdateRequest

type SkillCreateRequest = validator.SkillCreateRequest
type SkillUpdateRequest = validator.SkillUpdateRequest

type TestCreateRequest = validator.TestCreateRequest
type TestUpdateRequest = validator.TestUpdateRequest
type EvaluateTestRequest = validator.EvaluateTestRequest

// AuthResult is returned by registration: the stored account plus a
// freshly issued token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// ApplyResult pairs the stored application with its position so callers
// can reference both.
type ApplyResult struct {
	Application *models.Application `json:"application"`
	Position    *models.Position    `json:"position"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *LoginRequest) (string, error)

	// Logout revokes the presented token by its JWT ID until it would
	// have expired anyway.
	Logout(ctx context.Context, tokenID string, ttl time.Duration) error
}

type UserService interface {
	// Profile operations, always scoped to the authenticated user
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error)
	DeleteProfile(ctx context.Context, userID string) error

	// Directory operations
	ListActive(ctx context.Context) ([]models.User, error)
	ListBySkill(ctx context.Context, word string) ([]models.User, error)
}

type CompanyService interface {
	Create(ctx context.Context, req *CompanyCreateRequest, ownerID string) (*models.Company, error)
	Update(ctx context.Context, id string, req *CompanyUpdateRequest, userID string) (*models.Company, error)

	List(ctx context.Context) ([]models.Company, error)
	SearchByName(ctx context.Context, name string) ([]models.Company, error)
	ListMine(ctx context.Context, userID string) ([]models.Company, error)
}

type PositionService interface {
	Create(ctx context.Context, req *PositionCreateRequest, userID string) (*models.Position, error)
	Update(ctx context.Context, id string, req *PositionUpdateRequest, userID string) (*models.Position, error)

	List(ctx context.Context) ([]models.Position, error)
	GetOpen(ctx context.Context, id string) (*models.Position, error)
	Search(ctx context.Context, word string) ([]models.Position, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Position, error)

	// Requirement management, position owner only
	AttachSkill(ctx context.Context, positionID, skillID, userID string) (*models.Position, *models.Skill, error)
	DetachSkill(ctx context.Context, positionID, skillID, userID string) (*models.Position, *models.Skill, error)
	AttachSkills(ctx context.Context, positionID string, skillIDs []string, userID string) (*models.Position, error)
	DetachSkills(ctx context.Context, positionID string, skillIDs []string, userID string) (*models.Position, error)
}

type SkillService interface {
	Create(ctx context.Context, req *SkillCreateRequest, creatorID string) (*models.Skill, error)
	Update(ctx context.Context, id string, req *SkillUpdateRequest, userID string) (*models.Skill, error)
	Delete(ctx context.Context, id, userID string) error

	List(ctx context.Context) ([]models.Skill, error)
	SearchByTitle(ctx context.Context, title string) ([]models.Skill, error)

	// Known-skill management on the caller's own profile
	AddKnownSkill(ctx context.Context, userID, skillID string) (*models.Skill, error)
	RemoveKnownSkill(ctx context.Context, userID, skillID string) (*models.Skill, error)
}

type ApplicationService interface {
	Apply(ctx context.Context, positionID, userID string) (*ApplyResult, error)
	ListMine(ctx context.Context, userID string) ([]models.Application, error)
	ListByPosition(ctx context.Context, positionID, userID string) ([]models.Application, error)
	Reject(ctx context.Context, applicationID, userID string) (*models.Application, error)
}

type TestService interface {
	Create(ctx context.Context, req *TestCreateRequest, examinerID string) (*models.Test, error)
	Update(ctx context.Context, id string, req *TestUpdateRequest, userID string) (*models.Test, error)
	Delete(ctx context.Context, id, userID string) error

	ListMine(ctx context.Context, userID string) ([]repositories.TestWithRole, error)

	AttachSkill(ctx context.Context, testID, skillID, userID string) (*models.Skill, error)
	DetachSkill(ctx context.Context, testID, skillID, userID string) (*models.Skill, error)

	EvaluateSkill(ctx context.Context, skillMarkID string, mark uint, userID string) (*models.SkillMark, error)
	EvaluateTest(ctx context.Context, testID string, req *EvaluateTestRequest, userID string) error
}

type ExportService interface {
	// ApplicationsByPosition renders the position's applications as an
	// xlsx workbook, position owner only.
	ApplicationsByPosition(ctx context.Context, positionID, userID string) (*excelize.File, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Company() CompanyService
	Position() PositionService
	Skill() SkillService
	Application() ApplicationService
	Test() TestService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
