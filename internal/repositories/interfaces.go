package repositories

import (
	"context"

	"github.com/hireloop/jobboard-service/internal/models"
)

// UserRepository persists accounts, roles and the known-skill pivot
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListActive(ctx context.Context) ([]models.User, error)
	ListBySkillTitle(ctx context.Context, word string) ([]models.User, error)

	GetRoleByName(ctx context.Context, name string) (*models.Role, error)

	GetSkillPivot(ctx context.Context, userID, skillID string) (*models.SkillUser, error)
	AttachSkill(ctx context.Context, userID, skillID string, creator bool) error
	DetachSkill(ctx context.Context, userID, skillID string) error
}

// CompanyRepository persists companies
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	ListActive(ctx context.Context) ([]models.Company, error)
	SearchByName(ctx context.Context, name string) ([]models.Company, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Company, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PositionRepository persists positions and their skill requirements
type PositionRepository interface {
	Create(ctx context.Context, position *models.Position) error
	GetByID(ctx context.Context, id string) (*models.Position, error)
	GetOpenByID(ctx context.Context, id string) (*models.Position, error)
	Update(ctx context.Context, position *models.Position) error
	ListOpen(ctx context.Context) ([]models.Position, error)
	SearchOpen(ctx context.Context, word string) ([]models.Position, error)
	ListOpenByCompany(ctx context.Context, companyID string) ([]models.Position, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	AttachSkill(ctx context.Context, positionID, skillID string) error
	DetachSkill(ctx context.Context, positionID, skillID string) error
}

// SkillRepository persists the shared skill catalog
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id string) (*models.Skill, error)
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Skill, error)
	SearchByTitle(ctx context.Context, title string) ([]models.Skill, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	MissingIDs(ctx context.Context, ids []string) ([]string, error)
}

// ApplicationRepository persists position applications
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	GetByPositionAndUser(ctx context.Context, positionID, userID string) (*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
	ListByUser(ctx context.Context, userID string) ([]models.Application, error)
	ListByPosition(ctx context.Context, positionID string) ([]models.Application, error)
	ListByPositionWithUsers(ctx context.Context, positionID string) ([]models.Application, error)
}

// TestWithRole is a test row joined with the caller's participant type
type TestWithRole struct {
	models.Test
	UserType models.TestUserType `json:"type"`
}

// TestRepository persists tests, participants and skill marks
type TestRepository interface {
	Create(ctx context.Context, test *models.Test) error
	GetByID(ctx context.Context, id string) (*models.Test, error)
	Update(ctx context.Context, test *models.Test) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]TestWithRole, error)

	AddParticipant(ctx context.Context, testID, userID string, userType models.TestUserType) error

	AttachSkill(ctx context.Context, testID, skillID string) error
	DetachSkill(ctx context.Context, testID, skillID string) error
	GetSkillMark(ctx context.Context, id string) (*models.SkillMark, error)
	GetSkillMarkByTestAndSkill(ctx context.Context, testID, skillID string) (*models.SkillMark, error)
	UpdateSkillMark(ctx context.Context, mark *models.SkillMark) error
}
