package validator

// SkillRef identifies a skill inside a list payload
type SkillRef struct {
	ID string `json:"id" validate:"required,uuid"`
}

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Role        string `json:"role" validate:"required,max=255,oneof=recruiter applicant"`
	LastName    string `json:"last_name" validate:"required,max=255"`
	FirstName   string `json:"first_name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=255"`
	Phone       string `json:"phone" validate:"required,max=255"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest patches the caller's profile. Only supplied
// fields mutate; skill attach/detach lists are validated for existence
// before any change is applied.
type UpdateProfileRequest struct {
	Role           *string    `json:"role" validate:"omitempty,max=255,oneof=recruiter applicant"`
	LastName       *string    `json:"last_name" validate:"omitempty,max=255"`
	FirstName      *string    `json:"first_name" validate:"omitempty,max=255"`
	Email          *string    `json:"email" validate:"omitempty,email,max=255"`
	Password       *string    `json:"password" validate:"omitempty,min=8,max=255"`
	Phone          *string    `json:"phone" validate:"omitempty,max=255"`
	Title          *string    `json:"title" validate:"omitempty,max=255"`
	Description    *string    `json:"description" validate:"omitempty,max=255"`
	SkillsToAttach []SkillRef `json:"skills_to_attach" validate:"omitempty,dive"`
	SkillsToDetach []SkillRef `json:"skills_to_detach" validate:"omitempty,dive"`
}

// CompanyCreateRequest represents the request body for registering a company
type CompanyCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Address     string `json:"address" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Description string `json:"description" validate:"required,max=255"`
}

// CompanyUpdateRequest patches a company; setting status to deleted is
// the logical delete path.
type CompanyUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Status      *string `json:"status" validate:"omitempty,max=255,oneof=active deleted"`
}

// PositionCreateRequest represents the request body for publishing a position.
// The company is referenced by name.
type PositionCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=255"`
	Location    string `json:"location" validate:"required,max=255"`
	Mode        string `json:"mode" validate:"required,max=255"`
	Salary      string `json:"salary" validate:"required,max=255"`
	CompanyName string `json:"company_name" validate:"required,max=255"`
}

// PositionUpdateRequest patches a position. Location, mode and salary
// stay mandatory on update, matching the create contract.
type PositionUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=255"`
	Location    string  `json:"location" validate:"required,max=255"`
	Mode        string  `json:"mode" validate:"required,max=255"`
	Salary      string  `json:"salary" validate:"required,max=255"`
	Open        *bool   `json:"open"`
}

// PositionSkillRequest attaches or detaches one skill on a position
type PositionSkillRequest struct {
	PositionID string `json:"position_id" validate:"required,len=36"`
	SkillID    string `json:"skill_id" validate:"required,len=36"`
}

// PositionSkillListRequest attaches or detaches a batch of skills
type PositionSkillListRequest struct {
	PositionID string     `json:"position_id" validate:"required,len=36"`
	Skills     []SkillRef `json:"skills" validate:"required,dive"`
}

// SkillCreateRequest represents the request body for registering a skill
type SkillCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=255"`
}

// SkillUpdateRequest patches a skill, creator only
type SkillUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// KnownSkillRequest adds or removes a skill on the caller's own profile
type KnownSkillRequest struct {
	SkillID string `json:"skill_id" validate:"required,len=36"`
}

// ApplyRequest represents the request body for applying to a position
type ApplyRequest struct {
	PositionID string `json:"position_id" validate:"required,len=36"`
}

// TestCreateRequest schedules a test; the caller becomes the examiner
type TestCreateRequest struct {
	ExamineeID string     `json:"examinee_id" validate:"required,uuid"`
	Date       string     `json:"date" validate:"required,datetime=2006-01-02,max=255"`
	Skills     []SkillRef `json:"skills" validate:"omitempty,dive"`
}

// TestUpdateRequest patches a test's date or completed flag
type TestUpdateRequest struct {
	Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02,max=255"`
	Completed *bool   `json:"completed"`
}

// TestSkillRequest attaches or detaches one skill on a test
type TestSkillRequest struct {
	SkillID string `json:"skill_id" validate:"required,uuid"`
	TestID  string `json:"test_id" validate:"required,uuid"`
}

// EvaluateSkillRequest settles one mark on a skill-mark row
type EvaluateSkillRequest struct {
	Mark *uint `json:"mark" validate:"required,mark_range"`
}

// SkillMarkEntry is one skill-mark pair inside a bulk evaluation
type SkillMarkEntry struct {
	ID   string `json:"id" validate:"required,uuid"`
	Mark *uint  `json:"mark" validate:"required,mark_range"`
}

// EvaluateTestRequest settles every mark of a test in one call
type EvaluateTestRequest struct {
	Skills []SkillMarkEntry `json:"skills" validate:"required,dive"`
}
