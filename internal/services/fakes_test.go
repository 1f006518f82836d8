package services

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

// fakeRepo is an in-memory Repository for service tests. Transactions
// run the callback against the same state, no rollback.
type fakeRepo struct {
	roles        map[string]*models.Role // keyed by name
	users        map[string]*models.User
	companies    map[string]*models.Company
	positions    map[string]*models.Position
	skills       map[string]*models.Skill
	applications map[string]*models.Application
	tests        map[string]*models.Test

	skillUsers     []models.SkillUser
	positionSkills []models.PositionSkill
	testUsers      []models.TestUser
	skillMarks     map[string]*models.SkillMark
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		roles:        make(map[string]*models.Role),
		users:        make(map[string]*models.User),
		companies:    make(map[string]*models.Company),
		positions:    make(map[string]*models.Position),
		skills:       make(map[string]*models.Skill),
		applications: make(map[string]*models.Application),
		tests:        make(map[string]*models.Test),
		skillMarks:   make(map[string]*models.SkillMark),
	}
	r.roles[models.RoleApplicant] = &models.Role{ID: uuid.NewString(), Name: models.RoleApplicant}
	r.roles[models.RoleRecruiter] = &models.Role{ID: uuid.NewString(), Name: models.RoleRecruiter}
	return r
}

func (r *fakeRepo) User() repositories.UserRepository               { return &fakeUserRepo{r} }
func (r *fakeRepo) Company() repositories.CompanyRepository         { return &fakeCompanyRepo{r} }
func (r *fakeRepo) Position() repositories.PositionRepository       { return &fakePositionRepo{r} }
func (r *fakeRepo) Skill() repositories.SkillRepository             { return &fakeSkillRepo{r} }
func (r *fakeRepo) Application() repositories.ApplicationRepository { return &fakeApplicationRepo{r} }
func (r *fakeRepo) Test() repositories.TestRepository               { return &fakeTestRepo{r} }

func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}
func (r *fakeRepo) Ping(ctx context.Context) error { return nil }
func (r *fakeRepo) Close() error                   { return nil }

// Seeding helpers

func (r *fakeRepo) addUser(email, roleName string) *models.User {
	role := r.roles[roleName]
	user := &models.User{
		ID:     uuid.NewString(),
		RoleID: role.ID,
		Email:  email,
		Status: models.UserStatusActive,
		Role:   role,
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeRepo) addCompany(name, ownerID string) *models.Company {
	company := &models.Company{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    name,
		Email:   name + "@example.com",
		Status:  models.CompanyStatusActive,
	}
	r.companies[company.ID] = company
	return company
}

func (r *fakeRepo) addPosition(title, companyID, ownerID string, open bool) *models.Position {
	position := &models.Position{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		OwnerID:   ownerID,
		Title:     title,
		Open:      open,
	}
	r.positions[position.ID] = position
	return position
}

func (r *fakeRepo) addSkill(title string) *models.Skill {
	skill := &models.Skill{ID: uuid.NewString(), Title: title}
	r.skills[skill.ID] = skill
	return skill
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ===== USER =====

type fakeUserRepo struct{ r *fakeRepo }

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.r.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := f.r.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.r.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range f.r.users {
		if !user.IsDeleted() {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) ListBySkillTitle(ctx context.Context, word string) ([]models.User, error) {
	var users []models.User
	for _, pivot := range f.r.skillUsers {
		skill, ok := f.r.skills[pivot.SkillID]
		if !ok || !strings.Contains(strings.ToLower(skill.Title), strings.ToLower(word)) {
			continue
		}
		if user, ok := f.r.users[pivot.UserID]; ok && !user.IsDeleted() {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	if role, ok := f.r.roles[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetSkillPivot(ctx context.Context, userID, skillID string) (*models.SkillUser, error) {
	for i := range f.r.skillUsers {
		if f.r.skillUsers[i].UserID == userID && f.r.skillUsers[i].SkillID == skillID {
			return &f.r.skillUsers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) AttachSkill(ctx context.Context, userID, skillID string, creator bool) error {
	if _, err := f.GetSkillPivot(ctx, userID, skillID); err == nil {
		return nil
	}
	f.r.skillUsers = append(f.r.skillUsers, models.SkillUser{UserID: userID, SkillID: skillID, Creator: creator})
	return nil
}

func (f *fakeUserRepo) DetachSkill(ctx context.Context, userID, skillID string) error {
	kept := f.r.skillUsers[:0]
	for _, pivot := range f.r.skillUsers {
		if pivot.UserID != userID || pivot.SkillID != skillID {
			kept = append(kept, pivot)
		}
	}
	f.r.skillUsers = kept
	return nil
}

// ===== COMPANY =====

type fakeCompanyRepo struct{ r *fakeRepo }

func (f *fakeCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	f.r.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	if company, ok := f.r.companies[id]; ok {
		return company, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) GetByName(ctx context.Context, name string) (*models.Company, error) {
	for _, company := range f.r.companies {
		if company.Name == name {
			return company, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	f.r.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) ListActive(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	for _, company := range f.r.companies {
		if company.Status != models.CompanyStatusDeleted {
			companies = append(companies, *company)
		}
	}
	return companies, nil
}

func (f *fakeCompanyRepo) SearchByName(ctx context.Context, name string) ([]models.Company, error) {
	var companies []models.Company
	for _, company := range f.r.companies {
		if company.Status != models.CompanyStatusDeleted && strings.Contains(strings.ToLower(company.Name), strings.ToLower(name)) {
			companies = append(companies, *company)
		}
	}
	return companies, nil
}

func (f *fakeCompanyRepo) ListByOwner(ctx context.Context, userID string) ([]models.Company, error) {
	var companies []models.Company
	for _, company := range f.r.companies {
		if company.OwnerID == userID && company.Status != models.CompanyStatusDeleted {
			companies = append(companies, *company)
		}
	}
	return companies, nil
}

func (f *fakeCompanyRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := f.GetByName(ctx, name)
	return err == nil, nil
}

func (f *fakeCompanyRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, company := range f.r.companies {
		if company.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ===== POSITION =====

type fakePositionRepo struct{ r *fakeRepo }

func (f *fakePositionRepo) Create(ctx context.Context, position *models.Position) error {
	if position.ID == "" {
		position.ID = uuid.NewString()
	}
	f.r.positions[position.ID] = position
	return nil
}

func (f *fakePositionRepo) GetByID(ctx context.Context, id string) (*models.Position, error) {
	if position, ok := f.r.positions[id]; ok {
		return position, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePositionRepo) GetOpenByID(ctx context.Context, id string) (*models.Position, error) {
	position, err := f.GetByID(ctx, id)
	if err != nil || !position.Open {
		return nil, gorm.ErrRecordNotFound
	}
	return position, nil
}

func (f *fakePositionRepo) Update(ctx context.Context, position *models.Position) error {
	f.r.positions[position.ID] = position
	return nil
}

func (f *fakePositionRepo) ListOpen(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	for _, position := range f.r.positions {
		if position.Open {
			positions = append(positions, *position)
		}
	}
	return positions, nil
}

func (f *fakePositionRepo) SearchOpen(ctx context.Context, word string) ([]models.Position, error) {
	var positions []models.Position
	for _, position := range f.r.positions {
		if position.Open && strings.Contains(strings.ToLower(position.Title), strings.ToLower(word)) {
			positions = append(positions, *position)
		}
	}
	return positions, nil
}

func (f *fakePositionRepo) ListOpenByCompany(ctx context.Context, companyID string) ([]models.Position, error) {
	var positions []models.Position
	for _, position := range f.r.positions {
		if position.Open && position.CompanyID == companyID {
			positions = append(positions, *position)
		}
	}
	return positions, nil
}

func (f *fakePositionRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	for _, position := range f.r.positions {
		if position.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePositionRepo) AttachSkill(ctx context.Context, positionID, skillID string) error {
	for _, pivot := range f.r.positionSkills {
		if pivot.PositionID == positionID && pivot.SkillID == skillID {
			return nil
		}
	}
	f.r.positionSkills = append(f.r.positionSkills, models.PositionSkill{PositionID: positionID, SkillID: skillID})
	return nil
}

func (f *fakePositionRepo) DetachSkill(ctx context.Context, positionID, skillID string) error {
	kept := f.r.positionSkills[:0]
	for _, pivot := range f.r.positionSkills {
		if pivot.PositionID != positionID || pivot.SkillID != skillID {
			kept = append(kept, pivot)
		}
	}
	f.r.positionSkills = kept
	return nil
}

// ===== SKILL =====

type fakeSkillRepo struct{ r *fakeRepo }

func (f *fakeSkillRepo) Create(ctx context.Context, skill *models.Skill) error {
	if skill.ID == "" {
		skill.ID = uuid.NewString()
	}
	f.r.skills[skill.ID] = skill
	return nil
}

func (f *fakeSkillRepo) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	if skill, ok := f.r.skills[id]; ok {
		return skill, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSkillRepo) Update(ctx context.Context, skill *models.Skill) error {
	f.r.skills[skill.ID] = skill
	return nil
}

func (f *fakeSkillRepo) Delete(ctx context.Context, id string) error {
	delete(f.r.skills, id)
	kept := f.r.skillUsers[:0]
	for _, pivot := range f.r.skillUsers {
		if pivot.SkillID != id {
			kept = append(kept, pivot)
		}
	}
	f.r.skillUsers = kept

	keptPos := f.r.positionSkills[:0]
	for _, pivot := range f.r.positionSkills {
		if pivot.SkillID != id {
			keptPos = append(keptPos, pivot)
		}
	}
	f.r.positionSkills = keptPos

	for markID, mark := range f.r.skillMarks {
		if mark.SkillID == id {
			delete(f.r.skillMarks, markID)
		}
	}
	return nil
}

func (f *fakeSkillRepo) List(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	for _, skill := range f.r.skills {
		skills = append(skills, *skill)
	}
	return skills, nil
}

func (f *fakeSkillRepo) SearchByTitle(ctx context.Context, title string) ([]models.Skill, error) {
	var skills []models.Skill
	for _, skill := range f.r.skills {
		if strings.Contains(strings.ToLower(skill.Title), strings.ToLower(title)) {
			skills = append(skills, *skill)
		}
	}
	return skills, nil
}

func (f *fakeSkillRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	for _, skill := range f.r.skills {
		if skill.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSkillRepo) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		if _, ok := f.r.skills[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ===== APPLICATION =====

type fakeApplicationRepo struct{ r *fakeRepo }

func (f *fakeApplicationRepo) Create(ctx context.Context, application *models.Application) error {
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	f.r.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	if application, ok := f.r.applications[id]; ok {
		return application, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApplicationRepo) GetByPositionAndUser(ctx context.Context, positionID, userID string) (*models.Application, error) {
	for _, application := range f.r.applications {
		if application.PositionID == positionID && application.UserID == userID {
			return application, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApplicationRepo) Update(ctx context.Context, application *models.Application) error {
	f.r.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepo) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	var applications []models.Application
	for _, application := range f.r.applications {
		if application.UserID == userID {
			applications = append(applications, *application)
		}
	}
	return applications, nil
}

func (f *fakeApplicationRepo) ListByPosition(ctx context.Context, positionID string) ([]models.Application, error) {
	var applications []models.Application
	for _, application := range f.r.applications {
		if application.PositionID == positionID {
			applications = append(applications, *application)
		}
	}
	return applications, nil
}

func (f *fakeApplicationRepo) ListByPositionWithUsers(ctx context.Context, positionID string) ([]models.Application, error) {
	applications, _ := f.ListByPosition(ctx, positionID)
	for i := range applications {
		applications[i].User = f.r.users[applications[i].UserID]
	}
	return applications, nil
}

// ===== TEST =====

type fakeTestRepo struct{ r *fakeRepo }

func (f *fakeTestRepo) Create(ctx context.Context, test *models.Test) error {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	f.r.tests[test.ID] = test
	return nil
}

func (f *fakeTestRepo) GetByID(ctx context.Context, id string) (*models.Test, error) {
	if test, ok := f.r.tests[id]; ok {
		return test, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTestRepo) Update(ctx context.Context, test *models.Test) error {
	f.r.tests[test.ID] = test
	return nil
}

func (f *fakeTestRepo) Delete(ctx context.Context, id string) error {
	delete(f.r.tests, id)
	kept := f.r.testUsers[:0]
	for _, pivot := range f.r.testUsers {
		if pivot.TestID != id {
			kept = append(kept, pivot)
		}
	}
	f.r.testUsers = kept
	for markID, mark := range f.r.skillMarks {
		if mark.TestID == id {
			delete(f.r.skillMarks, markID)
		}
	}
	return nil
}

func (f *fakeTestRepo) ListByUser(ctx context.Context, userID string) ([]repositories.TestWithRole, error) {
	var rows []repositories.TestWithRole
	for _, pivot := range f.r.testUsers {
		if pivot.UserID != userID {
			continue
		}
		if test, ok := f.r.tests[pivot.TestID]; ok {
			rows = append(rows, repositories.TestWithRole{Test: *test, UserType: pivot.UserType})
		}
	}
	return rows, nil
}

func (f *fakeTestRepo) AddParticipant(ctx context.Context, testID, userID string, userType models.TestUserType) error {
	f.r.testUsers = append(f.r.testUsers, models.TestUser{TestID: testID, UserID: userID, UserType: userType})
	return nil
}

func (f *fakeTestRepo) AttachSkill(ctx context.Context, testID, skillID string) error {
	if _, err := f.GetSkillMarkByTestAndSkill(ctx, testID, skillID); err == nil {
		return nil
	}
	mark := &models.SkillMark{ID: uuid.NewString(), TestID: testID, SkillID: skillID, Mark: 0}
	f.r.skillMarks[mark.ID] = mark
	return nil
}

func (f *fakeTestRepo) DetachSkill(ctx context.Context, testID, skillID string) error {
	for markID, mark := range f.r.skillMarks {
		if mark.TestID == testID && mark.SkillID == skillID {
			delete(f.r.skillMarks, markID)
		}
	}
	return nil
}

func (f *fakeTestRepo) GetSkillMark(ctx context.Context, id string) (*models.SkillMark, error) {
	if mark, ok := f.r.skillMarks[id]; ok {
		return mark, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTestRepo) GetSkillMarkByTestAndSkill(ctx context.Context, testID, skillID string) (*models.SkillMark, error) {
	for _, mark := range f.r.skillMarks {
		if mark.TestID == testID && mark.SkillID == skillID {
			return mark, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTestRepo) UpdateSkillMark(ctx context.Context, mark *models.SkillMark) error {
	f.r.skillMarks[mark.ID] = mark
	return nil
}
