package services

import (
	"context"
	"testing"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/validator"
)

func newUserFixture(t *testing.T) (*fakeRepo, UserService) {
	t.Helper()
	repo := newFakeRepo()
	return repo, NewUserService(repo, testLogger(), validator.New())
}

func TestUserServiceUpdateProfileSkills(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("user@example.com", models.RoleApplicant)
	skillA := repo.addSkill("Go")
	skillB := repo.addSkill("PostgreSQL")
	repo.User().AttachSkill(ctx, user.ID, skillB.ID, false)

	_, err := service.UpdateProfile(ctx, user.ID, &UpdateProfileRequest{
		SkillsToAttach: []validator.SkillRef{{ID: skillA.ID}},
		SkillsToDetach: []validator.SkillRef{{ID: skillB.ID}},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if _, err := repo.User().GetSkillPivot(ctx, user.ID, skillA.ID); err != nil {
		t.Errorf("skill not attached: %v", err)
	}
	if _, err := repo.User().GetSkillPivot(ctx, user.ID, skillB.ID); err == nil {
		t.Error("skill should have been detached")
	}
}

func TestUserServiceUpdateProfileUnknownSkill(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("user@example.com", models.RoleApplicant)
	skill := repo.addSkill("Go")

	_, err := service.UpdateProfile(ctx, user.ID, &UpdateProfileRequest{
		SkillsToAttach: []validator.SkillRef{{ID: skill.ID}, {ID: "00000000-0000-0000-0000-000000000000"}},
	})
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err.Error() != "Any of the skills specified is not in database" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	// Nothing is attached when any listed skill is unknown
	if len(repo.skillUsers) != 0 {
		t.Errorf("expected no pivot rows, got %d", len(repo.skillUsers))
	}
}

func TestUserServiceUpdateProfileCreatorDetachSkipped(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("user@example.com", models.RoleRecruiter)
	skill := repo.addSkill("Go")
	repo.User().AttachSkill(ctx, user.ID, skill.ID, true)

	// Detaching a creator pivot is silently skipped, not an error
	_, err := service.UpdateProfile(ctx, user.ID, &UpdateProfileRequest{
		SkillsToDetach: []validator.SkillRef{{ID: skill.ID}},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if _, err := repo.User().GetSkillPivot(ctx, user.ID, skill.ID); err != nil {
		t.Error("creator pivot must survive a profile update detach")
	}
}

func TestUserServiceUpdateProfileFields(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("user@example.com", models.RoleApplicant)

	title := "Senior Developer"
	role := models.RoleRecruiter
	updated, err := service.UpdateProfile(ctx, user.ID, &UpdateProfileRequest{
		Title: &title,
		Role:  &role,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Title != "Senior Developer" {
		t.Errorf("title not updated, got %s", updated.Title)
	}
	if updated.RoleID != repo.roles[models.RoleRecruiter].ID {
		t.Errorf("role not updated, got %s", updated.RoleID)
	}
}

func TestUserServiceUpdateProfileTakenEmail(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("user@example.com", models.RoleApplicant)
	repo.addUser("taken@example.com", models.RoleApplicant)

	email := "taken@example.com"
	_, err := service.UpdateProfile(ctx, user.ID, &UpdateProfileRequest{Email: &email})
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "invalid email" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestUserServiceDeleteProfileIsLogical(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("user@example.com", models.RoleApplicant)

	if err := service.DeleteProfile(ctx, user.ID); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	stored, err := repo.User().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("row should remain after logical delete: %v", err)
	}
	if stored.Status != models.UserStatusDeleted {
		t.Errorf("expected deleted status, got %s", stored.Status)
	}

	users, _ := service.ListActive(ctx)
	for _, active := range users {
		if active.ID == user.ID {
			t.Error("deleted user still listed as active")
		}
	}
}

func TestUserServiceListBySkill(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("gopher@example.com", models.RoleApplicant)
	repo.addUser("other@example.com", models.RoleApplicant)
	skill := repo.addSkill("Go")
	repo.User().AttachSkill(ctx, user.ID, skill.ID, false)

	users, err := service.ListBySkill(ctx, "Go")
	if err != nil {
		t.Fatalf("ListBySkill failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != user.ID {
		t.Errorf("expected only the matching user, got %+v", users)
	}
}

func TestUserServiceListBySkillIgnoresCase(t *testing.T) {
	repo, service := newUserFixture(t)
	ctx := context.Background()

	user := repo.addUser("gopher@example.com", models.RoleApplicant)
	skill := repo.addSkill("Go")
	repo.User().AttachSkill(ctx, user.ID, skill.ID, false)

	users, err := service.ListBySkill(ctx, "go")
	if err != nil {
		t.Fatalf("ListBySkill failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != user.ID {
		t.Errorf("expected the mixed-case match, got %+v", users)
	}
}
