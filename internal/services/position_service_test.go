package services

import (
	"context"
	"testing"

	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

func newPositionFixture(t *testing.T) (*fakeRepo, PositionService, *events.MockEventPublisher) {
	t.Helper()
	repo := newFakeRepo()
	logger := testLogger()
	publisher := events.NewMockEventPublisher(utils.NewSlogLogger(logger))
	return repo, NewPositionService(repo, logger, validator.New(), publisher), publisher
}

func positionCreateRequest(companyName string) *PositionCreateRequest {
	return &PositionCreateRequest{
		Title:       "Go Developer",
		Description: "Backend work",
		Location:    "Budapest",
		Mode:        "remote",
		Salary:      "900000",
		CompanyName: companyName,
	}
}

func TestPositionServiceCreateWritesAdminApplication(t *testing.T) {
	repo, service, publisher := newPositionFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	repo.addCompany("Acme Corp", owner.ID)

	position, err := service.Create(ctx, positionCreateRequest("Acme Corp"), owner.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !position.Open {
		t.Error("new position should be open")
	}
	if position.OwnerID != owner.ID {
		t.Errorf("owner not recorded, got %s", position.OwnerID)
	}

	applications, err := repo.Application().ListByPosition(ctx, position.ID)
	if err != nil {
		t.Fatalf("ListByPosition failed: %v", err)
	}
	if len(applications) != 1 {
		t.Fatalf("expected exactly one application row after create, got %d", len(applications))
	}
	if applications[0].Status != models.ApplicationStatusAdmin {
		t.Errorf("expected admin status, got %s", applications[0].Status)
	}
	if applications[0].UserID != owner.ID {
		t.Errorf("admin row should belong to the owner, got %s", applications[0].UserID)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.PositionCreated {
		t.Fatalf("expected one %s event, got %+v", events.PositionCreated, published)
	}
}

func TestPositionServiceCreateCompanyChecks(t *testing.T) {
	repo, service, _ := newPositionFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	other := repo.addUser("other@example.com", models.RoleRecruiter)
	repo.addCompany("Acme Corp", owner.ID)

	_, err := service.Create(ctx, positionCreateRequest("Nowhere Inc"), owner.ID)
	if !IsNotFound(err) || err.Error() != "The company specified is not in database" {
		t.Errorf("expected company not-found error, got %v", err)
	}

	_, err = service.Create(ctx, positionCreateRequest("Acme Corp"), other.ID)
	permErr, ok := err.(*PermissionError)
	if !ok || permErr.Message != "User not allowed to this operation" {
		t.Errorf("expected ownership error, got %v", err)
	}
}

func TestPositionServiceUpdateOwnership(t *testing.T) {
	repo, service, _ := newPositionFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	other := repo.addUser("other@example.com", models.RoleRecruiter)
	company := repo.addCompany("Acme Corp", owner.ID)
	position := repo.addPosition("Go Developer", company.ID, owner.ID, true)

	req := &PositionUpdateRequest{Location: "Szeged", Mode: "hybrid", Salary: "950000"}
	_, err := service.Update(ctx, position.ID, req, other.ID)
	permErr, ok := err.(*PermissionError)
	if !ok {
		t.Fatalf("expected permission error for non-owner, got %v", err)
	}
	if permErr.Message != "User not allowed to do this operation" {
		t.Errorf("unexpected message: %q", permErr.Message)
	}

	updated, err := service.Update(ctx, position.ID, req, owner.ID)
	if err != nil {
		t.Fatalf("Update failed for owner: %v", err)
	}
	if updated.Location != "Szeged" || updated.Mode != "hybrid" {
		t.Errorf("location/mode not applied: %+v", updated)
	}
}

func TestPositionServiceClosedPositionsHidden(t *testing.T) {
	repo, service, _ := newPositionFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	company := repo.addCompany("Acme Corp", owner.ID)
	repo.addPosition("Open Role", company.ID, owner.ID, true)
	closed := repo.addPosition("Closed Role", company.ID, owner.ID, false)

	positions, err := service.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(positions) != 1 || positions[0].Title != "Open Role" {
		t.Errorf("expected only the open position, got %+v", positions)
	}

	if _, err := service.GetOpen(ctx, closed.ID); !IsNotFound(err) {
		t.Errorf("expected not-found for a closed position, got %v", err)
	}
}

func TestPositionServiceAttachSkillList(t *testing.T) {
	repo, service, _ := newPositionFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	company := repo.addCompany("Acme Corp", owner.ID)
	position := repo.addPosition("Go Developer", company.ID, owner.ID, true)
	skillA := repo.addSkill("Go")
	skillB := repo.addSkill("PostgreSQL")

	_, err := service.AttachSkills(ctx, position.ID, []string{skillA.ID, "00000000-0000-0000-0000-000000000000"}, owner.ID)
	if !IsNotFound(err) || err.Error() != "The skill specified is not in database" {
		t.Fatalf("expected skill not-found error, got %v", err)
	}
	if len(repo.positionSkills) != 0 {
		t.Fatalf("no pivot rows should exist after a failed batch, got %d", len(repo.positionSkills))
	}

	if _, err := service.AttachSkills(ctx, position.ID, []string{skillA.ID, skillB.ID}, owner.ID); err != nil {
		t.Fatalf("AttachSkills failed: %v", err)
	}
	if len(repo.positionSkills) != 2 {
		t.Errorf("expected 2 pivot rows, got %d", len(repo.positionSkills))
	}

	if _, err := service.DetachSkills(ctx, position.ID, []string{skillA.ID}, owner.ID); err != nil {
		t.Fatalf("DetachSkills failed: %v", err)
	}
	if len(repo.positionSkills) != 1 || repo.positionSkills[0].SkillID != skillB.ID {
		t.Errorf("expected only the second pivot to remain, got %+v", repo.positionSkills)
	}
}

func TestPositionServiceAttachSkillChecksOrder(t *testing.T) {
	repo, service, _ := newPositionFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	other := repo.addUser("other@example.com", models.RoleRecruiter)
	company := repo.addCompany("Acme Corp", owner.ID)
	position := repo.addPosition("Go Developer", company.ID, owner.ID, true)
	skill := repo.addSkill("Go")

	_, _, err := service.AttachSkill(ctx, "00000000-0000-0000-0000-000000000000", skill.ID, owner.ID)
	if !IsNotFound(err) || err.Error() != "The position specified is not in database" {
		t.Errorf("expected position not-found error, got %v", err)
	}

	_, _, err = service.AttachSkill(ctx, position.ID, "00000000-0000-0000-0000-000000000000", owner.ID)
	if !IsNotFound(err) || err.Error() != "The skill specified is not in database" {
		t.Errorf("expected skill not-found error, got %v", err)
	}

	_, _, err = service.AttachSkill(ctx, position.ID, skill.ID, other.ID)
	if !IsPermissionDenied(err) {
		t.Errorf("expected ownership error, got %v", err)
	}

	gotPosition, gotSkill, err := service.AttachSkill(ctx, position.ID, skill.ID, owner.ID)
	if err != nil {
		t.Fatalf("AttachSkill failed: %v", err)
	}
	if gotPosition.ID != position.ID || gotSkill.ID != skill.ID {
		t.Errorf("unexpected attach result: %+v %+v", gotPosition, gotSkill)
	}
}

func TestPositionServiceUpdateTakenTitle(t *testing.T) {
	repo, service, _ := newPositionFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	company := repo.addCompany("Acme Corp", owner.ID)
	repo.addPosition("Go Developer", company.ID, owner.ID, true)
	position := repo.addPosition("Rust Developer", company.ID, owner.ID, true)

	takenTitle := "Go Developer"
	req := &PositionUpdateRequest{Title: &takenTitle, Location: "Szeged", Mode: "hybrid", Salary: "950000"}
	_, err := service.Update(ctx, position.ID, req, owner.ID)
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "The title has already been taken" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	// Resubmitting the position's own current title is not a conflict
	ownTitle := "Rust Developer"
	req.Title = &ownTitle
	if _, err := service.Update(ctx, position.ID, req, owner.ID); err != nil {
		t.Fatalf("Update with unchanged title failed: %v", err)
	}
}
