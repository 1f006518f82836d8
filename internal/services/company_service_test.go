package services

import (
	"context"
	"testing"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/validator"
)

func newCompanyFixture(t *testing.T) (*fakeRepo, CompanyService) {
	t.Helper()
	repo := newFakeRepo()
	return repo, NewCompanyService(repo, testLogger(), validator.New())
}

func TestCompanyServiceCreate(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("recruiter@example.com", models.RoleRecruiter)

	company, err := service.Create(ctx, &CompanyCreateRequest{
		Name:        "Acme Corp",
		Address:     "1 Main Street",
		Email:       "info@acme.example",
		Description: "Widgets",
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if company.OwnerID != owner.ID {
		t.Errorf("owner not recorded, got %s", company.OwnerID)
	}
	if company.Status != models.CompanyStatusActive {
		t.Errorf("expected active status, got %s", company.Status)
	}
}

func TestCompanyServiceCreateDuplicateName(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("recruiter@example.com", models.RoleRecruiter)
	repo.addCompany("Acme Corp", owner.ID)

	_, err := service.Create(ctx, &CompanyCreateRequest{
		Name:        "Acme Corp",
		Address:     "1 Main Street",
		Email:       "other@acme.example",
		Description: "Widgets",
	}, owner.ID)
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "The name has already been taken" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestCompanyServiceUpdateOwnership(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	other := repo.addUser("other@example.com", models.RoleRecruiter)
	company := repo.addCompany("Acme Corp", owner.ID)

	newName := "Acme Holdings"
	_, err := service.Update(ctx, company.ID, &CompanyUpdateRequest{Name: &newName}, other.ID)
	if !IsPermissionDenied(err) {
		t.Fatalf("expected permission error for non-owner, got %v", err)
	}

	updated, err := service.Update(ctx, company.ID, &CompanyUpdateRequest{Name: &newName}, owner.ID)
	if err != nil {
		t.Fatalf("Update failed for owner: %v", err)
	}
	if updated.Name != "Acme Holdings" {
		t.Errorf("name not updated, got %s", updated.Name)
	}
}

func TestCompanyServiceUpdateUnknownID(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)

	_, err := service.Update(ctx, "00000000-0000-0000-0000-000000000000", &CompanyUpdateRequest{}, owner.ID)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err.Error() != "Invalid company id" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestCompanyServiceListMine(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	other := repo.addUser("other@example.com", models.RoleRecruiter)
	repo.addCompany("Mine One", owner.ID)
	repo.addCompany("Mine Two", owner.ID)
	repo.addCompany("Theirs", other.ID)

	companies, err := service.ListMine(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(companies) != 2 {
		t.Errorf("expected 2 companies, got %d", len(companies))
	}
}

func TestCompanyServiceSearchByNameIgnoresCase(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	repo.addCompany("Acme Corp", owner.ID)

	companies, err := service.SearchByName(ctx, "acme")
	if err != nil {
		t.Fatalf("SearchByName failed: %v", err)
	}
	if len(companies) != 1 || companies[0].Name != "Acme Corp" {
		t.Errorf("expected the mixed-case match, got %+v", companies)
	}
}

func TestCompanyServiceUpdateTakenName(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	repo.addCompany("Acme Corp", owner.ID)
	company := repo.addCompany("Beta LLC", owner.ID)

	takenName := "Acme Corp"
	_, err := service.Update(ctx, company.ID, &CompanyUpdateRequest{Name: &takenName}, owner.ID)
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "The name has already been taken" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	// Resubmitting the company's own current name is not a conflict
	ownName := "Beta LLC"
	if _, err := service.Update(ctx, company.ID, &CompanyUpdateRequest{Name: &ownName}, owner.ID); err != nil {
		t.Fatalf("Update with unchanged name failed: %v", err)
	}
}

func TestCompanyServiceUpdateTakenEmail(t *testing.T) {
	repo, service := newCompanyFixture(t)
	ctx := context.Background()

	owner := repo.addUser("owner@example.com", models.RoleRecruiter)
	taken := repo.addCompany("Acme Corp", owner.ID)
	taken.Email = "info@acme.example"
	company := repo.addCompany("Beta LLC", owner.ID)

	takenEmail := "info@acme.example"
	_, err := service.Update(ctx, company.ID, &CompanyUpdateRequest{Email: &takenEmail}, owner.ID)
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "The email has already been taken" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
