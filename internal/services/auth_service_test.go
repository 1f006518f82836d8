package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/config"
	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

func newAuthFixture(t *testing.T) (*fakeRepo, AuthService, *events.MockEventPublisher) {
	t.Helper()

	repo := newFakeRepo()
	logger := testLogger()
	publisher := events.NewMockEventPublisher(utils.NewSlogLogger(logger))
	tokens := auth.NewTokenManager(config.JWTConfig{
		Secret: "test-secret-that-is-long-enough",
		Issuer: "jobboard-test",
		TTL:    time.Hour,
	})
	service := NewAuthService(repo, logger, validator.New(), tokens, auth.NewTokenStore(nil), publisher)

	return repo, service, publisher
}

func registerRequest(email string) *RegisterRequest {
	return &RegisterRequest{
		Role:      models.RoleApplicant,
		LastName:  "Doe",
		FirstName: "Jane",
		Email:     email,
		Password:  "password123",
		Phone:     "+3612345678",
		Title:     "Backend Developer",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	repo, service, publisher := newAuthFixture(t)
	ctx := context.Background()

	result, err := service.Register(ctx, registerRequest("jane@example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token in the registration result")
	}
	if result.User.Status != models.UserStatusActive {
		t.Errorf("expected active status, got %s", result.User.Status)
	}
	if result.User.Password == "password123" {
		t.Error("password stored in plain text")
	}

	stored, err := repo.User().GetByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if !auth.CheckPassword(stored.Password, "password123") {
		t.Error("stored hash does not verify against original password")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.UserRegistered {
		t.Fatalf("expected one %s event, got %+v", events.UserRegistered, published)
	}
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo, service, _ := newAuthFixture(t)
	ctx := context.Background()

	repo.addUser("taken@example.com", models.RoleApplicant)

	_, err := service.Register(ctx, registerRequest("taken@example.com"))
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "The email has already been taken" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestAuthServiceLogin(t *testing.T) {
	repo, service, _ := newAuthFixture(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := repo.addUser("jane@example.com", models.RoleApplicant)
	user.Password = hash

	token, err := service.Login(ctx, &LoginRequest{Email: "jane@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}

	if _, err := service.Login(ctx, &LoginRequest{Email: "jane@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := service.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthServiceLoginDeletedAccount(t *testing.T) {
	repo, service, _ := newAuthFixture(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := repo.addUser("gone@example.com", models.RoleApplicant)
	user.Password = hash
	user.Status = models.UserStatusDeleted

	if _, err := service.Login(ctx, &LoginRequest{Email: "gone@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for deleted account, got %v", err)
	}
}
