package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// stubSkillService records whether the handler reached the service layer
type stubSkillService struct {
	addKnownCalled bool
}

func (s *stubSkillService) Create(ctx context.Context, req *services.SkillCreateRequest, creatorID string) (*models.Skill, error) {
	return nil, nil
}

func (s *stubSkillService) Update(ctx context.Context, id string, req *services.SkillUpdateRequest, userID string) (*models.Skill, error) {
	return nil, nil
}

func (s *stubSkillService) Delete(ctx context.Context, id, userID string) error { return nil }

func (s *stubSkillService) List(ctx context.Context) ([]models.Skill, error) { return nil, nil }

func (s *stubSkillService) SearchByTitle(ctx context.Context, title string) ([]models.Skill, error) {
	return nil, nil
}

func (s *stubSkillService) AddKnownSkill(ctx context.Context, userID, skillID string) (*models.Skill, error) {
	s.addKnownCalled = true
	return &models.Skill{ID: skillID, Title: "Go"}, nil
}

func (s *stubSkillService) RemoveKnownSkill(ctx context.Context, userID, skillID string) (*models.Skill, error) {
	return &models.Skill{ID: skillID, Title: "Go"}, nil
}

func newSkillHandlerRouter(t *testing.T) (*gin.Engine, *stubSkillService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := &stubSkillService{}
	handler := NewSkillHandler(service, validator.New(), testHandlerLogger())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("user", &models.User{ID: "user-1", Email: "user@example.com", Status: models.UserStatusActive})
	})
	router.POST("/skills/add-known-skill", handler.AddKnownSkill)

	return router, service
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestAddKnownSkillRejectsMalformedID(t *testing.T) {
	router, service := newSkillHandlerRouter(t)

	recorder := postJSON(router, "/skills/add-known-skill", `{"skill_id":"not-a-uuid"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed skill id, got %d (%s)", recorder.Code, recorder.Body.String())
	}
	if service.addKnownCalled {
		t.Error("service must not be reached with a malformed skill id")
	}

	body := decodeResponse(t, recorder)
	if _, ok := body["message"].([]interface{}); !ok {
		t.Errorf("expected the field error list as message, got %v", body["message"])
	}
}

func TestAddKnownSkillAcceptsWellFormedID(t *testing.T) {
	router, service := newSkillHandlerRouter(t)

	recorder := postJSON(router, "/skills/add-known-skill", `{"skill_id":"6b1deacb-50b2-4f79-92d7-5b40f1ea60c6"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", recorder.Code, recorder.Body.String())
	}
	if !service.addKnownCalled {
		t.Error("service should have been reached")
	}
}
