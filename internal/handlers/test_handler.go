package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// TestHandler serves skill test scheduling and evaluation
type TestHandler struct {
	BaseHandler
	testService services.TestService
	validator   *validator.Validator
}

func NewTestHandler(testService services.TestService, validator *validator.Validator, logger utils.Logger) *TestHandler {
	return &TestHandler{
		BaseHandler: NewBaseHandler(logger),
		testService: testService,
		validator:   validator,
	}
}

// ListMyTests lists the tests the caller takes part in, either side
func (h *TestHandler) ListMyTests(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Listing user tests", "user_id", userID)

	tests, err := h.testService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "User's tests retrieved successfully", tests)
}

// CreateTest schedules a test with the caller as examiner
func (h *TestHandler) CreateTest(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Scheduling test", "examiner_id", userID)

	var req services.TestCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.testService.Create(c.Request.Context(), &req, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusCreated, "Test scheduled")
}

// UpdateTest patches a test's date or completed flag, examiner only
func (h *TestHandler) UpdateTest(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	testID := c.Param("testId")

	h.LogRequest(c, "Updating test", "test_id", testID, "user_id", userID)

	var req services.TestUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.testService.Update(c.Request.Context(), testID, &req, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Test edited")
}

// DeleteTest removes a test with its participants and marks, examiner only
func (h *TestHandler) DeleteTest(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	testID := c.Param("testId")

	h.LogRequest(c, "Deleting test", "test_id", testID, "user_id", userID)

	if err := h.testService.Delete(c.Request.Context(), testID, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Test deleted")
}

// AttachSkill adds a skill to a test, examiner only
func (h *TestHandler) AttachSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.TestSkillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Attaching skill to test", "test_id", req.TestID, "skill_id", req.SkillID)

	skill, err := h.testService.AttachSkill(c.Request.Context(), req.TestID, req.SkillID, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "The skill "+skill.Title+" has been added to test")
}

// DetachSkill removes a skill from a test, examiner only
func (h *TestHandler) DetachSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.TestSkillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Detaching skill from test", "test_id", req.TestID, "skill_id", req.SkillID)

	skill, err := h.testService.DetachSkill(c.Request.Context(), req.TestID, req.SkillID, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "The skill "+skill.Title+" has been removed from test")
}

// EvaluateSkill settles one mark, examiner only
func (h *TestHandler) EvaluateSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	skillMarkID := c.Param("skillMarkId")

	var req validator.EvaluateSkillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Evaluating skill", "skill_mark_id", skillMarkID, "user_id", userID)

	if _, err := h.testService.EvaluateSkill(c.Request.Context(), skillMarkID, *req.Mark, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Skill mark registered")
}

// EvaluateTest settles every listed mark of a test, examiner only
func (h *TestHandler) EvaluateTest(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	testID := c.Param("testId")

	var req services.EvaluateTestRequest
	if !h.BindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Evaluating test", "test_id", testID, "user_id", userID)

	if err := h.testService.EvaluateTest(c.Request.Context(), testID, &req, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Skill marks registered")
}
