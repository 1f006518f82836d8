package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// SkillHandler serves the shared skill catalog and the known-skill
// endpoints on the caller's profile.
type SkillHandler struct {
	BaseHandler
	skillService services.SkillService
	validator    *validator.Validator
}

func NewSkillHandler(skillService services.SkillService, validator *validator.Validator, logger utils.Logger) *SkillHandler {
	return &SkillHandler{
		BaseHandler:  NewBaseHandler(logger),
		skillService: skillService,
		validator:    validator,
	}
}

// ListSkills lists every skill, public
func (h *SkillHandler) ListSkills(c *gin.Context) {
	h.LogRequest(c, "Listing skills")

	skills, err := h.skillService.List(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Skills retrieved successfully", skills)
}

// SearchSkillsByTitle lists skills with a matching title, public
func (h *SkillHandler) SearchSkillsByTitle(c *gin.Context) {
	title := c.Param("title")

	h.LogRequest(c, "Searching skills by title", "title", title)

	skills, err := h.skillService.SearchByTitle(c.Request.Context(), title)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Skills retrieved successfully", skills)
}

// CreateSkill registers a skill with the caller as its creator
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Creating skill", "user_id", userID)

	var req services.SkillCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.skillService.Create(c.Request.Context(), &req, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusCreated, "New skill added to database")
}

// UpdateSkill patches a skill, creator only
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	skillID := c.Param("skillId")

	h.LogRequest(c, "Updating skill", "skill_id", skillID, "user_id", userID)

	var req services.SkillUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	skill, err := h.skillService.Update(c.Request.Context(), skillID, &req, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Skill updated successfully", skill)
}

// DeleteSkill removes a skill and its references, creator only
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	skillID := c.Param("skillId")

	h.LogRequest(c, "Deleting skill", "skill_id", skillID, "user_id", userID)

	if err := h.skillService.Delete(c.Request.Context(), skillID, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Skill deleted successfully")
}

// AddKnownSkill adds a skill to the caller's known skills list
func (h *SkillHandler) AddKnownSkill(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.KnownSkillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Adding known skill", "user_id", user.ID, "skill_id", req.SkillID)

	skill, err := h.skillService.AddKnownSkill(c.Request.Context(), user.ID, req.SkillID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK,
		fmt.Sprintf("The user %s has added the skill %s to their known skills list", user.Email, skill.Title))
}

// RemoveKnownSkill removes a skill from the caller's known skills list
func (h *SkillHandler) RemoveKnownSkill(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.KnownSkillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Removing known skill", "user_id", user.ID, "skill_id", req.SkillID)

	skill, err := h.skillService.RemoveKnownSkill(c.Request.Context(), user.ID, req.SkillID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK,
		fmt.Sprintf("The user %s has removed the skill %s from their known skills list", user.Email, skill.Title))
}
