package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// PositionHandler serves the public position catalog and the recruiter
// position management endpoints.
type PositionHandler struct {
	BaseHandler
	positionService services.PositionService
	validator       *validator.Validator
}

func NewPositionHandler(positionService services.PositionService, validator *validator.Validator, logger utils.Logger) *PositionHandler {
	return &PositionHandler{
		BaseHandler:     NewBaseHandler(logger),
		positionService: positionService,
		validator:       validator,
	}
}

// ListPositions lists every open position, public
func (h *PositionHandler) ListPositions(c *gin.Context) {
	h.LogRequest(c, "Listing positions")

	positions, err := h.positionService.List(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Positions retrieved successfully", positions)
}

// GetPosition returns one open position, public
func (h *PositionHandler) GetPosition(c *gin.Context) {
	positionID := c.Param("positionId")

	h.LogRequest(c, "Retrieving position", "position_id", positionID)

	position, err := h.positionService.GetOpen(c.Request.Context(), positionID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Position retrieved successfully", position)
}

// SearchPositions lists open positions with a matching title, public
func (h *PositionHandler) SearchPositions(c *gin.Context) {
	word := c.Param("word")

	h.LogRequest(c, "Searching positions", "word", word)

	positions, err := h.positionService.Search(c.Request.Context(), word)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Positions retrieved successfully", positions)
}

// ListPositionsByCompany lists a company's open positions, public
func (h *PositionHandler) ListPositionsByCompany(c *gin.Context) {
	companyID := c.Param("companyId")

	h.LogRequest(c, "Listing positions by company", "company_id", companyID)

	positions, err := h.positionService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Positions retrieved successfully", positions)
}

// CreatePosition publishes a position for a company the caller owns
func (h *PositionHandler) CreatePosition(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Creating position", "user_id", userID)

	var req services.PositionCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.positionService.Create(c.Request.Context(), &req, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusCreated, "New position added")
}

// UpdatePosition patches a position the caller owns
func (h *PositionHandler) UpdatePosition(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	positionID := c.Param("positionId")

	h.LogRequest(c, "Updating position", "position_id", positionID, "user_id", userID)

	var req services.PositionUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	position, err := h.positionService.Update(c.Request.Context(), positionID, &req, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Position edited: "+position.Title)
}

// AttachSkill adds one skill to a position's requirements
func (h *PositionHandler) AttachSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.PositionSkillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Attaching skill to position", "position_id", req.PositionID, "skill_id", req.SkillID)

	position, skill, err := h.positionService.AttachSkill(c.Request.Context(), req.PositionID, req.SkillID, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK,
		fmt.Sprintf("Skill %s added to requirements of position %s", skill.Title, position.Title))
}

// DetachSkill removes one skill from a position's requirements
func (h *PositionHandler) DetachSkill(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.PositionSkillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Detaching skill from position", "position_id", req.PositionID, "skill_id", req.SkillID)

	position, skill, err := h.positionService.DetachSkill(c.Request.Context(), req.PositionID, req.SkillID, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	// The double space matches the long-standing wire contract
	h.RespondMessage(c, http.StatusOK,
		fmt.Sprintf("Skill %s removed from  requirements of position %s", skill.Title, position.Title))
}

// AttachSkillList adds a batch of skills to a position's requirements
func (h *PositionHandler) AttachSkillList(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.PositionSkillListRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Attaching skill list to position", "position_id", req.PositionID)

	position, err := h.positionService.AttachSkills(c.Request.Context(), req.PositionID, skillIDs(req.Skills), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Skill list added to requirements of position "+position.Title)
}

// DetachSkillList removes a batch of skills from a position's requirements
func (h *PositionHandler) DetachSkillList(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.PositionSkillListRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Detaching skill list from position", "position_id", req.PositionID)

	position, err := h.positionService.DetachSkills(c.Request.Context(), req.PositionID, skillIDs(req.Skills), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "Skill list removed from requirements of position "+position.Title)
}

func skillIDs(refs []validator.SkillRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}
