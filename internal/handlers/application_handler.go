package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// ApplicationHandler serves applying, the application listings and the
// spreadsheet export.
type ApplicationHandler struct {
	BaseHandler
	applicationService services.ApplicationService
	exportService      services.ExportService
	validator          *validator.Validator
}

func NewApplicationHandler(applicationService services.ApplicationService, exportService services.ExportService, validator *validator.Validator, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        NewBaseHandler(logger),
		applicationService: applicationService,
		exportService:      exportService,
		validator:          validator,
	}
}

// Apply submits the caller's application for an open position
func (h *ApplicationHandler) Apply(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var req validator.ApplyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.RespondError(c, errs)
		return
	}

	h.LogRequest(c, "Applying for position", "position_id", req.PositionID, "user_id", user.ID)

	result, err := h.applicationService.Apply(c.Request.Context(), req.PositionID, user.ID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusCreated,
		fmt.Sprintf("User %s has applied for position %s", user.Email, result.Position.Title))
}

// ListMyApplications lists the caller's applications
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Listing user applications", "user_id", userID)

	applications, err := h.applicationService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "User's Applications retrieved successfully", applications)
}

// ListByPosition lists a position's applications, owner only
func (h *ApplicationHandler) ListByPosition(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	positionID := c.Param("positionId")

	h.LogRequest(c, "Listing applications by position", "position_id", positionID, "user_id", userID)

	applications, err := h.applicationService.ListByPosition(c.Request.Context(), positionID, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Applications retrieved successfully", applications)
}

// Reject marks an application as rejected, position owner only
func (h *ApplicationHandler) Reject(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	applicationID := c.Param("applicationId")

	h.LogRequest(c, "Rejecting applicant", "application_id", applicationID, "user_id", userID)

	if _, err := h.applicationService.Reject(c.Request.Context(), applicationID, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusOK, "applicant rejected")
}

// ExportByPosition streams a position's applications as a spreadsheet,
// owner only.
func (h *ApplicationHandler) ExportByPosition(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	positionID := c.Param("positionId")

	h.LogRequest(c, "Exporting applications by position", "position_id", positionID, "user_id", userID)

	file, err := h.exportService.ApplicationsByPosition(c.Request.Context(), positionID, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("applications-%s-%s.xlsx", positionID, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+url.QueryEscape(filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream export")
	}
}
