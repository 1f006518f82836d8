package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
)

// CompanyHandler serves the public company catalog and the recruiter
// company management endpoints.
type CompanyHandler struct {
	BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(companyService services.CompanyService, logger utils.Logger) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    NewBaseHandler(logger),
		companyService: companyService,
	}
}

// ListCompanies lists every active company, public
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	h.LogRequest(c, "Listing companies")

	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Companies retrieved successfully", companies)
}

// SearchCompaniesByName lists active companies matching a name, public
func (h *CompanyHandler) SearchCompaniesByName(c *gin.Context) {
	name := c.Param("name")

	h.LogRequest(c, "Searching companies by name", "name", name)

	companies, err := h.companyService.SearchByName(c.Request.Context(), name)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Companies retrieved successfully", companies)
}

// ListMyCompanies lists the caller's companies
func (h *CompanyHandler) ListMyCompanies(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Listing user companies", "user_id", userID)

	companies, err := h.companyService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "User companies retrieved successfully", companies)
}

// CreateCompany registers a company owned by the caller
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Creating company", "user_id", userID)

	var req services.CompanyCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.companyService.Create(c.Request.Context(), &req, userID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusCreated, "New company added")
}

// UpdateCompany patches a company owned by the caller
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	companyID := c.Param("companyId")

	h.LogRequest(c, "Updating company", "company_id", companyID, "user_id", userID)

	var req services.CompanyUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), companyID, &req, userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Company updated successfully", company)
}
