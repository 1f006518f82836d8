package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
)

// UserHandler serves the caller's profile and the user listings
type UserHandler struct {
	BaseHandler
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(userService services.UserService, authService services.AuthService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
		authService: authService,
	}
}

// GetProfile returns the caller's profile with skills, tests, positions
// and companies loaded.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Retrieving user profile", "user_id", userID)

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "User profile retrieved", user)
}

// UpdateProfile patches the caller's own profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Updating user profile", "user_id", userID)

	var req services.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondMessage(c, http.StatusCreated, "User profile updated")
}

// DeleteProfile logically deletes the caller's account and revokes the
// presented token.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "Deleting user profile", "user_id", userID)

	if err := h.userService.DeleteProfile(c.Request.Context(), userID); err != nil {
		h.RespondError(c, err)
		return
	}

	if claims, err := GetClaimsFromContext(c); err == nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.authService.Logout(c.Request.Context(), claims.ID, ttl); err != nil {
			h.LogError(c, err, "Failed to revoke token on account deletion")
		}
	}

	h.RespondMessage(c, http.StatusOK, "User profile deleted")
}

// ListUsers lists every active account
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.userService.ListActive(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Users retrieved successfully", users)
}

// ListUsersBySkill lists active accounts knowing a matching skill
func (h *UserHandler) ListUsersBySkill(c *gin.Context) {
	word := c.Param("word")

	h.LogRequest(c, "Listing users by skill", "word", word)

	users, err := h.userService.ListBySkill(c.Request.Context(), word)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondData(c, http.StatusOK, "Users retrieved successfully", users)
}
