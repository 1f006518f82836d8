package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
)

// AuthHandler serves registration, login and logout
type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register creates an account and answers with the user and a token.
// This response has no envelope, unlike every other endpoint.
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering new user")

	var req services.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  result.User,
		"token": result.Token,
	})
}

// Login exchanges credentials for a token
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "User login")

	var req services.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// Logout revokes the presented token for the rest of its lifetime
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.LogRequest(c, "User logout", "user_id", claims.UserID)

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.authService.Logout(c.Request.Context(), claims.ID, ttl); err != nil {
		h.LogError(c, err, "Failed to log out user")
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Sorry, the user cannot be logged out"})
		return
	}

	h.RespondMessage(c, http.StatusOK, "User logged out successfully")
}
