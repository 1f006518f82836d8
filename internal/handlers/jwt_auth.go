package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/models"
	"github.com/hireloop/jobboard-service/internal/repositories"
)

// JWTAuthMiddleware authenticates requests with bearer tokens and loads
// the account behind them. Revoked and expired tokens are rejected, as
// are tokens of logically deleted accounts.
type JWTAuthMiddleware struct {
	tokens     *auth.TokenManager
	tokenStore *auth.TokenStore
	userRepo   repositories.UserRepository
}

func NewJWTAuthMiddleware(tokens *auth.TokenManager, tokenStore *auth.TokenStore, userRepo repositories.UserRepository) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		tokens:     tokens,
		tokenStore: tokenStore,
		userRepo:   userRepo,
	}
}

// AuthMiddleware returns a Gin middleware that requires a valid token
func (am *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Token not provided"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Token not provided"})
			c.Abort()
			return
		}

		claims, err := am.tokens.Parse(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Token is invalid"})
			c.Abort()
			return
		}

		revoked, err := am.tokenStore.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil || revoked {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Token is invalid"})
			c.Abort()
			return
		}

		user, err := am.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || user.IsDeleted() {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Token is invalid"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", claims.Role)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// RequireRecruiter hides recruiter routes from everyone else. The
// response mimics an unknown route instead of admitting the route
// exists.
func (am *JWTAuthMiddleware) RequireRecruiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleRecruiter {
			c.JSON(http.StatusNotFound, Response{Success: false, Message: "route not found"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromContext extracts the authenticated user from the Gin context
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	value, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}
	return user, nil
}

// GetUserIDFromContext extracts the authenticated user id from the Gin context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}
	id, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}
	return id, nil
}

// GetClaimsFromContext extracts the token claims from the Gin context
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, error) {
	value, exists := c.Get("token_claims")
	if !exists {
		return nil, fmt.Errorf("token claims not found in context")
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type in context")
	}
	return claims, nil
}
