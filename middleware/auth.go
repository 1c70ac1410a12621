package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recircuit-server/database"
	"recircuit-server/models"
	"recircuit-server/services"
	"recircuit-server/types"
)

// Claims represents the JWT claims (using shared types)
type Claims = types.Claims

// AuthMiddleware validates JWT tokens and sets user context
func AuthMiddleware() gin.HandlerFunc {
	jwtService := services.NewJWTService()

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		// Load the profile; the role tag on the row is authoritative, not
		// the one baked into the token
		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User not found",
				"message": "User associated with token not found",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User inactive",
				"message": "User account is deactivated",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)

		c.Next()
	}
}

// AuthDecision is the outcome of comparing a profile against a page's
// required role
type AuthDecision int

const (
	// DecisionUnresolved means no profile is available yet; callers treat
	// this as "not yet authorized", never as denied
	DecisionUnresolved AuthDecision = iota
	DecisionAuthorized
	DecisionDenied
)

// Authorize is the single authorization capability used by every protected
// route group: an exact role comparison, no hierarchy, one required role.
func Authorize(user *models.User, required models.UserRole) AuthDecision {
	if user == nil {
		return DecisionUnresolved
	}
	if user.Role == required {
		return DecisionAuthorized
	}
	return DecisionDenied
}

// RequireRole gates a route group on one required role. It must run after
// AuthMiddleware. A missing profile yields 401 (unresolved), a role mismatch
// yields the fixed 403 denial body with the home affordance.
func RequireRole(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)

		switch Authorize(user, required) {
		case DecisionAuthorized:
			c.Next()
		case DecisionUnresolved:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please sign in to access this page",
			})
			c.Abort()
		default:
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Access denied",
				"message": "You don't have permission to access this page",
				"home":    "/",
			})
			c.Abort()
		}
	}
}

// CurrentUser returns the authenticated profile from the request context,
// or nil when none has been resolved
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(models.User)
	if !ok {
		return nil
	}
	return &user
}
