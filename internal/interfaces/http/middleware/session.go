package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/backend/internal/infrastructure/auth"
)

// Session context keys and cookie names
const (
	SessionClaimsKey   = "session_claims"
	AdminCookieName    = "admin_session"
	CustomerCookieName = "customer_session"
	bearerPrefix       = "Bearer "
)

// RequireAdmin guards back-office routes. The token is read from the admin
// session cookie, with an Authorization bearer fallback for API clients.
func RequireAdmin(jwtService *auth.JWTService) gin.HandlerFunc {
	return requireRole(jwtService, auth.RoleAdmin, AdminCookieName)
}

// RequireCustomer guards storefront account routes
func RequireCustomer(jwtService *auth.JWTService) gin.HandlerFunc {
	return requireRole(jwtService, auth.RoleCustomer, CustomerCookieName)
}

func requireRole(jwtService *auth.JWTService, role auth.Role, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			unauthorized(c, "Authentication required")
			return
		}

		claims, err := jwtService.VerifyRole(token, role)
		if err != nil {
			unauthorized(c, "Invalid or expired session")
			return
		}

		c.Set(SessionClaimsKey, claims)
		c.Next()
	}
}

// GetSessionClaims returns the verified claims set by the session middleware
func GetSessionClaims(c *gin.Context) *auth.SessionClaims {
	if v, ok := c.Get(SessionClaimsKey); ok {
		if claims, ok := v.(*auth.SessionClaims); ok {
			return claims
		}
	}
	return nil
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	return ""
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
