package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	customerapp "github.com/shopfront/backend/internal/application/customer"
	identityapp "github.com/shopfront/backend/internal/application/identity"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles admin and storefront authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService     *identityapp.AuthService
	customerService *customerapp.CustomerService
	secureCookie    bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie should be true
// whenever the service is reached over HTTPS.
func NewAuthHandler(authService *identityapp.AuthService, customerService *customerapp.CustomerService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, customerService: customerService, secureCookie: secureCookie}
}

// Account handles GET /api/account for a signed-in customer
func (h *AuthHandler) Account(c *gin.Context) {
	claims := middleware.GetSessionClaims(c)
	if claims == nil || claims.CustomerCode == "" {
		h.Unauthorized(c, "No customer session")
		return
	}

	profile, err := h.customerService.GetByCode(c.Request.Context(), claims.CustomerCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// AdminLogin handles POST /admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req identityapp.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.authService.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, middleware.AdminCookieName, session.Token, session.ExpiresAt)
	h.Success(c, session)
}

// AdminLogout handles POST /admin/logout
func (h *AuthHandler) AdminLogout(c *gin.Context) {
	h.clearSessionCookie(c, middleware.AdminCookieName)
	h.NoContent(c)
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req identityapp.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, middleware.CustomerCookieName, session.Token, session.ExpiresAt)
	h.Created(c, session)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, middleware.CustomerCookieName, session.Token, session.ExpiresAt)
	h.Success(c, session)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c, middleware.CustomerCookieName)
	h.NoContent(c)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req identityapp.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), &req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "If the account exists, a reset code has been sent"})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req identityapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, name, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(name, token, maxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", h.secureCookie, true)
}
