package identity

import "time"

// AdminLoginRequest is the back-office login form
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// SignupRequest registers a storefront account
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the storefront login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts the emailed reset-code flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the reset-code flow
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// SessionResponse carries a freshly issued session token
type SessionResponse struct {
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Role         string    `json:"role"`
	CustomerCode string    `json:"customer_code,omitempty"`
	Email        string    `json:"email,omitempty"`
}
