package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/mail"
)

const resetCodeTTL = 15 * time.Minute

// ErrInvalidCredentials covers every failed login without revealing which
// part was wrong.
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")

// AuthService handles admin and storefront authentication plus the emailed
// password reset flow.
type AuthService struct {
	userRepo     identity.Repository
	customerRepo customer.Repository
	jwt          *auth.JWTService
	resetCodes   auth.ResetCodeStore
	mailer       mail.Sender
	templates    *mail.Templates
	adminCfg     config.AdminConfig
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo identity.Repository,
	customerRepo customer.Repository,
	jwtService *auth.JWTService,
	resetCodes auth.ResetCodeStore,
	mailer mail.Sender,
	templates *mail.Templates,
	adminCfg config.AdminConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		jwt:          jwtService,
		resetCodes:   resetCodes,
		mailer:       mailer,
		templates:    templates,
		adminCfg:     adminCfg,
		logger:       logger,
	}
}

// AdminLogin checks the shared back-office password and issues an admin
// session token.
func (s *AuthService) AdminLogin(_ context.Context, req *AdminLoginRequest) (*SessionResponse, error) {
	if !auth.ConstantTimeEquals(req.Password, s.adminCfg.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAdminToken()
	if err != nil {
		return nil, err
	}
	return &SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      string(auth.RoleAdmin),
	}, nil
}

// Signup registers a storefront account. The customer record is created (or
// linked by phone) alongside the user.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "An account with this email already exists")
	}

	c, err := s.customerRepo.FindByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if c == nil {
		code, err := s.customerRepo.NextCode(ctx)
		if err != nil {
			return nil, err
		}
		c, err = customer.NewCustomer(code, req.Name, req.Phone)
		if err != nil {
			return nil, err
		}
	}
	if err := c.AddEmail(email); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u, err := identity.NewUser(email, hash, c.Code)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account created", zap.String("customer_code", c.Code))
	return s.customerSession(u)
}

// Login authenticates a storefront account
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*SessionResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.customerSession(u)
}

// ForgotPassword issues a short-lived reset code and emails it. An unknown
// email succeeds silently so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := auth.GenerateResetCode()
	if err != nil {
		return err
	}
	if err := s.resetCodes.Put(ctx, u.Email, code, resetCodeTTL); err != nil {
		return err
	}

	name := u.Email
	if c, err := s.customerRepo.FindByCode(ctx, u.CustomerCode); err == nil {
		name = c.Name
	}
	rendered, err := s.templates.PasswordReset(name, code, resetCodeTTL)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, &mail.Message{
		To:      u.Email,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
	}); err != nil {
		s.logger.Error("reset code email failed", zap.Error(err))
		return err
	}
	return nil
}

// ResetPassword consumes a reset code and rotates the password
func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ok, err := s.resetCodes.Consume(ctx, email, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("INVALID_RESET_CODE", "Reset code is invalid or has expired")
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := u.RotatePassword(hash); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("customer_code", u.CustomerCode))
	return nil
}

func (s *AuthService) customerSession(u *identity.User) (*SessionResponse, error) {
	token, expiresAt, err := s.jwt.GenerateCustomerToken(u.CustomerCode, u.Email)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{
		Token:        token,
		ExpiresAt:    expiresAt,
		Role:         string(auth.RoleCustomer),
		CustomerCode: u.CustomerCode,
		Email:        u.Email,
	}, nil
}
