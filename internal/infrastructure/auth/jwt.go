package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopfront/backend/internal/infrastructure/config"
)

// Role identifies the kind of session a token represents
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrWrongRole    = errors.New("token role not permitted for this resource")
)

// SessionClaims represents the JWT claims carried by session cookies
type SessionClaims struct {
	jwt.RegisteredClaims
	Role         Role   `json:"role"`
	CustomerCode string `json:"customer_code,omitempty"`
	Email        string `json:"email,omitempty"`
}

// JWTService issues and verifies session tokens for the admin back-office
// and the storefront.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.SessionExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateAdminToken issues a back-office session token
func (s *JWTService) GenerateAdminToken() (string, time.Time, error) {
	return s.generate(SessionClaims{Role: RoleAdmin})
}

// GenerateCustomerToken issues a storefront session token
func (s *JWTService) GenerateCustomerToken(customerCode, email string) (string, time.Time, error) {
	return s.generate(SessionClaims{
		Role:         RoleCustomer,
		CustomerCode: customerCode,
		Email:        email,
	})
}

func (s *JWTService) generate(claims SessionClaims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   string(claims.Role),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a session token
func (s *JWTService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRole validates a token and checks it carries the expected role
func (s *JWTService) VerifyRole(tokenString string, role Role) (*SessionClaims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, ErrWrongRole
	}
	return claims, nil
}
