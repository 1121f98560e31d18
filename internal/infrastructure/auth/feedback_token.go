package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FeedbackClaims binds a feedback link to one order and customer
type FeedbackClaims struct {
	jwt.RegisteredClaims
	OrderID      string `json:"order_id"`
	CustomerCode string `json:"customer_code"`
}

// FeedbackTokenService issues and verifies the signed, time-limited tokens
// embedded in post-delivery feedback links.
type FeedbackTokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewFeedbackTokenService creates a feedback token service.
// expiration is typically 90 days.
func NewFeedbackTokenService(secret, issuer string, expiration time.Duration) *FeedbackTokenService {
	return &FeedbackTokenService{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
	}
}

// Issue creates a signed token for the order/customer pair
func (s *FeedbackTokenService) Issue(orderID uuid.UUID, customerCode string) (string, error) {
	now := time.Now()
	claims := FeedbackClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   "feedback",
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		OrderID:      orderID.String(),
		CustomerCode: customerCode,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates a feedback token and returns the bound order and customer
func (s *FeedbackTokenService) Verify(tokenString string) (uuid.UUID, string, error) {
	claims := &FeedbackClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", ErrExpiredToken
		}
		return uuid.Nil, "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject != "feedback" {
		return uuid.Nil, "", ErrInvalidToken
	}

	orderID, err := uuid.Parse(claims.OrderID)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	return orderID, claims.CustomerCode, nil
}
