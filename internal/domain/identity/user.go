package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/shared"
)

// User is a storefront account. Passwords are stored as bcrypt hashes.
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	CustomerCode string
}

// NewUser creates a new storefront user
func NewUser(email, passwordHash, customerCode string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: passwordHash,
		CustomerCode: customerCode,
	}, nil
}

// RotatePassword replaces the stored password hash
func (u *User) RotatePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// Repository defines persistence operations for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, u *User) error
}
