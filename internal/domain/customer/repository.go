package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Repository defines persistence operations for customers
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindSubscribed returns all non-archived customers opted into the
	// newsletter, for broadcast sends
	FindSubscribed(ctx context.Context) ([]Customer, error)
	Save(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	// NextCode reserves the next sequential human-readable customer code
	NextCode(ctx context.Context) (string, error)
}
