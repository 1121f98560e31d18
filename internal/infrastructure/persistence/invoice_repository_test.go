package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGormInvoiceRepository_FindByOrderID(t *testing.T) {
	t.Run("finds invoice for order", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(gormDB)

		orderID := uuid.New()
		invoiceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "number", "order_id", "pdf_base64", "expires_at"}).
			AddRow(invoiceID, "INV-202608-0042", orderID, "JVBERi0=", time.Now().AddDate(0, 3, 0))

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(rows)

		inv, err := repo.FindByOrderID(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NotNil(t, inv)
		assert.Equal(t, "INV-202608-0042", inv.Number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing invoice to not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(gormDB)

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		inv, err := repo.FindByOrderID(context.Background(), orderID)

		assert.Nil(t, inv)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_DeleteExpired(t *testing.T) {
	t.Run("reports deleted row count", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(gormDB)

		now := time.Now()
		mock.ExpectExec(`DELETE FROM "invoices" WHERE expires_at <= \$1`).
			WithArgs(now).
			WillReturnResult(sqlmock.NewResult(0, 3))

		deleted, err := repo.DeleteExpired(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
