package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a gorm.DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockCustomerRepository(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func TestNewGormCustomerRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "emails", "phone"}).
			AddRow(customerID, "CUST-1", "Rahul Mehta", `["rahul@example.com"]`, "+919876543210")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)

		c, err := repo.FindByID(context.Background(), customerID)

		assert.NoError(t, err)
		assert.NotNil(t, c)
		assert.Equal(t, customerID, c.ID)
		assert.Equal(t, "CUST-1", c.Code)
		assert.Equal(t, []string{"rahul@example.com"}, c.Emails)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		c, err := repo.FindByID(context.Background(), customerID)

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByPhone(t *testing.T) {
	t.Run("rejects empty phone", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		c, err := repo.FindByPhone(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("finds customer by phone", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "phone"}).
			AddRow(customerID, "CUST-7", "Anita Desai", "+919812345678")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE phone = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("+919812345678", 1).
			WillReturnRows(rows)

		c, err := repo.FindByPhone(context.Background(), "+919812345678")

		assert.NoError(t, err)
		assert.NotNil(t, c)
		assert.Equal(t, "CUST-7", c.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_ExistsByPhone(t *testing.T) {
	t.Run("empty phone never exists", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		exists, err := repo.ExistsByPhone(context.Background(), "")

		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("reports existing phone", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE phone = \$1`).
			WithArgs("+919812345678").
			WillReturnRows(rows)

		exists, err := repo.ExistsByPhone(context.Background(), "+919812345678")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_NextCode(t *testing.T) {
	t.Run("starts at CUST-1 for empty table", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"code"})
		mock.ExpectQuery(`SELECT "code" FROM "customers" WHERE code LIKE \$1`).
			WithArgs("CUST-%").
			WillReturnRows(rows)

		code, err := repo.NextCode(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "CUST-1", code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("picks numeric max rather than lexical max", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"code"}).
			AddRow("CUST-9").
			AddRow("CUST-10").
			AddRow("CUST-2")
		mock.ExpectQuery(`SELECT "code" FROM "customers" WHERE code LIKE \$1`).
			WithArgs("CUST-%").
			WillReturnRows(rows)

		code, err := repo.NextCode(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "CUST-11", code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
