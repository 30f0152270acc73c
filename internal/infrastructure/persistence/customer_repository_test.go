package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/loanserve/backend/internal/domain/loan"
	"github.com/loanserve/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCustomerRepository creates a GormCustomerRepository with a mocked SQL connection
func newMockCustomerRepository(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "full_name"}).
			AddRow(int64(42), "Alice Smith")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(42), 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), customer.ID)
		assert.Equal(t, "Alice Smith", customer.FullName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(99), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}))

		_, err := repo.FindByID(context.Background(), 99)
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates infrastructure failures unchanged", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.FindByID(context.Background(), 42)
		require.ErrorIs(t, err, sql.ErrConnDone)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_Save(t *testing.T) {
	t.Run("inserts with caller-supplied id", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "customers" .+ VALUES \(\$1,\$2\)`).
			WithArgs(int64(42), "Alice Smith").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), &loan.Customer{ID: 42, FullName: "Alice Smith"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
