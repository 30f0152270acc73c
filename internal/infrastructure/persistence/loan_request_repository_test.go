package persistence

import (
	"context"
	"testing"

	"github.com/loanserve/backend/internal/domain/loan"
	"github.com/loanserve/backend/internal/domain/shared"
	"github.com/loanserve/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLoanTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CustomerModel{}, &models.LoanRequestModel{})
	require.NoError(t, err)

	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, id int64, fullName string) {
	t.Helper()
	err := NewGormCustomerRepository(db).Save(context.Background(), &loan.Customer{ID: id, FullName: fullName})
	require.NoError(t, err)
}

func TestGormLoanRequestRepository_SaveAndFindByID(t *testing.T) {
	db := setupLoanTestDB(t)
	repo := NewGormLoanRequestRepository(db)
	ctx := context.Background()

	seedCustomer(t, db, 42, "Alice Smith")

	t.Run("round-trips a loan request", func(t *testing.T) {
		request, err := loan.NewLoanRequest(7, decimal.RequireFromString("1000.00"), 42)
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, request))

		found, err := repo.FindByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), found.ID)
		assert.Equal(t, int64(42), found.CustomerID)
		assert.True(t, found.Amount.Equal(decimal.RequireFromString("1000.00")))
	})

	t.Run("duplicate id fails at the storage layer", func(t *testing.T) {
		request, err := loan.NewLoanRequest(7, decimal.RequireFromString("999.99"), 42)
		require.NoError(t, err)

		err = repo.Save(ctx, request)
		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 12345)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLoanRequestRepository_FindAllByCustomerID(t *testing.T) {
	db := setupLoanTestDB(t)
	repo := NewGormLoanRequestRepository(db)
	ctx := context.Background()

	seedCustomer(t, db, 42, "Alice Smith")
	seedCustomer(t, db, 43, "Bob Smith")

	amounts := []string{"500.00", "250.25", "10.00"}
	for i, amount := range amounts {
		request, err := loan.NewLoanRequest(int64(i+1), decimal.RequireFromString(amount), 42)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, request))
	}
	other, err := loan.NewLoanRequest(100, decimal.RequireFromString("777.77"), 43)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("returns only the customer's requests", func(t *testing.T) {
		requests, err := repo.FindAllByCustomerID(ctx, 42)
		require.NoError(t, err)
		require.Len(t, requests, 3)

		sum := decimal.Zero
		for _, request := range requests {
			assert.Equal(t, int64(42), request.CustomerID)
			sum = sum.Add(request.Amount)
		}
		assert.True(t, sum.Equal(decimal.RequireFromString("760.25")))
	})

	t.Run("returns empty slice for unknown customer", func(t *testing.T) {
		requests, err := repo.FindAllByCustomerID(ctx, 99)
		require.NoError(t, err)
		assert.Empty(t, requests)
	})
}
