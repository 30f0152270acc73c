package loan

import (
	"testing"

	"github.com/loanserve/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid fields", func(t *testing.T) {
		customer, err := NewCustomer(42, "Alice Smith")
		require.NoError(t, err)

		assert.Equal(t, int64(42), customer.ID)
		assert.Equal(t, "Alice Smith", customer.FullName)
	})

	t.Run("accepts zero id", func(t *testing.T) {
		customer, err := NewCustomer(0, "Alice Smith")
		require.NoError(t, err)
		assert.Equal(t, int64(0), customer.ID)
	})

	t.Run("rejects negative id", func(t *testing.T) {
		_, err := NewCustomer(-1, "Alice Smith")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CUSTOMER_ID", domainErr.Code)
	})

	t.Run("rejects blank full name", func(t *testing.T) {
		_, err := NewCustomer(42, "   ")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CUSTOMER_NAME", domainErr.Code)
	})
}

func TestCustomer_Matches(t *testing.T) {
	customer, err := NewCustomer(42, "Alice Smith")
	require.NoError(t, err)

	t.Run("matches identical name", func(t *testing.T) {
		assert.True(t, customer.Matches("Alice Smith"))
	})

	t.Run("comparison is exact", func(t *testing.T) {
		assert.False(t, customer.Matches("alice smith"))
		assert.False(t, customer.Matches("Alice Smith "))
		assert.False(t, customer.Matches("Bob Smith"))
	})
}
