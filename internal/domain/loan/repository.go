package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID.
	// Returns shared.ErrNotFound when no such customer exists.
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// Save persists a customer. The id is caller-supplied; no identity
	// is assigned by the store.
	Save(ctx context.Context, customer *Customer) error
}

// LoanRequestRepository defines the interface for loan request persistence
type LoanRequestRepository interface {
	// FindByID finds a loan request by its ID.
	// Returns shared.ErrNotFound when no such request exists.
	FindByID(ctx context.Context, id int64) (*LoanRequest, error)

	// Save persists a loan request
	Save(ctx context.Context, request *LoanRequest) error

	// FindAllByCustomerID finds all loan requests owned by a customer.
	// The result may be empty and carries no ordering guarantee.
	FindAllByCustomerID(ctx context.Context, customerID int64) ([]LoanRequest, error)
}

// SumCache maintains, per customer, the running sum of loan amounts.
// Implementations must make the read-or-compute and seed-then-add
// sequences atomic per customer id while keeping distinct ids from
// blocking one another.
type SumCache interface {
	// Get returns the cached sum for a customer, lazily computing it
	// from the backing store on first access. The second return value
	// is false when the customer owns no loan requests; that absence
	// is never cached.
	Get(ctx context.Context, customerID int64) (decimal.Decimal, bool, error)

	// InsertOrAdd runs persist and, when it succeeds, applies amount to
	// the cached sum for the customer, returning the resulting total.
	// The durable write and the cache update share one per-customer
	// critical section, so a concurrent cold fetch for the same
	// customer can never observe a persisted row whose amount is still
	// pending. When no entry exists the total is seeded from the
	// backing store, which at that point already contains the newly
	// persisted row. A nil persist applies the amount alone.
	InsertOrAdd(ctx context.Context, customerID int64, amount decimal.Decimal, persist func(context.Context) error) (decimal.Decimal, error)

	// Reset clears all cached entries. Test and administrative
	// isolation only, never part of the request path.
	Reset()
}
