package cache

import (
	"context"
	"sync"

	"github.com/loanserve/backend/internal/domain/loan"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Number of lock stripes. Keys are distributed across stripes so a
// stalled cold fetch only blocks callers contending on the same stripe.
const defaultStripeCount = 64

// LoanSumCache implements loan.SumCache with an in-memory map backed by
// the loan request store for cold lookups.
//
// Per-key atomicity comes from striped locking: every operation for a
// customer id runs under the mutex of its stripe, so the
// read-or-compute sequence and the persist-then-apply sequence are
// indivisible for that id. Operations on ids in different stripes
// proceed in parallel.
//
// Absence is never cached: a customer with no loan requests is
// re-queried on every Get, so a customer created moments later is
// picked up immediately.
type LoanSumCache struct {
	loans  loan.LoanRequestRepository
	logger *zap.Logger

	stripes [defaultStripeCount]sync.Mutex

	mu   sync.RWMutex
	sums map[int64]decimal.Decimal
}

// LoanSumCacheOption is a functional option for configuring the cache
type LoanSumCacheOption func(*LoanSumCache)

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) LoanSumCacheOption {
	return func(c *LoanSumCache) {
		c.logger = logger
	}
}

// NewLoanSumCache creates a new loan sum cache backed by the given
// loan request repository
func NewLoanSumCache(loans loan.LoanRequestRepository, opts ...LoanSumCacheOption) *LoanSumCache {
	c := &LoanSumCache{
		loans:  loans,
		logger: zap.NewNop(),
		sums:   make(map[int64]decimal.Decimal),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached sum for a customer, performing at most one
// cold fetch when the entry is absent. The second return value is
// false when the customer owns no loan requests; that outcome is not
// cached.
func (c *LoanSumCache) Get(ctx context.Context, customerID int64) (decimal.Decimal, bool, error) {
	if sum, ok := c.load(customerID); ok {
		return sum, true, nil
	}

	stripe := c.stripeFor(customerID)
	stripe.Lock()
	defer stripe.Unlock()

	// Another caller may have populated the entry while we waited.
	if sum, ok := c.load(customerID); ok {
		return sum, true, nil
	}

	sum, found, err := c.fetchSum(ctx, customerID)
	if err != nil {
		return decimal.Zero, false, err
	}
	if !found {
		return decimal.Zero, false, nil
	}

	c.store(customerID, sum)
	return sum, true, nil
}

// InsertOrAdd runs persist under the customer's stripe lock and, when
// it succeeds, applies amount to the cached sum, returning the
// resulting total. Holding the lock across the durable write keeps a
// concurrent cold fetch for the same customer from observing a row
// whose amount has not been applied yet. When the entry is absent the
// cold fetch already covers the new row and its result is taken as-is
// rather than incremented again. A nil persist applies the amount
// alone.
func (c *LoanSumCache) InsertOrAdd(ctx context.Context, customerID int64, amount decimal.Decimal, persist func(context.Context) error) (decimal.Decimal, error) {
	stripe := c.stripeFor(customerID)
	stripe.Lock()
	defer stripe.Unlock()

	if persist != nil {
		if err := persist(ctx); err != nil {
			return decimal.Zero, err
		}
	}

	if sum, ok := c.load(customerID); ok {
		total := sum.Add(amount)
		c.store(customerID, total)

		c.logger.Debug("Applied loan amount to cached sum",
			zap.Int64("customer_id", customerID),
			zap.String("amount", amount.String()),
			zap.String("total", total.String()),
		)

		return total, nil
	}

	fetched, found, err := c.fetchSum(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	// An empty store can only happen without a persist callback; the
	// amount alone seeds the entry.
	total := amount
	if found {
		total = fetched
	}
	c.store(customerID, total)

	c.logger.Debug("Seeded cached sum from store",
		zap.Int64("customer_id", customerID),
		zap.String("amount", amount.String()),
		zap.String("total", total.String()),
	)

	return total, nil
}

// Reset clears all cached entries
func (c *LoanSumCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sums = make(map[int64]decimal.Decimal)
}

// Size returns the number of cached entries (for testing/monitoring)
func (c *LoanSumCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sums)
}

// fetchSum computes the customer's sum from the store. The second
// return value is false when the customer owns no loan requests.
func (c *LoanSumCache) fetchSum(ctx context.Context, customerID int64) (decimal.Decimal, bool, error) {
	requests, err := c.loans.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		return decimal.Zero, false, err
	}
	if len(requests) == 0 {
		return decimal.Zero, false, nil
	}

	sum := decimal.Zero
	for _, request := range requests {
		sum = sum.Add(request.Amount)
	}

	c.logger.Debug("Cold-fetched loan sum from store",
		zap.Int64("customer_id", customerID),
		zap.Int("requests", len(requests)),
		zap.String("sum", sum.String()),
	)

	return sum, true, nil
}

func (c *LoanSumCache) stripeFor(customerID int64) *sync.Mutex {
	idx := uint64(customerID) % defaultStripeCount
	return &c.stripes[idx]
}

func (c *LoanSumCache) load(customerID int64) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sum, ok := c.sums[customerID]
	return sum, ok
}

func (c *LoanSumCache) store(customerID int64, sum decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sums[customerID] = sum
}

// Ensure LoanSumCache implements loan.SumCache
var _ loan.SumCache = (*LoanSumCache)(nil)
