package loan

import (
	"context"
	"errors"
	"fmt"

	"github.com/loanserve/backend/internal/domain/loan"
	"github.com/loanserve/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SubmitLoanRequestInput carries a validated loan request submission.
// Field-level constraints (amount range, digit bounds) are enforced at
// the transport boundary before this service runs.
type SubmitLoanRequestInput struct {
	ID               int64
	Amount           decimal.Decimal
	CustomerID       int64
	CustomerFullName string
}

// LoanService coordinates idempotent ingestion of loan requests and
// serves aggregate sum queries.
//
// Ingestion resolves the customer first and the loan request second,
// each as an independent idempotent upsert, so a crash between the two
// writes is resumed naturally by the resubmission path. A new loan
// request is persisted through the sum cache's per-customer section,
// which keeps the durable write and the cache update indivisible for
// that customer; replays and conflicts never touch the cache.
type LoanService struct {
	customers loan.CustomerRepository
	loans     loan.LoanRequestRepository
	sums      loan.SumCache
	logger    *zap.Logger
}

// NewLoanService creates a new LoanService
func NewLoanService(
	customers loan.CustomerRepository,
	loans loan.LoanRequestRepository,
	sums loan.SumCache,
	logger *zap.Logger,
) *LoanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanService{
		customers: customers,
		loans:     loans,
		sums:      sums,
		logger:    logger,
	}
}

// SubmitLoanRequest ingests a loan request submission. A replay with
// identical content returns the stored request unchanged; identity
// reuse with differing content fails with a conflict error. Storage
// failures propagate as infrastructure errors distinct from conflicts.
func (s *LoanService) SubmitLoanRequest(ctx context.Context, in SubmitLoanRequestInput) (*loan.LoanRequest, error) {
	customer, err := s.resolveCustomer(ctx, in)
	if err != nil {
		return nil, err
	}

	return s.resolveLoanRequest(ctx, in, customer)
}

// resolveCustomer looks up the submitted customer id, creating and
// persisting a new customer when absent. An existing customer with a
// different full name is a conflict; the stored row is left untouched.
func (s *LoanService) resolveCustomer(ctx context.Context, in SubmitLoanRequestInput) (*loan.Customer, error) {
	existing, err := s.customers.FindByID(ctx, in.CustomerID)
	if err == nil {
		if !existing.Matches(in.CustomerFullName) {
			s.logger.Info("Customer id already in use with a different full name",
				zap.Int64("customer_id", in.CustomerID),
				zap.Int64("loan_request_id", in.ID),
			)
			return nil, loan.ErrCustomerAlreadyExists
		}
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("looking up customer %d: %w", in.CustomerID, err)
	}

	customer, err := loan.NewCustomer(in.CustomerID, in.CustomerFullName)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Creating new customer", zap.Int64("customer_id", customer.ID))
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("saving customer %d: %w", customer.ID, err)
	}

	return customer, nil
}

// resolveLoanRequest looks up the submitted loan request id. An
// existing row with matching content is an idempotent replay and the
// cache is not touched; differing content is a conflict. When absent,
// the request is persisted and its amount applied to the sum cache.
func (s *LoanService) resolveLoanRequest(ctx context.Context, in SubmitLoanRequestInput, customer *loan.Customer) (*loan.LoanRequest, error) {
	existing, err := s.loans.FindByID(ctx, in.ID)
	if err == nil {
		if !existing.Matches(in.Amount, in.CustomerID) {
			s.logger.Info("Loan request id already in use with different content",
				zap.Int64("loan_request_id", in.ID),
				zap.Int64("customer_id", in.CustomerID),
			)
			return nil, loan.ErrLoanRequestAlreadyExists
		}

		s.logger.Debug("Loan request already processed, replay is a no-op",
			zap.Int64("loan_request_id", in.ID),
		)
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("looking up loan request %d: %w", in.ID, err)
	}

	request, err := loan.NewLoanRequest(in.ID, in.Amount, customer.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Creating new loan request",
		zap.Int64("loan_request_id", request.ID),
		zap.Int64("customer_id", customer.ID),
	)

	// The durable write runs inside the cache's per-customer section,
	// so no concurrent submission for this customer can cold-fetch the
	// row before its amount is applied. The amount is applied only
	// after the write succeeds; if the process dies in between, the
	// cold-fetch path recomputes the sum.
	if _, err := s.sums.InsertOrAdd(ctx, customer.ID, request.Amount, func(ctx context.Context) error {
		return s.loans.Save(ctx, request)
	}); err != nil {
		return nil, fmt.Errorf("saving loan request %d: %w", request.ID, err)
	}

	return request, nil
}

// GetLoanSumByCustomerID returns the total outstanding loan amount for
// a customer. Returns shared.ErrNotFound for a customer with no known
// or discoverable loan requests.
func (s *LoanService) GetLoanSumByCustomerID(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	sum, found, err := s.sums.Get(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("computing loan sum for customer %d: %w", customerID, err)
	}
	if !found {
		return decimal.Zero, shared.ErrNotFound
	}

	return sum, nil
}
