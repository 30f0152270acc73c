package loan

import (
	"github.com/loanserve/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LoanRequest represents a single loan application owned by exactly one
// customer. Amount and owning customer never change after creation;
// resubmissions with the same id are either exact replays or conflicts.
type LoanRequest struct {
	ID         int64
	Amount     decimal.Decimal
	CustomerID int64
}

// NewLoanRequest creates a new loan request for the given customer
func NewLoanRequest(id int64, amount decimal.Decimal, customerID int64) (*LoanRequest, error) {
	if id < 0 {
		return nil, shared.NewDomainError("INVALID_LOAN_REQUEST_ID", "The loan request id must be at least 0.")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "The loan request amount must be positive.")
	}
	if customerID < 0 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "The customer id must be at least 0.")
	}

	return &LoanRequest{
		ID:         id,
		Amount:     amount,
		CustomerID: customerID,
	}, nil
}

// Matches reports whether a resubmission carries the same amount and
// owning customer as the stored request. Amounts compare by numeric
// value, so trailing zeros never cause a false mismatch.
func (r *LoanRequest) Matches(amount decimal.Decimal, customerID int64) bool {
	return r.Amount.Cmp(amount) == 0 && r.CustomerID == customerID
}

// Conflict errors raised when a submitted identity already exists with
// differing content. Messages are part of the public API contract.
var (
	ErrCustomerAlreadyExists    = shared.NewConflictError("The customer id is already in use.")
	ErrLoanRequestAlreadyExists = shared.NewConflictError("The loan request id is already in use.")
)
