package loan

import (
	"strings"

	"github.com/loanserve/backend/internal/domain/shared"
)

// Customer represents the owner of one or more loan requests.
// A customer is created on first sighting of its id and is immutable
// afterwards; the first writer wins and later submissions must match.
type Customer struct {
	ID       int64
	FullName string
}

// NewCustomer creates a new customer with the caller-supplied identity
func NewCustomer(id int64, fullName string) (*Customer, error) {
	if id < 0 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "The customer id must be at least 0.")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "The customer full name must not be blank.")
	}

	return &Customer{
		ID:       id,
		FullName: fullName,
	}, nil
}

// Matches reports whether a resubmission carries the same full name as
// the stored customer. Comparison is exact, not normalized.
func (c *Customer) Matches(fullName string) bool {
	return c.FullName == fullName
}
