package persistence

import (
	"context"
	"errors"

	"github.com/loanserve/backend/internal/domain/loan"
	"github.com/loanserve/backend/internal/domain/shared"
	"github.com/loanserve/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLoanRequestRepository implements loan.LoanRequestRepository using GORM
type GormLoanRequestRepository struct {
	db *gorm.DB
}

// NewGormLoanRequestRepository creates a new GormLoanRequestRepository
func NewGormLoanRequestRepository(db *gorm.DB) *GormLoanRequestRepository {
	return &GormLoanRequestRepository{db: db}
}

// FindByID finds a loan request by its ID
func (r *GormLoanRequestRepository) FindByID(ctx context.Context, id int64) (*loan.LoanRequest, error) {
	var model models.LoanRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a new loan request. Amount and owning customer are
// immutable, so rows are never updated.
func (r *GormLoanRequestRepository) Save(ctx context.Context, request *loan.LoanRequest) error {
	model := models.LoanRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAllByCustomerID finds all loan requests owned by a customer
func (r *GormLoanRequestRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]loan.LoanRequest, error) {
	var requestModels []models.LoanRequestModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]loan.LoanRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = *model.ToDomain()
	}
	return requests, nil
}

// Ensure GormLoanRequestRepository implements loan.LoanRequestRepository
var _ loan.LoanRequestRepository = (*GormLoanRequestRepository)(nil)
