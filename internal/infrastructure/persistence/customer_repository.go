package persistence

import (
	"context"
	"errors"

	"github.com/loanserve/backend/internal/domain/loan"
	"github.com/loanserve/backend/internal/domain/shared"
	"github.com/loanserve/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements loan.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64) (*loan.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a new customer. Rows are never updated: the first
// writer wins and later submissions must match or conflict.
func (r *GormCustomerRepository) Save(ctx context.Context, customer *loan.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.db.WithContext(ctx).Create(model).Error
}

// Ensure GormCustomerRepository implements loan.CustomerRepository
var _ loan.CustomerRepository = (*GormCustomerRepository)(nil)
