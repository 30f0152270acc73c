package models

import (
	"github.com/loanserve/backend/internal/domain/loan"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Ids are caller-supplied, never generated by the database.
type CustomerModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false"`
	FullName string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain entity
func (m *CustomerModel) ToDomain() *loan.Customer {
	return &loan.Customer{
		ID:       m.ID,
		FullName: m.FullName,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer entity
func CustomerModelFromDomain(c *loan.Customer) *CustomerModel {
	return &CustomerModel{
		ID:       c.ID,
		FullName: c.FullName,
	}
}

// LoanRequestModel is the persistence model for the LoanRequest domain
// entity. Every loan request references exactly one customer.
type LoanRequestModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement:false"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CustomerID int64           `gorm:"not null;index"`
	Customer   *CustomerModel  `gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for GORM
func (LoanRequestModel) TableName() string {
	return "loan_requests"
}

// ToDomain converts the persistence model to a domain entity
func (m *LoanRequestModel) ToDomain() *loan.LoanRequest {
	return &loan.LoanRequest{
		ID:         m.ID,
		Amount:     m.Amount,
		CustomerID: m.CustomerID,
	}
}

// LoanRequestModelFromDomain creates a persistence model from a domain LoanRequest entity
func LoanRequestModelFromDomain(r *loan.LoanRequest) *LoanRequestModel {
	return &LoanRequestModel{
		ID:         r.ID,
		Amount:     r.Amount,
		CustomerID: r.CustomerID,
	}
}
