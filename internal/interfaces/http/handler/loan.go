package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	loanapp "github.com/loanserve/backend/internal/application/loan"
)

// Amount bounds accepted for a loan request
var (
	minLoanAmount = decimal.RequireFromString("500.00")
	maxLoanAmount = decimal.RequireFromString("12000.50")
)

// LoanHandler handles loan request API endpoints
type LoanHandler struct {
	BaseHandler
	loanService *loanapp.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *loanapp.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// SubmitLoanRequestRequest represents a request to submit a loan request
type SubmitLoanRequestRequest struct {
	ID               *int64           `json:"id" binding:"required,gte=0"`
	Amount           *decimal.Decimal `json:"amount" binding:"required"`
	CustomerID       *int64           `json:"customerId" binding:"required,gte=0"`
	CustomerFullName string           `json:"customerFullName" binding:"required,notblank"`
}

// LoanRequestResponse represents a loan request in API responses.
// Amounts render as strings with the stored two-digit scale, so
// "1000.00" never collapses to "1000" on the wire.
type LoanRequestResponse struct {
	ID         int64  `json:"id"`
	Amount     string `json:"amount"`
	CustomerID int64  `json:"customerId"`
}

// LoanSumResponse represents an aggregated loan sum in API responses
type LoanSumResponse struct {
	CustomerID int64  `json:"customerId"`
	Sum        string `json:"sum"`
}

// validateAmount enforces the accepted range and digit limits.
// The fraction check looks at the textual scale of the submitted
// number, so "100.999" is rejected even though it rounds into range.
func validateAmount(amount decimal.Decimal) string {
	if amount.Exponent() < -2 {
		return "The amount must have at most 2 fraction digits."
	}
	intDigits := len(strings.TrimPrefix(amount.Truncate(0).Abs().String(), "-"))
	if intDigits > 5 {
		return "The amount must have at most 5 integer digits."
	}
	if amount.Cmp(minLoanAmount) < 0 || amount.Cmp(maxLoanAmount) > 0 {
		return "The amount must be between 500.00 and 12000.50."
	}
	return ""
}

// Create handles POST /loan-requests
func (h *LoanHandler) Create(c *gin.Context) {
	var req SubmitLoanRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if msg := validateAmount(*req.Amount); msg != "" {
		h.BadRequest(c, msg)
		return
	}

	loanRequest, err := h.loanService.SubmitLoanRequest(c.Request.Context(), loanapp.SubmitLoanRequestInput{
		ID:               *req.ID,
		Amount:           *req.Amount,
		CustomerID:       *req.CustomerID,
		CustomerFullName: req.CustomerFullName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, LoanRequestResponse{
		ID:         loanRequest.ID,
		Amount:     loanRequest.Amount.StringFixed(2),
		CustomerID: loanRequest.CustomerID,
	})
}

// GetSum handles GET /loan-requests/sum/:customerId
func (h *LoanHandler) GetSum(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil || customerID < 0 {
		h.BadRequest(c, "Invalid customer id")
		return
	}

	sum, err := h.loanService.GetLoanSumByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoanSumResponse{
		CustomerID: customerID,
		Sum:        sum.StringFixed(2),
	})
}

// RegisterRoutes registers loan request routes
func (h *LoanHandler) RegisterRoutes(r *gin.RouterGroup) {
	loans := r.Group("/loan-requests")
	{
		loans.POST("", h.Create)
		loans.GET("/sum/:customerId", h.GetSum)
	}
}
