package refinance

import (
	"time"

	"github.com/shopspring/decimal"
)

const SuccessMessage = "Refinance completed successfully"

type ExecuteInput struct {
	CustomerID      string          `json:"customer_id"`
	SourceLoanIDs   []string        `json:"source_loan_ids"`
	OfferedAmount   decimal.Decimal `json:"offered_amount"`
	SelectedQuotas  int             `json:"selected_quotas"`
	AppliedRate     decimal.Decimal `json:"applied_rate"`
	ExpectedCashOut decimal.Decimal `json:"expected_cash_out"` // advisory only
}

type ResultDTO struct {
	Message           string          `json:"message"`
	CustomerID        string          `json:"customer_id"`
	NewLoanID         string          `json:"new_loan_id"`
	NewLoanNumber     string          `json:"new_loan_number"`
	TotalDebtCanceled decimal.Decimal `json:"total_debt_canceled"`
	CashOut           decimal.Decimal `json:"cash_out"`
	Timestamp         time.Time       `json:"timestamp"`
}

type OperationDTO struct {
	OperationID       string          `json:"operation_id"`
	CustomerID        string          `json:"customer_id"`
	SourceLoanIDs     []string        `json:"source_loan_ids"`
	OfferedAmount     decimal.Decimal `json:"offered_amount"`
	SelectedQuotas    int             `json:"selected_quotas"`
	AppliedRate       decimal.Decimal `json:"applied_rate"`
	ExpectedCashOut   decimal.Decimal `json:"expected_cash_out"`
	ResolvedAmount    decimal.Decimal `json:"resolved_amount"`
	TotalDebtCanceled decimal.Decimal `json:"total_debt_canceled"`
	CashOut           decimal.Decimal `json:"cash_out"`
	NewLoanID         string          `json:"new_loan_id"`
	NewLoanNumber     string          `json:"new_loan_number"`
	CreatedAt         time.Time       `json:"created_at"`
}

type ResetResult struct {
	CustomerID            string `json:"customer_id"`
	DeletedRefinanceLoans int    `json:"deleted_refinance_loans"`
	RestoredLoans         int    `json:"restored_loans"`
	CreatedOffers         int    `json:"created_offers"`
}

// RestoreLoan is the state a CLOSED_BY_REFINANCE loan returns to on reset.
type RestoreLoan struct {
	LoanNumber      string
	RemainingAmount decimal.Decimal
	PaidQuotas      int
}

// OfferTemplate seeds a standing offer on reset when the customer has none.
type OfferTemplate struct {
	MaxAmount   decimal.Decimal
	MaxQuotas   int
	MonthlyRate decimal.Decimal
	MinDTI      decimal.Decimal
}
