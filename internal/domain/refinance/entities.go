package refinance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is the audit record written in the same transaction as a successful refinance.
type Operation struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	OperationID       string          `gorm:"column:operation_id;type:char(36);uniqueIndex:ux_refinance_operations_operation_id" json:"operation_id"`
	CustomerID        string          `gorm:"column:customer_id;size:255;index:idx_refinance_operations_customer" json:"customer_id"`
	SourceLoanIDs     []string        `gorm:"column:source_loan_ids;type:text;serializer:json" json:"source_loan_ids"`
	OfferedAmount     decimal.Decimal `gorm:"column:offered_amount;type:decimal(18,2)" json:"offered_amount"`
	SelectedQuotas    int             `gorm:"column:selected_quotas" json:"selected_quotas"`
	AppliedRate       decimal.Decimal `gorm:"column:applied_rate;type:decimal(9,4)" json:"applied_rate"`
	ExpectedCashOut   decimal.Decimal `gorm:"column:expected_cash_out;type:decimal(18,2)" json:"expected_cash_out"`
	ResolvedAmount    decimal.Decimal `gorm:"column:resolved_amount;type:decimal(18,2)" json:"resolved_amount"`
	TotalDebtCanceled decimal.Decimal `gorm:"column:total_debt_canceled;type:decimal(18,2)" json:"total_debt_canceled"`
	CashOut           decimal.Decimal `gorm:"column:cash_out;type:decimal(18,2)" json:"cash_out"`
	NewLoanID         string          `gorm:"column:new_loan_id;type:char(36)" json:"new_loan_id"`
	NewLoanNumber     string          `gorm:"column:new_loan_number;size:64" json:"new_loan_number"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Operation) TableName() string { return "refinance_operations" }
