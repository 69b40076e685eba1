package refinance

import (
	"time"

	"loan-refinance/internal/domain/loan"
	"loan-refinance/pkg/id"

	"github.com/shopspring/decimal"
)

const (
	DefaultRefinancePrefix = "REF-"
	DefaultStandardPrefix  = "LOAN-"
	DefaultQuotaScale      = 2
)

// Builder constructs freshly originated loans.
type Builder struct {
	refinancePrefix string
	standardPrefix  string
	scale           int32
	now             func() time.Time
}

func NewBuilder(refinancePrefix, standardPrefix string, scale int32) *Builder {
	if refinancePrefix == "" {
		refinancePrefix = DefaultRefinancePrefix
	}
	if standardPrefix == "" {
		standardPrefix = DefaultStandardPrefix
	}
	return &Builder{
		refinancePrefix: refinancePrefix,
		standardPrefix:  standardPrefix,
		scale:           scale,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source; used by tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

func (b *Builder) RefinancePrefix() string { return b.refinancePrefix }

func (b *Builder) BuildRefinanceLoan(in ExecuteInput, resolvedAmount decimal.Decimal) *loan.Loan {
	return b.build(in.CustomerID, b.refinancePrefix, resolvedAmount, in.SelectedQuotas)
}

func (b *Builder) BuildNewLoan(customerID string, amount decimal.Decimal, quotas int) *loan.Loan {
	return b.build(customerID, b.standardPrefix, amount, quotas)
}

func (b *Builder) build(customerID, prefix string, amount decimal.Decimal, quotas int) *loan.Loan {
	now := b.now()
	return &loan.Loan{
		LoanID:               id.NewUUID(),
		CustomerID:           customerID,
		LoanNumber:           id.NewLoanNumber(prefix, now),
		TotalAmount:          amount,
		RemainingAmount:      amount,
		QuotaAmount:          QuotaAmount(amount, quotas, b.scale),
		PaidQuotas:           0,
		TotalQuotas:          quotas,
		Status:               loan.StatusActive,
		StartDate:            now,
		EligibleForRefinance: false,
	}
}

// QuotaAmount splits amount into quotas installments rounded half-up to scale places.
func QuotaAmount(amount decimal.Decimal, quotas int, scale int32) decimal.Decimal {
	if quotas <= 0 {
		return decimal.Zero
	}
	return amount.DivRound(decimal.NewFromInt(int64(quotas)), scale)
}
