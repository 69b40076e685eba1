package accountmock

import (
	"context"

	domain "loan-refinance/internal/domain/account"

	"github.com/shopspring/decimal"
)

var _ domain.Ledger = (*Ledger)(nil)

// Ledger is a function-backed mock that satisfies domain.Ledger.
// Unset Credit succeeds and echoes its arguments back as a SUCCESS transaction.
type Ledger struct {
	CreateFn           func(ctx context.Context, a *domain.Account) error
	GetByCustomerIDFn  func(ctx context.Context, customerID string) (*domain.Account, error)
	CreditFn           func(ctx context.Context, customerID string, amount decimal.Decimal, description string) (*domain.Transaction, error)
	ListTransactionsFn func(ctx context.Context, customerID string) ([]domain.Transaction, error)
}

func (m *Ledger) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Ledger) GetByCustomerID(ctx context.Context, customerID string) (*domain.Account, error) {
	if m.GetByCustomerIDFn != nil {
		return m.GetByCustomerIDFn(ctx, customerID)
	}
	return nil, domain.ErrNotFound
}

func (m *Ledger) Credit(ctx context.Context, customerID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if m.CreditFn != nil {
		return m.CreditFn(ctx, customerID, amount, description)
	}
	return &domain.Transaction{
		CustomerID:  customerID,
		Amount:      amount,
		Status:      domain.TxSuccess,
		Description: description,
	}, nil
}

func (m *Ledger) ListTransactions(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, customerID)
	}
	return []domain.Transaction{}, nil
}
