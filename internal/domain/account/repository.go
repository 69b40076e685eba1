package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Ledger owns account balances and their transaction history.
type Ledger interface {
	Create(ctx context.Context, a *Account) error
	GetByCustomerID(ctx context.Context, customerID string) (*Account, error)
	// Credit locks the customer's account, adds amount and appends a SUCCESS transaction.
	// Returns ErrNotFound when the customer has no account.
	Credit(ctx context.Context, customerID string, amount decimal.Decimal, description string) (*Transaction, error)
	ListTransactions(ctx context.Context, customerID string) ([]Transaction, error)
}
