package uow

import (
	"context"

	"loan-refinance/internal/domain/account"
	"loan-refinance/internal/domain/loan"
	"loan-refinance/internal/domain/offer"
	"loan-refinance/internal/domain/refinance"
)

// Repos are bound to one transaction; they must not escape the callback.
type Repos struct {
	Loans      loan.Repository
	Offers     offer.Repository
	Accounts   account.Ledger
	Operations refinance.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinCustomerTx locks the customer's standing offers up-front and passes them in.
	WithinCustomerTx(ctx context.Context, customerID string, fn func(r Repos, offers []offer.Offer) error) error
}
