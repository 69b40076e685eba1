package uowmock

import (
	"context"
	"errors"

	"loan-refinance/internal/domain/offer"
	"loan-refinance/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinCustomerTxFn func(ctx context.Context, customerID string, fn func(r uow.Repos, offers []offer.Offer) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinCustomerTx(fn func(context.Context, string, func(uow.Repos, []offer.Offer) error) error) *UoW {
	m.WithinCustomerTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough builds a UoW that runs every callback directly against repos,
// loading the customer's offers through repos.Offers.FindByCustomerForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinCustomerTxFn: func(ctx context.Context, customerID string, fn func(uow.Repos, []offer.Offer) error) error {
			offers, err := repos.Offers.FindByCustomerForUpdate(ctx, customerID)
			if err != nil {
				return err
			}
			return fn(repos, offers)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinCustomerTx(ctx context.Context, customerID string, fn func(r uow.Repos, offers []offer.Offer) error) error {
	if m.WithinCustomerTxFn != nil {
		return m.WithinCustomerTxFn(ctx, customerID, fn)
	}
	return errUnimplemented
}
