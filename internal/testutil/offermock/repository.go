package offermock

import (
	"context"

	domain "loan-refinance/internal/domain/offer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset DeleteAll reports every offer as removed.
type Repo struct {
	CreateAllFn               func(ctx context.Context, offers []domain.Offer) error
	FindByCustomerFn          func(ctx context.Context, customerID string) ([]domain.Offer, error)
	FindByCustomerForUpdateFn func(ctx context.Context, customerID string) ([]domain.Offer, error)
	DeleteAllFn               func(ctx context.Context, offers []domain.Offer) (int64, error)
}

func (m *Repo) CreateAll(ctx context.Context, offers []domain.Offer) error {
	if m.CreateAllFn != nil {
		return m.CreateAllFn(ctx, offers)
	}
	return nil
}

func (m *Repo) FindByCustomer(ctx context.Context, customerID string) ([]domain.Offer, error) {
	if m.FindByCustomerFn != nil {
		return m.FindByCustomerFn(ctx, customerID)
	}
	return []domain.Offer{}, nil
}

func (m *Repo) FindByCustomerForUpdate(ctx context.Context, customerID string) ([]domain.Offer, error) {
	if m.FindByCustomerForUpdateFn != nil {
		return m.FindByCustomerForUpdateFn(ctx, customerID)
	}
	return m.FindByCustomer(ctx, customerID)
}

func (m *Repo) DeleteAll(ctx context.Context, offers []domain.Offer) (int64, error) {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx, offers)
	}
	return int64(len(offers)), nil
}
