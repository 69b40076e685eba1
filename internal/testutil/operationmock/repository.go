package operationmock

import (
	"context"

	domain "loan-refinance/internal/domain/refinance"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn         func(ctx context.Context, op *domain.Operation) error
	FindByCustomerFn func(ctx context.Context, customerID string) ([]domain.Operation, error)
}

func (m *Repo) Create(ctx context.Context, op *domain.Operation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, op)
	}
	return nil
}

func (m *Repo) FindByCustomer(ctx context.Context, customerID string) ([]domain.Operation, error) {
	if m.FindByCustomerFn != nil {
		return m.FindByCustomerFn(ctx, customerID)
	}
	return []domain.Operation{}, nil
}
