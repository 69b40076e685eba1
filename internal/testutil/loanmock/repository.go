package loanmock

import (
	"context"

	domain "loan-refinance/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writers are no-ops; unset readers return empty results or ErrNotFound.
type Repo struct {
	CreateFn         func(ctx context.Context, l *domain.Loan) error
	SaveFn           func(ctx context.Context, l *domain.Loan) error
	SaveAllFn        func(ctx context.Context, loans []domain.Loan) error
	GetByLoanIDFn    func(ctx context.Context, loanID string) (*domain.Loan, error)
	FindByIDsFn      func(ctx context.Context, loanIDs []string) ([]domain.Loan, error)
	FindByCustomerFn func(ctx context.Context, customerID string) ([]domain.Loan, error)
	DeleteAllFn      func(ctx context.Context, loans []domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) SaveAll(ctx context.Context, loans []domain.Loan) error {
	if m.SaveAllFn != nil {
		return m.SaveAllFn(ctx, loans)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindByIDs(ctx context.Context, loanIDs []string) ([]domain.Loan, error) {
	if m.FindByIDsFn != nil {
		return m.FindByIDsFn(ctx, loanIDs)
	}
	return []domain.Loan{}, nil
}

func (m *Repo) FindByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	if m.FindByCustomerFn != nil {
		return m.FindByCustomerFn(ctx, customerID)
	}
	return []domain.Loan{}, nil
}

func (m *Repo) DeleteAll(ctx context.Context, loans []domain.Loan) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx, loans)
	}
	return nil
}
