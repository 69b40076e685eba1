package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	// SaveAll persists every loan in one statement batch; callers run it inside a tx.
	SaveAll(ctx context.Context, loans []Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// FindByIDs resolves public loan ids. Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, loanIDs []string) ([]Loan, error)
	FindByCustomer(ctx context.Context, customerID string) ([]Loan, error)
	// DeleteAll soft-deletes the given loans.
	DeleteAll(ctx context.Context, loans []Loan) error
}
