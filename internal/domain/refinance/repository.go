package refinance

import "context"

type Repository interface {
	Create(ctx context.Context, op *Operation) error
	FindByCustomer(ctx context.Context, customerID string) ([]Operation, error)
}
