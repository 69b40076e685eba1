package offer

import "context"

type Repository interface {
	CreateAll(ctx context.Context, offers []Offer) error
	// FindByCustomer returns offers in insertion order.
	FindByCustomer(ctx context.Context, customerID string) ([]Offer, error)
	// FindByCustomerForUpdate is FindByCustomer with the rows locked until the tx ends.
	FindByCustomerForUpdate(ctx context.Context, customerID string) ([]Offer, error)
	// DeleteAll hard-deletes the offers and reports how many rows were actually removed.
	DeleteAll(ctx context.Context, offers []Offer) (int64, error)
}
