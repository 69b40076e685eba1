package account

import (
	"context"

	domain "loan-refinance/internal/domain/account"
)

type Usecase struct{ ledger domain.Ledger }

func NewUsecase(l domain.Ledger) *Usecase { return &Usecase{ledger: l} }

func (u *Usecase) Get(ctx context.Context, customerID string) (*AccountDTO, error) {
	a, err := u.ledger.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	dto := toAccountDTO(*a)
	return &dto, nil
}

// ListTransactions returns the customer's ledger, newest first.
func (u *Usecase) ListTransactions(ctx context.Context, customerID string) ([]TransactionDTO, error) {
	if _, err := u.ledger.GetByCustomerID(ctx, customerID); err != nil {
		return nil, err
	}
	txs, err := u.ledger.ListTransactions(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionDTO(t))
	}
	return out, nil
}
