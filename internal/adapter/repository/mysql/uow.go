package mysql

import (
	"context"

	"loan-refinance/internal/domain/offer"
	"loan-refinance/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct {
	db       *gorm.DB
	currency string
}

func NewGormUoW(db *gorm.DB, currency string) *GormUoW {
	return &GormUoW{db: db, currency: currency}
}

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:      &LoanRepository{db: tx},
		Offers:     &OfferRepository{db: tx},
		Accounts:   NewAccountRepository(tx, u.currency),
		Operations: &OperationRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinCustomerTx(ctx context.Context, customerID string, fn func(r uow.Repos, offers []offer.Offer) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the standing offers up-front: a concurrent consumer blocks here
		offers, err := r.Offers.FindByCustomerForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		return fn(r, offers)
	})
}
