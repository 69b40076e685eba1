package mysql

import (
	"context"

	offerDomain "loan-refinance/internal/domain/offer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) CreateAll(ctx context.Context, offers []offerDomain.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&offers).Error
}

func (r *OfferRepository) FindByCustomer(ctx context.Context, customerID string) ([]offerDomain.Offer, error) {
	out := []offerDomain.Offer{}
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) FindByCustomerForUpdate(ctx context.Context, customerID string) ([]offerDomain.Offer, error) {
	out := []offerDomain.Offer{}
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) DeleteAll(ctx context.Context, offers []offerDomain.Offer) (int64, error) {
	if len(offers) == 0 {
		return 0, nil
	}
	ids := make([]uint64, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&offerDomain.Offer{})
	return res.RowsAffected, res.Error
}
