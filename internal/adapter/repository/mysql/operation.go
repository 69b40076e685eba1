package mysql

import (
	"context"

	refinanceDomain "loan-refinance/internal/domain/refinance"

	"gorm.io/gorm"
)

type OperationRepository struct{ db *gorm.DB }

func NewOperationRepository(db *gorm.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) Create(ctx context.Context, op *refinanceDomain.Operation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *OperationRepository) FindByCustomer(ctx context.Context, customerID string) ([]refinanceDomain.Operation, error) {
	out := []refinanceDomain.Operation{}
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
