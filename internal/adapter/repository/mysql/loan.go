package mysql

import (
	"context"
	"errors"

	loanDomain "loan-refinance/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) SaveAll(ctx context.Context, loans []loanDomain.Loan) error {
	if len(loans) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	for i := range loans {
		if err := db.Save(&loans[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) FindByIDs(ctx context.Context, loanIDs []string) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	if len(loanIDs) == 0 {
		return out, nil
	}
	res := r.db.WithContext(ctx).
		Where("loan_id IN ?", loanIDs).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) FindByCustomer(ctx context.Context, customerID string) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) DeleteAll(ctx context.Context, loans []loanDomain.Loan) error {
	if len(loans) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&loanDomain.Loan{}).Error
}
