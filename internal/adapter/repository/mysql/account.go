package mysql

import (
	"context"
	"errors"
	"time"

	accountDomain "loan-refinance/internal/domain/account"
	"loan-refinance/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultCurrency = "ARS"

// AccountRepository implements accountDomain.Ledger.
type AccountRepository struct {
	db       *gorm.DB
	currency string
}

func NewAccountRepository(db *gorm.DB, currency string) *AccountRepository {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &AccountRepository{db: db, currency: currency}
}

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) GetByCustomerID(ctx context.Context, customerID string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	return &out, res.Error
}

// Credit must run inside a transaction for the balance update and the ledger row to land together.
func (r *AccountRepository) Credit(ctx context.Context, customerID string, amount decimal.Decimal, description string) (*accountDomain.Transaction, error) {
	db := r.db.WithContext(ctx)

	var acc accountDomain.Account
	res := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&acc)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}

	if err := acc.Credit(amount); err != nil {
		return nil, err
	}
	if err := db.Model(&acc).Update("balance", acc.Balance).Error; err != nil {
		return nil, err
	}

	tx := &accountDomain.Transaction{
		TransactionID:   id.NewUUID(),
		CustomerID:      customerID,
		Amount:          amount,
		Currency:        r.currency,
		Status:          accountDomain.TxSuccess,
		Reference:       id.NewReference("REF-"),
		TransactionDate: time.Now().UTC(),
		Description:     description,
	}
	if err := db.Create(tx).Error; err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *AccountRepository) ListTransactions(ctx context.Context, customerID string) ([]accountDomain.Transaction, error) {
	out := []accountDomain.Transaction{}
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("transaction_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}
