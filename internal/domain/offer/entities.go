package offer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNoOffers = errors.New("customer has no standing loan offers")

// Offer is a pre-approved envelope computed upstream. It is never updated, only consumed.
type Offer struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	OfferID     string          `gorm:"column:offer_id;type:char(36);uniqueIndex:ux_loan_offers_offer_id" json:"offer_id"`
	CustomerID  string          `gorm:"column:customer_id;size:255;index:idx_loan_offers_customer" json:"customer_id"`
	MaxAmount   decimal.Decimal `gorm:"column:max_amount;type:decimal(18,2)" json:"max_amount"`
	MaxQuotas   int             `gorm:"column:max_quotas" json:"max_quotas"`
	MonthlyRate decimal.Decimal `gorm:"column:monthly_rate;type:decimal(9,4)" json:"monthly_rate"`
	MinDTI      decimal.Decimal `gorm:"column:min_dti;type:decimal(6,4)" json:"min_dti"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Offer) TableName() string { return "loan_offers" }
