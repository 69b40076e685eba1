package loan

import (
	"time"

	domain "loan-refinance/internal/domain/loan"
	"loan-refinance/internal/domain/offer"

	"github.com/shopspring/decimal"
)

type OriginateInput struct {
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Quotas      int             `json:"quotas"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
}

type LoanDTO struct {
	LoanID               string          `json:"loan_id"`
	CustomerID           string          `json:"customer_id"`
	LoanNumber           string          `json:"loan_number"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	RemainingAmount      decimal.Decimal `json:"remaining_amount"`
	QuotaAmount          decimal.Decimal `json:"quota_amount"`
	PaidQuotas           int             `json:"paid_quotas"`
	TotalQuotas          int             `json:"total_quotas"`
	Status               string          `json:"status"`
	StartDate            time.Time       `json:"start_date"`
	EligibleForRefinance bool            `json:"eligible_for_refinance"`
}

type OfferDTO struct {
	OfferID     string          `json:"offer_id"`
	CustomerID  string          `json:"customer_id"`
	MaxAmount   decimal.Decimal `json:"max_amount"`
	MaxQuotas   int             `json:"max_quotas"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
	MinDTI      decimal.Decimal `json:"min_dti"`
}

func toLoanDTO(l domain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:               l.LoanID,
		CustomerID:           l.CustomerID,
		LoanNumber:           l.LoanNumber,
		TotalAmount:          l.TotalAmount,
		RemainingAmount:      l.RemainingAmount,
		QuotaAmount:          l.QuotaAmount,
		PaidQuotas:           l.PaidQuotas,
		TotalQuotas:          l.TotalQuotas,
		Status:               string(l.Status),
		StartDate:            l.StartDate,
		EligibleForRefinance: l.EligibleForRefinance,
	}
}

func toOfferDTO(o offer.Offer) OfferDTO {
	return OfferDTO{
		OfferID:     o.OfferID,
		CustomerID:  o.CustomerID,
		MaxAmount:   o.MaxAmount,
		MaxQuotas:   o.MaxQuotas,
		MonthlyRate: o.MonthlyRate,
		MinDTI:      o.MinDTI,
	}
}
