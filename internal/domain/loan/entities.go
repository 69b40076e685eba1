package loan

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
)

type Status string

const (
	StatusActive            Status = "ACTIVE"
	StatusClosedByRefinance Status = "CLOSED_BY_REFINANCE"
	StatusPaidOff           Status = "PAID_OFF"
	StatusDefaulted         Status = "DEFAULTED"
	StatusCancelled         Status = "CANCELLED"
)

// transitions lists every allowed move; terminal states have no entry.
var transitions = map[Status][]Status{
	StatusActive: {StatusClosedByRefinance, StatusPaidOff, StatusDefaulted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosedByRefinance, StatusPaidOff, StatusDefaulted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EligibleForRefinance reports whether loans in this status may be consolidated.
func (s Status) EligibleForRefinance() bool { return s == StatusActive }

type Loan struct {
	ID                   uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID               string          `gorm:"column:loan_id;type:char(36);uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	CustomerID           string          `gorm:"column:customer_id;size:255;index:idx_loans_customer" json:"customer_id"`
	LoanNumber           string          `gorm:"column:loan_number;size:64;index" json:"loan_number"`
	TotalAmount          decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2)" json:"total_amount"`
	RemainingAmount      decimal.Decimal `gorm:"column:remaining_amount;type:decimal(18,2)" json:"remaining_amount"`
	QuotaAmount          decimal.Decimal `gorm:"column:quota_amount;type:decimal(18,2)" json:"quota_amount"`
	PaidQuotas           int             `gorm:"column:paid_quotas" json:"paid_quotas"`
	TotalQuotas          int             `gorm:"column:total_quotas" json:"total_quotas"`
	Status               Status          `gorm:"column:status;type:enum('ACTIVE','CLOSED_BY_REFINANCE','PAID_OFF','DEFAULTED','CANCELLED');default:'ACTIVE'" json:"status"`
	StartDate            time.Time       `gorm:"column:start_date" json:"start_date"`
	EligibleForRefinance bool            `gorm:"column:eligible_for_refinance" json:"eligible_for_refinance"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// TransitionTo moves the loan to next, enforcing the status machine.
func (l *Loan) TransitionTo(next Status) error {
	if !l.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s (loan %s)", ErrInvalidTransition, l.Status, next, l.LoanID)
	}
	l.Status = next
	if !next.EligibleForRefinance() {
		l.EligibleForRefinance = false
	}
	return nil
}

// CloseByRefinance settles the loan as part of a consolidation: nothing remains, every quota counts as paid.
func (l *Loan) CloseByRefinance() error {
	if err := l.TransitionTo(StatusClosedByRefinance); err != nil {
		return err
	}
	l.RemainingAmount = decimal.Zero
	l.PaidQuotas = l.TotalQuotas
	return nil
}

// Restore puts a loan back into ACTIVE outside the status machine.
// Only the administrative reset flow may call it.
func (l *Loan) Restore(remaining decimal.Decimal, paidQuotas int) {
	l.Status = StatusActive
	l.RemainingAmount = remaining
	l.PaidQuotas = paidQuotas
	l.EligibleForRefinance = true
}

// TotalRemaining sums RemainingAmount across loans.
func TotalRemaining(loans []Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.RemainingAmount)
	}
	return total
}
