package refinance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Business-rule failures. They abort the operation with no side effects and are never retried.
var (
	ErrInvalidRequest           = errors.New("invalid refinance request")
	ErrEmptyLoanList            = errors.New("no loans specified for refinance")
	ErrLoanNotFound             = errors.New("no refinanceable loans found for the given ids")
	ErrLoanNotBelongsToCustomer = errors.New("loan does not belong to customer")
	ErrInsufficientAmount       = errors.New("offered amount does not cover the current debt")
	ErrNoMatchingOffer          = errors.New("no customer offer matches the requested quotas and rate")
	ErrOfferedAmountOutOfRange  = errors.New("offered amount is outside the offer range")
)

var businessErrors = []error{
	ErrInvalidRequest,
	ErrEmptyLoanList,
	ErrLoanNotFound,
	ErrLoanNotBelongsToCustomer,
	ErrInsufficientAmount,
	ErrNoMatchingOffer,
	ErrOfferedAmountOutOfRange,
}

// IsBusinessError reports whether err is one of the refinance rule violations.
func IsBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Code returns a stable machine-readable code for err, or "" for non-business errors.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, ErrEmptyLoanList):
		return "EMPTY_LOAN_LIST"
	case errors.Is(err, ErrLoanNotFound):
		return "LOAN_NOT_FOUND"
	case errors.Is(err, ErrLoanNotBelongsToCustomer):
		return "LOAN_NOT_BELONGS_TO_CUSTOMER"
	case errors.Is(err, ErrInsufficientAmount):
		return "INSUFFICIENT_AMOUNT"
	case errors.Is(err, ErrNoMatchingOffer):
		return "NO_MATCHING_OFFER"
	case errors.Is(err, ErrOfferedAmountOutOfRange):
		return "OFFERED_AMOUNT_OUT_OF_RANGE"
	}
	return ""
}

type LoanNotFoundError struct {
	RequestedIDs []string
	// MissingIDs is only populated in strict mode.
	MissingIDs []string
}

func (e *LoanNotFoundError) Error() string {
	if len(e.MissingIDs) > 0 {
		return fmt.Sprintf("%s: missing [%s]", ErrLoanNotFound, strings.Join(e.MissingIDs, ", "))
	}
	return fmt.Sprintf("%s: [%s]", ErrLoanNotFound, strings.Join(e.RequestedIDs, ", "))
}

func (e *LoanNotFoundError) Unwrap() error { return ErrLoanNotFound }

type LoanOwnershipError struct {
	LoanID     string
	CustomerID string
}

func (e *LoanOwnershipError) Error() string {
	return fmt.Sprintf("loan %s does not belong to customer %s", e.LoanID, e.CustomerID)
}

func (e *LoanOwnershipError) Unwrap() error { return ErrLoanNotBelongsToCustomer }

type InsufficientAmountError struct {
	Offered   decimal.Decimal
	TotalDebt decimal.Decimal
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("offered amount (%s) does not cover the current debt (%s)",
		e.Offered.StringFixed(2), e.TotalDebt.StringFixed(2))
}

func (e *InsufficientAmountError) Unwrap() error { return ErrInsufficientAmount }

type OutOfRangeError struct {
	Offered   decimal.Decimal
	TotalDebt decimal.Decimal
	MaxAmount decimal.Decimal
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("requested amount (%s) must be at least the debt to cancel (%s) and at most the offer maximum (%s)",
		e.Offered.StringFixed(2), e.TotalDebt.StringFixed(2), e.MaxAmount.StringFixed(2))
}

func (e *OutOfRangeError) Unwrap() error { return ErrOfferedAmountOutOfRange }
