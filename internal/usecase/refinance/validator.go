package refinance

import (
	"fmt"
	"strings"

	"loan-refinance/internal/domain/loan"
	domain "loan-refinance/internal/domain/refinance"

	"go.uber.org/zap"
)

// ValidateRequest checks the request shape. It never touches a store.
func ValidateRequest(in ExecuteInput) error {
	if len(in.SourceLoanIDs) == 0 {
		return domain.ErrEmptyLoanList
	}
	switch {
	case strings.TrimSpace(in.CustomerID) == "":
		return fmt.Errorf("%w: customer_id is required", domain.ErrInvalidRequest)
	case !in.OfferedAmount.IsPositive():
		return fmt.Errorf("%w: offered_amount must be greater than zero", domain.ErrInvalidRequest)
	case in.SelectedQuotas <= 0:
		return fmt.Errorf("%w: selected_quotas must be greater than zero", domain.ErrInvalidRequest)
	case !in.AppliedRate.IsPositive():
		return fmt.Errorf("%w: applied_rate must be greater than zero", domain.ErrInvalidRequest)
	}
	for _, id := range in.SourceLoanIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: source_loan_ids must not contain blank ids", domain.ErrInvalidRequest)
		}
	}
	return nil
}

// Validate checks the resolved source loans against the request, in order, stopping at the first failure.
// A partial match (fewer loans than ids) only fails in strict mode; otherwise it is logged and accepted.
func Validate(in ExecuteInput, loans []loan.Loan, strict bool, log *zap.Logger) error {
	if len(in.SourceLoanIDs) == 0 {
		return domain.ErrEmptyLoanList
	}

	if len(loans) == 0 {
		return &domain.LoanNotFoundError{RequestedIDs: in.SourceLoanIDs}
	}
	if missing := missingIDs(in.SourceLoanIDs, loans); len(missing) > 0 {
		if strict {
			return &domain.LoanNotFoundError{RequestedIDs: in.SourceLoanIDs, MissingIDs: missing}
		}
		if log != nil {
			log.Warn("refinance: some requested loans were not found",
				zap.String("customer_id", in.CustomerID),
				zap.Int("requested", len(in.SourceLoanIDs)),
				zap.Int("found", len(loans)),
				zap.Strings("missing_ids", missing))
		}
	}

	for _, l := range loans {
		if l.CustomerID != in.CustomerID {
			return &domain.LoanOwnershipError{LoanID: l.LoanID, CustomerID: in.CustomerID}
		}
	}

	totalDebt := loan.TotalRemaining(loans)
	if in.OfferedAmount.Sub(totalDebt).IsNegative() {
		return &domain.InsufficientAmountError{Offered: in.OfferedAmount, TotalDebt: totalDebt}
	}
	return nil
}

func missingIDs(requested []string, loans []loan.Loan) []string {
	found := make(map[string]struct{}, len(loans))
	for _, l := range loans {
		found[l.LoanID] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{}, len(requested))
	for _, id := range requested {
		if _, ok := found[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
