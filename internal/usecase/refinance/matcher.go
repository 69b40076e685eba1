package refinance

import (
	"loan-refinance/internal/domain/offer"
	domain "loan-refinance/internal/domain/refinance"

	"github.com/shopspring/decimal"
)

// MatchOffer picks the first offer with the requested quotas and exactly the requested rate,
// then checks totalDebt <= offered <= offer.MaxAmount. The returned offer's MaxAmount is the
// amount the new loan is built with.
func MatchOffer(in ExecuteInput, offers []offer.Offer, totalDebt decimal.Decimal) (*offer.Offer, error) {
	var matched *offer.Offer
	for i := range offers {
		o := &offers[i]
		if o.MaxQuotas == in.SelectedQuotas && o.MonthlyRate.Equal(in.AppliedRate) {
			matched = o
			break
		}
	}
	if matched == nil {
		return nil, domain.ErrNoMatchingOffer
	}

	if in.OfferedAmount.LessThan(totalDebt) {
		return nil, &domain.InsufficientAmountError{Offered: in.OfferedAmount, TotalDebt: totalDebt}
	}
	if in.OfferedAmount.GreaterThan(matched.MaxAmount) {
		return nil, &domain.OutOfRangeError{
			Offered:   in.OfferedAmount,
			TotalDebt: totalDebt,
			MaxAmount: matched.MaxAmount,
		}
	}
	return matched, nil
}
