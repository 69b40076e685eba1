package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "loan-refinance/internal/domain/loan"
	"loan-refinance/internal/domain/lock"
	"loan-refinance/internal/domain/offer"
	domainRefinance "loan-refinance/internal/domain/refinance"
	"loan-refinance/internal/domain/uow"
	"loan-refinance/internal/usecase/refinance"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid loan input")

type Usecase struct {
	loans   domain.Repository
	offers  offer.Repository
	uow     uow.UnitOfWork
	locker  lock.Locker
	builder *refinance.Builder
	log     *zap.Logger
	tracer  trace.Tracer
}

func NewUsecase(loans domain.Repository, offers offer.Repository, tx uow.UnitOfWork, locker lock.Locker, b *refinance.Builder, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		loans:   loans,
		offers:  offers,
		uow:     tx,
		locker:  locker,
		builder: b,
		log:     log,
		tracer:  otel.Tracer("loan-refinance/usecase/loan"),
	}
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	dto := toLoanDTO(*l)
	return &dto, nil
}

func (u *Usecase) ListByCustomer(ctx context.Context, customerID string) ([]LoanDTO, error) {
	loans, err := u.loans.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanDTO(l))
	}
	return out, nil
}

// ListRefinanceCandidates returns the customer's loans that can be cancelled by a refinance.
func (u *Usecase) ListRefinanceCandidates(ctx context.Context, customerID string) ([]LoanDTO, error) {
	loans, err := u.loans.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := []LoanDTO{}
	for _, l := range loans {
		if l.Status.EligibleForRefinance() && l.EligibleForRefinance {
			out = append(out, toLoanDTO(l))
		}
	}
	return out, nil
}

func (u *Usecase) ListOffers(ctx context.Context, customerID string) ([]OfferDTO, error) {
	offers, err := u.offers.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]OfferDTO, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferDTO(o))
	}
	return out, nil
}

// Originate takes a plain new loan against one of the customer's standing offers.
// The full amount is credited to the account and every standing offer is consumed.
func (u *Usecase) Originate(ctx context.Context, in OriginateInput) (*LoanDTO, error) {
	switch {
	case strings.TrimSpace(in.CustomerID) == "":
		return nil, fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	case !in.Amount.IsPositive():
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	case in.Quotas <= 0:
		return nil, fmt.Errorf("%w: quotas must be greater than zero", ErrInvalidInput)
	case !in.MonthlyRate.IsPositive():
		return nil, fmt.Errorf("%w: monthly_rate must be greater than zero", ErrInvalidInput)
	}

	ctx, span := u.tracer.Start(ctx, "loan.originate", trace.WithAttributes(
		attribute.String("customer.id", in.CustomerID),
		attribute.Int("loan.quotas", in.Quotas),
	))
	defer span.End()

	var created *domain.Loan
	err := u.locker.WithLock(ctx, lock.CustomerKey(in.CustomerID), func(ctx context.Context) error {
		return u.uow.WithinCustomerTx(ctx, in.CustomerID, func(r uow.Repos, offers []offer.Offer) error {
			if len(offers) == 0 {
				return offer.ErrNoOffers
			}
			if !anyOfferCovers(offers, in) {
				return domainRefinance.ErrNoMatchingOffer
			}

			l := u.builder.BuildNewLoan(in.CustomerID, in.Amount, in.Quotas)
			if err := r.Loans.Create(ctx, l); err != nil {
				return fmt.Errorf("create loan: %w", err)
			}

			deleted, err := r.Offers.DeleteAll(ctx, offers)
			if err != nil {
				return fmt.Errorf("delete offers: %w", err)
			}
			if deleted != int64(len(offers)) {
				return fmt.Errorf("%w: offers were consumed concurrently", domainRefinance.ErrNoMatchingOffer)
			}

			if _, err := r.Accounts.Credit(ctx, in.CustomerID, in.Amount, "New loan - Ref: "+l.LoanNumber); err != nil {
				return fmt.Errorf("credit loan amount: %w", err)
			}
			created = l
			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "origination failed")
		u.log.Warn("loan origination failed", zap.String("customer_id", in.CustomerID), zap.Error(err))
		return nil, err
	}

	u.log.Info("loan originated",
		zap.String("customer_id", in.CustomerID),
		zap.String("loan_id", created.LoanID),
		zap.String("loan_number", created.LoanNumber),
		zap.String("amount", created.TotalAmount.StringFixed(2)))
	dto := toLoanDTO(*created)
	return &dto, nil
}

// anyOfferCovers reports whether some offer allows the amount and quotas at exactly the requested rate.
func anyOfferCovers(offers []offer.Offer, in OriginateInput) bool {
	for _, o := range offers {
		if in.Amount.LessThanOrEqual(o.MaxAmount) && in.Quotas <= o.MaxQuotas && o.MonthlyRate.Equal(in.MonthlyRate) {
			return true
		}
	}
	return false
}
