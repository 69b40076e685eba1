package refinance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"loan-refinance/internal/domain/loan"
	"loan-refinance/internal/domain/lock"
	"loan-refinance/internal/domain/offer"
	domain "loan-refinance/internal/domain/refinance"
	"loan-refinance/internal/domain/uow"
	"loan-refinance/pkg/id"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "loan-refinance/usecase/refinance"

type Options struct {
	// StrictLoanMatch fails the request when any source loan id does not resolve.
	StrictLoanMatch bool
	RestoreLoans    []RestoreLoan
	DefaultOffers   []OfferTemplate
	Tracer          trace.Tracer
}

type Usecase struct {
	ops     domain.Repository
	uow     uow.UnitOfWork
	locker  lock.Locker
	builder *Builder
	opts    Options
	log     *zap.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

func NewUsecase(ops domain.Repository, tx uow.UnitOfWork, locker lock.Locker, b *Builder, opts Options, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Usecase{
		ops:     ops,
		uow:     tx,
		locker:  locker,
		builder: b,
		opts:    opts,
		log:     log,
		tracer:  tracer,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Execute consolidates the requested loans into one new loan and credits the surplus to the
// customer's account. Everything runs under the customer lock in a single transaction; any
// failure leaves loans, offers and the account untouched.
func (u *Usecase) Execute(ctx context.Context, in ExecuteInput) (*ResultDTO, error) {
	if err := ValidateRequest(in); err != nil {
		return nil, err
	}

	ctx, span := u.tracer.Start(ctx, "refinance.execute", trace.WithAttributes(
		attribute.String("customer.id", in.CustomerID),
		attribute.Int("refinance.source_loans", len(in.SourceLoanIDs)),
		attribute.Int("refinance.selected_quotas", in.SelectedQuotas),
	))
	defer span.End()

	log := u.log.With(zap.String("customer_id", in.CustomerID))

	var out *ResultDTO
	err := u.locker.WithLock(ctx, lock.CustomerKey(in.CustomerID), func(ctx context.Context) error {
		return u.uow.WithinCustomerTx(ctx, in.CustomerID, func(r uow.Repos, offers []offer.Offer) error {
			res, err := u.execute(ctx, r, offers, in, log)
			if err != nil {
				return err
			}
			out = res
			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "refinance failed")
		if domain.IsBusinessError(err) {
			span.SetAttributes(attribute.String("refinance.error_code", domain.Code(err)))
			log.Info("refinance rejected", zap.String("error_code", domain.Code(err)), zap.Error(err))
		} else {
			log.Error("refinance failed", zap.Error(err))
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.String("refinance.new_loan_number", out.NewLoanNumber),
		attribute.String("refinance.cash_out", out.CashOut.StringFixed(2)),
	)
	log.Info("refinance completed",
		zap.String("new_loan_id", out.NewLoanID),
		zap.String("new_loan_number", out.NewLoanNumber),
		zap.String("total_debt_canceled", out.TotalDebtCanceled.StringFixed(2)),
		zap.String("cash_out", out.CashOut.StringFixed(2)))
	return out, nil
}

func (u *Usecase) execute(ctx context.Context, r uow.Repos, offers []offer.Offer, in ExecuteInput, log *zap.Logger) (*ResultDTO, error) {
	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: customer %s has no standing offers", domain.ErrNoMatchingOffer, in.CustomerID)
	}

	loans, err := r.Loans.FindByIDs(ctx, in.SourceLoanIDs)
	if err != nil {
		return nil, fmt.Errorf("load source loans: %w", err)
	}
	if err := Validate(in, loans, u.opts.StrictLoanMatch, log); err != nil {
		return nil, err
	}

	totalDebt := loan.TotalRemaining(loans)
	matched, err := MatchOffer(in, offers, totalDebt)
	if err != nil {
		return nil, err
	}
	resolved := matched.MaxAmount

	// every standing offer goes, not just the matched one
	deleted, err := r.Offers.DeleteAll(ctx, offers)
	if err != nil {
		return nil, fmt.Errorf("delete offers: %w", err)
	}
	if deleted != int64(len(offers)) {
		return nil, fmt.Errorf("%w: offers were consumed concurrently (%d of %d deleted)",
			domain.ErrNoMatchingOffer, deleted, len(offers))
	}

	cashOut := resolved.Sub(totalDebt)
	if !in.ExpectedCashOut.IsZero() && !in.ExpectedCashOut.Equal(cashOut) {
		log.Warn("refinance: expected cash-out differs from computed",
			zap.String("expected", in.ExpectedCashOut.StringFixed(2)),
			zap.String("computed", cashOut.StringFixed(2)))
	}

	for i := range loans {
		if err := loans[i].CloseByRefinance(); err != nil {
			return nil, err
		}
	}
	if err := r.Loans.SaveAll(ctx, loans); err != nil {
		return nil, fmt.Errorf("close source loans: %w", err)
	}

	newLoan := u.builder.BuildRefinanceLoan(in, resolved)
	if err := r.Loans.Save(ctx, newLoan); err != nil {
		return nil, fmt.Errorf("save refinance loan: %w", err)
	}

	desc := "Debt consolidation credit - Ref: " + newLoan.LoanNumber
	if _, err := r.Accounts.Credit(ctx, in.CustomerID, cashOut, desc); err != nil {
		return nil, fmt.Errorf("credit cash-out: %w", err)
	}

	now := u.now()
	op := &domain.Operation{
		OperationID:       id.NewUUID(),
		CustomerID:        in.CustomerID,
		SourceLoanIDs:     in.SourceLoanIDs,
		OfferedAmount:     in.OfferedAmount,
		SelectedQuotas:    in.SelectedQuotas,
		AppliedRate:       in.AppliedRate,
		ExpectedCashOut:   in.ExpectedCashOut,
		ResolvedAmount:    resolved,
		TotalDebtCanceled: totalDebt,
		CashOut:           cashOut,
		NewLoanID:         newLoan.LoanID,
		NewLoanNumber:     newLoan.LoanNumber,
		CreatedAt:         now,
	}
	if err := r.Operations.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("record refinance operation: %w", err)
	}

	return &ResultDTO{
		Message:           SuccessMessage,
		CustomerID:        in.CustomerID,
		NewLoanID:         newLoan.LoanID,
		NewLoanNumber:     newLoan.LoanNumber,
		TotalDebtCanceled: totalDebt,
		CashOut:           cashOut,
		Timestamp:         now,
	}, nil
}

func (u *Usecase) ListOperations(ctx context.Context, customerID string) ([]OperationDTO, error) {
	ops, err := u.ops.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]OperationDTO, 0, len(ops))
	for _, op := range ops {
		out = append(out, toOperationDTO(op))
	}
	return out, nil
}

// Reset puts a customer back into a refinanceable state: refinance loans are soft-deleted,
// closed loans listed in the restore table are reopened and default offers are seeded if none exist.
func (u *Usecase) Reset(ctx context.Context, customerID string) (*ResetResult, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer_id is required", domain.ErrInvalidRequest)
	}

	ctx, span := u.tracer.Start(ctx, "refinance.reset", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	restore := make(map[string]RestoreLoan, len(u.opts.RestoreLoans))
	for _, r := range u.opts.RestoreLoans {
		restore[r.LoanNumber] = r
	}

	res := &ResetResult{CustomerID: customerID}
	err := u.locker.WithLock(ctx, lock.CustomerKey(customerID), func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			loans, err := r.Loans.FindByCustomer(ctx, customerID)
			if err != nil {
				return err
			}

			var refinanced, reopened []loan.Loan
			for _, l := range loans {
				if strings.HasPrefix(l.LoanNumber, u.builder.RefinancePrefix()) {
					refinanced = append(refinanced, l)
					continue
				}
				if rl, ok := restore[l.LoanNumber]; ok && l.Status == loan.StatusClosedByRefinance {
					l.Restore(rl.RemainingAmount, rl.PaidQuotas)
					reopened = append(reopened, l)
				}
			}
			if err := r.Loans.DeleteAll(ctx, refinanced); err != nil {
				return fmt.Errorf("delete refinance loans: %w", err)
			}
			if err := r.Loans.SaveAll(ctx, reopened); err != nil {
				return fmt.Errorf("restore loans: %w", err)
			}

			offers, err := r.Offers.FindByCustomer(ctx, customerID)
			if err != nil {
				return err
			}
			if len(offers) == 0 {
				seeded := make([]offer.Offer, 0, len(u.opts.DefaultOffers))
				for _, t := range u.opts.DefaultOffers {
					seeded = append(seeded, offer.Offer{
						OfferID:     id.NewUUID(),
						CustomerID:  customerID,
						MaxAmount:   t.MaxAmount,
						MaxQuotas:   t.MaxQuotas,
						MonthlyRate: t.MonthlyRate,
						MinDTI:      t.MinDTI,
					})
				}
				if err := r.Offers.CreateAll(ctx, seeded); err != nil {
					return fmt.Errorf("seed offers: %w", err)
				}
				res.CreatedOffers = len(seeded)
			}

			res.DeletedRefinanceLoans = len(refinanced)
			res.RestoredLoans = len(reopened)
			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reset failed")
		u.log.Error("refinance reset failed", zap.String("customer_id", customerID), zap.Error(err))
		return nil, err
	}

	u.log.Info("refinance reset completed",
		zap.String("customer_id", customerID),
		zap.Int("deleted_refinance_loans", res.DeletedRefinanceLoans),
		zap.Int("restored_loans", res.RestoredLoans),
		zap.Int("created_offers", res.CreatedOffers))
	return res, nil
}

func toOperationDTO(op domain.Operation) OperationDTO {
	return OperationDTO{
		OperationID:       op.OperationID,
		CustomerID:        op.CustomerID,
		SourceLoanIDs:     op.SourceLoanIDs,
		OfferedAmount:     op.OfferedAmount,
		SelectedQuotas:    op.SelectedQuotas,
		AppliedRate:       op.AppliedRate,
		ExpectedCashOut:   op.ExpectedCashOut,
		ResolvedAmount:    op.ResolvedAmount,
		TotalDebtCanceled: op.TotalDebtCanceled,
		CashOut:           op.CashOut,
		NewLoanID:         op.NewLoanID,
		NewLoanNumber:     op.NewLoanNumber,
		CreatedAt:         op.CreatedAt,
	}
}
