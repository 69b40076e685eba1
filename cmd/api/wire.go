package main

import (
	"fmt"
	"time"

	"loan-refinance/internal/config"
	"loan-refinance/internal/domain/lock"
	"loan-refinance/internal/infrastructure/locker"
	"loan-refinance/internal/usecase/refinance"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// refinanceOptions converts the configured restore table and default offers into usecase options.
func refinanceOptions(rc config.RefinanceConfig) (refinance.Options, error) {
	opts := refinance.Options{StrictLoanMatch: rc.StrictLoanMatch}

	for _, r := range rc.RestoreLoans {
		remaining, err := decimal.NewFromString(r.RemainingAmount)
		if err != nil {
			return opts, fmt.Errorf("restore loan %s: %w", r.LoanNumber, err)
		}
		opts.RestoreLoans = append(opts.RestoreLoans, refinance.RestoreLoan{
			LoanNumber:      r.LoanNumber,
			RemainingAmount: remaining,
			PaidQuotas:      r.PaidQuotas,
		})
	}

	for i, o := range rc.DefaultOffers {
		var t refinance.OfferTemplate
		var err error
		if t.MaxAmount, err = decimal.NewFromString(o.MaxAmount); err != nil {
			return opts, fmt.Errorf("default offer %d max_amount: %w", i, err)
		}
		if t.MonthlyRate, err = decimal.NewFromString(o.MonthlyRate); err != nil {
			return opts, fmt.Errorf("default offer %d monthly_rate: %w", i, err)
		}
		if t.MinDTI, err = decimal.NewFromString(o.MinDTI); err != nil {
			return opts, fmt.Errorf("default offer %d min_dti: %w", i, err)
		}
		t.MaxQuotas = o.MaxQuotas
		opts.DefaultOffers = append(opts.DefaultOffers, t)
	}
	return opts, nil
}

// newLocker picks the per-customer lock backend. The local backend only serializes within this process.
func newLocker(lc config.LockConfig, rdb redis.UniversalClient, log *zap.Logger) lock.Locker {
	if lc.Backend == config.LockBackendLocal {
		log.Warn("using in-process customer lock; run a single replica")
		return locker.NewLocalLocker(time.Duration(lc.Tries) * lc.RetryDelay)
	}
	return locker.NewRedisLocker(rdb, locker.Options{
		Expiry:     lc.TTL,
		Tries:      lc.Tries,
		RetryDelay: lc.RetryDelay,
	}, log)
}
