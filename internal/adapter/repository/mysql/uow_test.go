package mysql

import (
	"context"
	"errors"
	"testing"

	"loan-refinance/internal/domain/offer"
	"loan-refinance/internal/domain/uow"
	"loan-refinance/pkg/id"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db, "")
	ctx := context.Background()
	loanID := id.NewUUID()

	err := u.WithinTx(ctx, func(r uow.Repos) error {
		return r.Loans.Create(ctx, makeLoan(loanID, "C1", "10.00"))
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}
	if _, err := NewLoanRepository(db).GetByLoanID(ctx, loanID); err != nil {
		t.Fatalf("expected committed loan, got %v", err)
	}
}

func TestGormUoW_WithinCustomerTx_RollbackRestoresEverything(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db, "")
	ctx := context.Background()

	loans := NewLoanRepository(db)
	offers := NewOfferRepository(db)
	accounts := NewAccountRepository(db, "")

	l := makeLoan(id.NewUUID(), "C1", "400000.00")
	if err := loans.Create(ctx, l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	if err := offers.CreateAll(ctx, []offer.Offer{makeOffer("C1", "500000.00", 60, "75.0")}); err != nil {
		t.Fatalf("seed offers: %v", err)
	}
	seedAccount(t, accounts, "C1", "0.00")

	boom := errors.New("boom")
	var seen int
	err := u.WithinCustomerTx(ctx, "C1", func(r uow.Repos, locked []offer.Offer) error {
		seen = len(locked)
		src, err := r.Loans.FindByIDs(ctx, []string{l.LoanID})
		if err != nil {
			return err
		}
		if err := src[0].CloseByRefinance(); err != nil {
			return err
		}
		if err := r.Loans.SaveAll(ctx, src); err != nil {
			return err
		}
		if _, err := r.Offers.DeleteAll(ctx, locked); err != nil {
			return err
		}
		if _, err := r.Accounts.Credit(ctx, "C1", dec("100000.00"), "x"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if seen != 1 {
		t.Fatalf("locked offers = %d, want 1", seen)
	}

	got, _ := loans.GetByLoanID(ctx, l.LoanID)
	if got.Status != "ACTIVE" || !got.RemainingAmount.Equal(dec("400000")) {
		t.Fatalf("loan not rolled back: %+v", got)
	}
	if left, _ := offers.FindByCustomer(ctx, "C1"); len(left) != 1 {
		t.Fatalf("offers not rolled back: %d", len(left))
	}
	acc, _ := accounts.GetByCustomerID(ctx, "C1")
	if !acc.Balance.IsZero() {
		t.Fatalf("balance not rolled back: %s", acc.Balance)
	}
	if txs, _ := accounts.ListTransactions(ctx, "C1"); len(txs) != 0 {
		t.Fatalf("transactions not rolled back: %d", len(txs))
	}
}
