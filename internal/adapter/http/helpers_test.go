package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"loan-refinance/internal/domain/account"
	"loan-refinance/internal/domain/loan"
	"loan-refinance/internal/domain/offer"
	domainRefinance "loan-refinance/internal/domain/refinance"
	"loan-refinance/internal/domain/uow"
	"loan-refinance/internal/testutil/accountmock"
	"loan-refinance/internal/testutil/loanmock"
	"loan-refinance/internal/testutil/lockmock"
	"loan-refinance/internal/testutil/offermock"
	"loan-refinance/internal/testutil/operationmock"
	"loan-refinance/internal/testutil/uowmock"
	ucAccount "loan-refinance/internal/usecase/account"
	ucLoan "loan-refinance/internal/usecase/loan"
	"loan-refinance/internal/usecase/refinance"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// store is an in-memory backing for the mocked repositories.
type store struct {
	mu       sync.Mutex
	loans    []loan.Loan
	offers   []offer.Offer
	accounts map[string]*account.Account
	txs      []account.Transaction
	ops      []domainRefinance.Operation

	// set to force a repository failure
	loanErr error
}

func newStore() *store {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return &store{
		loans: []loan.Loan{
			{ID: 1, LoanID: "L1", CustomerID: "CUSTOMER-001", LoanNumber: "LOAN-001", TotalAmount: d("300000.00"),
				RemainingAmount: d("200000.00"), QuotaAmount: d("12500.00"), PaidQuotas: 8, TotalQuotas: 24,
				Status: loan.StatusActive, StartDate: start, EligibleForRefinance: true},
			{ID: 2, LoanID: "L2", CustomerID: "CUSTOMER-001", LoanNumber: "LOAN-002", TotalAmount: d("250000.00"),
				RemainingAmount: d("200000.00"), QuotaAmount: d("20833.33"), PaidQuotas: 2, TotalQuotas: 12,
				Status: loan.StatusActive, StartDate: start, EligibleForRefinance: true},
			{ID: 3, LoanID: "L3", CustomerID: "CUSTOMER-001", LoanNumber: "LOAN-003", TotalAmount: d("90000.00"),
				RemainingAmount: d("0.00"), QuotaAmount: d("7500.00"), PaidQuotas: 12, TotalQuotas: 12,
				Status: loan.StatusPaidOff, StartDate: start},
			{ID: 4, LoanID: "L9", CustomerID: "CUSTOMER-002", LoanNumber: "LOAN-009", TotalAmount: d("50000.00"),
				RemainingAmount: d("50000.00"), QuotaAmount: d("5000.00"), TotalQuotas: 10,
				Status: loan.StatusActive, StartDate: start, EligibleForRefinance: true},
		},
		offers: []offer.Offer{
			{ID: 1, OfferID: "o-24", CustomerID: "CUSTOMER-001", MaxAmount: d("300000.00"), MaxQuotas: 24, MonthlyRate: d("65.5")},
			{ID: 2, OfferID: "o-60", CustomerID: "CUSTOMER-001", MaxAmount: d("500000.00"), MaxQuotas: 60, MonthlyRate: d("75.0")},
		},
		accounts: map[string]*account.Account{
			"CUSTOMER-001": {AccountID: "A1", CustomerID: "CUSTOMER-001", AccountNumber: "ACC-001",
				Balance: d("1000.00"), AccountType: account.TypeSavings, Active: true},
		},
	}
}

func (s *store) repos() uow.Repos {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(_ context.Context, id string) (*loan.Loan, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.loanErr != nil {
				return nil, s.loanErr
			}
			for _, l := range s.loans {
				if l.LoanID == id {
					cp := l
					return &cp, nil
				}
			}
			return nil, loan.ErrNotFound
		},
		FindByIDsFn: func(_ context.Context, ids []string) ([]loan.Loan, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.loanErr != nil {
				return nil, s.loanErr
			}
			want := map[string]bool{}
			for _, id := range ids {
				want[id] = true
			}
			var out []loan.Loan
			for _, l := range s.loans {
				if want[l.LoanID] {
					out = append(out, l)
				}
			}
			return out, nil
		},
		FindByCustomerFn: func(_ context.Context, customerID string) ([]loan.Loan, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.loanErr != nil {
				return nil, s.loanErr
			}
			var out []loan.Loan
			for _, l := range s.loans {
				if l.CustomerID == customerID {
					out = append(out, l)
				}
			}
			return out, nil
		},
		SaveAllFn: func(_ context.Context, updated []loan.Loan) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, u := range updated {
				for i := range s.loans {
					if s.loans[i].LoanID == u.LoanID {
						s.loans[i] = u
					}
				}
			}
			return nil
		},
		CreateFn: func(_ context.Context, l *loan.Loan) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			l.ID = uint64(len(s.loans) + 1)
			s.loans = append(s.loans, *l)
			return nil
		},
		SaveFn: func(_ context.Context, l *loan.Loan) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			l.ID = uint64(len(s.loans) + 1)
			s.loans = append(s.loans, *l)
			return nil
		},
		DeleteAllFn: func(_ context.Context, gone []loan.Loan) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			drop := map[string]bool{}
			for _, l := range gone {
				drop[l.LoanID] = true
			}
			kept := s.loans[:0]
			for _, l := range s.loans {
				if !drop[l.LoanID] {
					kept = append(kept, l)
				}
			}
			s.loans = kept
			return nil
		},
	}
	offers := &offermock.Repo{
		CreateAllFn: func(_ context.Context, seeded []offer.Offer) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.offers = append(s.offers, seeded...)
			return nil
		},
		FindByCustomerFn: func(_ context.Context, customerID string) ([]offer.Offer, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []offer.Offer
			for _, o := range s.offers {
				if o.CustomerID == customerID {
					out = append(out, o)
				}
			}
			return out, nil
		},
		DeleteAllFn: func(_ context.Context, gone []offer.Offer) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			drop := map[string]bool{}
			for _, o := range gone {
				drop[o.OfferID] = true
			}
			kept := s.offers[:0]
			var n int64
			for _, o := range s.offers {
				if drop[o.OfferID] {
					n++
					continue
				}
				kept = append(kept, o)
			}
			s.offers = kept
			return n, nil
		},
	}
	ledger := &accountmock.Ledger{
		GetByCustomerIDFn: func(_ context.Context, customerID string) (*account.Account, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			a, ok := s.accounts[customerID]
			if !ok {
				return nil, account.ErrNotFound
			}
			cp := *a
			return &cp, nil
		},
		CreditFn: func(_ context.Context, customerID string, amount decimal.Decimal, desc string) (*account.Transaction, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			a, ok := s.accounts[customerID]
			if !ok {
				return nil, account.ErrNotFound
			}
			if err := a.Credit(amount); err != nil {
				return nil, err
			}
			tx := account.Transaction{
				TransactionID: fmt.Sprintf("T%d", len(s.txs)+1),
				CustomerID:    customerID, Amount: amount, Currency: "ARS",
				Status: account.TxSuccess, Description: desc,
			}
			s.txs = append(s.txs, tx)
			return &tx, nil
		},
		ListTransactionsFn: func(_ context.Context, customerID string) ([]account.Transaction, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []account.Transaction
			for _, tx := range s.txs {
				if tx.CustomerID == customerID {
					out = append(out, tx)
				}
			}
			return out, nil
		},
	}
	ops := &operationmock.Repo{
		CreateFn: func(_ context.Context, op *domainRefinance.Operation) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.ops = append(s.ops, *op)
			return nil
		},
		FindByCustomerFn: func(_ context.Context, customerID string) ([]domainRefinance.Operation, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []domainRefinance.Operation
			for _, op := range s.ops {
				if op.CustomerID == customerID {
					out = append(out, op)
				}
			}
			return out, nil
		},
	}
	return uow.Repos{Loans: loans, Offers: offers, Accounts: ledger, Operations: ops}
}

// testRouter wires the real usecases and handlers over s.
func testRouter(t *testing.T, s *store, locker *lockmock.Locker) Router {
	t.Helper()
	if locker == nil {
		locker = &lockmock.Locker{}
	}
	repos := s.repos()
	tx := uowmock.Passthrough(repos)
	b := refinance.NewBuilder("", "", refinance.DefaultQuotaScale)

	refUC := refinance.NewUsecase(repos.Operations, tx, locker, b, refinance.Options{
		RestoreLoans: []refinance.RestoreLoan{
			{LoanNumber: "LOAN-001", RemainingAmount: d("200000.00"), PaidQuotas: 8},
			{LoanNumber: "LOAN-002", RemainingAmount: d("200000.00"), PaidQuotas: 2},
		},
		DefaultOffers: []refinance.OfferTemplate{
			{MaxAmount: d("500000.00"), MaxQuotas: 60, MonthlyRate: d("75.0")},
		},
	}, nil)
	loanUC := ucLoan.NewUsecase(repos.Loans, repos.Offers, tx, locker, b, nil)
	accUC := ucAccount.NewUsecase(repos.Accounts)

	return Router{
		Health:    NewHandler("loan-refinance"),
		Refinance: NewRefinanceHandler(refUC, nil),
		Loans:     NewLoanHandler(loanUC, nil),
		Accounts:  NewAccountHandler(accUC, nil),
	}
}

func newTestServer(t *testing.T, s *store, locker *lockmock.Locker) *echo.Echo {
	t.Helper()
	e := newEchoWithValidator()
	testRouter(t, s, locker).Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		r = mustJSON(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}
	return v
}
