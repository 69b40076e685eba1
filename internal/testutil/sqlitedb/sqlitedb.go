package sqlitedb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite-friendly mirrors of the MySQL models (no ENUM, money stored as text).
// Tests migrate these and then read/write through the real domain models.

type loanSQLite struct {
	ID                   uint64          `gorm:"primaryKey;column:id"`
	LoanID               string          `gorm:"size:36;uniqueIndex;column:loan_id"`
	CustomerID           string          `gorm:"column:customer_id"`
	LoanNumber           string          `gorm:"column:loan_number"`
	TotalAmount          decimal.Decimal `gorm:"type:text;column:total_amount"`
	RemainingAmount      decimal.Decimal `gorm:"type:text;column:remaining_amount"`
	QuotaAmount          decimal.Decimal `gorm:"type:text;column:quota_amount"`
	PaidQuotas           int             `gorm:"column:paid_quotas"`
	TotalQuotas          int             `gorm:"column:total_quotas"`
	Status               string          `gorm:"type:text;column:status"` // ← no enum
	StartDate            time.Time       `gorm:"column:start_date"`
	EligibleForRefinance bool            `gorm:"column:eligible_for_refinance"`
	CreatedAt            time.Time       `gorm:"column:created_at"`
	UpdatedAt            time.Time       `gorm:"column:updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type offerSQLite struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	OfferID     string          `gorm:"size:36;uniqueIndex;column:offer_id"`
	CustomerID  string          `gorm:"column:customer_id"`
	MaxAmount   decimal.Decimal `gorm:"type:text;column:max_amount"`
	MaxQuotas   int             `gorm:"column:max_quotas"`
	MonthlyRate decimal.Decimal `gorm:"type:text;column:monthly_rate"`
	MinDTI      decimal.Decimal `gorm:"type:text;column:min_dti"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (offerSQLite) TableName() string { return "loan_offers" }

type accountSQLite struct {
	ID            uint64          `gorm:"primaryKey;column:id"`
	AccountID     string          `gorm:"size:36;uniqueIndex;column:account_id"`
	CustomerID    string          `gorm:"uniqueIndex;column:customer_id"`
	AccountNumber string          `gorm:"column:account_number"`
	Balance       decimal.Decimal `gorm:"type:text;column:balance"`
	AccountType   string          `gorm:"type:text;column:account_type"`
	Active        bool            `gorm:"column:active"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (accountSQLite) TableName() string { return "accounts" }

type transactionSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	TransactionID   string          `gorm:"size:36;uniqueIndex;column:transaction_id"`
	CustomerID      string          `gorm:"column:customer_id"`
	Amount          decimal.Decimal `gorm:"type:text;column:amount"`
	Currency        string          `gorm:"column:currency"`
	Status          string          `gorm:"column:status"`
	Reference       string          `gorm:"column:reference"`
	TransactionDate time.Time       `gorm:"column:transaction_date"`
	Description     string          `gorm:"column:description"`
}

func (transactionSQLite) TableName() string { return "transactions" }

type operationSQLite struct {
	ID                uint64          `gorm:"primaryKey;column:id"`
	OperationID       string          `gorm:"size:36;uniqueIndex;column:operation_id"`
	CustomerID        string          `gorm:"column:customer_id"`
	SourceLoanIDs     string          `gorm:"type:text;column:source_loan_ids"`
	OfferedAmount     decimal.Decimal `gorm:"type:text;column:offered_amount"`
	SelectedQuotas    int             `gorm:"column:selected_quotas"`
	AppliedRate       decimal.Decimal `gorm:"type:text;column:applied_rate"`
	ExpectedCashOut   decimal.Decimal `gorm:"type:text;column:expected_cash_out"`
	ResolvedAmount    decimal.Decimal `gorm:"type:text;column:resolved_amount"`
	TotalDebtCanceled decimal.Decimal `gorm:"type:text;column:total_debt_canceled"`
	CashOut           decimal.Decimal `gorm:"type:text;column:cash_out"`
	NewLoanID         string          `gorm:"column:new_loan_id"`
	NewLoanNumber     string          `gorm:"column:new_loan_number"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
}

func (operationSQLite) TableName() string { return "refinance_operations" }

// Open creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schemas.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every pooled connection would otherwise get its own empty :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(&loanSQLite{}, &offerSQLite{}, &accountSQLite{}, &transactionSQLite{}, &operationSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
