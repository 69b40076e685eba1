package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrNegativeCredit = errors.New("credit amount must not be negative")
)

type Type string

const (
	TypeChecking Type = "CHECKING"
	TypeSavings  Type = "SAVINGS"
	TypeBusiness Type = "BUSINESS"
)

// Table: accounts. One row per customer.
type Account struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	AccountID     string          `gorm:"column:account_id;type:char(36);uniqueIndex:ux_accounts_account_id" json:"account_id"`
	CustomerID    string          `gorm:"column:customer_id;size:255;uniqueIndex:ux_accounts_customer" json:"customer_id"`
	AccountNumber string          `gorm:"column:account_number;size:64" json:"account_number"`
	Balance       decimal.Decimal `gorm:"column:balance;type:decimal(18,2)" json:"balance"`
	AccountType   Type            `gorm:"column:account_type;type:enum('CHECKING','SAVINGS','BUSINESS');default:'SAVINGS'" json:"account_type"`
	Active        bool            `gorm:"column:active;default:true" json:"active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Credit adds amount to the balance. Zero is allowed so a consolidation without surplus still leaves a ledger entry.
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeCredit, amount)
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

type TransactionStatus string

const (
	TxSuccess   TransactionStatus = "SUCCESS"
	TxFailed    TransactionStatus = "FAILED"
	TxPending   TransactionStatus = "PENDING"
	TxCompleted TransactionStatus = "COMPLETED"
	TxCancelled TransactionStatus = "CANCELLED"
)

// Table: transactions. Append-only audit trail of balance movements.
type Transaction struct {
	ID              uint64            `gorm:"primaryKey;column:id" json:"-"`
	TransactionID   string            `gorm:"column:transaction_id;type:char(36);uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`
	CustomerID      string            `gorm:"column:customer_id;size:255;index:idx_transactions_customer" json:"customer_id"`
	Amount          decimal.Decimal   `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	Currency        string            `gorm:"column:currency;size:3" json:"currency"`
	Status          TransactionStatus `gorm:"column:status;size:16" json:"status"`
	Reference       string            `gorm:"column:reference;size:32" json:"reference"`
	TransactionDate time.Time         `gorm:"column:transaction_date" json:"transaction_date"`
	Description     string            `gorm:"column:description;type:text" json:"description"`
}

func (Transaction) TableName() string { return "transactions" }
