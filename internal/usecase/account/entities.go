package account

import (
	"time"

	domain "loan-refinance/internal/domain/account"

	"github.com/shopspring/decimal"
)

type AccountDTO struct {
	AccountID     string          `json:"account_id"`
	CustomerID    string          `json:"customer_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	AccountType   string          `json:"account_type"`
	Active        bool            `json:"active"`
}

type TransactionDTO struct {
	TransactionID   string          `json:"transaction_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description"`
}

func toAccountDTO(a domain.Account) AccountDTO {
	return AccountDTO{
		AccountID:     a.AccountID,
		CustomerID:    a.CustomerID,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		AccountType:   string(a.AccountType),
		Active:        a.Active,
	}
}

func toTransactionDTO(t domain.Transaction) TransactionDTO {
	return TransactionDTO{
		TransactionID:   t.TransactionID,
		Amount:          t.Amount,
		Currency:        t.Currency,
		Status:          string(t.Status),
		Reference:       t.Reference,
		TransactionDate: t.TransactionDate,
		Description:     t.Description,
	}
}
