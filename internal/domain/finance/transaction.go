// Package finance models the income and expense ledger.
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the ledger direction
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// TransactionStatus of a ledger entry
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "Completed"
	StatusPending   TransactionStatus = "Pending"
)

// CategoryCommissionPayout is used for expenses recorded by payouts
const CategoryCommissionPayout = "Commission Payout"

// Transaction is one ledger entry. Amount is always positive; Type gives
// the direction.
type Transaction struct {
	ID          string            `json:"id" validate:"required"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description" validate:"required"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency,omitempty" validate:"omitempty,len=3"`
	Type        TransactionType   `json:"type" validate:"oneof=Income Expense"`
	Category    string            `json:"category,omitempty"`
	Status      TransactionStatus `json:"status,omitempty" validate:"omitempty,oneof=Completed Pending"`
	Reference   string            `json:"reference,omitempty"`
}

// Signed returns the amount with expenses negated
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Summary aggregates a set of transactions
type Summary struct {
	Income     decimal.Decimal            `json:"income"`
	Expense    decimal.Decimal            `json:"expense"`
	Net        decimal.Decimal            `json:"net"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	Count      int                        `json:"count"`
}

// Summarize totals transactions dated within [from, to). A zero bound is
// open.
func Summarize(txs []Transaction, from, to time.Time) Summary {
	s := Summary{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Net:        decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, tx := range txs {
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !tx.Date.Before(to) {
			continue
		}
		switch tx.Type {
		case TypeIncome:
			s.Income = s.Income.Add(tx.Amount)
		case TypeExpense:
			s.Expense = s.Expense.Add(tx.Amount)
		}
		category := tx.Category
		if category == "" {
			category = "Uncategorized"
		}
		s.ByCategory[category] = s.ByCategory[category].Add(tx.Signed())
		s.Count++
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
