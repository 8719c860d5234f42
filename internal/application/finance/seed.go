package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/finance"
)

// DemoTransactions is the ledger new tenants start with
func DemoTransactions() []finance.Transaction {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	return []finance.Transaction{
		{
			ID:          "txn-0002",
			Date:        day.AddDate(0, 0, 3),
			Description: "Warehouse rent",
			Amount:      decimal.NewFromInt(1500000),
			Currency:    "IDR",
			Type:        finance.TypeExpense,
			Category:    "Rent",
			Status:      finance.StatusCompleted,
		},
		{
			ID:          "txn-0001",
			Date:        day,
			Description: "Payment for order-1001",
			Amount:      decimal.NewFromInt(150000),
			Currency:    "IDR",
			Type:        finance.TypeIncome,
			Category:    "Sales",
			Status:      finance.StatusCompleted,
			Reference:   "order-1001",
		},
	}
}
