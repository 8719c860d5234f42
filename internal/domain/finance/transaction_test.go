package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{ID: "t1", Date: jan, Amount: decimal.NewFromInt(100000), Type: TypeIncome, Category: "Sales"},
		{ID: "t2", Date: jan, Amount: decimal.NewFromInt(30000), Type: TypeExpense, Category: CategoryCommissionPayout},
		{ID: "t3", Date: feb, Amount: decimal.NewFromInt(50000), Type: TypeIncome},
	}

	all := Summarize(txs, time.Time{}, time.Time{})
	assert.True(t, decimal.NewFromInt(150000).Equal(all.Income))
	assert.True(t, decimal.NewFromInt(30000).Equal(all.Expense))
	assert.True(t, decimal.NewFromInt(120000).Equal(all.Net))
	assert.True(t, decimal.NewFromInt(-30000).Equal(all.ByCategory[CategoryCommissionPayout]))
	assert.True(t, decimal.NewFromInt(50000).Equal(all.ByCategory["Uncategorized"]))
	assert.Equal(t, 3, all.Count)

	janOnly := Summarize(txs, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, janOnly.Count)
	assert.True(t, decimal.NewFromInt(70000).Equal(janOnly.Net))
}
