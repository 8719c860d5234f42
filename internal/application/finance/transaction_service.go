// Package finance provides the transaction ledger service.
package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// TransactionCollection is the collection name transactions are stored under
const TransactionCollection = "transactions"

// TransactionSchema describes the transactions collection
func TransactionSchema(seed bool) persistence.Schema[finance.Transaction] {
	schema := persistence.Schema[finance.Transaction]{
		Name: TransactionCollection,
		Key:  func(tx finance.Transaction) string { return tx.ID },
	}
	if seed {
		schema.Seed = func(context.Context) ([]finance.Transaction, error) { return DemoTransactions(), nil }
	}
	return schema
}

// TransactionService records income and expenses
type TransactionService struct {
	records *persistence.Collection[finance.Transaction]
	logger  *zap.Logger
	now     func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(records *persistence.Collection[finance.Transaction], logger *zap.Logger) *TransactionService {
	return &TransactionService{
		records: records,
		logger:  logger,
		now:     time.Now,
	}
}

// GetTransactions returns the ledger, newest first
func (s *TransactionService) GetTransactions(ctx context.Context, tenantID string) ([]finance.Transaction, error) {
	return s.records.GetAll(ctx, tenantID)
}

// AddTransaction records a ledger entry at the top of the ledger
func (s *TransactionService) AddTransaction(ctx context.Context, tenantID string, tx finance.Transaction) (finance.Transaction, error) {
	if !tx.Amount.IsPositive() {
		return finance.Transaction{}, shared.InvalidInput("transaction amount must be positive, got %s", tx.Amount)
	}
	if tx.Currency != "" {
		code, err := shared.ParseCurrency(tx.Currency)
		if err != nil {
			return finance.Transaction{}, err
		}
		tx.Currency = code
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = s.now().UTC()
	}
	if tx.Status == "" {
		tx.Status = finance.StatusCompleted
	}

	created, err := s.records.Create(ctx, tenantID, tx, persistence.Prepend())
	if err != nil {
		return finance.Transaction{}, err
	}
	s.logger.Info("Transaction recorded",
		zap.String("tenant_id", tenantID),
		zap.String("transaction_id", created.ID),
		zap.String("type", string(created.Type)),
		zap.String("amount", created.Amount.String()))
	return created, nil
}

// Summary totals the ledger between from and to; zero bounds are open
func (s *TransactionService) Summary(ctx context.Context, tenantID string, from, to time.Time) (finance.Summary, error) {
	txs, err := s.records.GetAll(ctx, tenantID)
	if err != nil {
		return finance.Summary{}, err
	}
	return finance.Summarize(txs, from, to), nil
}
