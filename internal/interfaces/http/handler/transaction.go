package handler

import (
	"net/http"
	"time"

	financeapp "github.com/erp/backoffice/internal/application/finance"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionHandler handles finance ledger HTTP requests
type TransactionHandler struct {
	BaseHandler
	transactions *financeapp.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions *financeapp.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{BaseHandler: BaseHandler{logger: logger}, transactions: transactions}
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.transactions.GetTransactions(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, txs, func(tx finance.Transaction, term string) bool {
		return containsFold(term, tx.Description, tx.Category, tx.Reference)
	})
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req finance.Transaction
	if !h.bindJSON(c, &req) {
		return
	}
	tx, err := h.transactions.AddTransaction(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Summary handles GET /transactions/summary?from=&to=. Bounds are RFC 3339
// timestamps or YYYY-MM-DD dates; missing bounds are open.
func (h *TransactionHandler) Summary(c *gin.Context) {
	from, ok := h.parseBound(c, "from")
	if !ok {
		return
	}
	to, ok := h.parseBound(c, "to")
	if !ok {
		return
	}
	summary, err := h.transactions.Summary(c.Request.Context(), getTenantID(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

func (h *TransactionHandler) parseBound(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, name+" must be RFC 3339 or YYYY-MM-DD")
	return time.Time{}, false
}
