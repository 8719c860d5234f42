package handler

import (
	tradeapp "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	BaseHandler
	orders *tradeapp.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *tradeapp.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{BaseHandler: BaseHandler{logger: logger}, orders: orders}
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.GetOrders(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, orders, func(o trade.Order, term string) bool {
		return containsFold(term, o.ID, o.CustomerName, o.CustomerEmail)
	})
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), getTenantID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req trade.Order
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orders.AddOrder(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Update handles PATCH /orders/:id. Status transitions in the patch
// trigger commissions the same way /pay and /deliver do.
func (h *OrderHandler) Update(c *gin.Context) {
	var patch trade.Patch
	if !h.bindJSON(c, &patch) {
		return
	}
	order, err := h.orders.UpdateOrder(c.Request.Context(), getTenantID(c), c.Param("id"), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Pay handles POST /orders/:id/pay
func (h *OrderHandler) Pay(c *gin.Context) {
	order, err := h.orders.MarkPaid(c.Request.Context(), getTenantID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeliverRequest is the optional body of POST /orders/:id/deliver
type DeliverRequest struct {
	FulfilledByStaffID string `json:"fulfilledByStaffId"`
}

// Deliver handles POST /orders/:id/deliver
func (h *OrderHandler) Deliver(c *gin.Context) {
	var req DeliverRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orders.MarkDelivered(c.Request.Context(), getTenantID(c), c.Param("id"), req.FulfilledByStaffID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
