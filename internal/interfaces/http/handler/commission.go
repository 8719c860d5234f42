package handler

import (
	"strings"

	commissionapp "github.com/erp/backoffice/internal/application/commission"
	staffapp "github.com/erp/backoffice/internal/application/staff"
	tradeapp "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/commission"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommissionHandler exposes the commission engine for manual recalculation
type CommissionHandler struct {
	BaseHandler
	engine *commissionapp.Engine
	orders *tradeapp.OrderService
	staff  *staffapp.StaffService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(
	engine *commissionapp.Engine,
	orders *tradeapp.OrderService,
	staffService *staffapp.StaffService,
	logger *zap.Logger,
) *CommissionHandler {
	return &CommissionHandler{
		BaseHandler: BaseHandler{logger: logger},
		engine:      engine,
		orders:      orders,
		staff:       staffService,
	}
}

// CalculateRequest is the body of POST /commissions/calculate
type CalculateRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Trigger string `json:"trigger" binding:"required"`
}

// parseTrigger accepts a trigger name or its slug
func parseTrigger(s string) (staff.Trigger, error) {
	s = strings.TrimSpace(s)
	for _, t := range []staff.Trigger{staff.TriggerOrderPaid, staff.TriggerOrderDelivered} {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Slug()) {
			return t, nil
		}
	}
	return "", shared.InvalidInput("unknown trigger %q", s)
}

// Calculate handles POST /commissions/calculate. It runs the engine for an
// existing order and answers with the staff member the trigger credits, or
// an empty list when the order names nobody for it.
// Calculations are not deduplicated; calling twice credits twice.
func (h *CommissionHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	trigger, err := parseTrigger(req.Trigger)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	tenantID := getTenantID(c)
	order, err := h.orders.GetOrder(ctx, tenantID, req.OrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.engine.CalculateCommissionForOrder(ctx, tenantID, order, trigger); err != nil {
		h.HandleError(c, err)
		return
	}

	credited := make([]staff.Staff, 0, 1)
	if id := commission.Actor(order, trigger); id != "" {
		if member, err := h.staff.GetStaffMember(ctx, tenantID, id); err == nil {
			credited = append(credited, member)
		}
	}
	h.Success(c, credited)
}
