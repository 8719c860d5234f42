package handler

import (
	commissionapp "github.com/erp/backoffice/internal/application/commission"
	staffapp "github.com/erp/backoffice/internal/application/staff"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StaffHandler handles staff, bonus and payout HTTP requests
type StaffHandler struct {
	BaseHandler
	staff   *staffapp.StaffService
	payouts *commissionapp.PayoutService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *staffapp.StaffService, payouts *commissionapp.PayoutService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{
		BaseHandler: BaseHandler{logger: logger},
		staff:       staffService,
		payouts:     payouts,
	}
}

// List handles GET /staff
func (h *StaffHandler) List(c *gin.Context) {
	members, err := h.staff.GetStaff(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, members, func(m staff.Staff, term string) bool {
		return containsFold(term, m.Name, m.Email, m.Role)
	})
}

// Get handles GET /staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	member, err := h.staff.GetStaffMember(c.Request.Context(), getTenantID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Create handles POST /staff
func (h *StaffHandler) Create(c *gin.Context) {
	var req staff.Staff
	if !h.bindJSON(c, &req) {
		return
	}
	member, err := h.staff.AddStaff(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// Update handles PATCH /staff/:id. Only profile fields are accepted.
func (h *StaffHandler) Update(c *gin.Context) {
	var profile staff.ProfilePatch
	if !h.bindJSON(c, &profile) {
		return
	}
	member, err := h.staff.UpdateStaff(c.Request.Context(), getTenantID(c), c.Param("id"), profile)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Delete handles DELETE /staff/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staff.DeleteStaff(c.Request.Context(), getTenantID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AwardBonus handles POST /staff/:id/bonuses
func (h *StaffHandler) AwardBonus(c *gin.Context) {
	var req staffapp.AwardBonusInput
	if !h.bindJSON(c, &req) {
		return
	}
	member, err := h.staff.AwardBonus(c.Request.Context(), getTenantID(c), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// Worksheet handles GET /staff/:id/payout-worksheet
func (h *StaffHandler) Worksheet(c *gin.Context) {
	sheet, err := h.payouts.Worksheet(c.Request.Context(), getTenantID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sheet)
}

// ConfirmPayoutRequest is the body of POST /staff/:id/payouts
type ConfirmPayoutRequest struct {
	ItemIDs  []string        `json:"itemIds" binding:"required,min=1"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Notes    string          `json:"notes"`
}

// ConfirmPayout handles POST /staff/:id/payouts
func (h *StaffHandler) ConfirmPayout(c *gin.Context) {
	var req ConfirmPayoutRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.payouts.ConfirmPayout(c.Request.Context(), getTenantID(c), commissionapp.ConfirmPayoutInput{
		StaffID:  c.Param("id"),
		ItemIDs:  req.ItemIDs,
		Amount:   req.Amount,
		Currency: req.Currency,
		Notes:    req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
