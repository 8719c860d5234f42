package commission

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erp/backoffice/internal/domain/commission"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
)

// OrderReader lists orders
type OrderReader interface {
	GetOrders(ctx context.Context, tenantID string) ([]trade.Order, error)
}

// TransactionRecorder records ledger entries
type TransactionRecorder interface {
	AddTransaction(ctx context.Context, tenantID string, tx finance.Transaction) (finance.Transaction, error)
}

// DefaultCurrency is used for payouts that name no currency
const DefaultCurrency = "IDR"

// Worksheet is the payout review of one staff member
type Worksheet struct {
	StaffID        string            `json:"staffId"`
	StaffName      string            `json:"staffName"`
	Role           string            `json:"role"`
	Items          []commission.Item `json:"items"`
	Totals         commission.Totals `json:"totals"`
	Balance        decimal.Decimal   `json:"balance"`
	PaidCommission decimal.Decimal   `json:"paidCommission"`
}

// Outstanding returns the unpaid items
func (w Worksheet) Outstanding() []commission.Item {
	var items []commission.Item
	for _, item := range w.Items {
		if !item.Paid {
			items = append(items, item)
		}
	}
	return items
}

func (w Worksheet) item(id string) (commission.Item, bool) {
	i := slices.IndexFunc(w.Items, func(item commission.Item) bool { return item.ID == id })
	if i < 0 {
		return commission.Item{}, false
	}
	return w.Items[i], true
}

// ConfirmPayoutInput approves a payment covering some earning items
type ConfirmPayoutInput struct {
	StaffID  string          `json:"staffId"`
	ItemIDs  []string        `json:"itemIds"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Notes    string          `json:"notes"`
}

// PayoutResult is what a confirmed payout wrote
type PayoutResult struct {
	Payout      staff.Payout        `json:"payout"`
	Staff       staff.Staff         `json:"staff"`
	Transaction finance.Transaction `json:"transaction"`
}

// PayoutService derives payout worksheets and confirms payouts
type PayoutService struct {
	staff        StaffDirectory
	roles        RoleDirectory
	orders       OrderReader
	affiliate    AffiliateSettingsReader
	transactions TransactionRecorder
	logger       *zap.Logger
	now          func() time.Time
}

// NewPayoutService creates a new payout service
func NewPayoutService(
	staff StaffDirectory,
	roles RoleDirectory,
	orders OrderReader,
	affiliate AffiliateSettingsReader,
	transactions TransactionRecorder,
	logger *zap.Logger,
) *PayoutService {
	return &PayoutService{
		staff:        staff,
		roles:        roles,
		orders:       orders,
		affiliate:    affiliate,
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// Worksheet re-derives every earning item of a staff member from the order
// history and marks those already paid out. It has no side effects.
func (s *PayoutService) Worksheet(ctx context.Context, tenantID, staffID string) (Worksheet, error) {
	ctx, span := telemetry.StartSpan(ctx, "commission.worksheet",
		telemetry.AttrTenantID, tenantID,
		telemetry.AttrStaffID, staffID,
	)
	defer span.End()

	var (
		member   staff.Staff
		roles    []staff.Role
		orders   []trade.Order
		settings marketing.AffiliateSettings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		member, err = s.staff.GetStaffMember(gctx, tenantID, staffID)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = s.roles.GetRoles(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.GetOrders(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.affiliate.GetSettings(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return Worksheet{}, err
	}

	role := staff.Role{Name: member.Role}
	if i := slices.IndexFunc(roles, func(r staff.Role) bool { return r.Name == member.Role }); i >= 0 {
		role = roles[i]
	} else {
		s.logger.Warn("Role not found for payout worksheet, only bonuses are listed",
			zap.String("tenant_id", tenantID),
			zap.String("staff_id", staffID),
			zap.String("role", member.Role))
	}

	items := commission.NewCalculator(settings).DeriveItems(member, role, orders)
	return Worksheet{
		StaffID:        member.ID,
		StaffName:      member.Name,
		Role:           member.Role,
		Items:          items,
		Totals:         commission.Sum(items),
		Balance:        member.TotalCommission,
		PaidCommission: member.PaidCommission,
	}, nil
}

// ConfirmPayout records a payment covering the given unpaid items. The
// unpaid balance drops by the amount, never below zero, and an expense is
// added to the ledger.
func (s *PayoutService) ConfirmPayout(ctx context.Context, tenantID string, input ConfirmPayoutInput) (PayoutResult, error) {
	if !input.Amount.IsPositive() {
		return PayoutResult{}, shared.InvalidInput("payout amount must be positive, got %s", input.Amount)
	}
	currency := input.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	currency, err := shared.ParseCurrency(currency)
	if err != nil {
		return PayoutResult{}, err
	}
	itemIDs := dedupe(input.ItemIDs)
	if len(itemIDs) == 0 {
		return PayoutResult{}, shared.InvalidInput("payout must cover at least one earning item")
	}

	ws, err := s.Worksheet(ctx, tenantID, input.StaffID)
	if err != nil {
		return PayoutResult{}, err
	}
	for _, id := range itemIDs {
		item, ok := ws.item(id)
		if !ok {
			return PayoutResult{}, shared.InvalidInput("earning item %q not found for staff %q", id, input.StaffID)
		}
		if item.Paid {
			return PayoutResult{}, shared.NewDomainErrorf(shared.ErrInvalidState.Code, "earning item %q is already paid", id)
		}
	}

	payout := staff.Payout{
		ID:          uuid.NewString(),
		Date:        s.now().UTC(),
		Amount:      input.Amount,
		PaidItemIDs: itemIDs,
		Currency:    currency,
		Notes:       input.Notes,
	}
	updated, err := s.staff.AdjustStaff(ctx, tenantID, input.StaffID, func(member staff.Staff) (staff.Patch, error) {
		paidItems := member.PaidItemIDs()
		for _, id := range itemIDs {
			if paidItems[id] {
				return staff.Patch{}, shared.NewDomainErrorf(shared.ErrInvalidState.Code, "earning item %q is already paid", id)
			}
		}
		history := append(append([]staff.Payout{}, member.PayoutHistory...), payout)
		balance := decimal.Max(decimal.Zero, member.TotalCommission.Sub(input.Amount))
		paid := member.PaidCommission.Add(input.Amount)
		return staff.Patch{
			PayoutHistory:   &history,
			TotalCommission: &balance,
			PaidCommission:  &paid,
		}, nil
	})
	if err != nil {
		return PayoutResult{}, err
	}

	tx, err := s.transactions.AddTransaction(ctx, tenantID, finance.Transaction{
		Date:        payout.Date,
		Description: fmt.Sprintf("Commission payout to %s", updated.Name),
		Amount:      input.Amount,
		Currency:    currency,
		Type:        finance.TypeExpense,
		Category:    finance.CategoryCommissionPayout,
		Status:      finance.StatusCompleted,
		Reference:   payout.ID,
	})
	if err != nil {
		return PayoutResult{}, fmt.Errorf("record payout %s in ledger: %w", payout.ID, err)
	}

	s.logger.Info("Payout confirmed",
		zap.String("tenant_id", tenantID),
		zap.String("staff_id", updated.ID),
		zap.String("payout_id", payout.ID),
		zap.String("amount", input.Amount.String()),
		zap.Int("items", len(itemIDs)))
	return PayoutResult{Payout: payout, Staff: updated, Transaction: tx}, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
