// Package commission applies commission rules to orders and runs the
// payout worksheet.
package commission

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/commission"
	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
)

// StaffDirectory reads and adjusts staff members. AdjustStaff derives the
// patch from the stored member with no interleaving write.
type StaffDirectory interface {
	GetStaffMember(ctx context.Context, tenantID, id string) (staff.Staff, error)
	AdjustStaff(ctx context.Context, tenantID, id string, fn func(current staff.Staff) (staff.Patch, error)) (staff.Staff, error)
}

// RoleDirectory looks up roles by name
type RoleDirectory interface {
	GetRole(ctx context.Context, tenantID, name string) (staff.Role, error)
	GetRoles(ctx context.Context, tenantID string) ([]staff.Role, error)
}

// AffiliateSettingsReader reads the affiliate program settings
type AffiliateSettingsReader interface {
	GetSettings(ctx context.Context, tenantID string) (marketing.AffiliateSettings, error)
}

// Engine credits staff members for order events
type Engine struct {
	staff     StaffDirectory
	roles     RoleDirectory
	affiliate AffiliateSettingsReader
	logger    *zap.Logger
}

// NewEngine creates a new commission engine
func NewEngine(
	staff StaffDirectory,
	roles RoleDirectory,
	affiliate AffiliateSettingsReader,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		staff:     staff,
		roles:     roles,
		affiliate: affiliate,
		logger:    logger,
	}
}

// CalculateCommissionForOrder credits the staff member responsible for
// trigger on order. Orders without that staff member, or whose staff member
// or role cannot be found, are skipped without error. All balance changes
// are written as one staff update; a failing write is returned.
//
// Repeated calls for the same order and trigger credit again.
func (e *Engine) CalculateCommissionForOrder(ctx context.Context, tenantID string, order trade.Order, trigger staff.Trigger) error {
	ctx, span := telemetry.StartSpan(ctx, "commission.calculate",
		telemetry.AttrTenantID, tenantID,
		telemetry.AttrOrderID, order.ID,
		telemetry.AttrTrigger, string(trigger),
	)
	defer span.End()

	actorID := commission.Actor(order, trigger)
	if actorID == "" {
		return nil
	}
	telemetry.SetAttributes(span, telemetry.AttrStaffID, actorID)

	log := e.logger.With(
		zap.String("tenant_id", tenantID),
		zap.String("order_id", order.ID),
		zap.String("staff_id", actorID),
		zap.String("trigger", string(trigger)),
	)

	member, err := e.staff.GetStaffMember(ctx, tenantID, actorID)
	if err != nil {
		log.Warn("Skipping commission, staff member not resolved", zap.Error(err))
		return nil
	}
	role, err := e.roles.GetRole(ctx, tenantID, member.Role)
	if err != nil {
		log.Warn("Skipping commission, role not resolved", zap.String("role", member.Role), zap.Error(err))
		return nil
	}

	calc := commission.NewCalculator(marketing.DefaultAffiliateSettings())
	if role.Name == staff.RoleAffiliate && trigger == staff.TriggerOrderPaid {
		settings, err := e.affiliate.GetSettings(ctx, tenantID)
		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		calc = commission.NewCalculator(settings)
	}
	amount := calc.Amount(role, order, trigger)

	applied := false
	_, err = e.staff.AdjustStaff(ctx, tenantID, member.ID, func(current staff.Staff) (staff.Patch, error) {
		patch := balancePatch(current, role, order, trigger, amount)
		applied = !patch.Empty()
		return patch, nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if !applied {
		return nil
	}

	log.Info("Commission applied",
		zap.String("role", role.Name),
		zap.String("amount", amount.String()))
	return nil
}

// balancePatch merges every balance change of one order event
func balancePatch(member staff.Staff, role staff.Role, order trade.Order, trigger staff.Trigger, amount decimal.Decimal) staff.Patch {
	var patch staff.Patch

	if !amount.IsZero() {
		total := member.TotalCommission.Add(amount)
		patch.TotalCommission = &total
	}

	if trigger == staff.TriggerOrderPaid {
		sales := member.TotalSales.Add(order.Total)
		patch.TotalSales = &sales
	}

	if role.Name == staff.RoleAgent && trigger == staff.TriggerOrderDelivered {
		if target, ok := member.Attributes[staff.DeliveryTargetAttribute]; ok {
			if next, ok := target.IncrementCurrent(decimal.NewFromInt(1)); ok {
				attrs := make(map[string]staff.AttributeValue, len(member.Attributes))
				for k, v := range member.Attributes {
					attrs[k] = v
				}
				attrs[staff.DeliveryTargetAttribute] = next
				patch.Attributes = &attrs
			}
		}
	}

	return patch
}
