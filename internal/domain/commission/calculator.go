// Package commission evaluates commission rules against orders and derives
// the earning items a staff member is owed.
package commission

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/domain/trade"
)

var hundred = decimal.NewFromInt(100)

// EvaluateCondition reports whether order satisfies cond.
//
// Order Total compares numerically; a value that is not a number never
// holds. Product Category "is" holds when any item has the category and
// "is not" when none does; ordering operators never hold for categories.
func EvaluateCondition(cond staff.Condition, order trade.Order) bool {
	switch cond.Field {
	case staff.FieldOrderTotal:
		want, err := decimal.NewFromString(strings.TrimSpace(cond.Value))
		if err != nil {
			return false
		}
		switch cond.Operator {
		case staff.OperatorIs:
			return order.Total.Equal(want)
		case staff.OperatorIsNot:
			return !order.Total.Equal(want)
		case staff.OperatorGreaterThan:
			return order.Total.GreaterThan(want)
		case staff.OperatorLessThan:
			return order.Total.LessThan(want)
		}
	case staff.FieldProductCategory:
		switch cond.Operator {
		case staff.OperatorIs:
			return order.HasCategory(cond.Value)
		case staff.OperatorIsNot:
			return !order.HasCategory(cond.Value)
		}
	}
	return false
}

// RuleApplies reports whether rule reacts to trigger and all of its
// conditions hold. A rule without conditions always holds.
func RuleApplies(rule staff.CommissionRule, order trade.Order, trigger staff.Trigger) bool {
	if rule.Trigger != trigger {
		return false
	}
	for _, cond := range rule.Conditions {
		if !EvaluateCondition(cond, order) {
			return false
		}
	}
	return true
}

// RuleAmount is what rule earns on order, ignoring conditions
func RuleAmount(rule staff.CommissionRule, order trade.Order) decimal.Decimal {
	switch rule.Type {
	case staff.RuleFixedAmount:
		return rule.Rate
	case staff.RulePercentageOfSale:
		return order.Total.Mul(rule.Rate).Div(hundred)
	}
	return decimal.Zero
}

// Calculator computes commission amounts. Affiliate settings apply to
// members of the Affiliate role on paid orders.
type Calculator struct {
	Affiliate marketing.AffiliateSettings
}

// NewCalculator creates a calculator using the given affiliate program
func NewCalculator(affiliate marketing.AffiliateSettings) Calculator {
	return Calculator{Affiliate: affiliate}
}

// Amount returns the commission a member of role earns on order for trigger.
// Every matching rule contributes.
func (c Calculator) Amount(role staff.Role, order trade.Order, trigger staff.Trigger) decimal.Decimal {
	if role.Name == staff.RoleAffiliate && trigger == staff.TriggerOrderPaid {
		return c.Affiliate.Commission(order.Total)
	}

	total := decimal.Zero
	for _, rule := range role.CommissionRules {
		if RuleApplies(rule, order, trigger) {
			total = total.Add(RuleAmount(rule, order))
		}
	}
	return total
}

// Actor returns the staff id credited for trigger on order, empty when the
// order has none
func Actor(order trade.Order, trigger staff.Trigger) string {
	switch trigger {
	case staff.TriggerOrderPaid:
		return order.SalesAgentID
	case staff.TriggerOrderDelivered:
		return order.FulfilledByStaffID
	}
	return ""
}
