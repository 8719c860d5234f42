package staff

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/staff"
)

// DemoRoles is the role set new tenants start with
func DemoRoles() []staff.Role {
	return []staff.Role{
		{
			Name:        "Admin",
			Description: "Full access to the back office",
			Permissions: map[string][]string{
				"orders": {"*"}, "products": {"*"}, "staff": {"*"}, "marketing": {"*"}, "finance": {"*"},
			},
			CommissionRules: []staff.CommissionRule{},
		},
		{
			Name:        "Sales",
			Description: "Sells to customers and earns on paid orders",
			Permissions: map[string][]string{"orders": {"view", "create", "edit"}, "products": {"view"}},
			CommissionRules: []staff.CommissionRule{
				{
					ID:      "rule-sales-percentage",
					Name:    "5% of every paid order",
					Trigger: staff.TriggerOrderPaid,
					Type:    staff.RulePercentageOfSale,
					Rate:    decimal.NewFromInt(5),
				},
				{
					ID:      "rule-sales-big-ticket",
					Name:    "Big ticket bonus",
					Trigger: staff.TriggerOrderPaid,
					Type:    staff.RuleFixedAmount,
					Rate:    decimal.NewFromInt(50000),
					Conditions: []staff.Condition{
						{Field: staff.FieldOrderTotal, Operator: staff.OperatorGreaterThan, Value: "1000000"},
					},
				},
			},
		},
		{
			Name:        staff.RoleAgent,
			Description: "Delivers orders to customers",
			Permissions: map[string][]string{"orders": {"view", "edit"}},
			CommissionRules: []staff.CommissionRule{
				{
					ID:      "rule-agent-delivery",
					Name:    "Flat fee per delivery",
					Trigger: staff.TriggerOrderDelivered,
					Type:    staff.RuleFixedAmount,
					Rate:    decimal.NewFromInt(10000),
				},
			},
			AssignableAttributes: []staff.AttributeDefinition{
				{Key: staff.DeliveryTargetAttribute, Label: "Delivery target", Type: staff.AttributeKPI},
				{Key: "vehicle", Label: "Vehicle", Type: staff.AttributeText},
			},
		},
		{
			Name:            staff.RoleAffiliate,
			Description:     "External partner paid through the affiliate program",
			Permissions:     map[string][]string{"products": {"view"}},
			CommissionRules: []staff.CommissionRule{},
		},
	}
}

// DemoStaff is the team new tenants start with. Balances match the
// commissions earned on the demo orders.
func DemoStaff() []staff.Staff {
	joined := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []staff.Staff{
		{
			ID:              "staff-admin",
			Name:            "Dewi Lestari",
			Email:           "dewi@example.com",
			Role:            "Admin",
			Status:          staff.StatusActive,
			TotalCommission: decimal.Zero,
			PaidCommission:  decimal.Zero,
			TotalSales:      decimal.Zero,
			PayoutHistory:   []staff.Payout{},
			JoinedAt:        joined,
		},
		{
			ID:              "staff-sales",
			Name:            "Budi Santoso",
			Email:           "budi@example.com",
			Role:            "Sales",
			Status:          staff.StatusActive,
			TotalCommission: decimal.NewFromInt(12000),
			PaidCommission:  decimal.Zero,
			TotalSales:      decimal.NewFromInt(240000),
			PayoutHistory:   []staff.Payout{},
			JoinedAt:        joined,
		},
		{
			ID:              "staff-agent",
			Name:            "Rina Wijaya",
			Email:           "rina@example.com",
			Role:            staff.RoleAgent,
			Status:          staff.StatusActive,
			TotalCommission: decimal.NewFromInt(10000),
			PaidCommission:  decimal.Zero,
			TotalSales:      decimal.Zero,
			PayoutHistory:   []staff.Payout{},
			Attributes: map[string]staff.AttributeValue{
				staff.DeliveryTargetAttribute: staff.KPIValue(decimal.NewFromInt(1), decimal.NewFromInt(100)),
				"vehicle":                     staff.Text("Motorbike"),
			},
			JoinedAt: joined,
		},
	}
}
