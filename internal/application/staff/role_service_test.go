package staff

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
)

func newRoleService(seed bool) *RoleService {
	records := persistence.NewCollection(kv.NewMemoryStore(), RoleSchema(seed),
		persistence.WithValidator(persistence.NewValidator()))
	return NewRoleService(records, zap.NewNop())
}

func TestRoleService_KeyedByName(t *testing.T) {
	svc := newRoleService(true)
	ctx := context.Background()

	agent, err := svc.GetRole(ctx, "acme", staff.RoleAgent)
	require.NoError(t, err)
	assert.Len(t, agent.RulesFor(staff.TriggerOrderDelivered), 1)

	_, err = svc.GetRole(ctx, "acme", "Janitor")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.AddRole(ctx, "acme", staff.Role{Name: staff.RoleAgent})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestRoleService_AddRoleAssignsRuleIDs(t *testing.T) {
	svc := newRoleService(false)
	ctx := context.Background()

	role, err := svc.AddRole(ctx, "acme", staff.Role{
		Name: "Closer",
		CommissionRules: []staff.CommissionRule{
			{Trigger: staff.TriggerOrderPaid, Type: staff.RuleFixedAmount, Rate: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	require.Len(t, role.CommissionRules, 1)
	assert.NotEmpty(t, role.CommissionRules[0].ID)

	_, err = svc.AddRole(ctx, "acme", staff.Role{
		Name: "Broken",
		CommissionRules: []staff.CommissionRule{
			{Trigger: "On Order Refunded", Type: staff.RuleFixedAmount},
		},
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestRoleService_UpdateRole(t *testing.T) {
	svc := newRoleService(true)
	ctx := context.Background()

	rules := []staff.CommissionRule{
		{Trigger: staff.TriggerOrderPaid, Type: staff.RulePercentageOfSale, Rate: decimal.NewFromInt(7)},
	}
	updated, err := svc.UpdateRole(ctx, "acme", "Sales", staff.RolePatch{CommissionRules: &rules})
	require.NoError(t, err)
	require.Len(t, updated.CommissionRules, 1)
	assert.NotEmpty(t, updated.CommissionRules[0].ID)
	assert.Empty(t, rules[0].ID, "caller slice is not modified")
	assert.NotEmpty(t, updated.Description)

	_, err = svc.UpdateRole(ctx, "acme", "Janitor", staff.RolePatch{})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, svc.DeleteRole(ctx, "acme", "Sales"))
	_, err = svc.GetRole(ctx, "acme", "Sales")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
