package staff

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
)

func newStaffService(t *testing.T, seed bool) (*StaffService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	records := persistence.NewCollection(kv.NewMemoryStore(), StaffSchema(seed),
		persistence.WithValidator(persistence.NewValidator()))
	return NewStaffService(records, zap.New(core)), logs
}

func TestStaffService_SeedsDemoTeam(t *testing.T) {
	svc, _ := newStaffService(t, true)
	ctx := context.Background()

	members, err := svc.GetStaff(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, members, len(DemoStaff()))

	agent, err := svc.GetStaffMember(ctx, "acme", "staff-agent")
	require.NoError(t, err)
	kpi, ok := agent.Attributes[staff.DeliveryTargetAttribute].AsKPI()
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(100).Equal(kpi.Goal))
}

func TestStaffService_AddStaff(t *testing.T) {
	svc, logs := newStaffService(t, true)
	ctx := context.Background()

	created, err := svc.AddStaff(ctx, "acme", staff.Staff{Name: "Sari", Role: "Sales"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, staff.StatusActive, created.Status)
	assert.False(t, created.JoinedAt.IsZero())
	assert.NotNil(t, created.PayoutHistory)

	members, err := svc.GetStaff(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, created.ID, members[0].ID, "new members are listed first")
	assert.Equal(t, 1, logs.FilterMessage("Staff member added").Len())

	_, err = svc.AddStaff(ctx, "acme", staff.Staff{ID: created.ID, Name: "Dup", Role: "Sales"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.AddStaff(ctx, "acme", staff.Staff{Name: "No role"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestStaffService_UpdateAndDelete(t *testing.T) {
	svc, _ := newStaffService(t, false)
	ctx := context.Background()

	created, err := svc.AddStaff(ctx, "acme", staff.Staff{ID: "s-1", Name: "Sari", Role: "Sales"})
	require.NoError(t, err)

	status := staff.StatusOnLeave
	updated, err := svc.UpdateStaff(ctx, "acme", created.ID, staff.ProfilePatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, staff.StatusOnLeave, updated.Status)
	assert.Equal(t, "Sari", updated.Name)

	_, err = svc.UpdateStaff(ctx, "acme", "missing", staff.ProfilePatch{Status: &status})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, svc.DeleteStaff(ctx, "acme", created.ID))
	require.NoError(t, svc.DeleteStaff(ctx, "acme", created.ID))

	_, err = svc.GetStaffMember(ctx, "acme", created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStaffService_AddStaffStartsWithEmptyBalances(t *testing.T) {
	svc, _ := newStaffService(t, false)
	ctx := context.Background()

	created, err := svc.AddStaff(ctx, "acme", staff.Staff{
		ID: "s-1", Name: "Sari", Role: "Sales",
		TotalCommission: decimal.NewFromInt(999999),
		PaidCommission:  decimal.NewFromInt(10),
		TotalSales:      decimal.NewFromInt(20),
		PayoutHistory:   []staff.Payout{{ID: "p-fake", Amount: decimal.NewFromInt(5)}},
		Bonuses:         []staff.Bonus{{ID: "b-fake", Amount: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	stored, err := svc.GetStaffMember(ctx, "acme", created.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalCommission.IsZero())
	assert.True(t, stored.PaidCommission.IsZero())
	assert.True(t, stored.TotalSales.IsZero())
	assert.Empty(t, stored.PayoutHistory)
	assert.Empty(t, stored.Bonuses)
}

func TestStaffService_UpdateStaffKeepsBalances(t *testing.T) {
	svc, _ := newStaffService(t, false)
	ctx := context.Background()

	_, err := svc.AddStaff(ctx, "acme", staff.Staff{ID: "s-1", Name: "Sari", Role: "Sales"})
	require.NoError(t, err)
	_, err = svc.AwardBonus(ctx, "acme", "s-1", AwardBonusInput{Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	name := "Sari W."
	updated, err := svc.UpdateStaff(ctx, "acme", "s-1", staff.ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Sari W.", updated.Name)
	assert.True(t, decimal.NewFromInt(500).Equal(updated.TotalCommission))
	assert.Len(t, updated.Bonuses, 1)
}

func TestStaffService_AdjustStaff(t *testing.T) {
	svc, _ := newStaffService(t, false)
	ctx := context.Background()

	_, err := svc.AddStaff(ctx, "acme", staff.Staff{ID: "s-1", Name: "Sari", Role: "Sales"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AdjustStaff(ctx, "acme", "s-1", func(current staff.Staff) (staff.Patch, error) {
				total := current.TotalCommission.Add(decimal.NewFromInt(100))
				return staff.Patch{TotalCommission: &total}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	member, err := svc.GetStaffMember(ctx, "acme", "s-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(member.TotalCommission), "got %s", member.TotalCommission)

	unchanged, err := svc.AdjustStaff(ctx, "acme", "s-1", func(staff.Staff) (staff.Patch, error) {
		return staff.Patch{}, nil
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(unchanged.TotalCommission))

	_, err = svc.AdjustStaff(ctx, "acme", "missing", func(staff.Staff) (staff.Patch, error) {
		return staff.Patch{}, nil
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStaffService_TenantsAreIsolated(t *testing.T) {
	svc, _ := newStaffService(t, false)
	ctx := context.Background()

	_, err := svc.AddStaff(ctx, "acme", staff.Staff{ID: "s-1", Name: "Sari", Role: "Sales"})
	require.NoError(t, err)

	other, err := svc.GetStaff(ctx, "globex")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStaffService_AwardBonus(t *testing.T) {
	svc, _ := newStaffService(t, false)
	ctx := context.Background()

	_, err := svc.AddStaff(ctx, "acme", staff.Staff{ID: "s-1", Name: "Sari", Role: "Sales"})
	require.NoError(t, err)

	updated, err := svc.AwardBonus(ctx, "acme", "s-1", AwardBonusInput{Amount: decimal.NewFromInt(500), Reason: "Top seller"})
	require.NoError(t, err)
	require.Len(t, updated.Bonuses, 1)
	assert.Equal(t, "Top seller", updated.Bonuses[0].Reason)
	assert.NotEmpty(t, updated.Bonuses[0].ID)
	assert.True(t, decimal.NewFromInt(500).Equal(updated.TotalCommission))

	updated, err = svc.AwardBonus(ctx, "acme", "s-1", AwardBonusInput{Amount: decimal.NewFromInt(250), Reason: "Referral"})
	require.NoError(t, err)
	assert.Len(t, updated.Bonuses, 2)
	assert.True(t, decimal.NewFromInt(750).Equal(updated.TotalCommission))

	_, err = svc.AwardBonus(ctx, "acme", "s-1", AwardBonusInput{Amount: decimal.Zero})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.AwardBonus(ctx, "acme", "missing", AwardBonusInput{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
