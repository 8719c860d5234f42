package commission

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	financeapp "github.com/erp/backoffice/internal/application/finance"
	marketingapp "github.com/erp/backoffice/internal/application/marketing"
	staffapp "github.com/erp/backoffice/internal/application/staff"
	tradeapp "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
)

const tenantID = "acme"

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fixture struct {
	staff        *staffapp.StaffService
	roles        *staffapp.RoleService
	orders       *tradeapp.OrderService
	affiliate    *marketingapp.AffiliateService
	transactions *financeapp.TransactionService
	engine       *Engine
	payouts      *PayoutService
	logs         *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kv.NewMemoryStore()
	opts := []persistence.Option{persistence.WithValidator(persistence.NewValidator())}
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	f := &fixture{logs: logs}
	f.staff = staffapp.NewStaffService(persistence.NewCollection(store, staffapp.StaffSchema(false), opts...), logger)
	f.roles = staffapp.NewRoleService(persistence.NewCollection(store, staffapp.RoleSchema(false), opts...), logger)
	f.affiliate = marketingapp.NewAffiliateService(
		persistence.NewDocument(store, marketingapp.AffiliateDocument, marketing.DefaultAffiliateSettings, opts...), logger)
	f.transactions = financeapp.NewTransactionService(persistence.NewCollection(store, financeapp.TransactionSchema(false), opts...), logger)
	f.engine = NewEngine(f.staff, f.roles, f.affiliate, logger)
	f.orders = tradeapp.NewOrderService(persistence.NewCollection(store, tradeapp.OrderSchema(false), opts...), f.engine, logger)
	f.payouts = NewPayoutService(f.staff, f.roles, f.orders, f.affiliate, f.transactions, logger)
	return f
}

func (f *fixture) addRole(t *testing.T, role staff.Role) {
	t.Helper()
	_, err := f.roles.AddRole(context.Background(), tenantID, role)
	require.NoError(t, err)
}

func (f *fixture) addStaff(t *testing.T, member staff.Staff) {
	t.Helper()
	_, err := f.staff.AddStaff(context.Background(), tenantID, member)
	require.NoError(t, err)
}

func (f *fixture) member(t *testing.T, id string) staff.Staff {
	t.Helper()
	m, err := f.staff.GetStaffMember(context.Background(), tenantID, id)
	require.NoError(t, err)
	return m
}

func salesRole(conditions ...staff.Condition) staff.Role {
	return staff.Role{
		Name: "Sales",
		CommissionRules: []staff.CommissionRule{{
			ID:         "r-5pct",
			Trigger:    staff.TriggerOrderPaid,
			Type:       staff.RulePercentageOfSale,
			Rate:       dec(5),
			Conditions: conditions,
		}},
	}
}

func paidOrder(agent string) trade.Order {
	return trade.Order{
		ID:             "o-1",
		CustomerName:   "Ayu",
		Total:          dec(100000),
		SalesAgentID:   agent,
		PaymentStatus:  trade.PaymentPaid,
		DeliveryStatus: trade.DeliveryPending,
	}
}

func TestEngine_PercentageOfSale(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, salesRole())
	f.addStaff(t, staff.Staff{ID: "s-1", Name: "Budi", Role: "Sales"})

	err := f.engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("s-1"), staff.TriggerOrderPaid)
	require.NoError(t, err)

	m := f.member(t, "s-1")
	assert.True(t, dec(5000).Equal(m.TotalCommission), "got %s", m.TotalCommission)
	assert.True(t, dec(100000).Equal(m.TotalSales), "got %s", m.TotalSales)
}

func TestEngine_FailingConditionStillCountsSales(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, salesRole(staff.Condition{Field: staff.FieldOrderTotal, Operator: staff.OperatorGreaterThan, Value: "200000"}))
	f.addStaff(t, staff.Staff{ID: "s-1", Name: "Budi", Role: "Sales"})

	err := f.engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("s-1"), staff.TriggerOrderPaid)
	require.NoError(t, err)

	m := f.member(t, "s-1")
	assert.True(t, m.TotalCommission.IsZero())
	assert.True(t, dec(100000).Equal(m.TotalSales))
}

func TestEngine_NoSalesAgentChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, salesRole())
	f.addStaff(t, staff.Staff{ID: "s-1", Name: "Budi", Role: "Sales"})

	err := f.engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder(""), staff.TriggerOrderPaid)
	require.NoError(t, err)

	m := f.member(t, "s-1")
	assert.True(t, m.TotalCommission.IsZero())
	assert.True(t, m.TotalSales.IsZero())
}

func TestEngine_MissingRelationsAreSkipped(t *testing.T) {
	f := newFixture(t)
	f.addStaff(t, staff.Staff{ID: "s-1", Name: "Budi", Role: "Ghost"})

	require.NoError(t, f.engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("nobody"), staff.TriggerOrderPaid))
	require.NoError(t, f.engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("s-1"), staff.TriggerOrderPaid))

	assert.Equal(t, 1, f.logs.FilterMessage("Skipping commission, staff member not resolved").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("Skipping commission, role not resolved").Len())
	assert.True(t, f.member(t, "s-1").TotalSales.IsZero())
}

func TestEngine_AgentDeliveryAdvancesTarget(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, staff.Role{
		Name: staff.RoleAgent,
		CommissionRules: []staff.CommissionRule{
			{ID: "r-fee", Trigger: staff.TriggerOrderDelivered, Type: staff.RuleFixedAmount, Rate: dec(10000)},
		},
	})
	f.addStaff(t, staff.Staff{
		ID: "s-2", Name: "Rina", Role: staff.RoleAgent,
		Attributes: map[string]staff.AttributeValue{
			staff.DeliveryTargetAttribute: staff.KPIValue(dec(3), dec(50)),
			"vehicle":                     staff.Text("Van"),
		},
	})

	order := paidOrder("s-1")
	order.FulfilledByStaffID = "s-2"
	order.DeliveryStatus = trade.DeliveryDelivered
	require.NoError(t, f.engine.CalculateCommissionForOrder(context.Background(), tenantID, order, staff.TriggerOrderDelivered))

	m := f.member(t, "s-2")
	assert.True(t, dec(10000).Equal(m.TotalCommission))
	assert.True(t, m.TotalSales.IsZero(), "delivery does not count as a sale")
	kpi, ok := m.Attributes[staff.DeliveryTargetAttribute].AsKPI()
	require.True(t, ok)
	assert.True(t, dec(4).Equal(kpi.Current))
	assert.True(t, dec(50).Equal(kpi.Goal))
	vehicle, _ := m.Attributes["vehicle"].AsText()
	assert.Equal(t, "Van", vehicle)
}

func TestEngine_AffiliateUsesProgramSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addRole(t, staff.Role{Name: staff.RoleAffiliate})
	f.addStaff(t, staff.Staff{ID: "a-1", Name: "Partner", Role: staff.RoleAffiliate})

	require.NoError(t, f.engine.CalculateCommissionForOrder(ctx, tenantID, paidOrder("a-1"), staff.TriggerOrderPaid))
	assert.True(t, f.member(t, "a-1").TotalCommission.IsZero(), "inactive program pays nothing")

	active := marketing.AffiliateActive
	_, err := f.affiliate.UpdateSettings(ctx, tenantID, marketing.AffiliateSettingsPatch{Status: &active})
	require.NoError(t, err)

	require.NoError(t, f.engine.CalculateCommissionForOrder(ctx, tenantID, paidOrder("a-1"), staff.TriggerOrderPaid))
	m := f.member(t, "a-1")
	assert.True(t, dec(10000).Equal(m.TotalCommission))
	assert.True(t, dec(200000).Equal(m.TotalSales))
}

func TestEngine_RepeatedCallsCreditAgain(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, salesRole())
	f.addStaff(t, staff.Staff{ID: "s-1", Name: "Budi", Role: "Sales"})

	for i := 0; i < 2; i++ {
		require.NoError(t, f.engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("s-1"), staff.TriggerOrderPaid))
	}
	assert.True(t, dec(10000).Equal(f.member(t, "s-1").TotalCommission))
}

func TestEngine_ConcurrentCallsKeepEveryCredit(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, salesRole())
	f.addStaff(t, staff.Staff{ID: "s-1", Name: "Budi", Role: "Sales"})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("s-1"), staff.TriggerOrderPaid)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	m := f.member(t, "s-1")
	assert.True(t, dec(50000).Equal(m.TotalCommission), "got %s", m.TotalCommission)
	assert.True(t, dec(1000000).Equal(m.TotalSales), "got %s", m.TotalSales)
}

func TestEngine_ThroughOrderService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addRole(t, salesRole())
	f.addStaff(t, staff.Staff{ID: "s-1", Name: "Budi", Role: "Sales"})

	order := paidOrder("s-1")
	order.PaymentStatus = trade.PaymentPending
	_, err := f.orders.AddOrder(ctx, tenantID, order)
	require.NoError(t, err)

	_, err = f.orders.MarkPaid(ctx, tenantID, "o-1")
	require.NoError(t, err)
	_, err = f.orders.MarkPaid(ctx, tenantID, "o-1")
	require.NoError(t, err)

	assert.True(t, dec(5000).Equal(f.member(t, "s-1").TotalCommission), "second MarkPaid is not a transition")
}

// MockStaffDirectory is a mock implementation of StaffDirectory
type MockStaffDirectory struct {
	mock.Mock
}

func (m *MockStaffDirectory) GetStaffMember(ctx context.Context, tenantID, id string) (staff.Staff, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(staff.Staff), args.Error(1)
}

// AdjustStaff runs fn over the member GetStaffMember returns and records the
// resulting patch
func (m *MockStaffDirectory) AdjustStaff(ctx context.Context, tenantID, id string, fn func(staff.Staff) (staff.Patch, error)) (staff.Staff, error) {
	current, err := m.GetStaffMember(ctx, tenantID, id)
	if err != nil {
		return staff.Staff{}, err
	}
	patch, err := fn(current)
	if err != nil {
		return staff.Staff{}, err
	}
	args := m.Called(ctx, tenantID, id, patch)
	return args.Get(0).(staff.Staff), args.Error(1)
}

func TestEngine_WritesOneMergedUpdateAndPropagatesFailure(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, salesRole())

	dir := new(MockStaffDirectory)
	dir.On("GetStaffMember", mock.Anything, tenantID, "s-1").
		Return(staff.Staff{ID: "s-1", Role: "Sales", TotalCommission: dec(100), TotalSales: dec(1)}, nil)
	dir.On("AdjustStaff", mock.Anything, tenantID, "s-1", mock.MatchedBy(func(p staff.Patch) bool {
		return p.TotalCommission != nil && p.TotalCommission.Equal(dec(5100)) &&
			p.TotalSales != nil && p.TotalSales.Equal(dec(100001)) &&
			p.Attributes == nil && p.PayoutHistory == nil
	})).Return(staff.Staff{}, errors.New("medium unavailable")).Once()

	engine := NewEngine(dir, f.roles, f.affiliate, zap.NewNop())
	err := engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("s-1"), staff.TriggerOrderPaid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medium unavailable")
	dir.AssertExpectations(t)
	dir.AssertNumberOfCalls(t, "AdjustStaff", 1)
}

func TestEngine_UnknownMemberIsNotAnError(t *testing.T) {
	dir := new(MockStaffDirectory)
	dir.On("GetStaffMember", mock.Anything, tenantID, "s-1").Return(staff.Staff{}, shared.NotFound("staff", "s-1"))

	engine := NewEngine(dir, nil, nil, zap.NewNop())
	require.NoError(t, engine.CalculateCommissionForOrder(context.Background(), tenantID, paidOrder("s-1"), staff.TriggerOrderPaid))
	dir.AssertNotCalled(t, "AdjustStaff", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
