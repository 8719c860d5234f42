package handler

import (
	"github.com/erp/backoffice/internal/application"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler of the back office
type Handlers struct {
	System      *SystemHandler
	Staff       *StaffHandler
	Roles       *RoleHandler
	Orders      *OrderHandler
	Products    *ProductHandler
	Finance     *TransactionHandler
	Marketing   *MarketingHandler
	Onboarding  *OnboardingHandler
	Commissions *CommissionHandler
}

// New builds the handlers over services
func New(store kv.Store, services *application.Services, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		System:      NewSystemHandler(store, logger),
		Staff:       NewStaffHandler(services.Staff, services.Payouts, logger),
		Roles:       NewRoleHandler(services.Roles, logger),
		Orders:      NewOrderHandler(services.Orders, logger),
		Products:    NewProductHandler(services.Products, logger),
		Finance:     NewTransactionHandler(services.Transactions, logger),
		Marketing:   NewMarketingHandler(services.Discounts, services.Campaigns, services.Templates, services.Affiliate, logger),
		Onboarding:  NewOnboardingHandler(services.Onboarding, logger),
		Commissions: NewCommissionHandler(services.Commissions, services.Orders, services.Staff, logger),
	}
}
