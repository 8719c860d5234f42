// Package application wires the back-office services over one entity store.
package application

import (
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/erp/backoffice/internal/application/catalog"
	commissionapp "github.com/erp/backoffice/internal/application/commission"
	financeapp "github.com/erp/backoffice/internal/application/finance"
	marketingapp "github.com/erp/backoffice/internal/application/marketing"
	"github.com/erp/backoffice/internal/application/onboarding"
	staffapp "github.com/erp/backoffice/internal/application/staff"
	tradeapp "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/tenant"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
)

// Options controls how collections behave
type Options struct {
	// SeedDemoData fills empty collections with demo records on first read
	SeedDemoData bool
	// ReadLatency is applied to every store read
	ReadLatency time.Duration
}

// Services holds every application service of the back office
type Services struct {
	Staff        *staffapp.StaffService
	Roles        *staffapp.RoleService
	Orders       *tradeapp.OrderService
	Products     *catalogapp.ProductService
	Transactions *financeapp.TransactionService
	Discounts    *marketingapp.DiscountService
	Campaigns    *marketingapp.CampaignService
	Templates    *marketingapp.TemplateService
	Affiliate    *marketingapp.AffiliateService
	Onboarding   *onboarding.Service
	Commissions  *commissionapp.Engine
	Payouts      *commissionapp.PayoutService
}

// NewServices builds the services over store
func NewServices(store kv.Store, opts Options, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	collOpts := []persistence.Option{
		persistence.WithValidator(persistence.NewValidator()),
		persistence.WithReadLatency(opts.ReadLatency),
		persistence.WithLogger(logger),
	}
	seed := opts.SeedDemoData

	s := &Services{}
	s.Staff = staffapp.NewStaffService(
		persistence.NewCollection(store, staffapp.StaffSchema(seed), collOpts...), logger)
	s.Roles = staffapp.NewRoleService(
		persistence.NewCollection(store, staffapp.RoleSchema(seed), collOpts...), logger)
	s.Products = catalogapp.NewProductService(
		persistence.NewCollection(store, catalogapp.ProductSchema(seed), collOpts...), logger)
	s.Transactions = financeapp.NewTransactionService(
		persistence.NewCollection(store, financeapp.TransactionSchema(seed), collOpts...), logger)
	s.Discounts = marketingapp.NewDiscountService(
		persistence.NewCollection(store, marketingapp.DiscountSchema(seed), collOpts...), logger)
	s.Campaigns = marketingapp.NewCampaignService(
		persistence.NewCollection(store, marketingapp.CampaignSchema(seed), collOpts...), logger)

	libraries := make(marketingapp.TemplateLibraries, len(marketing.Channels))
	for _, channel := range marketing.Channels {
		libraries[channel] = persistence.NewCollection(store, marketingapp.TemplateSchema(channel, seed), collOpts...)
	}
	s.Templates = marketingapp.NewTemplateService(libraries, logger)

	s.Affiliate = marketingapp.NewAffiliateService(
		persistence.NewDocument(store, marketingapp.AffiliateDocument, marketing.DefaultAffiliateSettings, collOpts...), logger)
	s.Onboarding = onboarding.NewService(
		persistence.NewGlobalDocument[tenant.OnboardingConfig](store, onboarding.ConfigDocument, nil, collOpts...), logger)

	s.Commissions = commissionapp.NewEngine(s.Staff, s.Roles, s.Affiliate, logger)
	s.Orders = tradeapp.NewOrderService(
		persistence.NewCollection(store, tradeapp.OrderSchema(seed), collOpts...), s.Commissions, logger)
	s.Payouts = commissionapp.NewPayoutService(s.Staff, s.Roles, s.Orders, s.Affiliate, s.Transactions, logger)

	return s
}
