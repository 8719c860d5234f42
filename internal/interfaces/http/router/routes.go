package router

import (
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Permission modules checked against the caller's role
const (
	ModuleStaff     = "staff"
	ModuleOrders    = "orders"
	ModuleProducts  = "products"
	ModuleFinance   = "finance"
	ModuleMarketing = "marketing"
)

// DomainGroups returns the route groups of the back office. perm may be nil,
// in which case no role checks are applied.
func DomainGroups(h *handler.Handlers, perm *middleware.PermissionMiddleware) []RouteRegistrar {
	require := func(module string) []gin.HandlerFunc {
		if perm == nil {
			return nil
		}
		return []gin.HandlerFunc{perm.Require(module)}
	}

	staff := NewDomainGroup("staff", "/staff").Use(require(ModuleStaff)...)
	staff.GET("", h.Staff.List).
		POST("", h.Staff.Create).
		GET("/:id", h.Staff.Get).
		PATCH("/:id", h.Staff.Update).
		DELETE("/:id", h.Staff.Delete).
		POST("/:id/bonuses", h.Staff.AwardBonus)

	payouts := NewDomainGroup("payouts", "/staff/:id").Use(require(ModuleFinance)...)
	payouts.GET("/payout-worksheet", h.Staff.Worksheet).
		POST("/payouts", h.Staff.ConfirmPayout)

	roles := NewDomainGroup("roles", "/roles").Use(require(ModuleStaff)...)
	roles.GET("", h.Roles.List).
		POST("", h.Roles.Create).
		GET("/:name", h.Roles.Get).
		PATCH("/:name", h.Roles.Update).
		DELETE("/:name", h.Roles.Delete)

	orders := NewDomainGroup("orders", "/orders").Use(require(ModuleOrders)...)
	orders.GET("", h.Orders.List).
		POST("", h.Orders.Create).
		GET("/:id", h.Orders.Get).
		PATCH("/:id", h.Orders.Update).
		POST("/:id/pay", h.Orders.Pay).
		POST("/:id/deliver", h.Orders.Deliver)

	products := NewDomainGroup("products", "/products").Use(require(ModuleProducts)...)
	products.GET("", h.Products.List).
		POST("", h.Products.Create).
		GET("/inventory", h.Products.Inventory).
		GET("/:id", h.Products.Get).
		PATCH("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete)

	transactions := NewDomainGroup("transactions", "/transactions").Use(require(ModuleFinance)...)
	transactions.GET("", h.Finance.List).
		POST("", h.Finance.Create).
		GET("/summary", h.Finance.Summary)

	commissions := NewDomainGroup("commissions", "/commissions").Use(require(ModuleFinance)...)
	commissions.POST("/calculate", h.Commissions.Calculate)

	discounts := NewDomainGroup("discounts", "/discounts").Use(require(ModuleMarketing)...)
	discounts.GET("", h.Marketing.ListDiscounts).
		POST("", h.Marketing.CreateDiscount).
		GET("/:code", h.Marketing.GetDiscount).
		PATCH("/:code", h.Marketing.UpdateDiscount).
		DELETE("/:code", h.Marketing.DeleteDiscount)

	campaigns := NewDomainGroup("campaigns", "/campaigns").Use(require(ModuleMarketing)...)
	campaigns.GET("", h.Marketing.ListCampaigns).
		POST("", h.Marketing.CreateCampaign).
		GET("/:id", h.Marketing.GetCampaign).
		PATCH("/:id", h.Marketing.UpdateCampaign)

	templates := NewDomainGroup("templates", "/templates/:channel").Use(require(ModuleMarketing)...)
	templates.GET("", h.Marketing.ListTemplates).
		POST("", h.Marketing.CreateTemplate).
		GET("/:id", h.Marketing.GetTemplate).
		PATCH("/:id", h.Marketing.UpdateTemplate).
		DELETE("/:id", h.Marketing.DeleteTemplate).
		POST("/:id/render", h.Marketing.RenderTemplate)

	affiliate := NewDomainGroup("affiliate", "/affiliate").Use(require(ModuleMarketing)...)
	affiliate.GET("/settings", h.Marketing.GetAffiliateSettings).
		PATCH("/settings", h.Marketing.UpdateAffiliateSettings)

	onboarding := NewDomainGroup("onboarding", "/onboarding")
	onboarding.GET("", h.Onboarding.GetConfig).
		PUT("", h.Onboarding.SaveConfig)

	return []RouteRegistrar{
		staff, payouts, roles, orders, products, transactions, commissions,
		discounts, campaigns, templates, affiliate, onboarding,
	}
}
