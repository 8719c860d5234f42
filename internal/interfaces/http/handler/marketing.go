package handler

import (
	marketingapp "github.com/erp/backoffice/internal/application/marketing"
	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarketingHandler handles discounts, campaigns, templates and the
// affiliate program
type MarketingHandler struct {
	BaseHandler
	discounts *marketingapp.DiscountService
	campaigns *marketingapp.CampaignService
	templates *marketingapp.TemplateService
	affiliate *marketingapp.AffiliateService
}

// NewMarketingHandler creates a new marketing handler
func NewMarketingHandler(
	discounts *marketingapp.DiscountService,
	campaigns *marketingapp.CampaignService,
	templates *marketingapp.TemplateService,
	affiliate *marketingapp.AffiliateService,
	logger *zap.Logger,
) *MarketingHandler {
	return &MarketingHandler{
		BaseHandler: BaseHandler{logger: logger},
		discounts:   discounts,
		campaigns:   campaigns,
		templates:   templates,
		affiliate:   affiliate,
	}
}

// ListDiscounts handles GET /discounts
func (h *MarketingHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.discounts.GetDiscounts(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, discounts, func(d marketing.Discount, term string) bool {
		return containsFold(term, d.Code, d.Description)
	})
}

// GetDiscount handles GET /discounts/:code
func (h *MarketingHandler) GetDiscount(c *gin.Context) {
	discount, err := h.discounts.GetDiscount(c.Request.Context(), getTenantID(c), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discount)
}

// CreateDiscount handles POST /discounts
func (h *MarketingHandler) CreateDiscount(c *gin.Context) {
	var req marketing.Discount
	if !h.bindJSON(c, &req) {
		return
	}
	discount, err := h.discounts.AddDiscount(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, discount)
}

// UpdateDiscount handles PATCH /discounts/:code
func (h *MarketingHandler) UpdateDiscount(c *gin.Context) {
	var patch marketing.DiscountPatch
	if !h.bindJSON(c, &patch) {
		return
	}
	discount, err := h.discounts.UpdateDiscount(c.Request.Context(), getTenantID(c), c.Param("code"), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discount)
}

// DeleteDiscount handles DELETE /discounts/:code
func (h *MarketingHandler) DeleteDiscount(c *gin.Context) {
	if err := h.discounts.DeleteDiscount(c.Request.Context(), getTenantID(c), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListCampaigns handles GET /campaigns
func (h *MarketingHandler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.campaigns.GetCampaigns(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, campaigns, func(cp marketing.Campaign, term string) bool {
		return containsFold(term, cp.Name, cp.Audience, string(cp.Channel))
	})
}

// GetCampaign handles GET /campaigns/:id
func (h *MarketingHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), getTenantID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, campaign)
}

// CreateCampaign handles POST /campaigns
func (h *MarketingHandler) CreateCampaign(c *gin.Context) {
	var req marketing.Campaign
	if !h.bindJSON(c, &req) {
		return
	}
	campaign, err := h.campaigns.AddCampaign(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, campaign)
}

// UpdateCampaign handles PATCH /campaigns/:id
func (h *MarketingHandler) UpdateCampaign(c *gin.Context) {
	var patch marketing.CampaignPatch
	if !h.bindJSON(c, &patch) {
		return
	}
	campaign, err := h.campaigns.UpdateCampaign(c.Request.Context(), getTenantID(c), c.Param("id"), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, campaign)
}

// channel parses the :channel path parameter
func (h *MarketingHandler) channel(c *gin.Context) (marketing.Channel, bool) {
	ch, err := marketing.ParseChannel(c.Param("channel"))
	if err != nil {
		h.HandleError(c, err)
		return "", false
	}
	return ch, true
}

// ListTemplates handles GET /templates/:channel
func (h *MarketingHandler) ListTemplates(c *gin.Context) {
	ch, ok := h.channel(c)
	if !ok {
		return
	}
	templates, err := h.templates.List(c.Request.Context(), getTenantID(c), ch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, templates, func(t marketing.Template, term string) bool {
		return containsFold(term, t.Name, t.Subject, t.Category)
	})
}

// GetTemplate handles GET /templates/:channel/:id
func (h *MarketingHandler) GetTemplate(c *gin.Context) {
	ch, ok := h.channel(c)
	if !ok {
		return
	}
	tmpl, err := h.templates.Get(c.Request.Context(), getTenantID(c), ch, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tmpl)
}

// CreateTemplate handles POST /templates/:channel
func (h *MarketingHandler) CreateTemplate(c *gin.Context) {
	ch, ok := h.channel(c)
	if !ok {
		return
	}
	var req marketing.Template
	if !h.bindJSON(c, &req) {
		return
	}
	tmpl, err := h.templates.Create(c.Request.Context(), getTenantID(c), ch, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tmpl)
}

// UpdateTemplate handles PATCH /templates/:channel/:id
func (h *MarketingHandler) UpdateTemplate(c *gin.Context) {
	ch, ok := h.channel(c)
	if !ok {
		return
	}
	var patch marketing.TemplatePatch
	if !h.bindJSON(c, &patch) {
		return
	}
	tmpl, err := h.templates.Update(c.Request.Context(), getTenantID(c), ch, c.Param("id"), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tmpl)
}

// DeleteTemplate handles DELETE /templates/:channel/:id
func (h *MarketingHandler) DeleteTemplate(c *gin.Context) {
	ch, ok := h.channel(c)
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), getTenantID(c), ch, c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RenderTemplateRequest is the body of POST /templates/:channel/:id/render
type RenderTemplateRequest struct {
	Values map[string]string `json:"values"`
}

// RenderTemplateResponse carries a rendered template
type RenderTemplateResponse struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// RenderTemplate handles POST /templates/:channel/:id/render
func (h *MarketingHandler) RenderTemplate(c *gin.Context) {
	ch, ok := h.channel(c)
	if !ok {
		return
	}
	var req RenderTemplateRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	tmpl, err := h.templates.Get(c.Request.Context(), getTenantID(c), ch, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	subject := marketing.Template{Body: tmpl.Subject}.Render(req.Values)
	h.Success(c, RenderTemplateResponse{Subject: subject, Body: tmpl.Render(req.Values)})
}

// GetAffiliateSettings handles GET /affiliate/settings
func (h *MarketingHandler) GetAffiliateSettings(c *gin.Context) {
	settings, err := h.affiliate.GetSettings(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// UpdateAffiliateSettings handles PATCH /affiliate/settings
func (h *MarketingHandler) UpdateAffiliateSettings(c *gin.Context) {
	var patch marketing.AffiliateSettingsPatch
	if !h.bindJSON(c, &patch) {
		return
	}
	settings, err := h.affiliate.UpdateSettings(c.Request.Context(), getTenantID(c), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}
