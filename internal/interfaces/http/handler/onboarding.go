package handler

import (
	"github.com/erp/backoffice/internal/application/onboarding"
	"github.com/erp/backoffice/internal/domain/tenant"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OnboardingHandler handles the store onboarding configuration
type OnboardingHandler struct {
	BaseHandler
	onboarding *onboarding.Service
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(service *onboarding.Service, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{BaseHandler: BaseHandler{logger: logger}, onboarding: service}
}

// GetConfig handles GET /onboarding
func (h *OnboardingHandler) GetConfig(c *gin.Context) {
	cfg, err := h.onboarding.GetConfig(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// SaveConfig handles PUT /onboarding
func (h *OnboardingHandler) SaveConfig(c *gin.Context) {
	var req tenant.OnboardingConfig
	if !h.bindJSON(c, &req) {
		return
	}
	cfg, err := h.onboarding.SaveConfig(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}
