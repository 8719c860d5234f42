package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthProbeKey = "__health_probe"

// SystemHandler handles liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	store   kv.Store
	timeout time.Duration
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(store kv.Store, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: BaseHandler{logger: logger},
		store:       store,
		timeout:     2 * time.Second,
	}
}

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /health/ready. It reads a probe key from the store.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Store: "ok", Timestamp: time.Now().UTC().Format(time.RFC3339)}
	if _, _, err := h.store.Get(ctx, healthProbeKey); err != nil {
		h.log().Warn("Store readiness probe failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Store = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
