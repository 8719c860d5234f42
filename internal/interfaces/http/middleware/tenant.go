package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/erp/backoffice/internal/domain/tenant"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Tenant context keys and headers
const (
	TenantIDKey     = "tenant_id"
	TenantSourceKey = "tenant_source"
	TenantHeaderKey = "X-Tenant-ID"
)

// Where a tenant id was resolved from
const (
	SourceJWT        = "jwt"
	SourceHeader     = "header"
	SourceSubdomain  = "subdomain"
	SourceOnboarding = "onboarding"
	SourceDefault    = "default"
)

// TenantFallback resolves the tenant when the request carries no hint
type TenantFallback interface {
	ResolveTenant(ctx context.Context) (string, error)
}

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// BaseDomain enables subdomain extraction, e.g. "shop.example.com"
	BaseDomain string
	// Fallback is consulted before DefaultID, usually the onboarding config
	Fallback TenantFallback
	// SkipPaths are paths that don't require tenant context
	SkipPaths []string
	Logger    *zap.Logger
}

// TenantMiddleware resolves the tenant for each request.
// Resolution order: JWT claim > X-Tenant-ID header > subdomain > fallback > "default".
func TenantMiddleware(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		tenantID, source := resolveTenant(c, cfg, log)
		if err := tenant.Validate(tenantID); err != nil {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeInvalidTenant, err.Error())
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Set(TenantSourceKey, source)

		ctx, _ := logger.WithTenantID(c.Request.Context(), logger.FromContext(c.Request.Context()), tenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolveTenant(c *gin.Context, cfg TenantMiddlewareConfig, log *zap.Logger) (string, string) {
	if tid := c.GetString(JWTTenantIDKey); tid != "" {
		return strings.ToLower(tid), SourceJWT
	}
	if tid := strings.TrimSpace(c.GetHeader(TenantHeaderKey)); tid != "" {
		return strings.ToLower(tid), SourceHeader
	}
	if cfg.BaseDomain != "" {
		if tid := extractTenantFromSubdomain(c.Request.Host, cfg.BaseDomain); tid != "" {
			return strings.ToLower(tid), SourceSubdomain
		}
	}
	if cfg.Fallback != nil {
		tid, err := cfg.Fallback.ResolveTenant(c.Request.Context())
		if err != nil {
			log.Warn("Onboarding tenant lookup failed, using default tenant", zap.Error(err))
		} else if tid != "" && tid != tenant.DefaultID {
			return tid, SourceOnboarding
		}
	}
	return tenant.DefaultID, SourceDefault
}

// extractTenantFromSubdomain extracts tenant code from subdomain
// e.g., "acme.shop.example.com" with baseDomain "shop.example.com" returns "acme"
func extractTenantFromSubdomain(host, baseDomain string) string {
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	subdomain, ok := strings.CutSuffix(host, "."+baseDomain)
	if !ok || subdomain == "" || subdomain == "www" {
		return ""
	}

	// Multi-level subdomains use the left-most label
	parts := strings.Split(subdomain, ".")
	return parts[0]
}

// GetTenantID retrieves the tenant ID from gin.Context
func GetTenantID(c *gin.Context) string {
	if tenantID, exists := c.Get(TenantIDKey); exists {
		if tid, ok := tenantID.(string); ok {
			return tid
		}
	}
	return ""
}
