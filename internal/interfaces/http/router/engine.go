package router

import (
	"net/http"

	"github.com/erp/backoffice/internal/application"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the runtime objects the engine is built over
type Dependencies struct {
	Store    kv.Store
	Services *application.Services
	Logger   *zap.Logger
}

// NewEngine builds the gin engine with the middleware chain and every
// back-office route.
//
// Engine-wide: request id, access log, recovery, tracing, CORS, security
// headers, body limit (when configured). API group: JWT (when enabled), tenant resolution,
// span enrichment, rate limit (when configured), then per-module role
// checks.
func NewEngine(cfg *config.Config, deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	secureCfg := middleware.DefaultSecurityConfig()
	secureCfg.HSTSEnabled = cfg.App.Env == "production"

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.CORSWithConfig(corsCfg),
		middleware.SecureWithConfig(secureCfg),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	h := handler.New(deps.Store, deps.Services, log)
	engine.GET("/health", h.System.Health)
	engine.GET("/health/ready", h.System.Ready)

	var apiMiddleware []gin.HandlerFunc
	var perm *middleware.PermissionMiddleware
	if cfg.JWT.Enabled {
		apiMiddleware = append(apiMiddleware, middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService: auth.NewJWTService(cfg.JWT),
			Logger:     log,
		}))
		perm = middleware.NewPermissionMiddleware(deps.Services.Roles, log)
	}
	apiMiddleware = append(apiMiddleware,
		middleware.TenantMiddleware(middleware.TenantMiddlewareConfig{
			BaseDomain: cfg.HTTP.BaseDomain,
			Fallback:   deps.Services.Onboarding,
			Logger:     log,
		}),
		middleware.SpanEnricher(),
	)
	if cfg.HTTP.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateLimitWindow, log)
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(limiter))
	}

	r := NewRouter(engine, WithMiddleware(apiMiddleware...))
	r.Register(DomainGroups(h, perm)...)
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		resp := dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found")
		resp.Error.RequestID = c.GetString(middleware.RequestIDKey)
		c.JSON(http.StatusNotFound, resp)
	})
	return engine
}
