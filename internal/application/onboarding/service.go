// Package onboarding stores the installation's onboarding configuration and
// resolves the tenant it implies.
package onboarding

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/tenant"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// ConfigDocument is the key the onboarding configuration is stored under.
// It is not tenant-scoped since it decides the tenant.
const ConfigDocument = "onboarding_config"

// Service handles the onboarding configuration
type Service struct {
	config *persistence.Document[tenant.OnboardingConfig]
	logger *zap.Logger
}

// NewService creates a new onboarding service
func NewService(config *persistence.Document[tenant.OnboardingConfig], logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// GetConfig returns the stored configuration, empty before onboarding
func (s *Service) GetConfig(ctx context.Context) (tenant.OnboardingConfig, error) {
	return s.config.Get(ctx, "")
}

// SaveConfig validates and stores the configuration
func (s *Service) SaveConfig(ctx context.Context, cfg tenant.OnboardingConfig) (tenant.OnboardingConfig, error) {
	cfg.Subdomain = strings.ToLower(strings.TrimSpace(cfg.Subdomain))
	if cfg.Subdomain != "" {
		if err := tenant.Validate(cfg.Subdomain); err != nil {
			return tenant.OnboardingConfig{}, err
		}
	}
	if cfg.Currency != "" {
		code, err := shared.ParseCurrency(cfg.Currency)
		if err != nil {
			return tenant.OnboardingConfig{}, err
		}
		cfg.Currency = code
	}

	saved, err := s.config.Save(ctx, "", cfg)
	if err != nil {
		return tenant.OnboardingConfig{}, err
	}
	s.logger.Info("Onboarding configuration saved",
		zap.String("store_name", saved.StoreName),
		zap.String("tenant_id", saved.TenantID()))
	return saved, nil
}

// ResolveTenant returns the tenant implied by the stored configuration,
// tenant.DefaultID when nothing was configured
func (s *Service) ResolveTenant(ctx context.Context) (string, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return "", err
	}
	return cfg.TenantID(), nil
}
