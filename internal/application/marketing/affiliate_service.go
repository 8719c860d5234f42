package marketing

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// AffiliateDocument is the key affiliate settings are stored under
const AffiliateDocument = "affiliate_settings"

// AffiliateService handles the affiliate program settings
type AffiliateService struct {
	settings *persistence.Document[marketing.AffiliateSettings]
	logger   *zap.Logger
}

// NewAffiliateService creates a new affiliate service
func NewAffiliateService(settings *persistence.Document[marketing.AffiliateSettings], logger *zap.Logger) *AffiliateService {
	return &AffiliateService{
		settings: settings,
		logger:   logger,
	}
}

// GetSettings returns the program settings, defaults until first saved
func (s *AffiliateService) GetSettings(ctx context.Context, tenantID string) (marketing.AffiliateSettings, error) {
	return s.settings.Get(ctx, tenantID)
}

// UpdateSettings applies patch to the program settings
func (s *AffiliateService) UpdateSettings(ctx context.Context, tenantID string, patch marketing.AffiliateSettingsPatch) (marketing.AffiliateSettings, error) {
	updated, err := s.settings.Update(ctx, tenantID, patch)
	if err != nil {
		return marketing.AffiliateSettings{}, err
	}
	s.logger.Info("Affiliate settings updated",
		zap.String("tenant_id", tenantID),
		zap.String("status", string(updated.Status)),
		zap.String("rate", updated.CommissionRate.String()))
	return updated, nil
}
