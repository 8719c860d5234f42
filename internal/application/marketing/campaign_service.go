package marketing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

var hundred = decimal.NewFromInt(100)

// CampaignCollection is the collection name campaigns are stored under
const CampaignCollection = "campaigns"

// CampaignSchema describes the campaigns collection
func CampaignSchema(seed bool) persistence.Schema[marketing.Campaign] {
	schema := persistence.Schema[marketing.Campaign]{
		Name: CampaignCollection,
		Key:  func(c marketing.Campaign) string { return c.ID },
	}
	if seed {
		schema.Seed = func(context.Context) ([]marketing.Campaign, error) { return DemoCampaigns(), nil }
	}
	return schema
}

// CampaignService handles marketing campaigns
type CampaignService struct {
	records *persistence.Collection[marketing.Campaign]
	logger  *zap.Logger
}

// NewCampaignService creates a new campaign service
func NewCampaignService(records *persistence.Collection[marketing.Campaign], logger *zap.Logger) *CampaignService {
	return &CampaignService{
		records: records,
		logger:  logger,
	}
}

// GetCampaigns returns every campaign
func (s *CampaignService) GetCampaigns(ctx context.Context, tenantID string) ([]marketing.Campaign, error) {
	return s.records.GetAll(ctx, tenantID)
}

// GetCampaign returns one campaign
func (s *CampaignService) GetCampaign(ctx context.Context, tenantID, id string) (marketing.Campaign, error) {
	c, found, err := s.records.GetByID(ctx, tenantID, id)
	if err != nil {
		return marketing.Campaign{}, err
	}
	if !found {
		return marketing.Campaign{}, shared.NotFound("campaign", id)
	}
	return c, nil
}

// AddCampaign stores a new campaign as a draft unless a status is given
func (s *CampaignService) AddCampaign(ctx context.Context, tenantID string, c marketing.Campaign) (marketing.Campaign, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = marketing.CampaignDraft
	}
	if c.StartsAt != nil && c.EndsAt != nil && c.EndsAt.Before(*c.StartsAt) {
		return marketing.Campaign{}, shared.InvalidInput("campaign cannot end before it starts")
	}

	created, err := s.records.Create(ctx, tenantID, c, persistence.Prepend())
	if err != nil {
		return marketing.Campaign{}, err
	}
	s.logger.Info("Campaign added",
		zap.String("tenant_id", tenantID),
		zap.String("campaign_id", created.ID),
		zap.String("channel", string(created.Channel)))
	return created, nil
}

// UpdateCampaign applies patch to a campaign
func (s *CampaignService) UpdateCampaign(ctx context.Context, tenantID, id string, patch marketing.CampaignPatch) (marketing.Campaign, error) {
	return s.records.Update(ctx, tenantID, id, patch)
}
