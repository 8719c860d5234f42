// Package marketing provides the discount, campaign, template and
// affiliate program services.
package marketing

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// DiscountCollection is the collection name discounts are stored under
const DiscountCollection = "discounts"

// DiscountSchema describes the discounts collection, keyed by code
func DiscountSchema(seed bool) persistence.Schema[marketing.Discount] {
	schema := persistence.Schema[marketing.Discount]{
		Name: DiscountCollection,
		Key:  func(d marketing.Discount) string { return d.Code },
	}
	if seed {
		schema.Seed = func(context.Context) ([]marketing.Discount, error) { return DemoDiscounts(), nil }
	}
	return schema
}

// DiscountService handles discount codes
type DiscountService struct {
	records *persistence.Collection[marketing.Discount]
	logger  *zap.Logger
}

// NewDiscountService creates a new discount service
func NewDiscountService(records *persistence.Collection[marketing.Discount], logger *zap.Logger) *DiscountService {
	return &DiscountService{
		records: records,
		logger:  logger,
	}
}

// GetDiscounts returns every discount code
func (s *DiscountService) GetDiscounts(ctx context.Context, tenantID string) ([]marketing.Discount, error) {
	return s.records.GetAll(ctx, tenantID)
}

// GetDiscount returns the discount with code
func (s *DiscountService) GetDiscount(ctx context.Context, tenantID, code string) (marketing.Discount, error) {
	code = marketing.NormalizeCode(code)
	d, found, err := s.records.GetByID(ctx, tenantID, code)
	if err != nil {
		return marketing.Discount{}, err
	}
	if !found {
		return marketing.Discount{}, shared.NotFound("discount", code)
	}
	return d, nil
}

// AddDiscount stores a new code. Codes are upper-cased.
func (s *DiscountService) AddDiscount(ctx context.Context, tenantID string, d marketing.Discount) (marketing.Discount, error) {
	d.Code = marketing.NormalizeCode(d.Code)
	if d.Status == "" {
		d.Status = marketing.DiscountActive
	}
	if d.Type == marketing.DiscountPercentage && d.Value.GreaterThan(hundred) {
		return marketing.Discount{}, shared.InvalidInput("percentage discount cannot exceed 100, got %s", d.Value)
	}

	created, err := s.records.Create(ctx, tenantID, d, persistence.Prepend())
	if err != nil {
		return marketing.Discount{}, err
	}
	s.logger.Info("Discount added",
		zap.String("tenant_id", tenantID),
		zap.String("code", created.Code))
	return created, nil
}

// UpdateDiscount applies patch to the discount with code
func (s *DiscountService) UpdateDiscount(ctx context.Context, tenantID, code string, patch marketing.DiscountPatch) (marketing.Discount, error) {
	return s.records.Update(ctx, tenantID, marketing.NormalizeCode(code), patch)
}

// DeleteDiscount removes the discount with code
func (s *DiscountService) DeleteDiscount(ctx context.Context, tenantID, code string) error {
	return s.records.Delete(ctx, tenantID, marketing.NormalizeCode(code))
}
