// Package catalog provides the product service.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// ProductCollection is the collection name products are stored under
const ProductCollection = "products"

// DefaultLowStockThreshold is the unit count at or below which a product
// is reported as low on stock
const DefaultLowStockThreshold = 5

// ProductSchema describes the products collection
func ProductSchema(seed bool) persistence.Schema[catalog.Product] {
	schema := persistence.Schema[catalog.Product]{
		Name: ProductCollection,
		Key:  func(p catalog.Product) string { return p.ID },
	}
	if seed {
		schema.Seed = func(context.Context) ([]catalog.Product, error) { return DemoProducts(), nil }
	}
	return schema
}

// ProductService handles the product catalog
type ProductService struct {
	records *persistence.Collection[catalog.Product]
	logger  *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(records *persistence.Collection[catalog.Product], logger *zap.Logger) *ProductService {
	return &ProductService{
		records: records,
		logger:  logger,
	}
}

// GetProducts returns the catalog
func (s *ProductService) GetProducts(ctx context.Context, tenantID string) ([]catalog.Product, error) {
	return s.records.GetAll(ctx, tenantID)
}

// GetProduct returns one product
func (s *ProductService) GetProduct(ctx context.Context, tenantID, id string) (catalog.Product, error) {
	product, found, err := s.records.GetByID(ctx, tenantID, id)
	if err != nil {
		return catalog.Product{}, err
	}
	if !found {
		return catalog.Product{}, shared.NotFound("product", id)
	}
	return product, nil
}

// AddProduct stores a new product. Missing product and variant ids are
// generated.
func (s *ProductService) AddProduct(ctx context.Context, tenantID string, product catalog.Product) (catalog.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Status == "" {
		product.Status = catalog.ProductDraft
	}
	product.Variants = withVariantIDs(product.Variants)

	created, err := s.records.Create(ctx, tenantID, product, persistence.Prepend())
	if err != nil {
		return catalog.Product{}, err
	}
	s.logger.Info("Product added",
		zap.String("tenant_id", tenantID),
		zap.String("product_id", created.ID),
		zap.Int("variants", len(created.Variants)))
	return created, nil
}

// UpdateProduct applies patch to a product
func (s *ProductService) UpdateProduct(ctx context.Context, tenantID, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	if patch.Variants != nil {
		variants := withVariantIDs(*patch.Variants)
		patch.Variants = &variants
	}
	return s.records.Update(ctx, tenantID, id, patch)
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, tenantID, id string) error {
	return s.records.Delete(ctx, tenantID, id)
}

// InventorySummary aggregates stock over the catalog. A threshold below
// zero uses DefaultLowStockThreshold.
func (s *ProductService) InventorySummary(ctx context.Context, tenantID string, lowStockThreshold int) (catalog.InventorySummary, error) {
	products, err := s.records.GetAll(ctx, tenantID)
	if err != nil {
		return catalog.InventorySummary{}, err
	}
	if lowStockThreshold < 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return catalog.Summarize(products, lowStockThreshold), nil
}

func withVariantIDs(variants []catalog.Variant) []catalog.Variant {
	out := make([]catalog.Variant, len(variants))
	copy(out, variants)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if out[i].Inventory == nil {
			out[i].Inventory = []catalog.InventoryLevel{}
		}
	}
	return out
}
