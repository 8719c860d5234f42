package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/catalog"
)

// DemoProducts is the catalog new tenants start with
func DemoProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:       "prod-batik",
			Name:     "Batik Shirt",
			SKU:      "BTK-001",
			Category: "Apparel",
			Price:    decimal.NewFromInt(250000),
			Status:   catalog.ProductActive,
			Variants: []catalog.Variant{
				{ID: "prod-batik-m", Name: "M", SKU: "BTK-001-M", Inventory: []catalog.InventoryLevel{
					{Location: "Jakarta", Quantity: 12}, {Location: "Bandung", Quantity: 4},
				}},
				{ID: "prod-batik-l", Name: "L", SKU: "BTK-001-L", Inventory: []catalog.InventoryLevel{
					{Location: "Jakarta", Quantity: 3},
				}},
			},
		},
		{
			ID:       "prod-mug",
			Name:     "Ceramic Mug",
			SKU:      "MUG-001",
			Category: "Homeware",
			Price:    decimal.NewFromInt(45000),
			Status:   catalog.ProductActive,
			Variants: []catalog.Variant{
				{ID: "prod-mug-std", Name: "Standard", Inventory: []catalog.InventoryLevel{
					{Location: "Bandung", Quantity: 2},
				}},
			},
		},
		{
			ID:       "prod-tote",
			Name:     "Canvas Tote",
			SKU:      "TOT-001",
			Category: "Accessories",
			Price:    decimal.NewFromInt(50000),
			Status:   catalog.ProductDraft,
			Variants: []catalog.Variant{
				{ID: "prod-tote-std", Name: "Standard", Inventory: []catalog.InventoryLevel{}},
			},
		},
	}
}
