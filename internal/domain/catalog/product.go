// Package catalog models products, their variants and per-location stock.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProductStatus of a catalog entry
type ProductStatus string

const (
	ProductActive   ProductStatus = "Active"
	ProductDraft    ProductStatus = "Draft"
	ProductArchived ProductStatus = "Archived"
)

// InventoryLevel is the stock of a variant at one location
type InventoryLevel struct {
	Location string `json:"location" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// Variant is a sellable option of a product, e.g. a size or color
type Variant struct {
	ID        string           `json:"id" validate:"required"`
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	Price     decimal.Decimal  `json:"price"`
	Inventory []InventoryLevel `json:"inventory" validate:"dive"`
}

// Stock sums the variant's quantity over all locations
func (v Variant) Stock() int {
	total := 0
	for _, lvl := range v.Inventory {
		total += lvl.Quantity
	}
	return total
}

// Product is a catalog entry
type Product struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Status      ProductStatus   `json:"status" validate:"oneof=Active Draft Archived"`
	Variants    []Variant       `json:"variants" validate:"dive"`
}

// Stock sums all variants' stock
func (p Product) Stock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock()
	}
	return total
}

// ProductPatch is a partial Product update
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	SKU         *string          `json:"sku,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Status      *ProductStatus   `json:"status,omitempty"`
	Variants    *[]Variant       `json:"variants,omitempty"`
}

// LocationStock is the stock held at one location
type LocationStock struct {
	Location string `json:"location"`
	Quantity int    `json:"quantity"`
}

// InventorySummary aggregates stock across a product set
type InventorySummary struct {
	TotalUnits   int             `json:"totalUnits"`
	StockValue   decimal.Decimal `json:"stockValue"`
	ByLocation   []LocationStock `json:"byLocation"`
	LowStock     []string        `json:"lowStock"`
	OutOfStock   []string        `json:"outOfStock"`
	ProductCount int             `json:"productCount"`
	VariantCount int             `json:"variantCount"`
}

// Summarize aggregates inventory. A variant with a zero price is valued at
// the product price. Products at or below lowStockThreshold units are
// reported as low stock; those with none as out of stock.
func Summarize(products []Product, lowStockThreshold int) InventorySummary {
	s := InventorySummary{StockValue: decimal.Zero, LowStock: []string{}, OutOfStock: []string{}}
	byLocation := make(map[string]int)

	for _, p := range products {
		s.ProductCount++
		for _, v := range p.Variants {
			s.VariantCount++
			price := v.Price
			if price.IsZero() {
				price = p.Price
			}
			stock := v.Stock()
			s.StockValue = s.StockValue.Add(price.Mul(decimal.NewFromInt(int64(stock))))
			for _, lvl := range v.Inventory {
				byLocation[lvl.Location] += lvl.Quantity
			}
		}

		stock := p.Stock()
		s.TotalUnits += stock
		switch {
		case stock == 0:
			s.OutOfStock = append(s.OutOfStock, p.ID)
		case stock <= lowStockThreshold:
			s.LowStock = append(s.LowStock, p.ID)
		}
	}

	s.ByLocation = make([]LocationStock, 0, len(byLocation))
	for loc, qty := range byLocation {
		s.ByLocation = append(s.ByLocation, LocationStock{Location: loc, Quantity: qty})
	}
	sort.Slice(s.ByLocation, func(i, j int) bool { return s.ByLocation[i].Location < s.ByLocation[j].Location })
	return s
}
