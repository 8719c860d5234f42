// Package trade models customer orders and their payment and delivery
// workflow.
package trade

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus of an order
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
	PaymentFailed   PaymentStatus = "Failed"
)

// DeliveryStatus of an order
type DeliveryStatus string

const (
	DeliveryPending    DeliveryStatus = "Pending"
	DeliveryProcessing DeliveryStatus = "Processing"
	DeliveryShipped    DeliveryStatus = "Shipped"
	DeliveryDelivered  DeliveryStatus = "Delivered"
	DeliveryCancelled  DeliveryStatus = "Cancelled"
)

// Item is one order line
type Item struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name" validate:"required"`
	Category  string          `json:"category,omitempty"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal returns price times quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a customer order. SalesAgentID earns the paid commission,
// FulfilledByStaffID the delivered one.
type Order struct {
	ID                 string          `json:"id" validate:"required"`
	CustomerName       string          `json:"customerName" validate:"required"`
	CustomerEmail      string          `json:"customerEmail,omitempty" validate:"omitempty,email"`
	Date               time.Time       `json:"date"`
	Total              decimal.Decimal `json:"total"`
	Currency           string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Items              []Item          `json:"items" validate:"dive"`
	SalesAgentID       string          `json:"salesAgentId,omitempty"`
	FulfilledByStaffID string          `json:"fulfilledByStaffId,omitempty"`
	PaymentStatus      PaymentStatus   `json:"paymentStatus" validate:"oneof=Pending Paid Refunded Failed"`
	DeliveryStatus     DeliveryStatus  `json:"deliveryStatus" validate:"oneof=Pending Processing Shipped Delivered Cancelled"`
}

// ItemsTotal sums the item subtotals
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// HasCategory reports whether any item belongs to category, ignoring case
func (o Order) HasCategory(category string) bool {
	category = strings.TrimSpace(category)
	for _, item := range o.Items {
		if strings.EqualFold(strings.TrimSpace(item.Category), category) {
			return true
		}
	}
	return false
}

// IsPaid reports whether payment was captured
func (o Order) IsPaid() bool { return o.PaymentStatus == PaymentPaid }

// IsDelivered reports whether the order reached the customer
func (o Order) IsDelivered() bool { return o.DeliveryStatus == DeliveryDelivered }

// Patch is a partial Order update; nil fields are left unchanged
type Patch struct {
	CustomerName       *string          `json:"customerName,omitempty"`
	CustomerEmail      *string          `json:"customerEmail,omitempty"`
	Total              *decimal.Decimal `json:"total,omitempty"`
	Currency           *string          `json:"currency,omitempty"`
	Items              *[]Item          `json:"items,omitempty"`
	SalesAgentID       *string          `json:"salesAgentId,omitempty"`
	FulfilledByStaffID *string          `json:"fulfilledByStaffId,omitempty"`
	PaymentStatus      *PaymentStatus   `json:"paymentStatus,omitempty"`
	DeliveryStatus     *DeliveryStatus  `json:"deliveryStatus,omitempty"`
}
