package trade

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/trade"
)

// DemoOrders is the order history new tenants start with. Staff ids refer
// to the demo team.
func DemoOrders() []trade.Order {
	day := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return []trade.Order{
		{
			ID:            "order-1003",
			CustomerName:  "Ayu Pratama",
			CustomerEmail: "ayu@example.com",
			Date:          day.AddDate(0, 0, 2),
			Total:         decimal.NewFromInt(250000),
			Currency:      "IDR",
			Items: []trade.Item{
				{ProductID: "prod-batik", Name: "Batik Shirt", Category: "Apparel", Quantity: 1, Price: decimal.NewFromInt(250000)},
			},
			SalesAgentID:   "staff-sales",
			PaymentStatus:  trade.PaymentPending,
			DeliveryStatus: trade.DeliveryPending,
		},
		{
			ID:            "order-1002",
			CustomerName:  "Joko Widodo",
			CustomerEmail: "joko@example.com",
			Date:          day.AddDate(0, 0, 1),
			Total:         decimal.NewFromInt(90000),
			Currency:      "IDR",
			Items: []trade.Item{
				{ProductID: "prod-mug", Name: "Ceramic Mug", Category: "Homeware", Quantity: 2, Price: decimal.NewFromInt(45000)},
			},
			SalesAgentID:       "staff-sales",
			FulfilledByStaffID: "staff-agent",
			PaymentStatus:      trade.PaymentPaid,
			DeliveryStatus:     trade.DeliveryShipped,
		},
		{
			ID:            "order-1001",
			CustomerName:  "Siti Rahma",
			CustomerEmail: "siti@example.com",
			Date:          day,
			Total:         decimal.NewFromInt(150000),
			Currency:      "IDR",
			Items: []trade.Item{
				{ProductID: "prod-tote", Name: "Canvas Tote", Category: "Accessories", Quantity: 3, Price: decimal.NewFromInt(50000)},
			},
			SalesAgentID:       "staff-sales",
			FulfilledByStaffID: "staff-agent",
			PaymentStatus:      trade.PaymentPaid,
			DeliveryStatus:     trade.DeliveryDelivered,
		},
	}
}
