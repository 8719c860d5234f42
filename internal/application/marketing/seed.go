package marketing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/marketing"
)

var seededAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// DemoDiscounts is the code list new tenants start with
func DemoDiscounts() []marketing.Discount {
	return []marketing.Discount{
		{Code: "WELCOME10", Description: "10% off the first order", Type: marketing.DiscountPercentage, Value: decimal.NewFromInt(10), Status: marketing.DiscountActive},
		{Code: "FREESHIP", Description: "Free shipping", Type: marketing.DiscountFreeShipping, Status: marketing.DiscountActive, UsageLimit: 100},
		{Code: "LEBARAN25K", Description: "25k off during Lebaran", Type: marketing.DiscountFixedAmount, Value: decimal.NewFromInt(25000), Status: marketing.DiscountExpired},
	}
}

// DemoCampaigns is the campaign list new tenants start with
func DemoCampaigns() []marketing.Campaign {
	return []marketing.Campaign{
		{
			ID: "camp-newsletter", Name: "January newsletter", Channel: marketing.CampaignEmail,
			Status: marketing.CampaignCompleted, Audience: "All subscribers", Budget: decimal.NewFromInt(500000),
			Sent: 1200, Opened: 540, Clicked: 81,
		},
		{
			ID: "camp-flash", Name: "Flash sale blast", Channel: marketing.CampaignWhatsApp,
			Status: marketing.CampaignDraft, Audience: "Repeat customers", Budget: decimal.NewFromInt(250000),
		},
	}
}

// DemoTemplates is the library a channel starts with
func DemoTemplates(channel marketing.Channel) []marketing.Template {
	var t marketing.Template
	switch channel {
	case marketing.ChannelEmail:
		t = marketing.Template{ID: "tmpl-email-confirm", Name: "Order confirmation", Subject: "Order {{order_id}} confirmed",
			Body: "Hi {{customer_name}}, thanks for your order {{order_id}}."}
	case marketing.ChannelSMS:
		t = marketing.Template{ID: "tmpl-sms-shipped", Name: "Shipped", Body: "Your order {{order_id}} is on its way."}
	case marketing.ChannelWhatsApp:
		t = marketing.Template{ID: "tmpl-wa-cart", Name: "Abandoned cart", Body: "Hi {{customer_name}}, your cart is waiting for you."}
	case marketing.ChannelProduct:
		t = marketing.Template{ID: "tmpl-product-basic", Name: "Basic description", Body: "{{name}} made from {{material}}. Available in {{sizes}}."}
	default:
		return nil
	}
	t.Channel = channel
	t.Variables = marketing.ExtractVariables(t.Subject + " " + t.Body)
	t.UpdatedAt = seededAt
	return []marketing.Template{t}
}
