// Package marketing models discounts, campaigns, message templates and the
// affiliate program settings.
package marketing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType selects how a discount value applies
type DiscountType string

const (
	DiscountPercentage   DiscountType = "Percentage"
	DiscountFixedAmount  DiscountType = "Fixed Amount"
	DiscountFreeShipping DiscountType = "Free Shipping"
)

// DiscountStatus of a discount code
type DiscountStatus string

const (
	DiscountActive    DiscountStatus = "Active"
	DiscountScheduled DiscountStatus = "Scheduled"
	DiscountExpired   DiscountStatus = "Expired"
	DiscountDisabled  DiscountStatus = "Disabled"
)

// Discount is a promotional code. Discounts are keyed by code.
type Discount struct {
	Code        string          `json:"code" validate:"required,max=64"`
	Description string          `json:"description,omitempty"`
	Type        DiscountType    `json:"type" validate:"oneof=Percentage 'Fixed Amount' 'Free Shipping'"`
	Value       decimal.Decimal `json:"value"`
	Status      DiscountStatus  `json:"status" validate:"oneof=Active Scheduled Expired Disabled"`
	UsageCount  int             `json:"usageCount" validate:"gte=0"`
	UsageLimit  int             `json:"usageLimit,omitempty" validate:"gte=0"`
	StartsAt    *time.Time      `json:"startsAt,omitempty"`
	EndsAt      *time.Time      `json:"endsAt,omitempty"`
}

// NormalizeCode upper-cases and trims a discount code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redeemable reports whether the code can be applied at time now
func (d Discount) Redeemable(now time.Time) bool {
	if d.Status != DiscountActive {
		return false
	}
	if d.UsageLimit > 0 && d.UsageCount >= d.UsageLimit {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return false
	}
	return true
}

// DiscountPatch is a partial Discount update
type DiscountPatch struct {
	Description *string          `json:"description,omitempty"`
	Type        *DiscountType    `json:"type,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Status      *DiscountStatus  `json:"status,omitempty"`
	UsageCount  *int             `json:"usageCount,omitempty"`
	UsageLimit  *int             `json:"usageLimit,omitempty"`
	StartsAt    *time.Time       `json:"startsAt,omitempty"`
	EndsAt      *time.Time       `json:"endsAt,omitempty"`
}

// CampaignChannel is where a campaign runs
type CampaignChannel string

const (
	CampaignEmail    CampaignChannel = "Email"
	CampaignSMS      CampaignChannel = "SMS"
	CampaignWhatsApp CampaignChannel = "WhatsApp"
	CampaignSocial   CampaignChannel = "Social"
)

// CampaignStatus of a campaign
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "Draft"
	CampaignScheduled CampaignStatus = "Scheduled"
	CampaignActive    CampaignStatus = "Active"
	CampaignCompleted CampaignStatus = "Completed"
)

// Campaign is an outbound marketing campaign with its delivery counters
type Campaign struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Channel  CampaignChannel `json:"channel" validate:"oneof=Email SMS WhatsApp Social"`
	Status   CampaignStatus  `json:"status" validate:"oneof=Draft Scheduled Active Completed"`
	Audience string          `json:"audience,omitempty"`
	Budget   decimal.Decimal `json:"budget"`
	StartsAt *time.Time      `json:"startsAt,omitempty"`
	EndsAt   *time.Time      `json:"endsAt,omitempty"`
	Sent     int             `json:"sent" validate:"gte=0"`
	Opened   int             `json:"opened" validate:"gte=0,ltefield=Sent"`
	Clicked  int             `json:"clicked" validate:"gte=0,ltefield=Opened"`
}

// OpenRate returns opened/sent as a percentage, zero when nothing was sent
func (c Campaign) OpenRate() decimal.Decimal {
	return rate(c.Opened, c.Sent)
}

// ClickRate returns clicked/opened as a percentage
func (c Campaign) ClickRate() decimal.Decimal {
	return rate(c.Clicked, c.Opened)
}

func rate(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(whole))).Round(2)
}

// CampaignPatch is a partial Campaign update
type CampaignPatch struct {
	Name     *string          `json:"name,omitempty"`
	Channel  *CampaignChannel `json:"channel,omitempty"`
	Status   *CampaignStatus  `json:"status,omitempty"`
	Audience *string          `json:"audience,omitempty"`
	Budget   *decimal.Decimal `json:"budget,omitempty"`
	StartsAt *time.Time       `json:"startsAt,omitempty"`
	EndsAt   *time.Time       `json:"endsAt,omitempty"`
	Sent     *int             `json:"sent,omitempty"`
	Opened   *int             `json:"opened,omitempty"`
	Clicked  *int             `json:"clicked,omitempty"`
}
