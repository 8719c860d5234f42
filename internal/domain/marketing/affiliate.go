package marketing

import "github.com/shopspring/decimal"

// AffiliateStatus switches the affiliate program on or off
type AffiliateStatus string

const (
	AffiliateActive   AffiliateStatus = "Active"
	AffiliateInactive AffiliateStatus = "Inactive"
)

// AffiliateCommissionType selects how affiliates are paid
type AffiliateCommissionType string

const (
	AffiliatePercentage AffiliateCommissionType = "Percentage"
	AffiliateFixed      AffiliateCommissionType = "Fixed"
)

// AffiliateSettings is the per-tenant affiliate program configuration
type AffiliateSettings struct {
	Status         AffiliateStatus         `json:"status" validate:"oneof=Active Inactive"`
	CommissionType AffiliateCommissionType `json:"commissionType" validate:"oneof=Percentage Fixed"`
	CommissionRate decimal.Decimal         `json:"commissionRate"`
	CookieDays     int                     `json:"cookieDays" validate:"gte=0,lte=365"`
}

// DefaultAffiliateSettings is used until a tenant saves its own
func DefaultAffiliateSettings() AffiliateSettings {
	return AffiliateSettings{
		Status:         AffiliateInactive,
		CommissionType: AffiliatePercentage,
		CommissionRate: decimal.NewFromInt(10),
		CookieDays:     30,
	}
}

// Commission returns the affiliate commission for an order total. An
// inactive program pays nothing.
func (s AffiliateSettings) Commission(orderTotal decimal.Decimal) decimal.Decimal {
	if s.Status != AffiliateActive {
		return decimal.Zero
	}
	switch s.CommissionType {
	case AffiliatePercentage:
		return orderTotal.Mul(s.CommissionRate).Div(decimal.NewFromInt(100))
	case AffiliateFixed:
		return s.CommissionRate
	}
	return decimal.Zero
}

// AffiliateSettingsPatch is a partial settings update
type AffiliateSettingsPatch struct {
	Status         *AffiliateStatus         `json:"status,omitempty"`
	CommissionType *AffiliateCommissionType `json:"commissionType,omitempty"`
	CommissionRate *decimal.Decimal         `json:"commissionRate,omitempty"`
	CookieDays     *int                     `json:"cookieDays,omitempty"`
}
