// Package staff models team members, their roles and the commission rules
// and earnings attached to them.
package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is a staff member's employment status
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusOnLeave  Status = "On Leave"
)

// Payout records commission paid out to a staff member. Payouts are
// append-only.
type Payout struct {
	ID          string          `json:"id" validate:"required"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	PaidItemIDs []string        `json:"paidItemIds"`
	Currency    string          `json:"currency,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// Bonus is a manual award that counts as an earning of its own
type Bonus struct {
	ID     string          `json:"id" validate:"required"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

// Staff is a team member. TotalCommission is the unpaid balance,
// PaidCommission what was paid out and TotalSales the value of paid orders
// the member sold.
type Staff struct {
	ID              string                    `json:"id" validate:"required"`
	Name            string                    `json:"name" validate:"required"`
	Email           string                    `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string                    `json:"phone,omitempty"`
	Role            string                    `json:"role" validate:"required"`
	Status          Status                    `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive 'On Leave'"`
	TotalCommission decimal.Decimal           `json:"totalCommission"`
	PaidCommission  decimal.Decimal           `json:"paidCommission"`
	TotalSales      decimal.Decimal           `json:"totalSales"`
	PayoutHistory   []Payout                  `json:"payoutHistory" validate:"dive"`
	Bonuses         []Bonus                   `json:"bonuses,omitempty" validate:"dive"`
	Attributes      map[string]AttributeValue `json:"attributes,omitempty"`
	JoinedAt        time.Time                 `json:"joinedAt"`
}

// PaidItemIDs returns every earning item id covered by a payout
func (s Staff) PaidItemIDs() map[string]bool {
	paid := make(map[string]bool)
	for _, p := range s.PayoutHistory {
		for _, id := range p.PaidItemIDs {
			paid[id] = true
		}
	}
	return paid
}

// LastPayout returns the most recent payout
func (s Staff) LastPayout() (Payout, bool) {
	if len(s.PayoutHistory) == 0 {
		return Payout{}, false
	}
	return s.PayoutHistory[len(s.PayoutHistory)-1], true
}

// Patch is a partial Staff update; nil fields are left unchanged
type Patch struct {
	Name            *string                    `json:"name,omitempty"`
	Email           *string                    `json:"email,omitempty"`
	Phone           *string                    `json:"phone,omitempty"`
	Role            *string                    `json:"role,omitempty"`
	Status          *Status                    `json:"status,omitempty"`
	TotalCommission *decimal.Decimal           `json:"totalCommission,omitempty"`
	PaidCommission  *decimal.Decimal           `json:"paidCommission,omitempty"`
	TotalSales      *decimal.Decimal           `json:"totalSales,omitempty"`
	PayoutHistory   *[]Payout                  `json:"payoutHistory,omitempty"`
	Bonuses         *[]Bonus                   `json:"bonuses,omitempty"`
	Attributes      *map[string]AttributeValue `json:"attributes,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p Patch) Empty() bool {
	return p == Patch{}
}

// ProfilePatch is the part of a staff member clients may edit. Balances,
// bonuses and payout history change only through commissions, bonus awards
// and payouts.
type ProfilePatch struct {
	Name       *string                    `json:"name,omitempty"`
	Email      *string                    `json:"email,omitempty"`
	Phone      *string                    `json:"phone,omitempty"`
	Role       *string                    `json:"role,omitempty"`
	Status     *Status                    `json:"status,omitempty"`
	Attributes *map[string]AttributeValue `json:"attributes,omitempty"`
}

// Patch converts the profile change into a staff patch
func (p ProfilePatch) Patch() Patch {
	return Patch{
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Role:       p.Role,
		Status:     p.Status,
		Attributes: p.Attributes,
	}
}
