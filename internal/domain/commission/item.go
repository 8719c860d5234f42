package commission

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/domain/trade"
)

// ItemKind distinguishes earning items
type ItemKind string

const (
	KindCommission ItemKind = "commission"
	KindBonus      ItemKind = "bonus"
)

// Item is a unit of compensation owed to a staff member
type Item struct {
	ID      string          `json:"id"`
	Kind    ItemKind        `json:"kind"`
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	OrderID string          `json:"orderId,omitempty"`
	Trigger staff.Trigger   `json:"trigger,omitempty"`
	Reason  string          `json:"reason,omitempty"`
	Paid    bool            `json:"paid"`
}

// CommissionItemID identifies the item earned on an order for a trigger
func CommissionItemID(orderID string, trigger staff.Trigger) string {
	return "comm-" + orderID + "-" + trigger.Slug()
}

// BonusItemID identifies the item for a bonus
func BonusItemID(bonusID string) string {
	return "bonus-" + bonusID
}

var triggers = []staff.Trigger{staff.TriggerOrderPaid, staff.TriggerOrderDelivered}

// DeriveItems re-derives every earning item of member from orders and their
// bonuses. A paid item needs the member as sales agent on a paid order, a
// delivered item the member as fulfiller on a delivered order. Only nonzero
// amounts yield an item. Items covered by a past payout are marked paid.
// The result is sorted by date, oldest first.
func (c Calculator) DeriveItems(member staff.Staff, role staff.Role, orders []trade.Order) []Item {
	paid := member.PaidItemIDs()
	items := make([]Item, 0)

	for _, order := range orders {
		for _, trigger := range triggers {
			if Actor(order, trigger) != member.ID || !reached(order, trigger) {
				continue
			}
			amount := c.Amount(role, order, trigger)
			if amount.IsZero() {
				continue
			}
			id := CommissionItemID(order.ID, trigger)
			items = append(items, Item{
				ID:      id,
				Kind:    KindCommission,
				Date:    order.Date,
				Amount:  amount,
				OrderID: order.ID,
				Trigger: trigger,
				Paid:    paid[id],
			})
		}
	}

	for _, bonus := range member.Bonuses {
		id := BonusItemID(bonus.ID)
		items = append(items, Item{
			ID:     id,
			Kind:   KindBonus,
			Date:   bonus.Date,
			Amount: bonus.Amount,
			Reason: bonus.Reason,
			Paid:   paid[id],
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items
}

func reached(order trade.Order, trigger staff.Trigger) bool {
	if trigger == staff.TriggerOrderPaid {
		return order.IsPaid()
	}
	return order.IsDelivered()
}

// Totals summarizes a set of items
type Totals struct {
	Earned      decimal.Decimal `json:"earned"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Sum totals items by paid state
func Sum(items []Item) Totals {
	t := Totals{Earned: decimal.Zero, Paid: decimal.Zero, Outstanding: decimal.Zero}
	for _, item := range items {
		t.Earned = t.Earned.Add(item.Amount)
		if item.Paid {
			t.Paid = t.Paid.Add(item.Amount)
		} else {
			t.Outstanding = t.Outstanding.Add(item.Amount)
		}
	}
	return t
}
