package staff

import (
	"github.com/shopspring/decimal"
)

// Role names driving special commission handling
const (
	RoleAffiliate = "Affiliate"
	RoleAgent     = "Agent"
)

// DeliveryTargetAttribute is the KPI attribute advanced on each delivery by an Agent
const DeliveryTargetAttribute = "deliveryTarget"

// Trigger is the order event a commission rule reacts to
type Trigger string

const (
	TriggerOrderPaid      Trigger = "On Order Paid"
	TriggerOrderDelivered Trigger = "On Order Delivered"
)

// Valid reports whether t is a known trigger
func (t Trigger) Valid() bool {
	return t == TriggerOrderPaid || t == TriggerOrderDelivered
}

// Slug returns a short form used in earning item ids
func (t Trigger) Slug() string {
	switch t {
	case TriggerOrderPaid:
		return "paid"
	case TriggerOrderDelivered:
		return "delivered"
	}
	return string(t)
}

// RuleType selects how a rule's rate is applied
type RuleType string

const (
	RuleFixedAmount      RuleType = "Fixed Amount"
	RulePercentageOfSale RuleType = "Percentage of Sale"
)

// ConditionField names the order property a condition inspects
type ConditionField string

const (
	FieldOrderTotal      ConditionField = "Order Total"
	FieldProductCategory ConditionField = "Product Category"
)

// Operator compares a condition field with its value
type Operator string

const (
	OperatorIs          Operator = "is"
	OperatorIsNot       Operator = "is not"
	OperatorGreaterThan Operator = "is greater than"
	OperatorLessThan    Operator = "is less than"
)

// Condition narrows when a rule applies
type Condition struct {
	Field    ConditionField `json:"field" validate:"oneof='Order Total' 'Product Category'"`
	Operator Operator       `json:"operator" validate:"oneof=is 'is not' 'is greater than' 'is less than'"`
	Value    string         `json:"value"`
}

// CommissionRule earns a role's members a commission on an order event
type CommissionRule struct {
	ID         string          `json:"id" validate:"required"`
	Name       string          `json:"name"`
	Trigger    Trigger         `json:"trigger" validate:"oneof='On Order Paid' 'On Order Delivered'"`
	Type       RuleType        `json:"type" validate:"oneof='Fixed Amount' 'Percentage of Sale'"`
	Rate       decimal.Decimal `json:"rate"`
	Conditions []Condition     `json:"conditions" validate:"dive"`
}

// Role groups staff permissions, commission rules and custom attributes.
// Roles are keyed by name.
type Role struct {
	Name                 string                `json:"name" validate:"required"`
	Description          string                `json:"description,omitempty"`
	Permissions          map[string][]string   `json:"permissions,omitempty"`
	CommissionRules      []CommissionRule      `json:"commissionRules" validate:"dive"`
	AssignableAttributes []AttributeDefinition `json:"assignableAttributes,omitempty" validate:"dive"`
}

// RulesFor returns the rules reacting to trigger
func (r Role) RulesFor(trigger Trigger) []CommissionRule {
	var rules []CommissionRule
	for _, rule := range r.CommissionRules {
		if rule.Trigger == trigger {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Can reports whether the role grants action on module
func (r Role) Can(module, action string) bool {
	for _, a := range r.Permissions[module] {
		if a == action || a == "*" {
			return true
		}
	}
	return false
}

// RolePatch is a partial Role update; nil fields are left unchanged
type RolePatch struct {
	Description          *string                `json:"description,omitempty"`
	Permissions          *map[string][]string   `json:"permissions,omitempty"`
	CommissionRules      *[]CommissionRule      `json:"commissionRules,omitempty"`
	AssignableAttributes *[]AttributeDefinition `json:"assignableAttributes,omitempty"`
}
