package staff

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// AttributeKind discriminates AttributeValue
type AttributeKind string

const (
	AttributeText   AttributeKind = "text"
	AttributeNumber AttributeKind = "number"
	AttributeKPI    AttributeKind = "kpi"
)

// KPI is a progress value against a goal, e.g. deliveries this month
type KPI struct {
	Current decimal.Decimal
	Goal    decimal.Decimal
}

// AttributeValue is a custom staff attribute: a text, a number or a KPI.
// JSON: "text" | 12.5 | {"current": 3, "goal": 10}
type AttributeValue struct {
	kind   AttributeKind
	text   string
	number decimal.Decimal
	kpi    KPI
}

// Text returns a text attribute
func Text(s string) AttributeValue {
	return AttributeValue{kind: AttributeText, text: s}
}

// Number returns a numeric attribute
func Number(d decimal.Decimal) AttributeValue {
	return AttributeValue{kind: AttributeNumber, number: d}
}

// KPIValue returns a KPI attribute
func KPIValue(current, goal decimal.Decimal) AttributeValue {
	return AttributeValue{kind: AttributeKPI, kpi: KPI{Current: current, Goal: goal}}
}

// Kind reports which variant v holds; empty for the zero value
func (v AttributeValue) Kind() AttributeKind { return v.kind }

// AsText returns the text variant
func (v AttributeValue) AsText() (string, bool) { return v.text, v.kind == AttributeText }

// AsNumber returns the number variant
func (v AttributeValue) AsNumber() (decimal.Decimal, bool) { return v.number, v.kind == AttributeNumber }

// AsKPI returns the KPI variant
func (v AttributeValue) AsKPI() (KPI, bool) { return v.kpi, v.kind == AttributeKPI }

// Equal compares two attribute values by variant and content
func (v AttributeValue) Equal(o AttributeValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case AttributeText:
		return v.text == o.text
	case AttributeNumber:
		return v.number.Equal(o.number)
	case AttributeKPI:
		return v.kpi.Current.Equal(o.kpi.Current) && v.kpi.Goal.Equal(o.kpi.Goal)
	}
	return true
}

// IncrementCurrent returns a KPI with current raised by delta. Other
// variants are returned unchanged with ok false.
func (v AttributeValue) IncrementCurrent(delta decimal.Decimal) (AttributeValue, bool) {
	if v.kind != AttributeKPI {
		return v, false
	}
	return KPIValue(v.kpi.Current.Add(delta), v.kpi.Goal), true
}

// MarshalJSON implements json.Marshaler
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttributeText:
		return json.Marshal(v.text)
	case AttributeNumber:
		return []byte(v.number.String()), nil
	case AttributeKPI:
		return fmt.Appendf(nil, `{"current":%s,"goal":%s}`, v.kpi.Current.String(), v.kpi.Goal.String()), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AttributeValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '{':
		var raw struct {
			Current decimal.Decimal `json:"current"`
			Goal    decimal.Decimal `json:"goal"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid kpi attribute: %w", err)
		}
		*v = KPIValue(raw.Current, raw.Goal)
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("invalid attribute value %s", data)
		}
		*v = Number(d)
	}
	return nil
}

// AttributeDefinition declares an attribute a role's members may carry
type AttributeDefinition struct {
	Key   string        `json:"key" validate:"required"`
	Label string        `json:"label"`
	Type  AttributeKind `json:"type" validate:"oneof=text number kpi"`
}
