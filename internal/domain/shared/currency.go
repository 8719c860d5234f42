package shared

import (
	"strings"

	"golang.org/x/text/currency"
)

// ParseCurrency validates an ISO 4217 code and returns it upper-cased
func ParseCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", InvalidInput("unknown currency %q", code)
	}
	return unit.String(), nil
}
